package writing

import (
	"strings"
	"testing"

	"github.com/toefl-prep/backend/internal/models"
)

func emailPrompt() *models.WritingPrompt {
	return &models.WritingPrompt{
		TaskType:    models.TaskEmail,
		PromptID:    "email-001",
		Title:       "Reply to the Housing Office",
		Constraints: map[string]int{"min_words": 30, "time_minutes": 12},
		ToField:     "Housing Office Coordinator",
		Subject:     "Room Change Request",
		BulletPoints: []string{
			"Explain why your current room is not suitable",
			"Describe the kind of room you would prefer",
			"Ask about the timeline for a possible move",
		},
	}
}

func discussionPrompt() *models.WritingPrompt {
	return &models.WritingPrompt{
		TaskType:        models.TaskDiscussion,
		PromptID:        "discussion-001",
		Constraints:     map[string]int{"min_words": 30, "time_minutes": 10},
		ProfessorPrompt: "Do you think remote learning helps or hurts student success?",
		StudentPosts: []string{
			"Maria: Online lectures help because students can rewatch difficult material.",
			"Devon: Without a classroom, many students lose motivation entirely.",
		},
	}
}

const goodEmail = `Subject: Room Change Request

Dear Coordinator,

My current room is not suitable because the heating is broken and the noise from the street makes studying difficult. I would prefer a quieter room on a higher floor, ideally with a working radiator.

Could you tell me the timeline for a possible move? I can pack quickly once a room becomes available.

Best regards,
Jamie`

func TestValidateRulesEmail(t *testing.T) {
	checks := ValidateRules(emailPrompt(), goodEmail)

	if !checks.MeetsMinWords {
		t.Errorf("word count %d should meet the 30-word minimum", checks.WordCount)
	}
	if checks.EmailFormat == nil {
		t.Fatal("email checks missing format block")
	}
	if !checks.EmailFormat.HasSubjectLine || !checks.EmailFormat.HasGreeting || !checks.EmailFormat.HasSignoff {
		t.Errorf("format checks = %+v, want all true", *checks.EmailFormat)
	}
	if len(checks.TaskCoverage) != 3 {
		t.Fatalf("coverage entries = %d, want 3", len(checks.TaskCoverage))
	}
	if checks.AllBulletsCovered == nil || !*checks.AllBulletsCovered {
		t.Errorf("all bullets should be covered: %+v", checks.TaskCoverage)
	}
	if checks.RespondsToProfessor != nil {
		t.Error("discussion-only checks leaked into an email result")
	}
}

func TestValidateRulesEmailMissingEverything(t *testing.T) {
	checks := ValidateRules(emailPrompt(), "too short")

	if checks.MeetsMinWords {
		t.Error("two words should not meet the minimum")
	}
	if checks.EmailFormat.HasSubjectLine || checks.EmailFormat.HasGreeting {
		t.Errorf("format checks should all fail: %+v", *checks.EmailFormat)
	}
	if *checks.AllBulletsCovered {
		t.Error("no bullet should count as covered")
	}
}

func TestValidateRulesDiscussion(t *testing.T) {
	text := "In my view, remote learning helps student success because learners can rewatch difficult lectures. Maria made a similar point about online material, and I agree with her reasoning. However, motivation matters too."
	checks := ValidateRules(discussionPrompt(), text)

	if checks.RespondsToProfessor == nil || !*checks.RespondsToProfessor {
		t.Error("response engages the professor question")
	}
	if checks.ReferencesPeers == nil || !*checks.ReferencesPeers {
		t.Error("response references a peer post")
	}
	if checks.EmailFormat != nil {
		t.Error("email-only checks leaked into a discussion result")
	}
}

func TestScoreRubricBounds(t *testing.T) {
	prompt := emailPrompt()
	for _, text := range []string{"", "short reply.", goodEmail} {
		rubric := ScoreRubric(prompt, text, ValidateRules(prompt, text))
		for _, cat := range []string{CategoryTask, CategoryOrganization, CategoryGrammar, CategoryVocabulary} {
			score, ok := rubric[cat]
			if !ok {
				t.Fatalf("category %q missing", cat)
			}
			if score < 0 || score > 5 {
				t.Errorf("%s = %v out of range for %q", cat, score, text)
			}
		}
	}
}

func TestScoreRubricRewardsCoverage(t *testing.T) {
	prompt := emailPrompt()
	strong := ScoreRubric(prompt, goodEmail, ValidateRules(prompt, goodEmail))
	weak := ScoreRubric(prompt, "Hi. No details here.", ValidateRules(prompt, "Hi. No details here."))

	if strong[CategoryTask] <= weak[CategoryTask] {
		t.Errorf("task score should reward bullet coverage: strong=%v weak=%v",
			strong[CategoryTask], weak[CategoryTask])
	}
}

func TestEvaluate(t *testing.T) {
	result := Evaluate(emailPrompt(), goodEmail)

	sum := 0.0
	for _, v := range result.RubricScores {
		sum += v
	}
	mean := sum / float64(len(result.RubricScores))
	if diff := result.OverallScore - mean; diff > 0.01 || diff < -0.01 {
		t.Errorf("overall = %v, want mean %v", result.OverallScore, mean)
	}

	if len(result.Feedback.Strengths) != 3 {
		t.Errorf("strengths = %d, want exactly 3", len(result.Feedback.Strengths))
	}
	if len(result.Feedback.Fixes) != 5 {
		t.Errorf("fixes = %d, want exactly 5", len(result.Feedback.Fixes))
	}
	if len(result.Explanations) != 4 {
		t.Errorf("explanations = %d, want 4", len(result.Explanations))
	}
	if !strings.Contains(result.ImprovedSample, "Subject:") {
		t.Error("email sample should carry a subject line")
	}
	if len(result.VocabSuggestions) == 0 {
		t.Error("vocabulary suggestions missing")
	}
}

func TestEvaluateDiscussionSample(t *testing.T) {
	result := Evaluate(discussionPrompt(), "I think remote learning helps.")
	if strings.Contains(result.ImprovedSample, "Subject:") {
		t.Error("discussion sample should not be an email")
	}
	if !strings.Contains(result.ImprovedSample, "professor") {
		t.Error("discussion sample should mention the professor question")
	}
}

func TestVocabSuggestionsExcludeUsedWords(t *testing.T) {
	suggestions := VocabSuggestions("The plan is feasible and the results are substantial.")
	for _, s := range suggestions {
		if s == "feasible" || s == "substantial" {
			t.Errorf("suggestion %q was already used", s)
		}
	}
}
