package writing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/toefl-prep/backend/internal/models"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// ExplainScores writes a one-sentence justification per rubric category,
// grounded in the rule checks rather than the raw text.
func ExplainScores(prompt *models.WritingPrompt, checks models.RuleChecks, rubric map[string]float64) map[string]string {
	var taskExpl string
	if prompt.TaskType == models.TaskEmail {
		covered := 0
		for _, c := range checks.TaskCoverage {
			if c.Covered {
				covered++
			}
		}
		emailFmt := checks.EmailFormat
		if emailFmt == nil {
			emailFmt = &models.EmailFormatChecks{}
		}
		taskExpl = formatTaskExplEmail(rubric[CategoryTask], covered, len(checks.TaskCoverage), emailFmt)
	} else {
		responds := checks.RespondsToProfessor != nil && *checks.RespondsToProfessor
		refsPeer := checks.ReferencesPeers != nil && *checks.ReferencesPeers
		minWords := "not met"
		if checks.MeetsMinWords {
			minWords = "met"
		}
		taskExpl = fmt.Sprintf(
			"Task Fulfillment is %.1f/5 based on professor response=%s, peer integration=%s, min words=%s.",
			rubric[CategoryTask], yesNo(responds), yesNo(refsPeer), minWords,
		)
	}

	return map[string]string{
		CategoryTask: taskExpl,
		CategoryOrganization: fmt.Sprintf(
			"Organization & Coherence is %.1f/5 based on paragraphing, transitions, and clear progression of ideas.",
			rubric[CategoryOrganization],
		),
		CategoryGrammar: fmt.Sprintf(
			"Grammar & Sentence Structure is %.1f/5 based on sentence clarity, control, and variety.",
			rubric[CategoryGrammar],
		),
		CategoryVocabulary: fmt.Sprintf(
			"Vocabulary & Tone is %.1f/5 based on lexical range and appropriateness for a TOEFL %s response.",
			rubric[CategoryVocabulary], prompt.TaskType,
		),
	}
}

func formatTaskExplEmail(score float64, covered, total int, emailFmt *models.EmailFormatChecks) string {
	return fmt.Sprintf(
		"Task Fulfillment is %.1f/5 because you covered %d/%d required bullets, subject line=%s, greeting=%s, sign-off=%s.",
		score, covered, total,
		yesNo(emailFmt.HasSubjectLine), yesNo(emailFmt.HasGreeting), yesNo(emailFmt.HasSignoff),
	)
}

// GenerateFeedback produces three strengths, five fixes, and up to five
// rewrite suggestions, padding with generic lines when the checks surface
// fewer concrete items.
func GenerateFeedback(prompt *models.WritingPrompt, checks models.RuleChecks, rubric map[string]float64) models.Feedback {
	var strengths, fixes, rewrite []string

	if checks.MeetsMinWords {
		strengths = append(strengths, "Meets the minimum word requirement.")
	} else {
		fixes = append(fixes, fmt.Sprintf("Increase length to at least %d words.", checks.MinWordsRequired))
	}

	if prompt.TaskType == models.TaskEmail {
		emailFmt := checks.EmailFormat
		if emailFmt == nil {
			emailFmt = &models.EmailFormatChecks{}
		}
		if emailFmt.HasSubjectLine {
			strengths = append(strengths, "Includes a clear subject line.")
		} else {
			fixes = append(fixes, "Add a Subject line to match TOEFL email format.")
		}
		if checks.AllBulletsCovered != nil && !*checks.AllBulletsCovered {
			fixes = append(fixes, "Address each bullet point explicitly in your email body.")
		} else {
			strengths = append(strengths, "Covers required bullet points.")
		}
		if !emailFmt.HasGreeting {
			fixes = append(fixes, "Begin with a greeting such as 'Dear [Name],'.")
		}
		if !emailFmt.HasSignoff {
			fixes = append(fixes, "End with a formal sign-off.")
		}
		rewrite = append(rewrite,
			"Use one paragraph for each bullet point.",
			"Include specific details (time, reason, and request).",
			"Keep tone polite and concise.",
		)
	} else {
		if checks.RespondsToProfessor != nil && *checks.RespondsToProfessor {
			strengths = append(strengths, "Directly addresses the professor question.")
		} else {
			fixes = append(fixes, "Answer the professor question in your first 1-2 sentences.")
		}
		if checks.ReferencesPeers != nil && *checks.ReferencesPeers {
			strengths = append(strengths, "Builds on peer comments.")
		} else {
			fixes = append(fixes, "Reference and extend one peer idea in your own words.")
		}
		rewrite = append(rewrite,
			"State your opinion clearly in the opening.",
			"Reference one peer and explain agreement/disagreement.",
			"Add one concrete supporting example.",
		)
	}

	type scored struct {
		name  string
		score float64
	}
	var ranked []scored
	for name, score := range rubric {
		ranked = append(ranked, scored{name, score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > 0 {
		strengths = append(strengths, fmt.Sprintf("Strongest area: %s (%.1f/5).", ranked[0].name, ranked[0].score))
	}

	for len(strengths) < 3 {
		strengths = append(strengths, "Response is generally understandable.")
	}
	for len(fixes) < 5 {
		fixes = append(fixes, "Improve precision and sentence variety.")
	}

	if len(strengths) > 3 {
		strengths = strengths[:3]
	}
	if len(fixes) > 5 {
		fixes = fixes[:5]
	}
	if len(rewrite) > 5 {
		rewrite = rewrite[:5]
	}
	return models.Feedback{Strengths: strengths, Fixes: fixes, RewriteSuggestions: rewrite}
}

// BuildImprovedSample sketches a model answer for the prompt so students
// can compare structure, not content.
func BuildImprovedSample(prompt *models.WritingPrompt) string {
	if prompt.TaskType == models.TaskEmail {
		toField := prompt.ToField
		if toField == "" {
			toField = "Program Coordinator"
		}
		subject := prompt.Subject
		if subject == "" {
			subject = "Response to Your Request"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "To: %s\nSubject: %s\n\nDear %s,\n\n", toField, subject, toField)
		b.WriteString("Thank you for your email. I would like to share my response to each point below.\n\n")
		for i, bullet := range prompt.BulletPoints {
			fmt.Fprintf(&b, "%d. %s: I am addressing this point clearly with relevant details.\n", i+1, bullet)
		}
		b.WriteString("\nPlease let me know if you need any additional information.\n\nBest regards,\n[Your Name]")
		return b.String()
	}

	prof := prompt.ProfessorPrompt
	if prof == "" {
		prof = "the issue discussed in class"
	}
	if len(prof) > 80 {
		prof = prof[:80]
	}
	peer := "one peer opinion"
	if len(prompt.StudentPosts) > 0 {
		peer = prompt.StudentPosts[0]
	}
	if len(peer) > 90 {
		peer = peer[:90]
	}
	return "In my view, the best approach is to choose a practical solution supported by evidence. " +
		fmt.Sprintf("Regarding the professor's question about %s, I believe we should prioritize outcomes that can be measured clearly. ", prof) +
		fmt.Sprintf("One student suggested that %s..., and I partly agree because real results matter. ", peer) +
		"However, I would also evaluate long-term effects before finalizing a decision. " +
		"For example, a school policy pilot can show what works quickly and allow data-based improvements."
}

// vocabPool is offered to students minus anything they already used.
var vocabPool = []string{
	"beneficial", "feasible", "compelling", "consequently",
	"moreover", "substantial", "I recommend", "in contrast",
}

func VocabSuggestions(userText string) []string {
	used := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(userText), -1) {
		used[w] = true
	}
	var out []string
	for _, w := range vocabPool {
		if !used[strings.ToLower(w)] {
			out = append(out, w)
		}
		if len(out) == 8 {
			break
		}
	}
	return out
}

// Evaluate runs the full grading pipeline for one submission.
func Evaluate(prompt *models.WritingPrompt, userText string) *models.WritingEvaluation {
	checks := ValidateRules(prompt, userText)
	rubric := ScoreRubric(prompt, userText, checks)

	sum := 0.0
	for _, v := range rubric {
		sum += v
	}
	overall := math.Round(sum/float64(len(rubric))*100) / 100

	return &models.WritingEvaluation{
		RuleChecks:       checks,
		RubricScores:     rubric,
		Explanations:     ExplainScores(prompt, checks, rubric),
		OverallScore:     overall,
		Feedback:         GenerateFeedback(prompt, checks, rubric),
		ImprovedSample:   BuildImprovedSample(prompt),
		VocabSuggestions: VocabSuggestions(userText),
	}
}
