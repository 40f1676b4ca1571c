package writing

import (
	"math"
	"regexp"
	"strings"

	"github.com/toefl-prep/backend/internal/models"
)

// Rubric category names, fixed by the scoring contract with the frontend.
const (
	CategoryTask         = "Task Fulfillment"
	CategoryOrganization = "Organization & Coherence"
	CategoryGrammar      = "Grammar & Sentence Structure"
	CategoryVocabulary   = "Vocabulary & Tone"
)

var (
	wordPattern        = regexp.MustCompile(`\b[\w']+\b`)
	bareWordPattern    = regexp.MustCompile(`\b\w+\b`)
	sentenceSplit      = regexp.MustCompile(`(?:[.!?])\s+`)
	subjectLinePattern = regexp.MustCompile(`(?im)^subject\s*:`)
	greetingPattern    = regexp.MustCompile(`(?im)^(dear|hello|hi)\b`)
	signoffPattern     = regexp.MustCompile(`(?i)\b(sincerely|best|regards|thank you)\b`)
	transitionPattern  = regexp.MustCompile(`\b(first|however|therefore|for example|in conclusion)\b`)
	politePattern      = regexp.MustCompile(`\b(please|would|could|appreciate)\b`)
	opinionPattern     = regexp.MustCompile(`\b(i agree|i disagree|in my view|from my perspective)\b`)
	bulletTermPattern  = regexp.MustCompile(`[a-zA-Z]{4,}`)
	topicTermPattern   = regexp.MustCompile(`[a-zA-Z]{5,}`)
)

func wordCount(text string) int {
	return len(bareWordPattern.FindAllString(text, -1))
}

func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return sentenceSplit.Split(text, -1)
}

// ValidateRules runs the deterministic requirement checks for a submission:
// minimum length for both tasks, format and bullet coverage for emails,
// professor/peer engagement for discussions.
func ValidateRules(prompt *models.WritingPrompt, userText string) models.RuleChecks {
	wc := wordCount(userText)
	checks := models.RuleChecks{
		WordCount:        wc,
		MinWordsRequired: prompt.MinWords(),
		MeetsMinWords:    wc >= prompt.MinWords(),
	}

	textLower := strings.ToLower(userText)
	if prompt.TaskType == models.TaskEmail {
		var coverage []models.BulletCoverage
		for _, bullet := range prompt.BulletPoints {
			terms := bulletTermPattern.FindAllString(strings.ToLower(bullet), -1)
			if len(terms) > 4 {
				terms = terms[:4]
			}
			covered := false
			for _, t := range terms {
				if strings.Contains(textLower, t) {
					covered = true
					break
				}
			}
			coverage = append(coverage, models.BulletCoverage{Bullet: bullet, Covered: covered})
		}

		allCovered := true
		for _, c := range coverage {
			if !c.Covered {
				allCovered = false
				break
			}
		}

		checks.EmailFormat = &models.EmailFormatChecks{
			HasSubjectLine: subjectLinePattern.MatchString(userText),
			HasGreeting:    greetingPattern.MatchString(strings.TrimSpace(userText)),
			HasSignoff:     signoffPattern.MatchString(userText),
		}
		checks.TaskCoverage = coverage
		checks.AllBulletsCovered = &allCovered
		return checks
	}

	professorTerms := topicTermPattern.FindAllString(strings.ToLower(prompt.ProfessorPrompt), -1)
	if len(professorTerms) > 8 {
		professorTerms = professorTerms[:8]
	}
	respondsToProfessor := len(professorTerms) == 0
	for _, t := range professorTerms {
		if strings.Contains(textLower, t) {
			respondsToProfessor = true
			break
		}
	}

	refsPeer := false
	for _, post := range prompt.StudentPosts {
		terms := topicTermPattern.FindAllString(strings.ToLower(post), -1)
		if len(terms) > 5 {
			terms = terms[:5]
		}
		for _, t := range terms {
			if strings.Contains(textLower, t) {
				refsPeer = true
				break
			}
		}
		if refsPeer {
			break
		}
	}

	checks.RespondsToProfessor = &respondsToProfessor
	checks.ReferencesPeers = &refsPeer
	return checks
}

func clampScore(v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > 5 {
		v = 5
	}
	return math.Round(v*10) / 10
}

// ScoreRubric maps the rule checks and surface text features onto the four
// rubric categories, each clamped to 0-5.
func ScoreRubric(prompt *models.WritingPrompt, userText string, checks models.RuleChecks) map[string]float64 {
	wc := checks.WordCount
	sentences := splitSentences(userText)
	textLower := strings.ToLower(userText)

	task := 2.5
	if prompt.TaskType == models.TaskEmail {
		if len(checks.TaskCoverage) > 0 {
			covered := 0
			for _, c := range checks.TaskCoverage {
				if c.Covered {
					covered++
				}
			}
			task += float64(covered) / float64(len(checks.TaskCoverage)) * 2
		}
		if checks.EmailFormat != nil {
			if checks.EmailFormat.HasSubjectLine {
				task += 0.3
			}
			if checks.EmailFormat.HasGreeting {
				task += 0.1
			}
			if checks.EmailFormat.HasSignoff {
				task += 0.1
			}
		}
	} else {
		if checks.RespondsToProfessor != nil && *checks.RespondsToProfessor {
			task += 1.3
		}
		if checks.ReferencesPeers != nil && *checks.ReferencesPeers {
			task += 1.2
		}
		if checks.MeetsMinWords {
			task += 0.8
		}
	}

	org := 2.0
	if len(sentences) >= 4 {
		org += 0.8
	}
	if strings.Contains(userText, "\n\n") {
		org += 0.8
	}
	if transitionPattern.MatchString(textLower) {
		org += 0.8
	}

	avgLen := 0.0
	if len(sentences) > 0 {
		avgLen = float64(wc) / float64(len(sentences))
	}
	grammar := 2.0
	if len(sentences) >= 3 {
		grammar += 1.0
	}
	if avgLen >= 8 && avgLen <= 30 {
		grammar += 0.8
	}

	unique := make(map[string]bool)
	for _, w := range bareWordPattern.FindAllString(textLower, -1) {
		unique[w] = true
	}
	vocab := 2.2
	if len(unique) > 40 {
		vocab += 0.8
	}
	if prompt.TaskType == models.TaskEmail {
		if politePattern.MatchString(textLower) {
			vocab += 0.6
		}
	} else {
		if opinionPattern.MatchString(textLower) {
			vocab += 0.6
		}
	}

	return map[string]float64{
		CategoryTask:         clampScore(task),
		CategoryOrganization: clampScore(org),
		CategoryGrammar:      clampScore(grammar),
		CategoryVocabulary:   clampScore(vocab),
	}
}
