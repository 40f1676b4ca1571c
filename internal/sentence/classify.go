package sentence

import "strings"

// Pattern labels describe the prompt→answer shape of a candidate. The suffix
// markers (_qmark, _bang, _dot) drive the coarse format grouping.
const (
	PatternStatementToQuestion    = "statement_to_question_qmark"
	PatternQuestionToQuestion     = "question_to_question_qmark"
	PatternStatementToExclamation = "statement_to_exclamation_bang"
	PatternQuestionToExclamation  = "question_to_exclamation_bang"
	PatternQuestionToStatement    = "question_to_statement_dot_mixed"
	PatternStatementToStatement   = "statement_to_statement_dot_mixed"
)

// Families group patterns for quota seeding in the selector.
const (
	FamilyStatementResponse = "statement_response"
	FamilyInterrogative     = "interrogative"
	FamilyReplyToQuestion   = "reply_to_question"
)

// Format groups are the coarse buckets the selector enforces quotas over.
const (
	FormatStatement   = "statement"
	FormatQuestion    = "question"
	FormatExclamation = "exclamation"
)

var topicKeywords = map[string][]string{
	"travel":        {"airport", "bus", "train", "flight", "trip", "commute", "hotel", "seats"},
	"work":          {"manager", "report", "meeting", "assignment", "deadline", "office", "team"},
	"education":     {"professor", "students", "class", "seminar", "policy", "exam", "presentation"},
	"technology":    {"software", "update", "errors", "it", "photocopier", "device", "system"},
	"shopping_food": {"market", "produce", "price", "restaurant", "lunch", "coffee", "shop"},
	"daily_life":    {"schedule", "tomorrow", "week", "afternoon", "morning", "today"},
}

// topicOrder keeps topic inference deterministic; Go map iteration is not.
var topicOrder = []string{"travel", "work", "education", "technology", "shopping_food", "daily_life"}

var campusTerms = []string{"class", "assignment", "office hours", "advisor", "course", "lab", "professor", "campus"}

// TargetGrammarTags is the coverage target the selector backfills against.
var TargetGrammarTags = []string{
	"subject_verb_order",
	"tense_time",
	"auxiliaries",
	"question_word_order",
	"articles_determiners",
	"prepositions",
	"modals",
	"clauses",
	"comparatives_superlatives",
	"conditionals",
	"passive_voice",
}

// PatternLabel classifies a (prompt, answer) pair by terminal punctuation.
func PatternLabel(prompt, answer string) string {
	p := strings.TrimSpace(prompt)
	a := strings.TrimSpace(answer)
	promptIsQuestion := strings.HasSuffix(p, "?")
	switch {
	case strings.HasSuffix(a, "?"):
		if promptIsQuestion {
			return PatternQuestionToQuestion
		}
		return PatternStatementToQuestion
	case strings.HasSuffix(a, "!"):
		if promptIsQuestion {
			return PatternQuestionToExclamation
		}
		return PatternStatementToExclamation
	case promptIsQuestion:
		return PatternQuestionToStatement
	default:
		return PatternStatementToStatement
	}
}

// Family derives the coarse pattern family used for selection seeding.
func Family(prompt, answer string) string {
	if strings.HasSuffix(strings.TrimSpace(answer), "?") {
		return FamilyInterrogative
	}
	if strings.HasSuffix(strings.TrimSpace(prompt), "?") {
		return FamilyReplyToQuestion
	}
	return FamilyStatementResponse
}

// FormatGroup maps a pattern label to its format bucket.
func FormatGroup(pattern string) string {
	p := strings.ToLower(pattern)
	if strings.Contains(p, "to_question") || strings.HasSuffix(p, "_qmark") {
		return FormatQuestion
	}
	if strings.Contains(p, "exclamation") || strings.HasSuffix(p, "_bang") {
		return FormatExclamation
	}
	return FormatStatement
}

// Topic buckets a pair into one of the fixed keyword topics, default "other".
func Topic(prompt, answer string) string {
	text := strings.ToLower(prompt + " " + answer)
	for _, topic := range topicOrder {
		for _, k := range topicKeywords[topic] {
			if strings.Contains(text, k) {
				return topic
			}
		}
	}
	return "other"
}

// ContextLabel tags a pair as campus or social based on keyword presence.
func ContextLabel(prompt, answer string) string {
	text := strings.ToLower(prompt + " " + answer)
	for _, t := range campusTerms {
		if strings.Contains(text, t) {
			return "campus"
		}
	}
	return "social"
}

// GrammarTags runs the independent keyword/structural checks. Each check is a
// cheap surface heuristic, not parsing.
func GrammarTags(prompt, answer string) map[string]bool {
	text := strings.ToLower(prompt + " " + answer)
	tags := make(map[string]bool)

	if containsAny(text, "yesterday", "last week", "since", "already", "yet") {
		tags["tense_time"] = true
	}
	if containsAny(text, " do ", " does ", " did ", " has ", " have ", " will ", " can ") {
		tags["auxiliaries"] = true
	}
	if containsAny(text, " often ", " already ", " never ") {
		tags["subject_verb_order"] = true
	}
	if containsAny(text, "a ", "an ", " the ", "this ", "that ", "some ", "any ") {
		tags["articles_determiners"] = true
	}
	if containsAny(text, " in ", " on ", " at ", " to ", " for ", " from ", " with ") {
		tags["prepositions"] = true
	}
	if containsAny(text, "can ", "could ", "should ", "might ", "must ") {
		tags["modals"] = true
	}
	if containsAny(text, "better than", "most ") {
		tags["comparatives_superlatives"] = true
	}
	if containsAny(text, "was completed", "is required", "was submitted", "were updated") {
		tags["passive_voice"] = true
	}
	if containsAny(text, " because ", " although ", " if ", " who ", " that ", " which ") {
		tags["clauses"] = true
	}
	if strings.Contains(text, " if ") {
		tags["conditionals"] = true
	}
	if strings.HasSuffix(strings.TrimSpace(text), "?") {
		tags["question_word_order"] = true
	}
	return tags
}

func containsAny(text string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
