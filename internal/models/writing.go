package models

// TaskType distinguishes the two writing tasks served by the prompt store.
type TaskType string

const (
	TaskEmail      TaskType = "email"
	TaskDiscussion TaskType = "discussion"
)

var ValidTaskTypes = map[TaskType]bool{
	TaskEmail:      true,
	TaskDiscussion: true,
}

// WritingPrompt is one ingested (or generated-variant) writing task.
// Email tasks use ToField/Subject/BulletPoints; discussion tasks use
// ProfessorPrompt/StudentPosts.
type WritingPrompt struct {
	TaskType        TaskType       `json:"task_type"`
	PromptID        string         `json:"prompt_id"`
	SourcePromptID  string         `json:"source_prompt_id,omitempty"`
	Title           string         `json:"title"`
	Constraints     map[string]int `json:"constraints"`
	RawText         string         `json:"raw_text"`
	ToField         string         `json:"to_field,omitempty"`
	Subject         string         `json:"subject,omitempty"`
	BulletPoints    []string       `json:"bullet_points,omitempty"`
	ProfessorPrompt string         `json:"professor_prompt,omitempty"`
	StudentPosts    []string       `json:"student_posts,omitempty"`
}

func (p WritingPrompt) MinWords() int {
	return p.Constraints["min_words"]
}

func (p WritingPrompt) TimeMinutes() int {
	return p.Constraints["time_minutes"]
}

type WritingSubmitRequest struct {
	PromptID  string `json:"prompt_id"`
	StudentID string `json:"student_id,omitempty"`
	UserText  string `json:"user_text"`
}

// BulletCoverage reports whether one required bullet point was addressed.
type BulletCoverage struct {
	Bullet  string `json:"bullet"`
	Covered bool   `json:"covered"`
}

// EmailFormatChecks are the surface-form checks applied to email responses.
type EmailFormatChecks struct {
	HasSubjectLine bool `json:"has_subject_line"`
	HasGreeting    bool `json:"has_greeting"`
	HasSignoff     bool `json:"has_signoff"`
}

// RuleChecks holds the deterministic requirement checks for a submission.
type RuleChecks struct {
	WordCount        int  `json:"word_count"`
	MinWordsRequired int  `json:"min_words_required"`
	MeetsMinWords    bool `json:"meets_min_words"`

	// Email-only fields.
	EmailFormat       *EmailFormatChecks `json:"email_format,omitempty"`
	TaskCoverage      []BulletCoverage   `json:"task_coverage,omitempty"`
	AllBulletsCovered *bool              `json:"all_bullets_covered,omitempty"`

	// Discussion-only fields.
	RespondsToProfessor *bool `json:"responds_to_professor,omitempty"`
	ReferencesPeers     *bool `json:"references_or_builds_on_peers,omitempty"`
}

// Feedback is the coaching section of a writing evaluation.
type Feedback struct {
	Strengths          []string `json:"strengths"`
	Fixes              []string `json:"fixes"`
	RewriteSuggestions []string `json:"rewrite_suggestions"`
}

// WritingEvaluation is the full rubric result returned to the client.
type WritingEvaluation struct {
	RuleChecks       RuleChecks         `json:"rule_checks"`
	RubricScores     map[string]float64 `json:"rubric_scores"`
	Explanations     map[string]string  `json:"explanations"`
	OverallScore     float64            `json:"overall_score"`
	Feedback         Feedback           `json:"feedback"`
	ImprovedSample   string             `json:"improved_sample"`
	VocabSuggestions []string           `json:"vocab_suggestions"`
}
