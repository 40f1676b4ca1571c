package models

import (
	"encoding/json"
	"time"
)

// Submission is one graded attempt (writing or sentence set) persisted for
// the history view. Scores and the prompt snapshot are stored as raw JSON so
// the log survives schema changes in either grader.
type Submission struct {
	ID             int64           `json:"id"`
	PromptID       string          `json:"prompt_id"`
	StudentID      string          `json:"student_id,omitempty"`
	TaskType       string          `json:"task_type"`
	UserText       string          `json:"user_text"`
	Scores         json.RawMessage `json:"scores_json"`
	PromptSnapshot json.RawMessage `json:"prompt_snapshot,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
