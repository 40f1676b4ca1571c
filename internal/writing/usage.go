package writing

import (
	"database/sql"
	"fmt"

	"github.com/toefl-prep/backend/internal/models"
)

// UsageStore tracks which source prompts a student has already been served
// so rotation covers the whole bank before repeating. An empty student id
// is the shared anonymous bucket.
type UsageStore struct {
	db *sql.DB
}

func NewUsageStore(db *sql.DB) *UsageStore {
	return &UsageStore{db: db}
}

func (u *UsageStore) UsedSourceIDs(studentID string, taskType models.TaskType) (map[string]bool, error) {
	rows, err := u.db.Query(
		`SELECT source_prompt_id FROM prompt_usage WHERE student_id = $1 AND task_type = $2`,
		studentID, taskType,
	)
	if err != nil {
		return nil, fmt.Errorf("query prompt usage: %w", err)
	}
	defer rows.Close()

	used := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan prompt usage: %w", err)
		}
		used[id] = true
	}
	return used, rows.Err()
}

func (u *UsageStore) MarkUsed(studentID string, taskType models.TaskType, promptID, sourcePromptID string) error {
	_, err := u.db.Exec(
		`INSERT INTO prompt_usage (student_id, task_type, prompt_id, source_prompt_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (student_id, task_type, source_prompt_id) DO NOTHING`,
		studentID, taskType, promptID, sourcePromptID,
	)
	if err != nil {
		return fmt.Errorf("mark prompt used: %w", err)
	}
	return nil
}

// Reset clears a student's usage for the task type once the whole bank has
// been served.
func (u *UsageStore) Reset(studentID string, taskType models.TaskType) error {
	_, err := u.db.Exec(
		`DELETE FROM prompt_usage WHERE student_id = $1 AND task_type = $2`,
		studentID, taskType,
	)
	if err != nil {
		return fmt.Errorf("reset prompt usage: %w", err)
	}
	return nil
}
