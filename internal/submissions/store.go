package submissions

import (
	"database/sql"
	"fmt"

	"github.com/toefl-prep/backend/internal/models"
)

// Store persists graded attempts for the history view.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Record(sub *models.Submission) error {
	err := s.db.QueryRow(
		`INSERT INTO submissions (prompt_id, student_id, task_type, user_text, scores, prompt_snapshot)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		sub.PromptID, sub.StudentID, sub.TaskType, sub.UserText, sub.Scores, sub.PromptSnapshot,
	).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("record submission: %w", err)
	}
	return nil
}

// History returns the most recent submissions, newest first. An empty
// studentID matches everything.
func (s *Store) History(studentID string, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(
		`SELECT id, prompt_id, student_id, task_type, user_text, scores, prompt_snapshot, created_at
		 FROM submissions
		 WHERE ($1 = '' OR student_id = $1)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		studentID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var sub models.Submission
		var snapshot sql.NullString
		if err := rows.Scan(&sub.ID, &sub.PromptID, &sub.StudentID, &sub.TaskType,
			&sub.UserText, &sub.Scores, &snapshot, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if snapshot.Valid {
			sub.PromptSnapshot = []byte(snapshot.String)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
