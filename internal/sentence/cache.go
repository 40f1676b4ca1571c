package sentence

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/toefl-prep/backend/internal/models"
)

// CacheStore snapshots runtime sentence sets to Postgres so grading still
// works after a process restart empties the in-memory store.
type CacheStore struct {
	db *sql.DB
}

func NewCacheStore(db *sql.DB) *CacheStore {
	return &CacheStore{db: db}
}

func (c *CacheStore) Save(set *models.SentenceSet) error {
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal sentence set: %w", err)
	}
	_, err = c.db.Exec(
		`INSERT INTO sentence_set_cache (set_id, payload)
		 VALUES ($1, $2)
		 ON CONFLICT (set_id) DO UPDATE SET payload = EXCLUDED.payload`,
		set.SetID, payload,
	)
	if err != nil {
		return fmt.Errorf("save sentence set: %w", err)
	}
	return nil
}

// Load returns the snapshot for setID, or nil when none exists.
func (c *CacheStore) Load(setID string) (*models.SentenceSet, error) {
	var payload []byte
	err := c.db.QueryRow(
		`SELECT payload FROM sentence_set_cache WHERE set_id = $1`,
		setID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load sentence set: %w", err)
	}

	var set models.SentenceSet
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, fmt.Errorf("decode sentence set: %w", err)
	}
	return &set, nil
}
