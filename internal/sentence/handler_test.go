package sentence

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/toefl-prep/backend/internal/generator"
	"github.com/toefl-prep/backend/internal/models"
)

func newTestHandler(seed int64) *Handler {
	svc := NewServiceWithRand(NewSource(generator.NewMockClient()), NewStore(), rand.New(rand.NewSource(seed)))
	return NewHandler(svc, nil, nil)
}

func TestRandomSetDefaults(t *testing.T) {
	h := newTestHandler(1)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sentence/random", nil)
	rec := httptest.NewRecorder()
	h.RandomSet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var set models.PublicSet
	if err := json.NewDecoder(rec.Body).Decode(&set); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if set.Difficulty != models.DifficultyHard {
		t.Errorf("default difficulty = %q, want %q", set.Difficulty, models.DifficultyHard)
	}
	if len(set.Questions) != 10 {
		t.Errorf("default count produced %d questions, want 10", len(set.Questions))
	}
}

func TestRandomSetRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"count too large", `{"count": 15}`},
		{"count negative", `{"count": -1}`},
		{"unknown difficulty", `{"difficulty": "impossible"}`},
		{"malformed body", `{"count": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(2)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/sentence/random", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.RandomSet(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}
