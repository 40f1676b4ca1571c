package sentence

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/toefl-prep/backend/internal/models"
	"github.com/toefl-prep/backend/internal/submissions"
)

const (
	defaultSetSize = 10
	maxSetSize     = 10
)

type Handler struct {
	service *Service
	cache   *CacheStore
	subs    *submissions.Store
}

// NewHandler wires the sentence service to its HTTP surface. cache and subs
// may be nil when running without a database.
func NewHandler(service *Service, cache *CacheStore, subs *submissions.Store) *Handler {
	return &Handler{service: service, cache: cache, subs: subs}
}

// RandomSet generates a fresh sentence set and returns the public view.
func (h *Handler) RandomSet(w http.ResponseWriter, r *http.Request) {
	req := models.SentenceRandomRequest{Difficulty: models.DifficultyHard}
	if r.Body != nil {
		// An empty body keeps the defaults.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
			return
		}
	}

	// A zero count means the field was omitted.
	if req.Count == 0 {
		req.Count = defaultSetSize
	}
	if req.Count < 1 || req.Count > maxSetSize {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "count must be between 1 and 10"})
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyHard
	}
	if !models.ValidDifficulties[req.Difficulty] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "difficulty must be 'normal', 'hard', 'very_hard', or 'extra_tough'"})
		return
	}

	set, err := h.service.Generate(r.Context(), req.Count, req.Difficulty)
	if err != nil {
		var exhausted *ExhaustedError
		if errors.As(err, &exhausted) {
			writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: exhausted.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Generation failed: " + err.Error()})
		return
	}

	if h.cache != nil {
		if runtime := h.service.Store().Get(set.SetID); runtime != nil {
			if err := h.cache.Save(runtime); err != nil {
				log.Printf("WARN: [sentence] snapshot of %s failed: %v", set.SetID, err)
			}
		}
	}

	writeJSON(w, http.StatusOK, set)
}

// Submit grades a completed set. Unknown set ids are retried once against
// the database snapshot before returning 404.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SentenceSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.SetID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "set_id is required"})
		return
	}

	result := h.service.Grade(req.SetID, req.Answers)
	if result == nil && h.cache != nil {
		restored, err := h.cache.Load(req.SetID)
		if err != nil {
			log.Printf("WARN: [sentence] restore of %s failed: %v", req.SetID, err)
		}
		if restored != nil {
			h.service.Store().Replace(req.SetID, restored)
			result = h.service.Grade(req.SetID, req.Answers)
		}
	}
	if result == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Sentence set not found or expired"})
		return
	}

	h.recordSubmission(&req, result)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) recordSubmission(req *models.SentenceSubmitRequest, result *models.GradeResult) {
	if h.subs == nil {
		return
	}
	scores, err := json.Marshal(result)
	if err != nil {
		log.Printf("WARN: [sentence] marshal grade result: %v", err)
		return
	}
	answers, _ := json.Marshal(req.Answers)
	sub := &models.Submission{
		PromptID:  req.SetID,
		StudentID: req.StudentID,
		TaskType:  "sentence_building",
		UserText:  string(answers),
		Scores:    scores,
	}
	if err := h.subs.Record(sub); err != nil {
		log.Printf("WARN: [sentence] record submission: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
