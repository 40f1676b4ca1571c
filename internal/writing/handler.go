package writing

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/toefl-prep/backend/internal/models"
	"github.com/toefl-prep/backend/internal/submissions"
)

type Handler struct {
	store *PromptStore
	usage *UsageStore
	subs  *submissions.Store
}

// NewHandler wires the writing prompt store to its HTTP surface. usage and
// subs may be nil when running without a database.
func NewHandler(store *PromptStore, usage *UsageStore, subs *submissions.Store) *Handler {
	return &Handler{store: store, usage: usage, subs: subs}
}

// RandomPrompt serves a variant of a not-yet-used prompt of the requested
// task type, resetting the usage log once the whole bank is exhausted.
func (h *Handler) RandomPrompt(w http.ResponseWriter, r *http.Request) {
	taskType := models.TaskType(r.URL.Query().Get("task_type"))
	if !models.ValidTaskTypes[taskType] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "task_type must be 'email' or 'discussion'"})
		return
	}
	studentID := r.URL.Query().Get("student_id")

	if err := h.store.Reload(); err != nil {
		log.Printf("WARN: [writing] prompt reload failed: %v", err)
	}

	used := make(map[string]bool)
	if h.usage != nil {
		var err error
		used, err = h.usage.UsedSourceIDs(studentID, taskType)
		if err != nil {
			log.Printf("WARN: [writing] usage lookup failed: %v", err)
			used = make(map[string]bool)
		}

		if all := h.store.SourceIDsByType(taskType); len(all) > 0 && coversAll(used, all) {
			if err := h.usage.Reset(studentID, taskType); err != nil {
				log.Printf("WARN: [writing] usage reset failed: %v", err)
			} else {
				used = make(map[string]bool)
			}
		}
	}

	prompt := h.store.RandomByType(r.Context(), taskType, used)
	if prompt == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No prompts found. Run the ingest tool to generate data/prompts/prompts.json"})
		return
	}

	if h.usage != nil && prompt.SourcePromptID != "" {
		if err := h.usage.MarkUsed(studentID, taskType, prompt.PromptID, prompt.SourcePromptID); err != nil {
			log.Printf("WARN: [writing] usage record failed: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, prompt)
}

// Submit grades one writing attempt and appends it to the history log.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.WritingSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.PromptID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "prompt_id is required"})
		return
	}

	if err := h.store.Reload(); err != nil {
		log.Printf("WARN: [writing] prompt reload failed: %v", err)
	}
	prompt := h.store.GetPromptByID(req.PromptID)
	if prompt == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Prompt not found"})
		return
	}

	result := Evaluate(prompt, req.UserText)

	if h.subs != nil {
		scores, _ := json.Marshal(result)
		snapshot, _ := json.Marshal(prompt)
		sub := &models.Submission{
			PromptID:       req.PromptID,
			StudentID:      req.StudentID,
			TaskType:       string(prompt.TaskType),
			UserText:       req.UserText,
			Scores:         scores,
			PromptSnapshot: snapshot,
		}
		if err := h.subs.Record(sub); err != nil {
			log.Printf("WARN: [writing] record submission: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// History returns the latest graded attempts, optionally scoped to one
// student.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if h.subs == nil {
		writeJSON(w, http.StatusOK, []models.Submission{})
		return
	}

	subs, err := h.subs.History(r.URL.Query().Get("student_id"), 100)
	if err != nil {
		log.Printf("WARN: [writing] history query failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load history"})
		return
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	writeJSON(w, http.StatusOK, subs)
}

func coversAll(used map[string]bool, all []string) bool {
	for _, id := range all {
		if !used[id] {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
