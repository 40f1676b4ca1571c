package sentence

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/toefl-prep/backend/internal/generator"
	"github.com/toefl-prep/backend/internal/models"
)

type failingLLM struct{}

func (failingLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (*generator.LLMResponse, error) {
	return nil, errors.New("provider unavailable")
}

func newTestService(llm generator.LLMClient, seed int64) (*Service, *Store) {
	store := NewStore()
	svc := NewServiceWithRand(NewSource(llm), store, rand.New(rand.NewSource(seed)))
	return svc, store
}

func TestGenerateSet(t *testing.T) {
	svc, store := newTestService(generator.NewMockClient(), 1)

	set, err := svc.Generate(context.Background(), 10, models.DifficultyNormal)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.HasPrefix(set.SetID, "sentence-") || len(set.SetID) != len("sentence-")+8 {
		t.Errorf("set id = %q, want sentence-<8 hex>", set.SetID)
	}
	if set.Title != "Build a Sentence" || set.TimeMinutes != 5 {
		t.Errorf("unexpected framing: %q / %d", set.Title, set.TimeMinutes)
	}
	if set.Directions != "Move the words in the boxes to create grammatical sentences." {
		t.Errorf("unexpected directions: %q", set.Directions)
	}
	if len(set.Questions) != 10 {
		t.Fatalf("questions = %d, want 10", len(set.Questions))
	}

	for i, q := range set.Questions {
		if want := "q" + string(rune('1'+i)); i < 9 && q.QuestionID != want {
			t.Errorf("question %d id = %q, want %q", i, q.QuestionID, want)
		}
		blanks := countBlanks(q.Template)
		if blanks < 1 {
			t.Errorf("question %s has no blanks: %v", q.QuestionID, q.Template)
		}
		if len(q.Tokens) < blanks {
			t.Errorf("question %s has %d tokens for %d blanks", q.QuestionID, len(q.Tokens), blanks)
		}
		for _, tok := range q.Tokens {
			if tok != strings.ToLower(tok) {
				t.Errorf("token %q not lowercased", tok)
			}
		}
	}
	if set.Questions[9].QuestionID != "q10" {
		t.Errorf("last id = %q, want q10", set.Questions[9].QuestionID)
	}

	// Runtime payload keeps the answers; the public view must not.
	runtime := store.Get(set.SetID)
	if runtime == nil {
		t.Fatal("runtime set not registered")
	}
	for _, q := range runtime.Questions {
		if q.Answer == "" {
			t.Errorf("runtime question %s lost its answer", q.QuestionID)
		}
	}
}

func TestGenerateAntiRepeat(t *testing.T) {
	svc, _ := newTestService(generator.NewMockClient(), 2)

	first, err := svc.Generate(context.Background(), 10, models.DifficultyNormal)
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	second, err := svc.Generate(context.Background(), 10, models.DifficultyNormal)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}

	seen := make(map[string]bool)
	for _, q := range first.Questions {
		seen[Normalize(q.Prompt)] = true
	}
	for _, q := range second.Questions {
		if seen[Normalize(q.Prompt)] {
			t.Errorf("prompt repeated across consecutive sets: %q", q.Prompt)
		}
	}
}

func TestGenerateManySetsNoRepeat(t *testing.T) {
	svc, store := newTestService(generator.NewMockClient(), 8)

	// 35 ten-question sets push 350 prompts through the anti-repeat
	// memory, past its 300-key cap. Every set must still come back full,
	// with no prompt served twice, and the memory must stay bounded.
	seen := make(map[string]bool)
	for i := 0; i < 35; i++ {
		set, err := svc.Generate(context.Background(), 10, models.DifficultyNormal)
		if err != nil {
			t.Fatalf("set %d: %v", i+1, err)
		}
		if len(set.Questions) != 10 {
			t.Fatalf("set %d has %d questions", i+1, len(set.Questions))
		}
		for _, q := range set.Questions {
			key := Normalize(q.Prompt)
			if seen[key] {
				t.Fatalf("set %d repeated prompt %q", i+1, q.Prompt)
			}
			seen[key] = true
		}
	}

	if got := len(store.UsedKeys()); got != maxUsedMemory {
		t.Errorf("used-question memory = %d keys, want capped at %d", got, maxUsedMemory)
	}
}

func TestGenerateBankFallback(t *testing.T) {
	svc, _ := newTestService(failingLLM{}, 3)

	set, err := svc.Generate(context.Background(), 5, models.DifficultyNormal)
	if err != nil {
		t.Fatalf("Generate with dead provider should fall back to the bank: %v", err)
	}
	if len(set.Questions) != 5 {
		t.Errorf("questions = %d, want 5", len(set.Questions))
	}
}

func TestGenerateExhausted(t *testing.T) {
	svc, store := newTestService(failingLLM{}, 4)

	for _, c := range BankCandidates(nil) {
		store.Remember(c.Key())
	}

	_, err := svc.Generate(context.Background(), 5, models.DifficultyNormal)
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("err = %v, want ExhaustedError", err)
	}
	if !strings.Contains(exhausted.Error(), "provider unavailable") {
		t.Errorf("exhaustion message lost the provider reason: %q", exhausted.Error())
	}
}

func TestGradeFullAndPartial(t *testing.T) {
	svc, store := newTestService(generator.NewMockClient(), 5)

	set, err := svc.Generate(context.Background(), 4, models.DifficultyNormal)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	runtime := store.Get(set.SetID)

	answers := make(map[string]string)
	for _, q := range runtime.Questions {
		// Spacing and case differences must not cost points.
		answers[q.QuestionID] = strings.ToUpper(q.Answer)
	}
	result := svc.Grade(set.SetID, answers)
	if result == nil {
		t.Fatal("Grade returned nil for a known set")
	}
	if result.TotalQuestions != 4 || result.CorrectAnswers != 4 {
		t.Fatalf("full-credit grade = %d/%d", result.CorrectAnswers, result.TotalQuestions)
	}
	if result.ScorePercent != 100.0 {
		t.Errorf("score = %v, want 100.0", result.ScorePercent)
	}

	answers[runtime.Questions[0].QuestionID] = "completely wrong answer."
	result = svc.Grade(set.SetID, answers)
	if result.CorrectAnswers != 3 {
		t.Fatalf("partial grade correct = %d, want 3", result.CorrectAnswers)
	}
	if result.ScorePercent != 75.0 {
		t.Errorf("score = %v, want 75.0", result.ScorePercent)
	}
	wrong := result.Explanations[0]
	if wrong.IsCorrect || wrong.Expected == "" {
		t.Errorf("wrong answer explanation malformed: %+v", wrong)
	}
}

func TestGradeMissingAnswers(t *testing.T) {
	svc, _ := newTestService(generator.NewMockClient(), 6)

	set, err := svc.Generate(context.Background(), 3, models.DifficultyNormal)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	result := svc.Grade(set.SetID, map[string]string{})
	if result == nil {
		t.Fatal("Grade returned nil")
	}
	if result.CorrectAnswers != 0 || result.TotalQuestions != 3 {
		t.Errorf("empty submission graded %d/%d", result.CorrectAnswers, result.TotalQuestions)
	}
	if result.ScorePercent != 0.0 {
		t.Errorf("score = %v, want 0.0", result.ScorePercent)
	}
}

func TestGradeEmptySet(t *testing.T) {
	svc, store := newTestService(generator.NewMockClient(), 9)

	// A restored snapshot can carry zero questions; grading it must yield
	// 0.0 rather than dividing by zero.
	store.Replace("sentence-00000000", &models.SentenceSet{
		SetID:      "sentence-00000000",
		Title:      "Build a Sentence",
		Difficulty: models.DifficultyNormal,
	})

	result := svc.Grade("sentence-00000000", map[string]string{"q1": "anything"})
	if result == nil {
		t.Fatal("Grade returned nil for a registered set")
	}
	if result.TotalQuestions != 0 || result.CorrectAnswers != 0 {
		t.Errorf("empty set graded %d/%d", result.CorrectAnswers, result.TotalQuestions)
	}
	if result.ScorePercent != 0.0 {
		t.Errorf("score = %v, want 0.0", result.ScorePercent)
	}
	if len(result.Explanations) != 0 {
		t.Errorf("empty set produced %d explanations", len(result.Explanations))
	}
}

func TestGradeUnknownSet(t *testing.T) {
	svc, _ := newTestService(generator.NewMockClient(), 7)
	if result := svc.Grade("sentence-deadbeef", map[string]string{"q1": "x"}); result != nil {
		t.Errorf("unknown set should grade to nil, got %+v", result)
	}
}
