package sentence

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/toefl-prep/backend/internal/models"
)

const (
	setTitle      = "Build a Sentence"
	setDirections = "Move the words in the boxes to create grammatical sentences."
	setMinutes    = 5

	// sourcingRounds is the retry budget for assembling enough unique
	// candidates before generation fails outright.
	sourcingRounds = 8
)

// ExhaustedError is returned when fewer than count unique candidates could
// be assembled after the full retry budget. Reason carries the last
// provider diagnostic.
type ExhaustedError struct {
	Reason string
}

func (e *ExhaustedError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "provider returned insufficient unique items"
	}
	return fmt.Sprintf("unable to generate enough non-repeating sentence questions: %s", reason)
}

// Service orchestrates sourcing, selection, template construction,
// difficulty injection, and grading over the shared set store.
type Service struct {
	source *Source
	store  *Store

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(source *Source, store *Store) *Service {
	return NewServiceWithRand(source, store, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewServiceWithRand injects the randomness source so tests can pin
// selection and template outcomes.
func NewServiceWithRand(source *Source, store *Store, rng *rand.Rand) *Service {
	return &Service{source: source, store: store, rng: rng}
}

// Store exposes the underlying set store for snapshot restore at the edge.
func (s *Service) Store() *Store {
	return s.store
}

// Generate assembles a sentence set of exactly count questions. It sources
// candidates in up to eight rounds against a growing avoid-set, tops up
// from the static bank, then selects, templates, and difficulty-scales the
// final picks. The full set is registered in the store; the returned view
// omits answers.
func (s *Service) Generate(ctx context.Context, count int, difficulty models.Difficulty) (*models.PublicSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fresh []Candidate
	seenBatch := make(map[string]bool)

	for round := 0; round < sourcingRounds && len(fresh) < count; round++ {
		avoid := s.store.UsedKeys()
		for k := range seenBatch {
			avoid[k] = true
		}
		for _, c := range s.source.Fetch(ctx, count, avoid, s.rng) {
			key := c.Key()
			if s.store.Contains(key) || seenBatch[key] {
				continue
			}
			seenBatch[key] = true
			fresh = append(fresh, c)
			if len(fresh) >= count {
				break
			}
		}
	}

	if len(fresh) < count {
		avoid := s.store.UsedKeys()
		for k := range seenBatch {
			avoid[k] = true
		}
		for _, c := range BankCandidates(avoid) {
			seenBatch[c.Key()] = true
			fresh = append(fresh, c)
			if len(fresh) >= count {
				break
			}
		}
	}

	if len(fresh) < count {
		return nil, &ExhaustedError{Reason: s.source.LastError()}
	}

	picks := Select(fresh, count, s.rng)
	setID := "sentence-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	questions := make([]models.SentenceQuestion, 0, count)
	for i, pick := range picks {
		answer := pick.Answer
		template, options := CoerceTemplate(answer, pick.Template, s.rng)
		s.rng.Shuffle(len(options), func(a, b int) { options[a], options[b] = options[b], options[a] })

		blankCount := countBlanks(template)
		if blankCount <= 0 || len(options) < blankCount {
			template, options = BuildTemplate(answer, s.rng)
			blankCount = countBlanks(template)
			if len(options) < blankCount {
				var words []string
				for _, w := range Tokenize(answer) {
					if IsWord(w) {
						words = append(words, w)
					}
				}
				for len(options) < blankCount && len(words) > 0 {
					options = append(options, words[len(options)%len(words)])
				}
			}
		}

		options = ApplyDifficulty(options, blankCount, difficulty, s.rng)

		questions = append(questions, models.SentenceQuestion{
			QuestionID: fmt.Sprintf("q%d", i+1),
			Prompt:     pick.Prompt,
			Template:   template,
			Tokens:     options,
			Answer:     answer,
		})
	}

	runtime := &models.SentenceSet{
		SetID:       setID,
		Title:       setTitle,
		Directions:  setDirections,
		TimeMinutes: setMinutes,
		Difficulty:  difficulty,
		Questions:   questions,
	}
	s.store.Create(setID, runtime)
	for _, q := range questions {
		s.store.Remember(Normalize(q.Prompt))
	}

	public := make([]models.PublicQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, models.PublicQuestion{
			QuestionID: q.QuestionID,
			Prompt:     q.Prompt,
			Template:   q.Template,
			Tokens:     q.Tokens,
		})
	}
	return &models.PublicSet{
		SetID:       setID,
		Title:       setTitle,
		Directions:  setDirections,
		TimeMinutes: setMinutes,
		Difficulty:  difficulty,
		Questions:   public,
	}, nil
}

// Grade compares submitted answers against the stored set. It returns nil
// when the set is unknown; the caller decides whether to restore a snapshot
// and retry.
func (s *Service) Grade(setID string, answers map[string]string) *models.GradeResult {
	set := s.store.Get(setID)
	if set == nil {
		return nil
	}

	var explanations []models.QuestionGrade
	correct := 0
	for _, q := range set.Questions {
		expected := Normalize(q.Answer)
		got := Normalize(answers[q.QuestionID])
		ok := got == expected
		if ok {
			correct++
		}
		explanations = append(explanations, models.QuestionGrade{
			QuestionID: q.QuestionID,
			IsCorrect:  ok,
			Expected:   q.Answer,
			Received:   answers[q.QuestionID],
		})
	}

	total := len(set.Questions)
	score := 0.0
	if total > 0 {
		score = math.Round(float64(correct)/float64(total)*1000) / 10
	}
	return &models.GradeResult{
		TotalQuestions: total,
		CorrectAnswers: correct,
		ScorePercent:   score,
		Explanations:   explanations,
	}
}
