package sentence

import (
	"context"
	"log"
	"math/rand"
	"sync"

	"github.com/toefl-prep/backend/internal/generator"
)

// Source supplies fresh candidates from the generative provider. It is
// best-effort: a failed or unparseable provider call yields an empty batch
// and a retained diagnostic, never an error.
type Source struct {
	llm generator.LLMClient

	mu      sync.Mutex
	lastErr string
}

func NewSource(llm generator.LLMClient) *Source {
	return &Source{llm: llm}
}

// LastError returns the most recent provider failure reason, for the
// exhaustion diagnostic.
func (s *Source) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Source) setLastError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

// Fetch asks the provider for a batch far larger than count so the caller
// survives dedup and quota filtering. Items are screened, classified, and
// deduplicated by normalized prompt within the batch; templates with fewer
// than three blanks are discarded (the template builder regenerates them).
func (s *Source) Fetch(ctx context.Context, count int, avoid map[string]bool, rng *rand.Rand) []Candidate {
	batchSize := count * 8
	if batchSize < 80 {
		batchSize = 80
	}

	avoidPrompts := make([]string, 0, len(avoid))
	for k := range avoid {
		avoidPrompts = append(avoidPrompts, k)
	}

	userPrompt := generator.BuildSentenceUserPrompt(batchSize, avoidPrompts, rng)
	resp, err := s.llm.Generate(ctx, generator.SentenceSystemPrompt(), userPrompt)
	if err != nil {
		s.setLastError(err.Error())
		log.Printf("WARN: candidate sourcing failed: %v", err)
		return nil
	}

	items := generator.ExtractItems(resp.Content)
	if len(items) == 0 {
		s.setLastError("provider returned no parseable items")
		return nil
	}
	s.setLastError("")

	seen := make(map[string]bool, len(items))
	var out []Candidate
	for _, item := range items {
		template := item.Template
		if countBlanks(template) < 3 {
			template = nil
		}
		c := Classify(item.Prompt, item.Answer, template, "")
		key := c.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
