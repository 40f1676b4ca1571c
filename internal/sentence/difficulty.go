package sentence

import (
	"math/rand"
	"strings"

	"github.com/toefl-prep/backend/internal/models"
)

// decoyWords is the fixed filler pool extra distractors are drawn from.
var decoyWords = []string{
	"already", "usually", "probably", "around", "earlier", "today",
	"quickly", "carefully", "really", "maybe", "still", "just",
}

// ApplyDifficulty builds the client word bank: the first blankCount required
// words, plus difficulty-scaled decoys, shuffled and lowercased.
//
// Decoy counts by tier: normal adds none; hard adds 1-2 with 45% probability;
// very_hard always adds 2-3; extra_tough always adds 3-5.
func ApplyDifficulty(required []string, blankCount int, difficulty models.Difficulty, rng *rand.Rand) []string {
	if blankCount > len(required) {
		blankCount = len(required)
	}
	out := make([]string, blankCount)
	copy(out, required[:blankCount])

	extra := 0
	switch difficulty {
	case models.DifficultyNormal:
		// no decoys
	case models.DifficultyHard:
		if rng.Float64() < 0.45 {
			extra = 1 + rng.Intn(2)
		}
	case models.DifficultyVeryHard:
		extra = 2 + rng.Intn(2)
	default: // extra_tough
		extra = 3 + rng.Intn(3)
	}

	if extra > 0 {
		existing := make(map[string]bool, len(out))
		for _, w := range out {
			existing[strings.ToLower(w)] = true
		}
		var candidates []string
		for _, w := range decoyWords {
			if !existing[strings.ToLower(w)] {
				candidates = append(candidates, w)
			}
		}
		rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
		if extra > len(candidates) {
			extra = len(candidates)
		}
		out = append(out, candidates[:extra]...)
	}

	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	for i, w := range out {
		out[i] = strings.ToLower(w)
	}
	return out
}
