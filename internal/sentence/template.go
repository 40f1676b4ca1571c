package sentence

import (
	"math/rand"
	"strings"
)

// BuildTemplate synthesizes a blank-annotated template from an answer.
// A random third of the word tokens (at least 1, at most 3) stay visible as
// anchors; every other word token becomes a blank. Answers with two or fewer
// word tokens come back unblanked — too short to make an exercise of.
// The returned hidden words are shuffled; grading is whole-string, so their
// order carries no meaning.
func BuildTemplate(answer string, rng *rand.Rand) (template []string, hidden []string) {
	parts := Tokenize(answer)
	var wordIndices []int
	for i, p := range parts {
		if IsWord(p) {
			wordIndices = append(wordIndices, i)
		}
	}
	if len(wordIndices) <= 2 {
		return parts, nil
	}

	keepCount := len(wordIndices) / 3
	if keepCount < 1 {
		keepCount = 1
	}
	if keepCount > 3 {
		keepCount = 3
	}
	perm := rng.Perm(len(wordIndices))
	keep := make(map[int]bool, keepCount)
	for _, pi := range perm[:keepCount] {
		keep[wordIndices[pi]] = true
	}

	for i, token := range parts {
		if IsWord(token) && !keep[i] {
			template = append(template, Blank)
			hidden = append(hidden, token)
		} else {
			template = append(template, token)
		}
	}
	rng.Shuffle(len(hidden), func(i, j int) { hidden[i], hidden[j] = hidden[j], hidden[i] })
	return template, hidden
}

// hiddenFromTemplate walks the tokenized answer in lock-step with the
// template, collecting the word implied by each blank. Fixed template entries
// may be multi-token phrases ("across from"); those are matched as a sliding
// window. Returns nil when the template cannot be aligned with the answer.
func hiddenFromTemplate(answer string, template []string) []string {
	answerParts := Tokenize(answer)
	var hidden []string
	ai := 0
	for _, t := range template {
		if t == Blank {
			for ai < len(answerParts) && !IsWord(answerParts[ai]) {
				ai++
			}
			if ai < len(answerParts) {
				hidden = append(hidden, answerParts[ai])
				ai++
			}
			continue
		}
		targetParts := Tokenize(t)
		if len(targetParts) == 0 {
			continue
		}
		matched := false
		for ai+len(targetParts) <= len(answerParts) {
			if windowEqualFold(answerParts[ai:ai+len(targetParts)], targetParts) {
				ai += len(targetParts)
				matched = true
				break
			}
			ai++
		}
		if !matched {
			return nil
		}
	}
	return hidden
}

func windowEqualFold(window, target []string) bool {
	for i := range target {
		if !strings.EqualFold(window[i], target[i]) {
			return false
		}
	}
	return true
}

// rebuildFromTemplate substitutes hidden words into the blanks in order and
// joins with punctuation-aware spacing. Returns "" when the counts disagree.
func rebuildFromTemplate(template, hidden []string) string {
	parts := make([]string, 0, len(template))
	hi := 0
	for _, t := range template {
		if t == Blank {
			if hi >= len(hidden) {
				return ""
			}
			parts = append(parts, hidden[hi])
			hi++
		} else {
			parts = append(parts, t)
		}
	}
	if hi != len(hidden) {
		return ""
	}
	s := strings.Join(parts, " ")
	for _, p := range []string{",", ".", "?", "!"} {
		s = strings.ReplaceAll(s, " "+p, p)
	}
	return s
}

// CoerceTemplate validates a supplied template or falls back to synthesis.
// A supplied template is accepted only when it has at least three blanks,
// every blank recovers a hidden word, and substituting those words back
// reconstructs the answer exactly under normalization. Anything else is
// silently replaced by a synthesized template.
func CoerceTemplate(answer string, provided []string, rng *rand.Rand) (template []string, hidden []string) {
	if len(provided) > 0 {
		cleaned := make([]string, 0, len(provided))
		blanks := 0
		for _, t := range provided {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if t == Blank {
				blanks++
			}
			cleaned = append(cleaned, t)
		}
		if blanks >= 3 {
			recovered := hiddenFromTemplate(answer, cleaned)
			rebuilt := rebuildFromTemplate(cleaned, recovered)
			if len(recovered) == blanks && rebuilt != "" && Normalize(rebuilt) == Normalize(answer) {
				return cleaned, recovered
			}
		}
	}
	return BuildTemplate(answer, rng)
}

// countBlanks returns the number of blank markers in a template.
func countBlanks(template []string) int {
	n := 0
	for _, t := range template {
		if t == Blank {
			n++
		}
	}
	return n
}
