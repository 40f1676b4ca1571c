package sentence

import (
	"math/rand"
	"strings"
	"testing"
)

func TestBuildTemplate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	answer := "the assignment was due by Friday afternoon."

	template, hidden := BuildTemplate(answer, rng)

	words := 0
	for _, tok := range Tokenize(answer) {
		if IsWord(tok) {
			words++
		}
	}
	blanks := countBlanks(template)
	if blanks != len(hidden) {
		t.Fatalf("blanks = %d, hidden = %d, want equal", blanks, len(hidden))
	}
	anchors := words - blanks
	if anchors < 1 || anchors > 3 {
		t.Errorf("anchors = %d, want 1..3", anchors)
	}

	// Punctuation never becomes a blank.
	if template[len(template)-1] != "." {
		t.Errorf("trailing punctuation lost: %v", template)
	}

	// Filling the blanks back in must reconstruct the answer.
	hiddenByWord := map[string]int{}
	for _, h := range hidden {
		hiddenByWord[strings.ToLower(h)]++
	}
	ai := 0
	parts := Tokenize(answer)
	for _, tok := range template {
		if tok == Blank {
			w := strings.ToLower(parts[ai])
			if hiddenByWord[w] == 0 {
				t.Fatalf("hidden words %v missing %q", hidden, parts[ai])
			}
			hiddenByWord[w]--
		} else if tok != parts[ai] {
			t.Fatalf("template %v misaligned with answer at %q", template, parts[ai])
		}
		ai++
	}
}

func TestBuildTemplateShortAnswer(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	template, hidden := BuildTemplate("yes please.", rng)
	if len(hidden) != 0 {
		t.Errorf("two-word answer should produce no blanks, got %v", hidden)
	}
	if countBlanks(template) != 0 {
		t.Errorf("two-word answer template should have no blanks: %v", template)
	}
}

func TestCoerceTemplateAcceptsValid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	answer := "he explained where we'd be stopping for lunch."
	provided := []string{"__", "explained", "__", "__", "__", "__", "__", "."}

	template, hidden := CoerceTemplate(answer, provided, rng)

	if len(template) != len(provided) {
		t.Fatalf("valid template was rewritten: %v", template)
	}
	if len(hidden) != 6 {
		t.Fatalf("hidden = %v, want 6 words", hidden)
	}
	for _, w := range []string{"he", "where", "we'd", "be", "stopping", "for"} {
		found := false
		for _, h := range hidden {
			if strings.EqualFold(h, w) {
				found = true
			}
		}
		if !found {
			t.Errorf("hidden words %v missing %q", hidden, w)
		}
	}
}

func TestCoerceTemplatePhraseEntry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	answer := "she took the bus to the station this morning."
	provided := []string{"__", "took", "the bus", "__", "__", "__", "__", "__", "."}

	template, hidden := CoerceTemplate(answer, provided, rng)
	if len(template) != len(provided) {
		t.Fatalf("phrase template was rewritten: %v", template)
	}
	if len(hidden) != 6 {
		t.Errorf("hidden = %v, want 6", hidden)
	}
}

func TestCoerceTemplateRejectsInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	answer := "the assignment was due by Friday afternoon."

	// Too few blanks.
	template, hidden := CoerceTemplate(answer, []string{"the", "assignment", "__", "due", "by", "Friday", "afternoon", "."}, rng)
	if countBlanks(template) == 1 {
		t.Errorf("single-blank template should have been resynthesized: %v", template)
	}
	if countBlanks(template) != len(hidden) {
		t.Errorf("resynthesized template out of sync: %v vs %v", template, hidden)
	}

	// Fixed word that is not in the answer.
	template, _ = CoerceTemplate(answer, []string{"__", "__", "__", "banana", "__", "__", "afternoon", "."}, rng)
	for _, tok := range template {
		if tok == "banana" {
			t.Errorf("misaligned template survived validation: %v", template)
		}
	}
}

func TestCoerceTemplateEmptyFallsBack(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	answer := "the schedule changed again this week."
	template, hidden := CoerceTemplate(answer, nil, rng)
	if countBlanks(template) == 0 || len(hidden) == 0 {
		t.Errorf("nil template should synthesize blanks, got %v / %v", template, hidden)
	}
}
