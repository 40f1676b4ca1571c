package sentence

import (
	"math/rand"
	"testing"
)

// selectionPool builds a varied pool large enough for every quota phase to
// have material to work with.
func selectionPool() []Candidate {
	var pool []Candidate
	add := func(prompt, answer string) {
		pool = append(pool, Classify(prompt, answer, nil, ""))
	}

	// Statements across topics.
	add("What did the professor announce?", "The exam moved to next Monday morning.")
	add("What happened at the airport?", "Our flight was delayed for two hours.")
	add("Did you talk to the manager?", "She approved the report this morning.")
	add("Is the software working now?", "The update fixed the login errors.")
	add("Where did you buy the produce?", "The market near campus had a sale.")
	add("What's the plan for tomorrow?", "We are meeting in the afternoon.")
	add("How was the seminar?", "The students asked thoughtful questions.")
	add("Any news about the bus route?", "The commute should be shorter next week.")
	add("What did the advisor suggest?", "He recommended taking the writing course.")
	add("Did the team finish?", "They submitted the assignment before the deadline.")

	// Questions.
	add("Tell me about the trip.", "Did you visit the old town?")
	add("The meeting ran long.", "Should we reschedule the review?")
	add("I heard about the class.", "Was the professor pleased with the presentation?")
	add("The office is closed.", "Can we meet at the coffee shop instead?")

	// Exclamations.
	add("I passed the exam.", "That's fantastic news!")
	add("The team won the grant.", "What an incredible achievement!")

	return pool
}

func TestSelectSmallPoolPassesThrough(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := selectionPool()[:5]

	got := Select(pool, 10, rng)
	if len(got) != 5 {
		t.Fatalf("len = %d, want the whole pool", len(got))
	}
	for i := range got {
		if got[i].Prompt != pool[i].Prompt {
			t.Errorf("small pool should pass through unshuffled at %d", i)
		}
	}
}

func TestSelectCount(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	got := Select(selectionPool(), 10, rng)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}

	seen := make(map[string]bool)
	for _, c := range got {
		if seen[c.Key()] {
			t.Errorf("duplicate pick %q", c.Prompt)
		}
		seen[c.Key()] = true
	}
}

func TestSelectFormatQuotas(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		got := Select(selectionPool(), 10, rng)

		counts := make(map[string]int)
		for _, c := range got {
			counts[c.FormatGroup()]++
		}
		if counts[FormatStatement] < 3 {
			t.Errorf("seed %d: statements = %d, want >= 3", seed, counts[FormatStatement])
		}
		if counts[FormatQuestion] < 2 {
			t.Errorf("seed %d: questions = %d, want >= 2", seed, counts[FormatQuestion])
		}
		if counts[FormatExclamation] < 1 {
			t.Errorf("seed %d: exclamations = %d, want >= 1 for a set of 10", seed, counts[FormatExclamation])
		}
	}
}

func TestSelectFamilyCoverage(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		got := Select(selectionPool(), 10, rng)

		families := make(map[string]bool)
		for _, c := range got {
			families[c.Family()] = true
		}
		for _, f := range []string{FamilyStatementResponse, FamilyInterrogative, FamilyReplyToQuestion} {
			if !families[f] {
				t.Errorf("seed %d: family %q missing from selection", seed, f)
			}
		}
	}
}
