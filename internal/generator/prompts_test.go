package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

func TestTopicSeedText(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	seeds := strings.Split(TopicSeedText(10, rng), "; ")
	// 5 base topics plus 20 generated combinations.
	if len(seeds) != 25 {
		t.Fatalf("seed count = %d, want 25", len(seeds))
	}

	seen := make(map[string]bool)
	for _, s := range seeds {
		if seen[s] {
			t.Errorf("duplicate seed %q", s)
		}
		seen[s] = true
	}

	// Small batches still get a floor of seeds.
	seeds = strings.Split(TopicSeedText(1, rng), "; ")
	if len(seeds) < 8 {
		t.Errorf("small batch seed count = %d, want >= 8", len(seeds))
	}
}

func TestBuildSentenceUserPrompt(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	prompt := BuildSentenceUserPrompt(80, nil, rng)
	if !strings.Contains(prompt, "Generate 80 TOEFL Build-a-Sentence items") {
		t.Error("batch size missing from prompt")
	}
	if !strings.Contains(prompt, "JSON array") {
		t.Error("output format contract missing from prompt")
	}
	if strings.Contains(prompt, "Do not reuse") {
		t.Error("avoid clause present without avoid prompts")
	}
}

func TestBuildSentenceUserPromptAvoidCap(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	var avoid []string
	for i := 0; i < 100; i++ {
		avoid = append(avoid, fmt.Sprintf("used prompt %03d", i))
	}

	prompt := BuildSentenceUserPrompt(80, avoid, rng)
	if !strings.Contains(prompt, "Do not reuse") {
		t.Fatal("avoid clause missing")
	}
	listed := strings.Count(prompt, "used prompt ")
	if listed != 30 {
		t.Errorf("avoid sample = %d prompts, want 30", listed)
	}
}
