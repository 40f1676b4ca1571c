package generator

import (
	"context"
	"strings"
	"testing"
)

func TestMockBatchesStayDistinct(t *testing.T) {
	m := NewMockClient()

	seen := make(map[string]bool)
	for call := 0; call < 4; call++ {
		resp, err := m.Generate(context.Background(), "", "")
		if err != nil {
			t.Fatalf("call %d: %v", call, err)
		}
		items := ExtractItems(resp.Content)
		if len(items) != mockBatchSize {
			t.Fatalf("call %d: %d items, want %d", call, len(items), mockBatchSize)
		}
		for _, item := range items {
			// The per-item counter must be spelled out: tokenization drops
			// digits, so a digit counter would collapse prompts into
			// identical dedup keys.
			if strings.ContainsAny(item.Prompt, "0123456789") {
				t.Fatalf("prompt carries a digit counter: %q", item.Prompt)
			}
			key := strings.ToLower(item.Prompt)
			if seen[key] {
				t.Fatalf("prompt repeated across batches: %q", item.Prompt)
			}
			seen[key] = true
		}
	}
}

func TestCounterWords(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "zero"},
		{7, "seven"},
		{19, "nineteen"},
		{20, "twenty"},
		{42, "forty two"},
		{90, "ninety"},
		{105, "one hundred five"},
		{360, "three hundred sixty"},
		{1001, "one thousand one"},
	}
	for _, tt := range tests {
		if got := counterWords(tt.n); got != tt.want {
			t.Errorf("counterWords(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
