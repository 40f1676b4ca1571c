package sentence

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"She walks to school.", []string{"She", "walks", "to", "school", "."}},
		{"didn't you see it?", []string{"didn't", "you", "see", "it", "?"}},
		{"Well, that's great!", []string{"Well", ",", "that's", "great", "!"}},
		{"item-42  spaced", []string{"item", "spaced"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := Tokenize(tt.text)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsWord(t *testing.T) {
	words := []string{"hello", "didn't", "I"}
	for _, w := range words {
		if !IsWord(w) {
			t.Errorf("IsWord(%q) = false, want true", w)
		}
	}
	nonWords := []string{".", ",", "?", "!", "", "a b"}
	for _, w := range nonWords {
		if IsWord(w) {
			t.Errorf("IsWord(%q) = true, want false", w)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"She walks to school.", "she walks to school ."},
		{"  SHE   walks to SCHOOL. ", "she walks to school ."},
		{"Didn't you see it?", "didn't you see it ?"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.text); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}

	// Normalization is what makes submissions with stray spacing and
	// capitalization grade as correct.
	if Normalize("the assignment was due by Friday afternoon.") != Normalize("The  assignment was due by friday afternoon .") {
		t.Error("expected spacing/case variants to normalize identically")
	}
}
