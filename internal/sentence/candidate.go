package sentence

// Blank is the marker used for hidden-word positions in a template.
const Blank = "__"

// Candidate is a (prompt, answer) pair plus derived classification tags —
// a unit of exercise content before template construction. Immutable once
// classified.
type Candidate struct {
	Prompt      string
	Answer      string
	Template    []string // optional supplied template, validated later
	Pattern     string
	Context     string
	GrammarTags map[string]bool
}

// Classify builds a Candidate from raw text, inferring every tag from
// surface features. A non-empty pattern overrides inference (used for the
// hand-authored bank entries, which carry curated labels).
func Classify(prompt, answer string, template []string, pattern string) Candidate {
	if pattern == "" {
		pattern = PatternLabel(prompt, answer)
	}
	return Candidate{
		Prompt:      prompt,
		Answer:      answer,
		Template:    template,
		Pattern:     pattern,
		Context:     ContextLabel(prompt, answer),
		GrammarTags: GrammarTags(prompt, answer),
	}
}

// Key is the dedup/anti-repeat key for a candidate: the normalized prompt.
func (c Candidate) Key() string {
	return Normalize(c.Prompt)
}

// Family returns the candidate's pattern family.
func (c Candidate) Family() string {
	return Family(c.Prompt, c.Answer)
}

// FormatGroup returns the candidate's format bucket.
func (c Candidate) FormatGroup() string {
	return FormatGroup(c.Pattern)
}

// Topic returns the candidate's keyword topic bucket.
func (c Candidate) Topic() string {
	return Topic(c.Prompt, c.Answer)
}
