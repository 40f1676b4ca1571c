package generator

import (
	"encoding/json"
	"strings"
)

// RawItem is one candidate as returned by the provider, before
// classification. ResponseTemplate may be empty when the provider's template
// was missing or unusable; the template builder synthesizes one later.
type RawItem struct {
	Prompt           string          `json:"prompt"`
	Answer           string          `json:"answer"`
	ResponseTemplate json.RawMessage `json:"response_template"`
}

// Item is a screened candidate with its template decoded.
type Item struct {
	Prompt   string
	Answer   string
	Template []string
}

// ExtractItems pulls the first top-level JSON array out of possibly fenced
// response text and keeps only objects with a non-empty prompt and answer.
// Anything unparseable yields an empty slice, never an error: a bad
// provider response is treated as zero usable candidates.
func ExtractItems(content string) []Item {
	text := stripCodeFences(content)
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end <= start {
		return nil
	}

	var rows []RawItem
	if err := json.Unmarshal([]byte(text[start:end+1]), &rows); err != nil {
		return nil
	}

	var out []Item
	for _, r := range rows {
		prompt := strings.TrimSpace(r.Prompt)
		answer := strings.TrimSpace(r.Answer)
		if prompt == "" || answer == "" {
			continue
		}
		out = append(out, Item{
			Prompt:   prompt,
			Answer:   answer,
			Template: decodeTemplate(r.ResponseTemplate),
		})
	}
	return out
}

// decodeTemplate accepts either a token array or a whitespace-separated
// string. A single entry containing spaces means the model returned the
// whole sentence as one element; that is not a tokenized template, so it is
// dropped.
func decodeTemplate(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil {
		cleaned := make([]string, 0, len(asList))
		for _, t := range asList {
			t = strings.TrimSpace(t)
			if t != "" {
				cleaned = append(cleaned, t)
			}
		}
		if len(cleaned) == 1 && strings.Contains(cleaned[0], " ") {
			return nil
		}
		return cleaned
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strings.Fields(asString)
	}
	return nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
