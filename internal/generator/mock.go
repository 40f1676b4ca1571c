package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// mockBatchSize matches the batch a real provider call returns for a
// ten-question set.
const mockBatchSize = 90

// MockClient returns a synthetic candidate array for local development so
// the full pipeline runs without an API key. A counter advances across
// calls, so successive batches never repeat prompts and the anti-repeat
// memory fills the way it would against a live provider.
type MockClient struct {
	mu    sync.Mutex
	calls int
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	m.mu.Lock()
	start := m.calls * mockBatchSize
	m.calls++
	m.mu.Unlock()
	return &LLMResponse{Content: buildMockJSON(start, mockBatchSize), Model: "mock"}, nil
}

type mockItem struct {
	Prompt           string   `json:"prompt"`
	Answer           string   `json:"answer"`
	ResponseTemplate []string `json:"response_template"`
}

var mockTopics = []string{
	"the train schedule", "the software update", "the seminar",
	"the coffee shop", "the assignment", "the hotel booking",
	"the team meeting", "the new market", "the flight", "the presentation",
}

var mockOnes = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var mockTens = []string{
	"", "ten", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

// counterWords spells the counter out so it survives tokenization, which
// discards digits.
func counterWords(n int) string {
	switch {
	case n < 0:
		return counterWords(-n)
	case n < 20:
		return mockOnes[n]
	case n < 100:
		s := mockTens[n/10]
		if n%10 != 0 {
			s += " " + mockOnes[n%10]
		}
		return s
	case n < 1000:
		s := mockOnes[n/100] + " hundred"
		if n%100 != 0 {
			s += " " + counterWords(n%100)
		}
		return s
	default:
		s := counterWords(n/1000) + " thousand"
		if n%1000 != 0 {
			s += " " + counterWords(n%1000)
		}
		return s
	}
}

func buildMockJSON(start, count int) string {
	items := make([]mockItem, 0, count)
	for i := start; i < start+count; i++ {
		topic := mockTopics[i%len(mockTopics)]
		counter := counterWords(i)
		switch i % 5 {
		case 0:
			items = append(items, mockItem{
				Prompt:           fmt.Sprintf("Did you hear what happened with %s today, case %s?", topic, counter),
				Answer:           "they changed it because the schedule was moved to Friday this week.",
				ResponseTemplate: []string{"__", "__", "__", "because", "__", "__", "__", "__", "__", "__", "__", "__", "."},
			})
		case 1:
			items = append(items, mockItem{
				Prompt:           fmt.Sprintf("I heard %s caused some problems yesterday, case %s.", topic, counter),
				Answer:           "do you know what part of the process failed first this morning?",
				ResponseTemplate: []string{"do", "you", "__", "__", "__", "__", "__", "__", "__", "__", "__", "__", "?"},
			})
		case 2:
			items = append(items, mockItem{
				Prompt:           fmt.Sprintf("How was %s this morning, case %s?", topic, counter),
				Answer:           "it was really helpful and clearly organized for every session.",
				ResponseTemplate: []string{"it", "was", "__", "__", "__", "__", "__", "__", "__", "__", "."},
			})
		case 3:
			items = append(items, mockItem{
				Prompt:           fmt.Sprintf("The professor mentioned %s in class, case %s.", topic, counter),
				Answer:           "if the deadline moves we will adjust the plan for next week.",
				ResponseTemplate: []string{"if", "__", "__", "__", "__", "__", "__", "__", "__", "__", "__", "__", "."},
			})
		default:
			items = append(items, mockItem{
				Prompt:           fmt.Sprintf("How was the concert near %s last night, case %s?", topic, counter),
				Answer:           "it was absolutely amazing and the crowd loved every minute!",
				ResponseTemplate: []string{"it", "was", "__", "__", "__", "__", "__", "__", "__", "__", "!"},
			})
		}
	}
	data, _ := json.Marshal(items)
	return string(data)
}
