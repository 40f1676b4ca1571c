package generator

import (
	"fmt"
	"math/rand"
	"strings"
)

// Base topics always eligible for the seed list.
var topicCandidates = []string{
	"travel and transportation",
	"workplace communication",
	"university and classes",
	"technology and devices",
	"health and daily habits",
	"food, shopping, and prices",
	"housing and accommodation",
	"events and scheduling",
	"finance and budgeting",
	"community and public services",
}

// Synthetic topic space: domain x context x action gives thousands of
// combinations, so consecutive batches rarely share a seed.
var topicDomains = []string{
	"transportation", "education", "healthcare", "technology", "retail",
	"hospitality", "finance", "housing", "government services", "sports",
	"media", "environment", "legal services", "manufacturing", "logistics",
	"energy", "telecommunications", "agriculture", "food services",
	"public safety",
}

var topicContexts = []string{
	"beginner scenario", "urgent scenario", "long-term planning",
	"customer support case", "team collaboration", "budget limitation",
	"policy change", "conflict resolution", "time pressure", "quality issue",
	"service delay", "new opportunity", "unexpected problem",
	"follow-up discussion", "decision making", "scheduling tradeoff",
}

var topicActions = []string{
	"requesting help", "negotiating options", "giving an update",
	"asking a follow-up question", "proposing a solution",
	"explaining a cause", "comparing alternatives", "expressing uncertainty",
	"agreeing politely", "disagreeing respectfully", "summarizing outcomes",
	"making a recommendation", "checking feasibility",
	"clarifying constraints", "prioritizing next steps",
}

// TopicSeedText samples base topics plus fresh domain|context|action
// combinations sized to the batch.
func TopicSeedText(count int, rng *rand.Rand) string {
	target := count * 2
	if target < 8 {
		target = 8
	}
	if target > 20 {
		target = 20
	}

	seen := make(map[string]bool)
	var seeds []string
	for len(seeds) < target {
		topic := fmt.Sprintf("%s | %s | %s",
			topicDomains[rng.Intn(len(topicDomains))],
			topicContexts[rng.Intn(len(topicContexts))],
			topicActions[rng.Intn(len(topicActions))],
		)
		if seen[topic] {
			continue
		}
		seen[topic] = true
		seeds = append(seeds, topic)
		if len(seen) > 2000 {
			break
		}
	}

	baseTake := count / 2
	if baseTake < 3 {
		baseTake = 3
	}
	if baseTake > len(topicCandidates) {
		baseTake = len(topicCandidates)
	}
	perm := rng.Perm(len(topicCandidates))
	base := make([]string, 0, baseTake)
	for _, i := range perm[:baseTake] {
		base = append(base, topicCandidates[i])
	}

	return strings.Join(append(base, seeds...), "; ")
}

// SentenceSystemPrompt is the fixed system instruction for item generation.
func SentenceSystemPrompt() string {
	return "You create TOEFL sentence-building items."
}

// BuildSentenceUserPrompt encodes the batch contract: strict JSON array
// output, the format balance rule, topic spread, grammar-focus coverage,
// and prompts to avoid.
func BuildSentenceUserPrompt(count int, avoidPrompts []string, rng *rand.Rand) string {
	avoidText := ""
	if len(avoidPrompts) > 0 {
		sample := avoidPrompts
		if len(sample) > 30 {
			sample = sample[:30]
		}
		avoidText = fmt.Sprintf(" Do not reuse or paraphrase these prompt stems: %s.", strings.Join(sample, "; "))
	}

	return fmt.Sprintf("Generate %d TOEFL Build-a-Sentence items in this exact format. ", count) +
		"Return ONLY a JSON array. Each object must have keys: prompt, response_template, answer. " +
		"prompt: conversational lead sentence/question like 'Were you able to ask the IT team about the issue?' or a context statement like 'I heard Ethan started a new job last month.'. " +
		"response_template: token list where some tokens are fixed words and missing words are '__'. " +
		"answer: full grammatical response sentence that matches the template. " +
		"Cover sentence types: statement responses, WH-questions, yes/no questions, and natural reply-to-a-question mini dialogue. " +
		"Important balance rule: in each batch, at least 50% answers must be statement responses (ending with '.'), around 30% may be questions (ending with '?'), and include at least one exclamation-style response when suitable. " +
		"Use both daily social contexts and campus/academic contexts (class, assignments, office hours, schedules). " +
		"Target grammar focus areas across the set: subject-verb order with adverbs, tense+auxiliaries, prepositional phrases, relative clauses, comparatives/superlatives, conditionals, passive voice, and correct punctuation in questions/longer sentences. " +
		"Pattern must look like dialogue continuation items, not abstract grammar tasks. " +
		"Include variety: question->statement, statement->question, concession with 'despite', purpose with 'to avoid', uncertainty with 'probably', and contrast starters like 'unfortunately,'. " +
		"For extra-tough items, prefer advanced vocabulary, denser grammar, longer clauses, and academically styled phrasing. " +
		fmt.Sprintf("Distribute items across multiple topics such as: %s. ", TopicSeedText(count, rng)) +
		"Avoid concentrating many items on one topic in a single set. " +
		"Include some items where prompt is a statement and response_template is a follow-up question ending with '?'." +
		avoidText
}
