package sentence

// bankEntry is one hand-authored fallback item. Templates here are curated
// and may mix fixed words with blanks.
type bankEntry struct {
	pattern  string
	prompt   string
	answer   string
	template []string
}

// questionBank is the static fallback drawn from when the generative
// provider under-supplies. Entries cover every pattern family and format.
var questionBank = []bankEntry{
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "What did the tour guide mention at the start of the trip?",
		answer:   "he explained where we'd be stopping for lunch.",
		template: []string{"__", "explained", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  "question_to_statement_dot_blanks",
		prompt:   "What did the professor remind students about?",
		answer:   "the assignment was due by Friday afternoon.",
		template: []string{"__", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "Were you able to ask the IT team about the issue?",
		answer:   "i emailed them to see if they knew what caused the crash.",
		template: []string{"__", "emailed", "__", "__", "__", "__", "__", "__", "the", "crash", "."},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "Did you like the restaurant we went to last night?",
		answer:   "i didn't enjoy the atmosphere because the music was too loud.",
		template: []string{"i", "__", "__", "__", "__", "__", "__", "__", "too", "loud", "."},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "Was your flight delayed yesterday?",
		answer:   "yes it was delayed because of heavy rain.",
		template: []string{"__", "__", "was", "delayed,", "__", "__", "__", "__", "."},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "How was the seminar yesterday afternoon?",
		answer:   "it was very helpful and clearly organized.",
		template: []string{"__", "was", "__", "__", "__", "__", "."},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "Did Maya finish the report before the deadline?",
		answer:   "she finished it early and sent it to the team.",
		template: []string{"__", "finished", "__", "__", "__", "__", "__", "__", "the", "team", "."},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "How did the students react to the new policy?",
		answer:   "they accepted it because it solved several scheduling problems.",
		template: []string{"__", "__", "__", "because", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "Did you call the customer service center?",
		answer:   "i called them, but no one answered the phone.",
		template: []string{"__", "called", "__", "but", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "What happened after the meeting ended?",
		answer:   "we reviewed the notes and planned the next steps.",
		template: []string{"__", "__", "__", "__", "and", "__", "__", "__", "."},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "Did your manager approve the vacation request?",
		answer:   "yes she approved it after reviewing the schedule.",
		template: []string{"__", "__", "approved", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "Did Alex explain the assignment instructions?",
		answer:   "he explained everything clearly, so we started right away.",
		template: []string{"__", "explained", "__", "__", "so", "__", "__", "__", "__", "."},
	},
	{
		pattern:  PatternStatementToQuestion,
		prompt:   "I heard Ethan started a new job last month.",
		answer:   "did he tell you what he's working for at the new company?",
		template: []string{"did", "he", "__", "__", "__", "__", "__", "__", "__", "?"},
	},
	{
		pattern:  PatternStatementToExclamation,
		prompt:   "You finally finished all your exams this week.",
		answer:   "what a relief this semester was intense!",
		template: []string{"what", "a", "__", "__", "__", "__", "!"},
	},
	{
		pattern:  "statement_to_question_qmark_mixed",
		prompt:   "Mia said the software update caused new errors.",
		answer:   "do you know what part of the update failed first?",
		template: []string{"do", "you", "__", "__", "__", "__", "__", "__", "__", "?"},
	},
	{
		pattern:  PatternQuestionToExclamation,
		prompt:   "How was the concert last night?",
		answer:   "it was absolutely amazing and the crowd was electric!",
		template: []string{"it", "was", "__", "__", "__", "__", "__", "__", "!"},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "Which bus should we take to the airport?",
		answer:   "we need the bus stopping near the tall building across from the park.",
		template: []string{"__", "__", "the bus", "__", "near", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  PatternStatementToStatement,
		prompt:   "The photocopier keeps jamming after every few pages.",
		answer:   "i think it's the old paper tray that causes the problem.",
		template: []string{"i", "__", "__", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  "statement_to_question_qmark_mixed",
		prompt:   "The train schedule changed again without much notice.",
		answer:   "should we book seats earlier to avoid confusion?",
		template: []string{"__", "__", "__", "earlier", "__", "__", "__", "?"},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "Did you book the hotel for our trip?",
		answer:   "unfortunately, i haven't found any affordable rooms because prices increased again.",
		template: []string{"unfortunately,", "__", "__", "found", "__", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "Have you found any flexible part-time work yet?",
		answer:   "i secured a position at a coffee shop ideal for my studies.",
		template: []string{"__", "__", "__", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  "statement_to_question_qmark_mixed",
		prompt:   "I think the presentation could start earlier tomorrow morning.",
		answer:   "would adjusting the agenda affect anyone who has to commute?",
		template: []string{"__", "__", "__", "__", "__", "__", "__", "__", "?"},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "Have you noticed fresher produce at the new market?",
		answer:   "it seemed that the quality had improved despite the higher price.",
		template: []string{"__", "__", "__", "__", "__", "despite", "__", "__", "."},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "When will you finish the report?",
		answer:   "i probably won't finish the report by Thursday.",
		template: []string{"__", "probably", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  PatternStatementToStatement,
		prompt:   "People asked how the city tour went.",
		answer:   "the tour guides who showed us around the old city were fantastic.",
		template: []string{"the", "__", "__", "__", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  "statement_to_question_qmark_mixed",
		prompt:   "You selected a different topic for your presentation.",
		answer:   "why did you choose that topic?",
		template: []string{"why", "__", "__", "__", "__", "?"},
	},
	{
		pattern:  "statement_to_question_qmark_mixed",
		prompt:   "I still have not seen your submission.",
		answer:   "did you finish the assignment?",
		template: []string{"did", "__", "__", "__", "?"},
	},
	{
		pattern:  PatternQuestionToStatement,
		prompt:   "Can we compare these two proposals quickly?",
		answer:   "the first option is more practical than the second one.",
		template: []string{"the", "__", "__", "__", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  PatternStatementToStatement,
		prompt:   "We need a backup plan in case attendance drops.",
		answer:   "if attendance drops, we will move the session online.",
		template: []string{"if", "__", "__", "__", "__", "__", "__", "__", "."},
	},
	{
		pattern:  PatternStatementToStatement,
		prompt:   "Students are waiting for the final materials.",
		answer:   "the package was delivered this morning and is required for class.",
		template: []string{"the", "__", "__", "__", "__", "__", "__", "__", "__", "__", "."},
	},
}

// BankCandidates returns the static bank as classified candidates, skipping
// any whose key appears in avoid.
func BankCandidates(avoid map[string]bool) []Candidate {
	out := make([]Candidate, 0, len(questionBank))
	for _, e := range questionBank {
		c := Classify(e.prompt, e.answer, e.template, e.pattern)
		if avoid[c.Key()] {
			continue
		}
		out = append(out, c)
	}
	return out
}
