package models

// Difficulty selects how many decoy words are mixed into each word bank.
type Difficulty string

const (
	DifficultyNormal     Difficulty = "normal"
	DifficultyHard       Difficulty = "hard"
	DifficultyVeryHard   Difficulty = "very_hard"
	DifficultyExtraTough Difficulty = "extra_tough"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyNormal:     true,
	DifficultyHard:       true,
	DifficultyVeryHard:   true,
	DifficultyExtraTough: true,
}

// SentenceQuestion is the full runtime form of a build-a-sentence item,
// including the canonical answer. It is stored server-side and never sent
// to the client as-is.
type SentenceQuestion struct {
	QuestionID string   `json:"question_id"`
	Prompt     string   `json:"prompt"`
	Template   []string `json:"response_template"`
	Tokens     []string `json:"tokens"`
	Answer     string   `json:"answer"`
}

// PublicQuestion is SentenceQuestion without the answer.
type PublicQuestion struct {
	QuestionID string   `json:"question_id"`
	Prompt     string   `json:"prompt"`
	Template   []string `json:"response_template"`
	Tokens     []string `json:"tokens"`
}

// SentenceSet is the runtime payload keyed by SetID in the set store.
type SentenceSet struct {
	SetID       string             `json:"set_id"`
	Title       string             `json:"title"`
	Directions  string             `json:"directions"`
	TimeMinutes int                `json:"time_minutes"`
	Difficulty  Difficulty         `json:"difficulty"`
	Questions   []SentenceQuestion `json:"questions"`
}

// PublicSet is the client view of a SentenceSet.
type PublicSet struct {
	SetID       string           `json:"set_id"`
	Title       string           `json:"title"`
	Directions  string           `json:"directions"`
	TimeMinutes int              `json:"time_minutes"`
	Difficulty  Difficulty       `json:"difficulty"`
	Questions   []PublicQuestion `json:"questions"`
}

type SentenceRandomRequest struct {
	Count      int        `json:"count"`
	Difficulty Difficulty `json:"difficulty"`
}

type SentenceSubmitRequest struct {
	SetID     string            `json:"set_id"`
	StudentID string            `json:"student_id"`
	Answers   map[string]string `json:"answers"`
}

// QuestionGrade is the per-question outcome of grading a submitted set.
type QuestionGrade struct {
	QuestionID string `json:"question_id"`
	IsCorrect  bool   `json:"is_correct"`
	Expected   string `json:"expected"`
	Received   string `json:"received"`
}

type GradeResult struct {
	TotalQuestions int             `json:"total_questions"`
	CorrectAnswers int             `json:"correct_answers"`
	ScorePercent   float64         `json:"score_percent"`
	Explanations   []QuestionGrade `json:"explanations"`
}
