package model

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	// DifficultyMixed 仅用于生成请求
	DifficultyMixed Difficulty = "mixed"
)

var RequestDifficulties = []Difficulty{DifficultyMixed, DifficultyEasy, DifficultyMedium, DifficultyHard}

// Question 练习题，批量生成，不跨会话保存；ID 仅在后端持久化题目时存在
type Question struct {
	ID         uint       `json:"id,omitempty"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
}

type GenerateQuestionsRequest struct {
	Topic      string     `json:"topic"`
	Count      int        `json:"count"`
	Difficulty Difficulty `json:"difficulty"`
}

type GenerateQuestionsResponse struct {
	Questions []Question `json:"questions"`
}

// Confidence 用户对答案的掌握程度 1..3
type Confidence int

const (
	ConfidenceLow    Confidence = 1
	ConfidenceMedium Confidence = 2
	ConfidenceHigh   Confidence = 3
)

func (c Confidence) Valid() bool {
	return c >= ConfidenceLow && c <= ConfidenceHigh
}

func (c Confidence) Label() string {
	switch c {
	case ConfidenceLow:
		return "Not at all"
	case ConfidenceMedium:
		return "Somewhat"
	case ConfidenceHigh:
		return "Very well"
	default:
		return "Unrated"
	}
}

type QuestionProgressRequest struct {
	QuestionID      uint       `json:"question_id"`
	ConfidenceLevel Confidence `json:"confidence_level"`
}
