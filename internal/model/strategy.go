package model

type StrategyRequest struct {
	TestType string   `json:"test_type"`
	Problems []string `json:"problems"`
}

type StrategyResponse struct {
	Strategies string `json:"strategies"`
}

// Option 表单选项（值 + 展示文本）
type Option struct {
	Value string
	Label string
}

var TestTypes = []Option{
	{Value: "multiple-choice", Label: "Multiple Choice"},
	{Value: "essay", Label: "Essay"},
	{Value: "short-answer", Label: "Short Answer"},
	{Value: "programming", Label: "Programming/Coding"},
	{Value: "math", Label: "Mathematics"},
	{Value: "open-book", Label: "Open Book"},
}

// CommonProblems 请求中发送的是 Label 而不是 Value
var CommonProblems = []Option{
	{Value: "time", Label: "Time management"},
	{Value: "anxiety", Label: "Test anxiety"},
	{Value: "focus", Label: "Difficulty focusing"},
	{Value: "memory", Label: "Trouble remembering material"},
	{Value: "preparation", Label: "Lack of preparation"},
	{Value: "confidence", Label: "Low confidence"},
}
