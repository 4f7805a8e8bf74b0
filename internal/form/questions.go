package form

import (
	"context"
	"strings"

	"study_assistant/internal/api"
	"study_assistant/internal/model"
	"study_assistant/internal/util"
	"study_assistant/pkg/logger"
	"study_assistant/pkg/monitoring"

	"go.uber.org/zap"
)

const (
	MinQuestions     = 1
	MaxQuestions     = 20
	DefaultQuestions = 5
)

type QuestionsAPI interface {
	GenerateQuestions(ctx context.Context, courseID uint, req model.GenerateQuestionsRequest) ([]model.Question, error)
}

type questionsInput struct {
	CourseID   uint   `validate:"gt=0"`
	Topic      string `validate:"required"`
	Difficulty string `validate:"oneof=mixed easy medium hard"`
}

type QuestionGenerator struct {
	State
	CourseID   uint
	Topic      string
	Count      int
	Difficulty model.Difficulty
	Questions  []model.Question
	// OnGenerated 生成成功后回调，通常用于开始练习
	OnGenerated func([]model.Question)

	api QuestionsAPI
}

func NewQuestionGenerator(client QuestionsAPI, courseID uint) *QuestionGenerator {
	return &QuestionGenerator{
		CourseID:   courseID,
		Count:      DefaultQuestions,
		Difficulty: model.DifficultyMixed,
		api:        client,
	}
}

// SetCount 超出范围的数量被截断到 1..20
func (g *QuestionGenerator) SetCount(n int) {
	g.Count = util.Clamp(n, MinQuestions, MaxQuestions)
}

func (g *QuestionGenerator) Submit(ctx context.Context) ([]model.Question, error) {
	topic := strings.TrimSpace(g.Topic)
	if err := validateInput(questionsInput{CourseID: g.CourseID, Topic: topic, Difficulty: string(g.Difficulty)}); err != nil {
		g.Err = err.Error()
		return nil, err
	}
	g.SetCount(g.Count)

	g.begin()
	defer g.finish()

	questions, err := g.api.GenerateQuestions(ctx, g.CourseID, model.GenerateQuestionsRequest{
		Topic:      topic,
		Count:      g.Count,
		Difficulty: g.Difficulty,
	})
	monitoring.RecordGeneration("questions", err)
	if err != nil {
		g.Err = api.Message(err, QuestionsFallback)
		logger.Log.Warn("Generate questions failed", zap.Uint("course_id", g.CourseID), zap.Error(err))
		return nil, err
	}

	g.Questions = questions
	logger.Log.Info("Questions generated", zap.Uint("course_id", g.CourseID), zap.Int("count", len(questions)))
	if g.OnGenerated != nil {
		g.OnGenerated(questions)
	}
	return questions, nil
}
