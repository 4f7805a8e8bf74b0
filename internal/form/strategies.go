package form

import (
	"context"

	"study_assistant/internal/api"
	"study_assistant/internal/model"
	"study_assistant/pkg/logger"
	"study_assistant/pkg/monitoring"

	"go.uber.org/zap"
)

type StrategiesAPI interface {
	TestStrategies(ctx context.Context, req model.StrategyRequest) (string, error)
}

type strategyInput struct {
	TestType string   `validate:"required,oneof=multiple-choice essay short-answer programming math open-book"`
	Problems []string `validate:"dive,oneof=time anxiety focus memory preparation confidence"`
}

type StrategyGenerator struct {
	State
	TestType string
	// Problems 选中的问题 ID（如 "time"），发送时换成展示文本
	Problems   []string
	Strategies string

	api StrategiesAPI
}

func NewStrategyGenerator(client StrategiesAPI) *StrategyGenerator {
	return &StrategyGenerator{TestType: model.TestTypes[0].Value, api: client}
}

// ToggleProblem 勾选/取消一个问题，未知 ID 忽略
func (g *StrategyGenerator) ToggleProblem(id string) {
	if _, ok := problemLabel(id); !ok {
		return
	}
	for i, p := range g.Problems {
		if p == id {
			g.Problems = append(g.Problems[:i], g.Problems[i+1:]...)
			return
		}
	}
	g.Problems = append(g.Problems, id)
}

func problemLabel(id string) (string, bool) {
	for _, p := range model.CommonProblems {
		if p.Value == id {
			return p.Label, true
		}
	}
	return "", false
}

func (g *StrategyGenerator) Submit(ctx context.Context) (string, error) {
	if err := validateInput(strategyInput{TestType: g.TestType, Problems: g.Problems}); err != nil {
		g.Err = err.Error()
		return "", err
	}

	labels := make([]string, 0, len(g.Problems))
	for _, id := range g.Problems {
		label, _ := problemLabel(id)
		labels = append(labels, label)
	}

	g.begin()
	defer g.finish()

	text, err := g.api.TestStrategies(ctx, model.StrategyRequest{TestType: g.TestType, Problems: labels})
	monitoring.RecordGeneration("strategies", err)
	if err != nil {
		g.Err = api.Message(err, StrategiesFallback)
		logger.Log.Warn("Generate strategies failed", zap.String("test_type", g.TestType), zap.Error(err))
		return "", err
	}

	g.Strategies = text
	return text, nil
}
