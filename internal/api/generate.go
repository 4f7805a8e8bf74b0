package api

import (
	"context"
	"fmt"
	"net/http"

	"study_assistant/internal/model"
)

func (c *Client) GenerateQuestions(ctx context.Context, courseID uint, req model.GenerateQuestionsRequest) ([]model.Question, error) {
	var resp model.GenerateQuestionsResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/course/%d/generate-questions", courseID), req, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

func (c *Client) TestStrategies(ctx context.Context, req model.StrategyRequest) (string, error) {
	var resp model.StrategyResponse
	if err := c.do(ctx, http.MethodPost, "/api/test-strategies", req, &resp); err != nil {
		return "", err
	}
	return resp.Strategies, nil
}
