package api

import (
	"context"
	"fmt"
	"net/http"

	"study_assistant/internal/model"
)

func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, "/api/progress/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) CreateTodo(ctx context.Context, req model.CreateTodoRequest) (*model.Todo, error) {
	var todo model.Todo
	if err := c.do(ctx, http.MethodPost, "/api/progress/todos", req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) UpdateTodo(ctx context.Context, id uint, req model.UpdateTodoRequest) (*model.Todo, error) {
	var todo model.Todo
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/progress/todos/%d", id), req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/progress/todos/%d", id), nil, nil)
}

func (c *Client) RecordQuestionProgress(ctx context.Context, req model.QuestionProgressRequest) error {
	return c.do(ctx, http.MethodPost, "/api/progress/question-progress", req, nil)
}

func (c *Client) StartStudySession(ctx context.Context, req model.StartSessionRequest) (*model.StudySession, error) {
	var session model.StudySession
	if err := c.do(ctx, http.MethodPost, "/api/progress/study-session/start", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) EndStudySession(ctx context.Context, sessionID uint) (*model.StudySession, error) {
	var session model.StudySession
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/progress/study-session/%d/end", sessionID), struct{}{}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) WeeklyProgress(ctx context.Context) (*model.WeeklyProgress, error) {
	var progress model.WeeklyProgress
	if err := c.do(ctx, http.MethodGet, "/api/progress/weekly-progress", nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}
