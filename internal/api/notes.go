package api

import (
	"context"
	"fmt"
	"net/http"

	"study_assistant/internal/model"
)

func (c *Client) GenerateNotes(ctx context.Context, courseID uint, req model.GenerateNotesRequest) (*model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/course/%d/generate-notes", courseID), req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) ListNotes(ctx context.Context, courseID uint) ([]model.Note, error) {
	var notes []model.Note
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/course/%d/notes", courseID), nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/notes/%d", id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/notes/%d", id), nil, nil)
}
