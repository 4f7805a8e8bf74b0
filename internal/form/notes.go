package form

import (
	"context"
	"strings"

	"study_assistant/internal/api"
	"study_assistant/internal/model"
	"study_assistant/pkg/logger"
	"study_assistant/pkg/monitoring"

	"go.uber.org/zap"
)

type NotesAPI interface {
	GenerateNotes(ctx context.Context, courseID uint, req model.GenerateNotesRequest) (*model.Note, error)
}

type notesInput struct {
	CourseID    uint   `validate:"gt=0"`
	Topic       string `validate:"required"`
	DetailLevel string `validate:"oneof=brief medium detailed"`
}

type NoteGenerator struct {
	State
	CourseID    uint
	Topic       string
	DetailLevel model.DetailLevel
	// Note 最近一次生成成功的笔记
	Note *model.Note

	api NotesAPI
}

func NewNoteGenerator(client NotesAPI, courseID uint) *NoteGenerator {
	return &NoteGenerator{CourseID: courseID, DetailLevel: model.DetailMedium, api: client}
}

func (g *NoteGenerator) Submit(ctx context.Context) (*model.Note, error) {
	topic := strings.TrimSpace(g.Topic)
	if err := validateInput(notesInput{CourseID: g.CourseID, Topic: topic, DetailLevel: string(g.DetailLevel)}); err != nil {
		g.Err = err.Error()
		return nil, err
	}

	g.begin()
	defer g.finish()

	note, err := g.api.GenerateNotes(ctx, g.CourseID, model.GenerateNotesRequest{Topic: topic, DetailLevel: g.DetailLevel})
	monitoring.RecordGeneration("notes", err)
	if err != nil {
		g.Err = api.Message(err, NotesFallback)
		logger.Log.Warn("Generate notes failed", zap.Uint("course_id", g.CourseID), zap.Error(err))
		return nil, err
	}

	g.Note = note
	logger.Log.Info("Notes generated", zap.Uint("course_id", g.CourseID), zap.Uint("note_id", note.ID))
	return note, nil
}
