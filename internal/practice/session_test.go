package practice

import (
	"context"
	"errors"
	"testing"

	"study_assistant/internal/model"
	"study_assistant/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	reqs []model.QuestionProgressRequest
	err  error
}

func (r *recorder) RecordQuestionProgress(_ context.Context, req model.QuestionProgressRequest) error {
	r.reqs = append(r.reqs, req)
	return r.err
}

func batch(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{
			ID:         uint(i + 1),
			Question:   "Q" + string(rune('A'+i)),
			Answer:     "A" + string(rune('A'+i)),
			Difficulty: model.DifficultyEasy,
		}
	}
	return qs
}

func TestSession_ExposesExactlyNQuestions(t *testing.T) {
	ctx := context.Background()
	for _, n := range []int{1, 3, 5} {
		s := NewSession(nil)
		require.NoError(t, s.Load(batch(n)))
		assert.Equal(t, n, s.Len())

		seen := 0
		for !s.Done() {
			q, ok := s.Current()
			require.True(t, ok)
			assert.Equal(t, uint(seen+1), q.ID)
			seen++

			s.RevealAnswer()
			require.NoError(t, s.SelectConfidence(model.ConfidenceMedium))
			require.NoError(t, s.Next(ctx))
			assert.InDelta(t, float64(seen)/float64(n)*100, s.Progress(), 1e-9)
		}
		assert.Equal(t, n, seen)
		assert.Equal(t, 100.0, s.Progress())
		assert.ErrorIs(t, s.Next(ctx), util.ErrPracticeFinished)
	}
}

func TestSession_NextRequiresConfidence(t *testing.T) {
	s := NewSession(nil)
	require.NoError(t, s.Load(batch(2)))

	s.RevealAnswer()
	assert.ErrorIs(t, s.Next(context.Background()), util.ErrConfidenceRequired)
	assert.Equal(t, 0, s.Index)
	assert.True(t, s.ShowAnswer)
	assert.Equal(t, 0.0, s.Progress())
}

func TestSession_InvalidConfidence(t *testing.T) {
	s := NewSession(nil)
	require.NoError(t, s.Load(batch(1)))
	assert.ErrorIs(t, s.SelectConfidence(0), util.ErrInvalidConfidence)
	assert.ErrorIs(t, s.SelectConfidence(4), util.ErrInvalidConfidence)
	assert.Empty(t, s.Confidence)
}

func TestSession_NextHidesAnswer(t *testing.T) {
	s := NewSession(nil)
	require.NoError(t, s.Load(batch(2)))
	s.RevealAnswer()
	require.NoError(t, s.SelectConfidence(model.ConfidenceHigh))

	card := s.Card()
	assert.True(t, card.NextEnabled())

	require.NoError(t, s.Next(context.Background()))
	assert.Equal(t, 1, s.Index)
	assert.False(t, s.ShowAnswer)
	next := s.Card()
	assert.False(t, next.NextEnabled())
	assert.Equal(t, "Question 2 of 2", s.Header())
}

func TestSession_LoadResetsState(t *testing.T) {
	ctx := context.Background()
	s := NewSession(nil)
	require.NoError(t, s.Load(batch(3)))
	s.RevealAnswer()
	require.NoError(t, s.SelectConfidence(model.ConfidenceLow))
	require.NoError(t, s.Next(ctx))

	require.NoError(t, s.Load(batch(2)))
	assert.Equal(t, 0, s.Index)
	assert.False(t, s.ShowAnswer)
	assert.Empty(t, s.Confidence)
	assert.False(t, s.Done())
	assert.Equal(t, 2, s.Len())

	assert.ErrorIs(t, s.Load(nil), util.ErrNoQuestions)
	assert.Equal(t, 0, s.Len())
	_, ok := s.Current()
	assert.False(t, ok)
	assert.ErrorIs(t, s.Next(ctx), util.ErrNoQuestions)
}

func TestSession_ReportsConfidenceForPersistedQuestions(t *testing.T) {
	rec := &recorder{}
	s := NewSession(rec)
	qs := batch(2)
	qs[1].ID = 0
	require.NoError(t, s.Load(qs))
	ctx := context.Background()

	require.NoError(t, s.SelectConfidence(model.ConfidenceLow))
	require.NoError(t, s.SelectConfidence(model.ConfidenceHigh))
	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.SelectConfidence(model.ConfidenceMedium))
	require.NoError(t, s.Next(ctx))

	require.Len(t, rec.reqs, 1)
	assert.Equal(t, model.QuestionProgressRequest{QuestionID: 1, ConfidenceLevel: model.ConfidenceHigh}, rec.reqs[0])
	assert.Equal(t, map[model.Confidence]int{model.ConfidenceHigh: 1, model.ConfidenceMedium: 1}, s.Summary())
}

func TestSession_ReportFailureDoesNotBlock(t *testing.T) {
	rec := &recorder{err: errors.New("boom")}
	s := NewSession(rec)
	require.NoError(t, s.Load(batch(1)))
	require.NoError(t, s.SelectConfidence(model.ConfidenceLow))
	require.NoError(t, s.Next(context.Background()))
	assert.True(t, s.Done())
	assert.Equal(t, "Completed 1 questions", s.Header())
}
