// Package practice 逐题练习。题目只在内存中，加载新批次会清空进度。
package practice

import (
	"context"
	"fmt"

	"study_assistant/internal/model"
	"study_assistant/internal/util"
	"study_assistant/internal/view"
	"study_assistant/pkg/logger"

	"go.uber.org/zap"
)

// ProgressAPI 上报单题掌握程度，可为 nil
type ProgressAPI interface {
	RecordQuestionProgress(ctx context.Context, req model.QuestionProgressRequest) error
}

type Session struct {
	Questions  []model.Question
	Index      int
	ShowAnswer bool
	// Confidence 以题目下标为键
	Confidence map[int]model.Confidence

	finished bool
	api      ProgressAPI
}

func NewSession(client ProgressAPI) *Session {
	return &Session{Confidence: map[int]model.Confidence{}, api: client}
}

// Load 开始新一批练习，重置下标、答案显示与掌握程度
func (s *Session) Load(questions []model.Question) error {
	s.Questions = append([]model.Question(nil), questions...)
	s.Index = 0
	s.ShowAnswer = false
	s.Confidence = map[int]model.Confidence{}
	s.finished = false
	if len(questions) == 0 {
		return util.ErrNoQuestions
	}
	return nil
}

func (s *Session) Len() int {
	return len(s.Questions)
}

func (s *Session) Current() (model.Question, bool) {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return model.Question{}, false
	}
	return s.Questions[s.Index], true
}

func (s *Session) RevealAnswer() {
	if len(s.Questions) > 0 && !s.finished {
		s.ShowAnswer = true
	}
}

func (s *Session) SelectConfidence(level model.Confidence) error {
	if !level.Valid() {
		return util.ErrInvalidConfidence
	}
	if len(s.Questions) == 0 {
		return util.ErrNoQuestions
	}
	if s.finished {
		return util.ErrPracticeFinished
	}
	s.Confidence[s.Index] = level
	return nil
}

// Next 确认当前题并前进；最后一题确认后练习结束
func (s *Session) Next(ctx context.Context) error {
	if len(s.Questions) == 0 {
		return util.ErrNoQuestions
	}
	if s.finished {
		return util.ErrPracticeFinished
	}
	level, ok := s.Confidence[s.Index]
	if !ok {
		return util.ErrConfidenceRequired
	}
	s.report(ctx, s.Questions[s.Index], level)

	if s.Index == len(s.Questions)-1 {
		s.finished = true
		s.ShowAnswer = false
		return nil
	}
	s.Index++
	s.ShowAnswer = false
	return nil
}

func (s *Session) Answered() int {
	return len(s.Confidence)
}

// Progress 已作答题数占比，0..100
func (s *Session) Progress() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.Answered()) / float64(len(s.Questions)) * 100
}

func (s *Session) Done() bool {
	return s.finished
}

// Summary 各掌握程度的题数
func (s *Session) Summary() map[model.Confidence]int {
	out := make(map[model.Confidence]int, 3)
	for _, level := range s.Confidence {
		out[level]++
	}
	return out
}

// Card 当前题目的展示卡片
func (s *Session) Card() view.QuestionCard {
	q, _ := s.Current()
	return view.QuestionCard{
		Question:   q,
		ShowAnswer: s.ShowAnswer,
		Confidence: s.Confidence[s.Index],
	}
}

func (s *Session) Header() string {
	if len(s.Questions) == 0 {
		return ""
	}
	if s.finished {
		return fmt.Sprintf("Completed %d questions", len(s.Questions))
	}
	return fmt.Sprintf("Question %d of %d", s.Index+1, len(s.Questions))
}

func (s *Session) report(ctx context.Context, q model.Question, level model.Confidence) {
	if s.api == nil || q.ID == 0 {
		return
	}
	err := s.api.RecordQuestionProgress(ctx, model.QuestionProgressRequest{QuestionID: q.ID, ConfidenceLevel: level})
	if err != nil {
		logger.Log.Warn("Record question progress failed", zap.Uint("question_id", q.ID), zap.Error(err))
	}
}
