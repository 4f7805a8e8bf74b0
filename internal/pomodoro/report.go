package pomodoro

import (
	"context"
	"sync"

	"study_assistant/internal/model"
	"study_assistant/pkg/logger"

	"go.uber.org/zap"
)

type SessionAPI interface {
	StartStudySession(ctx context.Context, req model.StartSessionRequest) (*model.StudySession, error)
	EndStudySession(ctx context.Context, sessionID uint) (*model.StudySession, error)
}

// SessionReporter 把专注时段上报为学习会话：专注开始时开启，离开专注时结束
type SessionReporter struct {
	CourseID *uint

	mu   sync.Mutex
	api  SessionAPI
	open uint
}

func NewSessionReporter(client SessionAPI, courseID *uint) *SessionReporter {
	return &SessionReporter{api: client, CourseID: courseID}
}

// FocusStarted 已有进行中的会话时不重复开启
func (r *SessionReporter) FocusStarted(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.open != 0 {
		return nil
	}
	session, err := r.api.StartStudySession(ctx, model.StartSessionRequest{CourseID: r.CourseID, SessionType: "pomodoro"})
	if err != nil {
		logger.Log.Warn("Start study session failed", zap.Error(err))
		return err
	}
	r.open = session.SessionID
	return nil
}

// Completed 处理一次转换，只有离开专注模式才结束会话
func (r *SessionReporter) Completed(ctx context.Context, tr Transition) (*model.StudySession, error) {
	if tr.From != ModeFocus {
		return nil, nil
	}
	return r.Close(ctx)
}

// Close 结束进行中的会话，没有时返回 nil
func (r *SessionReporter) Close(ctx context.Context) (*model.StudySession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.open == 0 {
		return nil, nil
	}
	id := r.open
	r.open = 0
	session, err := r.api.EndStudySession(ctx, id)
	if err != nil {
		logger.Log.Warn("End study session failed", zap.Uint("session_id", id), zap.Error(err))
		return nil, err
	}
	logger.Log.Info("Study session recorded", zap.Uint("session_id", id), zap.Int("minutes", session.DurationMinutes))
	return session, nil
}

func (r *SessionReporter) Open() uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open
}
