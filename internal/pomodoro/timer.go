// Package pomodoro 番茄钟。Timer 是纯状态机，Runner 负责每秒驱动。
package pomodoro

import (
	"time"

	"study_assistant/pkg/logger"
	"study_assistant/pkg/monitoring"

	"go.uber.org/zap"
)

type Mode string

const (
	ModeFocus     Mode = "focus"
	ModeBreak     Mode = "break"
	ModeLongBreak Mode = "longBreak"
)

func (m Mode) Label() string {
	switch m {
	case ModeBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Focus Time"
	}
}

// State 计时器快照
type State struct {
	Minutes              int
	Seconds              int
	Running              bool
	Mode                 Mode
	CompletedSessions    int
	NotificationsEnabled bool
	Settings             Settings
}

func (s State) Remaining() time.Duration {
	return time.Duration(s.Minutes)*time.Minute + time.Duration(s.Seconds)*time.Second
}

// Transition 一次完成转换
type Transition struct {
	From              Mode
	To                Mode
	CompletedSessions int
	Skipped           bool
}

type Timer struct {
	settings      Settings
	minutes       int
	seconds       int
	running       bool
	mode          Mode
	completed     int
	notifications bool

	notifier Notifier
	chime    Chime
}

// NewTimer 以专注模式、未运行状态创建计时器；notifier 与 chime 可为 nil
func NewTimer(settings Settings, notifier Notifier, chime Chime) *Timer {
	if settings.Validate() != nil {
		settings = DefaultSettings()
	}
	return &Timer{
		settings: settings,
		minutes:  settings.FocusMinutes,
		mode:     ModeFocus,
		notifier: notifier,
		chime:    chime,
	}
}

func (t *Timer) Start() {
	t.running = true
}

func (t *Timer) Pause() {
	t.running = false
}

// Reset 恢复当前模式的完整时长，不改变模式与完成次数
func (t *Timer) Reset() {
	t.running = false
	t.minutes = t.settings.Minutes(t.mode)
	t.seconds = 0
}

// Skip 不论剩余时间，直接执行完成转换
func (t *Timer) Skip() Transition {
	tr := t.complete()
	tr.Skipped = true
	return tr
}

// Tick 推进一秒；倒计时到达 00:00 时执行完成转换并返回，否则返回 nil
func (t *Timer) Tick() *Transition {
	if !t.running {
		return nil
	}
	if t.seconds > 0 {
		t.seconds--
	} else if t.minutes > 0 {
		t.minutes--
		t.seconds = 59
	}
	if t.minutes == 0 && t.seconds == 0 {
		tr := t.complete()
		return &tr
	}
	return nil
}

// Configure 更新时长，在下一次重置或转换时生效
func (t *Timer) Configure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	t.settings = s
	return nil
}

// SetNotifications 开启时先请求权限，被拒绝则保持关闭；返回最终状态
func (t *Timer) SetNotifications(enabled bool) bool {
	if !enabled {
		t.notifications = false
		return false
	}
	t.notifications = t.notifier != nil && t.notifier.RequestPermission()
	if !t.notifications {
		logger.Log.Info("Notification permission denied")
	}
	return t.notifications
}

func (t *Timer) Snapshot() State {
	return State{
		Minutes:              t.minutes,
		Seconds:              t.seconds,
		Running:              t.running,
		Mode:                 t.mode,
		CompletedSessions:    t.completed,
		NotificationsEnabled: t.notifications,
		Settings:             t.settings,
	}
}

func (t *Timer) complete() Transition {
	from := t.mode

	if t.chime != nil {
		t.chime.Play()
	}
	if t.notifications && t.notifier != nil {
		title, body := "Focus Time!", "Break is over. Time to focus!"
		if from == ModeFocus {
			title, body = "Break Time!", "Great job! Take a break."
		}
		if err := t.notifier.Notify(title, body); err != nil {
			logger.Log.Debug("Notification failed", zap.Error(err))
		}
	}

	if from == ModeFocus {
		t.completed++
		if t.completed%t.settings.SessionsBeforeLongBreak == 0 {
			t.mode = ModeLongBreak
		} else {
			t.mode = ModeBreak
		}
	} else {
		t.mode = ModeFocus
	}
	t.minutes = t.settings.Minutes(t.mode)
	t.seconds = 0
	t.running = false

	monitoring.RecordTransition(string(from), string(t.mode))
	logger.Log.Debug("Pomodoro transition",
		zap.String("from", string(from)),
		zap.String("to", string(t.mode)),
		zap.Int("completed", t.completed))

	return Transition{From: from, To: t.mode, CompletedSessions: t.completed}
}
