package pomodoro

import (
	"fmt"
	"time"

	"study_assistant/internal/config"
)

type Settings struct {
	FocusMinutes            int
	BreakMinutes            int
	LongBreakMinutes        int
	SessionsBeforeLongBreak int
}

func DefaultSettings() Settings {
	return Settings{
		FocusMinutes:            25,
		BreakMinutes:            5,
		LongBreakMinutes:        15,
		SessionsBeforeLongBreak: 4,
	}
}

// FromConfig 从配置读取时长，非法取值回退为默认值
func FromConfig(cfg config.PomodoroConfig) Settings {
	s := Settings{
		FocusMinutes:            cfg.FocusMinutes,
		BreakMinutes:            cfg.BreakMinutes,
		LongBreakMinutes:        cfg.LongBreakMinutes,
		SessionsBeforeLongBreak: cfg.SessionsBeforeLongRest,
	}
	if s.Validate() != nil {
		return DefaultSettings()
	}
	return s
}

func (s Settings) Validate() error {
	if s.FocusMinutes <= 0 || s.BreakMinutes <= 0 || s.LongBreakMinutes <= 0 {
		return fmt.Errorf("durations must be positive (focus=%d break=%d long_break=%d)",
			s.FocusMinutes, s.BreakMinutes, s.LongBreakMinutes)
	}
	if s.SessionsBeforeLongBreak <= 0 {
		return fmt.Errorf("sessions before long break must be positive, got %d", s.SessionsBeforeLongBreak)
	}
	return nil
}

// Minutes 返回某模式的配置时长（分钟）
func (s Settings) Minutes(m Mode) int {
	switch m {
	case ModeBreak:
		return s.BreakMinutes
	case ModeLongBreak:
		return s.LongBreakMinutes
	default:
		return s.FocusMinutes
	}
}

func (s Settings) Duration(m Mode) time.Duration {
	return time.Duration(s.Minutes(m)) * time.Minute
}
