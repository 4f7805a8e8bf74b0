// Package tui 基于 bubbletea 的交互界面，所有状态只在事件循环中访问。
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"study_assistant/internal/pomodoro"
	"study_assistant/internal/view"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg struct {
	id int
}

// SettingsMsg 配置热更新后下发的新时长
type SettingsMsg struct {
	Settings pomodoro.Settings
}

// sessionMsg 会话上报结果，仅用于状态栏
type sessionMsg struct {
	text string
}

var timerStyle = lipgloss.NewStyle().
	Bold(true).
	Padding(1, 4).
	Border(lipgloss.RoundedBorder())

// PomodoroModel 番茄钟界面。tickID 标识当前有效的定时链，暂停或完成后旧 tick 被丢弃，
// 因此任意时刻至多一条定时链
type PomodoroModel struct {
	timer    *pomodoro.Timer
	reporter *pomodoro.SessionReporter
	interval time.Duration
	tickID   int
	status   string
	quitting bool
}

// NewPomodoroModel reporter 可为 nil
func NewPomodoroModel(timer *pomodoro.Timer, reporter *pomodoro.SessionReporter) PomodoroModel {
	return PomodoroModel{timer: timer, reporter: reporter, interval: time.Second}
}

func (m PomodoroModel) Init() tea.Cmd {
	return nil
}

func (m PomodoroModel) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{id: id} })
}

func (m PomodoroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if msg.id != m.tickID || !m.timer.Snapshot().Running {
			return m, nil
		}
		if tr := m.timer.Tick(); tr != nil {
			m.tickID++
			return m, m.completed(*tr)
		}
		return m, m.tick()

	case SettingsMsg:
		if err := m.timer.Configure(msg.Settings); err != nil {
			m.status = "Config ignored: " + err.Error()
		} else {
			m.status = "Settings reloaded, applied on next reset"
		}
		return m, nil

	case sessionMsg:
		m.status = msg.text
		return m, nil
	}
	return m, nil
}

func (m PomodoroModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		m.timer.Pause()
		m.tickID++
		return m, tea.Sequence(m.closeSession(), tea.Quit)

	case " ", "enter":
		if m.timer.Snapshot().Running {
			m.timer.Pause()
			m.tickID++
			return m, nil
		}
		m.timer.Start()
		m.tickID++
		return m, tea.Batch(m.tick(), m.focusStarted())

	case "r":
		m.timer.Reset()
		m.tickID++
		return m, nil

	case "s":
		tr := m.timer.Skip()
		m.tickID++
		return m, m.completed(tr)

	case "n":
		enabled := !m.timer.Snapshot().NotificationsEnabled
		if m.timer.SetNotifications(enabled) {
			m.status = "Notifications enabled"
		} else if enabled {
			m.status = "Notification permission denied"
		} else {
			m.status = "Notifications disabled"
		}
		return m, nil
	}
	return m, nil
}

func (m PomodoroModel) focusStarted() tea.Cmd {
	if m.reporter == nil || m.timer.Snapshot().Mode != pomodoro.ModeFocus {
		return nil
	}
	r := m.reporter
	return func() tea.Msg {
		if err := r.FocusStarted(context.Background()); err != nil {
			return sessionMsg{text: "Could not start study session"}
		}
		return nil
	}
}

func (m PomodoroModel) completed(tr pomodoro.Transition) tea.Cmd {
	if m.reporter == nil {
		return nil
	}
	r := m.reporter
	return func() tea.Msg {
		s, err := r.Completed(context.Background(), tr)
		if err != nil {
			return sessionMsg{text: "Could not record study session"}
		}
		if s == nil {
			return nil
		}
		return sessionMsg{text: fmt.Sprintf("Recorded %d minute study session", s.DurationMinutes)}
	}
}

func (m PomodoroModel) closeSession() tea.Cmd {
	if m.reporter == nil {
		return nil
	}
	r := m.reporter
	return func() tea.Msg {
		_, _ = r.Close(context.Background())
		return nil
	}
}

func (m PomodoroModel) View() string {
	if m.quitting {
		return ""
	}
	s := m.timer.Snapshot()
	var b strings.Builder
	b.WriteString(view.TitleStyle.Render("Pomodoro Timer") + "\n\n")
	b.WriteString(view.ActionStyle.Render(s.Mode.Label()) + "\n")
	b.WriteString(timerStyle.Render(view.FormatTime(s.Minutes, s.Seconds)) + "\n")

	state := "paused"
	if s.Running {
		state = "running"
	}
	notify := "off"
	if s.NotificationsEnabled {
		notify = "on"
	}
	fmt.Fprintf(&b, "Completed sessions: %d   (%s, notifications %s)\n", s.CompletedSessions, state, notify)
	fmt.Fprintf(&b, "Focus %dm / Break %dm / Long break %dm every %d sessions\n\n",
		s.Settings.FocusMinutes, s.Settings.BreakMinutes, s.Settings.LongBreakMinutes, s.Settings.SessionsBeforeLongBreak)
	if m.status != "" {
		b.WriteString(view.MutedStyle.Render(m.status) + "\n")
	}
	b.WriteString(view.MutedStyle.Render("space start/pause • r reset • s skip • n notifications • q quit"))
	return b.String()
}
