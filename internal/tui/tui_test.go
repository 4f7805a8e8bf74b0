package tui

import (
	"context"
	"testing"

	"study_assistant/internal/form"
	"study_assistant/internal/model"
	"study_assistant/internal/pomodoro"
	"study_assistant/internal/practice"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next, cmd
}

func TestPomodoroModel_StartTickPause(t *testing.T) {
	timer := pomodoro.NewTimer(pomodoro.DefaultSettings(), nil, nil)
	var m tea.Model = NewPomodoroModel(timer, nil)

	m, cmd := update(t, m, keyMsg(" "))
	require.NotNil(t, cmd)
	assert.True(t, timer.Snapshot().Running)
	id := m.(PomodoroModel).tickID

	m, cmd = update(t, m, tickMsg{id: id})
	assert.NotNil(t, cmd)
	assert.Equal(t, 59, timer.Snapshot().Seconds)

	// 暂停后旧 tick 被丢弃
	m, _ = update(t, m, keyMsg(" "))
	assert.False(t, timer.Snapshot().Running)
	m, cmd = update(t, m, tickMsg{id: id})
	assert.Nil(t, cmd)
	assert.Equal(t, 59, timer.Snapshot().Seconds)

	// 重新开始后只有新的定时链生效
	m, _ = update(t, m, keyMsg(" "))
	newID := m.(PomodoroModel).tickID
	assert.NotEqual(t, id, newID)
	_, cmd = update(t, m, tickMsg{id: id})
	assert.Nil(t, cmd)
	assert.Equal(t, 59, timer.Snapshot().Seconds)
}

func TestPomodoroModel_CompletionStopsTicking(t *testing.T) {
	timer := pomodoro.NewTimer(pomodoro.Settings{FocusMinutes: 1, BreakMinutes: 1, LongBreakMinutes: 1, SessionsBeforeLongBreak: 4}, nil, nil)
	var m tea.Model = NewPomodoroModel(timer, nil)
	m, _ = update(t, m, keyMsg(" "))

	for i := 0; i < 60; i++ {
		m, _ = update(t, m, tickMsg{id: m.(PomodoroModel).tickID})
	}
	s := timer.Snapshot()
	assert.Equal(t, pomodoro.ModeBreak, s.Mode)
	assert.Equal(t, 1, s.CompletedSessions)
	assert.False(t, s.Running)

	_, cmd := update(t, m, tickMsg{id: m.(PomodoroModel).tickID})
	assert.Nil(t, cmd)
}

func TestPomodoroModel_ResetSkipAndSettings(t *testing.T) {
	timer := pomodoro.NewTimer(pomodoro.DefaultSettings(), nil, nil)
	var m tea.Model = NewPomodoroModel(timer, nil)

	m, _ = update(t, m, keyMsg("s"))
	assert.Equal(t, pomodoro.ModeBreak, timer.Snapshot().Mode)

	next := pomodoro.Settings{FocusMinutes: 40, BreakMinutes: 8, LongBreakMinutes: 20, SessionsBeforeLongBreak: 3}
	m, _ = update(t, m, SettingsMsg{Settings: next})
	assert.Equal(t, 5, timer.Snapshot().Minutes)
	assert.Contains(t, m.View(), "Settings reloaded")

	m, _ = update(t, m, keyMsg("r"))
	assert.Equal(t, 8, timer.Snapshot().Minutes)
	assert.Equal(t, pomodoro.ModeBreak, timer.Snapshot().Mode)
	assert.Contains(t, m.View(), "Short Break")

	m, _ = update(t, m, keyMsg("n"))
	assert.Contains(t, m.View(), "Notification permission denied")

	_, cmd := update(t, m, keyMsg("q"))
	assert.NotNil(t, cmd)
}

func TestPracticeModel_Flow(t *testing.T) {
	session := practice.NewSession(nil)
	require.NoError(t, session.Load([]model.Question{
		{Question: "2+2?", Answer: "4", Difficulty: model.DifficultyEasy},
		{Question: "3*3?", Answer: "9", Difficulty: model.DifficultyMedium},
	}))
	var m tea.Model = NewPracticeModel(context.Background(), session)

	m, _ = update(t, m, keyMsg("n"))
	assert.Contains(t, m.View(), "Select how well you knew this first")

	// 未显示答案时忽略掌握程度
	m, _ = update(t, m, keyMsg("2"))
	assert.Empty(t, session.Confidence)

	m, _ = update(t, m, keyMsg("a"))
	m, _ = update(t, m, keyMsg("2"))
	m, _ = update(t, m, keyMsg("n"))
	assert.Equal(t, 1, session.Index)
	assert.Equal(t, 50.0, session.Progress())

	m, _ = update(t, m, keyMsg("a"))
	m, _ = update(t, m, keyMsg("3"))
	m, cmd := update(t, m, keyMsg("n"))
	assert.NotNil(t, cmd)
	assert.True(t, session.Done())
	assert.Contains(t, m.View(), "You have completed all questions!")
}

func TestApplyCount(t *testing.T) {
	g := form.NewQuestionGenerator(nil, 1)
	ApplyCount(g, " 50 ")
	assert.Equal(t, form.MaxQuestions, g.Count)
	ApplyCount(g, "abc")
	assert.Equal(t, form.MaxQuestions, g.Count)
	ApplyCount(g, "7")
	assert.Equal(t, 7, g.Count)

	var count string
	QuestionsForm(g, &count)
	assert.Equal(t, "7", count)
}
