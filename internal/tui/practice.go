package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"study_assistant/internal/model"
	"study_assistant/internal/practice"
	"study_assistant/internal/util"
	"study_assistant/internal/view"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// PracticeModel 逐题练习界面
type PracticeModel struct {
	session *practice.Session
	bar     progress.Model
	ctx     context.Context
	notice  string
	done    bool
}

func NewPracticeModel(ctx context.Context, session *practice.Session) PracticeModel {
	return PracticeModel{
		session: session,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		ctx:     ctx,
	}
}

func (m PracticeModel) Init() tea.Cmd {
	return nil
}

func (m PracticeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.notice = ""
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.done = true
		return m, tea.Quit
	case "a", " ":
		m.session.RevealAnswer()
	case "1", "2", "3":
		if !m.session.ShowAnswer {
			return m, nil
		}
		level := model.Confidence(key.Runes[0] - '0')
		if err := m.session.SelectConfidence(level); err != nil {
			m.notice = err.Error()
		}
	case "n", "enter":
		err := m.session.Next(m.ctx)
		switch {
		case errors.Is(err, util.ErrConfidenceRequired):
			m.notice = "Select how well you knew this first"
		case err != nil:
			m.notice = err.Error()
		}
		if m.session.Done() {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m PracticeModel) View() string {
	var b strings.Builder
	b.WriteString(view.TitleStyle.Render(m.session.Header()) + "\n")
	b.WriteString(m.bar.ViewAs(m.session.Progress()/100) + "\n\n")

	if m.session.Done() {
		b.WriteString(view.SuccessStyle.Render("You have completed all questions!") + "\n")
		summary := m.session.Summary()
		for _, level := range []model.Confidence{model.ConfidenceLow, model.ConfidenceMedium, model.ConfidenceHigh} {
			fmt.Fprintf(&b, "  %-10s %d\n", level.Label(), summary[level])
		}
		return b.String()
	}

	card := m.session.Card()
	b.WriteString(card.View() + "\n")
	if m.notice != "" {
		b.WriteString(view.ErrorStyle.Render(m.notice) + "\n")
	}
	b.WriteString(view.MutedStyle.Render("a show answer • 1-3 confidence • n next • q quit"))
	return b.String()
}
