// Package view 渲染课程、笔记、题目卡片等无状态终端组件。
// 卡片只负责展示和转发用户动作，数据加载由页面完成。
package view

import (
	"fmt"

	"study_assistant/internal/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("39")
	ColorSuccess = lipgloss.Color("42")
	ColorWarning = lipgloss.Color("214")
	ColorDanger  = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("241")
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ColorDanger)
	SuccessStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	ActionStyle   = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	DisabledStyle = lipgloss.NewStyle().Foreground(ColorMuted).Faint(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)
	activeCardStyle = cardStyle.BorderForeground(ColorPrimary)
)

// DifficultyColor easy=绿 medium=黄 hard=红，其余为灰
func DifficultyColor(d model.Difficulty) lipgloss.Color {
	switch d {
	case model.DifficultyEasy:
		return ColorSuccess
	case model.DifficultyMedium:
		return ColorWarning
	case model.DifficultyHard:
		return ColorDanger
	default:
		return ColorMuted
	}
}

func DifficultyBadge(d model.Difficulty) string {
	label := string(d)
	if label == "" {
		label = "unknown"
	}
	return lipgloss.NewStyle().Bold(true).Foreground(DifficultyColor(d)).Render("[" + label + "]")
}

// FormatTime 倒计时显示为 MM:SS
func FormatTime(minutes, seconds int) string {
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// ErrorBanner 空消息返回空串
func ErrorBanner(msg string) string {
	if msg == "" {
		return ""
	}
	return ErrorStyle.Render("✗ " + msg)
}
