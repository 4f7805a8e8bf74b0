package view

import (
	"fmt"
	"strings"

	"study_assistant/internal/model"
)

// CourseCard 课程卡片；回调可为空
type CourseCard struct {
	Course   model.Course
	OnOpen   func(id uint)
	OnDelete func(id uint)
}

func (c CourseCard) Open() {
	if c.OnOpen != nil {
		c.OnOpen(c.Course.ID)
	}
}

func (c CourseCard) Delete() {
	if c.OnDelete != nil {
		c.OnDelete(c.Course.ID)
	}
}

func (c CourseCard) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(c.Course.Title))
	if c.Course.Description != "" {
		b.WriteString("\n" + c.Course.Description)
	}
	b.WriteString("\n" + MutedStyle.Render(fmt.Sprintf("#%d", c.Course.ID)))
	b.WriteString("  " + ActionStyle.Render("View Course") + "  " + ErrorStyle.Render("Delete"))
	return cardStyle.Render(b.String())
}

type NoteCard struct {
	Note     model.Note
	Active   bool
	OnSelect func(id uint)
	OnDelete func(id uint)
}

func (c NoteCard) Select() {
	if c.OnSelect != nil {
		c.OnSelect(c.Note.ID)
	}
}

// Delete 不会触发 Select
func (c NoteCard) Delete() {
	if c.OnDelete != nil {
		c.OnDelete(c.Note.ID)
	}
}

func (c NoteCard) View() string {
	marker := "  "
	title := c.Note.Title
	if c.Active {
		marker = ActionStyle.Render("▸ ")
		title = TitleStyle.Render(title)
	}
	return marker + title + "  " + ErrorStyle.Render("Delete")
}

// QuestionCard 一道练习题。答案显示与否由调用方控制，
// 选中的掌握程度只影响 Next 是否可用。
type QuestionCard struct {
	Question     model.Question
	ShowAnswer   bool
	Confidence   model.Confidence
	OnShowAnswer func()
	OnConfidence func(level model.Confidence)
	OnNext       func()
}

func (c *QuestionCard) RevealAnswer() {
	if c.OnShowAnswer != nil {
		c.OnShowAnswer()
	}
}

// SelectConfidence 只接受 1..3
func (c *QuestionCard) SelectConfidence(level model.Confidence) bool {
	if !level.Valid() {
		return false
	}
	c.Confidence = level
	if c.OnConfidence != nil {
		c.OnConfidence(level)
	}
	return true
}

func (c *QuestionCard) NextEnabled() bool {
	return c.ShowAnswer && c.Confidence.Valid()
}

// Next 未选择掌握程度时不触发回调
func (c *QuestionCard) Next() bool {
	if !c.NextEnabled() {
		return false
	}
	if c.OnNext != nil {
		c.OnNext()
	}
	return true
}

func (c *QuestionCard) View() string {
	var b strings.Builder
	b.WriteString("Difficulty: " + DifficultyBadge(c.Question.Difficulty) + "\n\n")
	b.WriteString(c.Question.Question + "\n\n")

	if !c.ShowAnswer {
		b.WriteString(ActionStyle.Render("[a] Show Answer"))
		return cardStyle.Render(b.String())
	}

	b.WriteString(MutedStyle.Render("Answer:") + "\n" + c.Question.Answer + "\n\n")
	b.WriteString("How well did you know this?\n")
	levels := []model.Confidence{model.ConfidenceLow, model.ConfidenceMedium, model.ConfidenceHigh}
	options := make([]string, 0, len(levels))
	for _, level := range levels {
		label := fmt.Sprintf("[%d] %s", int(level), level.Label())
		if level == c.Confidence {
			label = TitleStyle.Render(label)
		}
		options = append(options, label)
	}
	b.WriteString(strings.Join(options, "  ") + "\n\n")

	next := "[n] Next Question"
	if c.NextEnabled() {
		b.WriteString(ActionStyle.Render(next))
	} else {
		b.WriteString(DisabledStyle.Render(next))
	}
	return activeCardStyle.Render(b.String())
}
