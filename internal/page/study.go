package page

import (
	"context"
	"fmt"
	"strings"

	"study_assistant/internal/api"
	"study_assistant/internal/form"
	"study_assistant/internal/model"
	"study_assistant/internal/pomodoro"
	"study_assistant/internal/practice"
	"study_assistant/internal/view"
	"study_assistant/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type StudyAPI interface {
	GetCourse(ctx context.Context, id uint) (*model.Course, error)
	ListNotes(ctx context.Context, courseID uint) ([]model.Note, error)
	DeleteNote(ctx context.Context, id uint) error
	form.NotesAPI
	form.QuestionsAPI
	practice.ProgressAPI
}

// StudyPage 单门课程的学习页：笔记、出题练习与番茄钟
type StudyPage struct {
	CourseID   uint
	Course     *model.Course
	Notes      []model.Note
	ActiveNote uint
	Loading    bool
	Err        string
	NotesErr   string

	NoteGen     *form.NoteGenerator
	QuestionGen *form.QuestionGenerator
	Practice    *practice.Session
	Timer       *pomodoro.Timer

	api StudyAPI
}

func NewStudyPage(client StudyAPI, courseID uint, timer *pomodoro.Timer) *StudyPage {
	p := &StudyPage{
		CourseID:    courseID,
		NoteGen:     form.NewNoteGenerator(client, courseID),
		QuestionGen: form.NewQuestionGenerator(client, courseID),
		Practice:    practice.NewSession(client),
		Timer:       timer,
		api:         client,
	}
	p.QuestionGen.OnGenerated = func(qs []model.Question) {
		_ = p.Practice.Load(qs)
	}
	return p
}

// Load 并发加载课程与笔记列表；课程失败时整页报错
func (p *StudyPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	var g errgroup.Group
	g.Go(func() error {
		course, err := p.api.GetCourse(ctx, p.CourseID)
		if err != nil {
			p.Err = api.Message(err, CourseFallback)
			logger.Log.Warn("Load course failed", zap.Uint("course_id", p.CourseID), zap.Error(err))
			return err
		}
		p.Course = course
		p.Err = ""
		return nil
	})
	g.Go(func() error {
		notes, err := p.api.ListNotes(ctx, p.CourseID)
		if err != nil {
			p.NotesErr = api.Message(err, "Failed to load notes. Please try again.")
			logger.Log.Warn("Load notes failed", zap.Uint("course_id", p.CourseID), zap.Error(err))
			return nil
		}
		p.Notes = notes
		p.NotesErr = ""
		return nil
	})
	return g.Wait()
}

// GenerateNotes 生成笔记并置于列表头部
func (p *StudyPage) GenerateNotes(ctx context.Context) (*model.Note, error) {
	note, err := p.NoteGen.Submit(ctx)
	if err != nil {
		return nil, err
	}
	p.Notes = append([]model.Note{*note}, p.Notes...)
	p.ActiveNote = note.ID
	return note, nil
}

// GenerateQuestions 生成题目并开始新一轮练习
func (p *StudyPage) GenerateQuestions(ctx context.Context) ([]model.Question, error) {
	return p.QuestionGen.Submit(ctx)
}

func (p *StudyPage) SelectNote(id uint) bool {
	for _, n := range p.Notes {
		if n.ID == id {
			p.ActiveNote = id
			return true
		}
	}
	return false
}

func (p *StudyPage) DeleteNote(ctx context.Context, id uint) error {
	if err := p.api.DeleteNote(ctx, id); err != nil {
		p.NotesErr = api.Message(err, "Failed to delete note. Please try again.")
		return err
	}
	for i, n := range p.Notes {
		if n.ID == id {
			p.Notes = append(p.Notes[:i], p.Notes[i+1:]...)
			break
		}
	}
	if p.ActiveNote == id {
		p.ActiveNote = 0
	}
	p.NotesErr = ""
	return nil
}

func (p *StudyPage) activeNote() (model.Note, bool) {
	for _, n := range p.Notes {
		if n.ID == p.ActiveNote {
			return n, true
		}
	}
	return model.Note{}, false
}

func (p *StudyPage) View() string {
	if p.Err != "" {
		return view.ErrorBanner(p.Err)
	}
	var b strings.Builder
	title := "Study Session"
	if p.Course != nil {
		title = p.Course.Title + " - Study Session"
	}
	b.WriteString(view.TitleStyle.Render(title) + "\n\n")

	if p.NotesErr != "" {
		b.WriteString(view.ErrorBanner(p.NotesErr) + "\n")
	}
	if len(p.Notes) == 0 {
		b.WriteString(view.MutedStyle.Render("No notes yet. Generate some to get started.") + "\n")
	}
	for _, n := range p.Notes {
		b.WriteString(view.NoteCard{Note: n, Active: n.ID == p.ActiveNote}.View() + "\n")
	}
	if n, ok := p.activeNote(); ok {
		b.WriteString("\n" + n.Content + "\n")
	}

	if p.Practice.Len() > 0 {
		fmt.Fprintf(&b, "\n%s  %.0f%%\n", p.Practice.Header(), p.Practice.Progress())
		if !p.Practice.Done() {
			card := p.Practice.Card()
			b.WriteString(card.View() + "\n")
		}
	}

	if p.Timer != nil {
		s := p.Timer.Snapshot()
		fmt.Fprintf(&b, "\n%s %s\n", s.Mode.Label(), view.FormatTime(s.Minutes, s.Seconds))
	}
	return b.String()
}
