// Package todo 待办列表。本地 Items 只是服务端列表的缓存，仅在请求成功后更新。
package todo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"study_assistant/internal/api"
	"study_assistant/internal/model"
	"study_assistant/internal/util"
	"study_assistant/internal/view"
	"study_assistant/pkg/logger"

	"go.uber.org/zap"
)

const (
	LoadFallback   = "Failed to load todo list. Please try again."
	AddFallback    = "Failed to add todo. Please try again."
	UpdateFallback = "Failed to update todo. Please try again."
	DeleteFallback = "Failed to delete todo. Please try again."
)

type API interface {
	ListTodos(ctx context.Context) ([]model.Todo, error)
	CreateTodo(ctx context.Context, req model.CreateTodoRequest) (*model.Todo, error)
	UpdateTodo(ctx context.Context, id uint, req model.UpdateTodoRequest) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id uint) error
}

type List struct {
	Items   []model.Todo
	Loading bool
	Err     string

	api API
}

func NewList(client API) *List {
	return &List{api: client}
}

func (l *List) Refresh(ctx context.Context) error {
	l.Loading = true
	defer func() { l.Loading = false }()

	todos, err := l.api.ListTodos(ctx)
	if err != nil {
		l.Err = api.Message(err, LoadFallback)
		logger.Log.Warn("Load todos failed", zap.Error(err))
		return err
	}
	l.Items = todos
	l.Err = ""
	return nil
}

// Add 新建待办并插入列表头部；due 为零值表示无截止日期
func (l *List) Add(ctx context.Context, text string, due model.Date, courseID *uint) (*model.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, util.ErrTextRequired
	}

	todo, err := l.api.CreateTodo(ctx, model.CreateTodoRequest{Text: text, DueDate: due, CourseID: courseID})
	if err != nil {
		l.Err = api.Message(err, AddFallback)
		logger.Log.Warn("Add todo failed", zap.Error(err))
		return nil, err
	}
	l.Items = append([]model.Todo{*todo}, l.Items...)
	return todo, nil
}

// Toggle 把完成状态取反
func (l *List) Toggle(ctx context.Context, id uint) (*model.Todo, error) {
	i := l.index(id)
	if i < 0 {
		return nil, fmt.Errorf("todo %d: %w", id, util.ErrNotFound)
	}
	return l.SetCompleted(ctx, id, !l.Items[i].Completed)
}

// SetCompleted 设置为指定完成状态，重复调用结果不变
func (l *List) SetCompleted(ctx context.Context, id uint, completed bool) (*model.Todo, error) {
	i := l.index(id)
	if i < 0 {
		return nil, fmt.Errorf("todo %d: %w", id, util.ErrNotFound)
	}

	updated, err := l.api.UpdateTodo(ctx, id, model.UpdateTodoRequest{Completed: &completed})
	if err != nil {
		l.Err = api.Message(err, UpdateFallback)
		logger.Log.Warn("Update todo failed", zap.Uint("todo_id", id), zap.Error(err))
		return nil, err
	}

	// 请求期间列表可能已变化，重新定位
	if i = l.index(id); i >= 0 {
		l.Items[i] = *updated
	}
	return updated, nil
}

func (l *List) Delete(ctx context.Context, id uint) error {
	if err := l.api.DeleteTodo(ctx, id); err != nil {
		l.Err = api.Message(err, DeleteFallback)
		logger.Log.Warn("Delete todo failed", zap.Uint("todo_id", id), zap.Error(err))
		return err
	}
	if i := l.index(id); i >= 0 {
		l.Items = append(l.Items[:i], l.Items[i+1:]...)
	}
	return nil
}

// Get 按 ID 查找缓存中的待办
func (l *List) Get(id uint) (model.Todo, bool) {
	if i := l.index(id); i >= 0 {
		return l.Items[i], true
	}
	return model.Todo{}, false
}

func (l *List) index(id uint) int {
	for i, t := range l.Items {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Overdue 未完成且截止日期早于今天
func Overdue(t model.Todo, now time.Time) bool {
	if t.Completed || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Before(model.NewDate(now).Time)
}

func (l *List) View(now time.Time) string {
	var b strings.Builder
	b.WriteString(view.TitleStyle.Render("To-Do List") + "\n")
	if banner := view.ErrorBanner(l.Err); banner != "" {
		b.WriteString(banner + "\n")
	}
	if l.Loading && len(l.Items) == 0 {
		b.WriteString(view.MutedStyle.Render("Loading...") + "\n")
		return b.String()
	}
	if len(l.Items) == 0 {
		b.WriteString(view.MutedStyle.Render("No tasks yet. Add one to get started!") + "\n")
		return b.String()
	}
	for _, t := range l.Items {
		box := "[ ]"
		text := t.Text
		if t.Completed {
			box = view.SuccessStyle.Render("[x]")
			text = view.MutedStyle.Strikethrough(true).Render(text)
		}
		line := fmt.Sprintf("%s %3d  %s", box, t.ID, text)
		if !t.DueDate.IsZero() {
			due := "due " + t.DueDate.Format("Jan 2")
			if Overdue(t, now) {
				due = view.ErrorStyle.Render(due)
			} else {
				due = view.MutedStyle.Render(due)
			}
			line += "  " + due
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
