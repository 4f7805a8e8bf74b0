// Package page 组合各组件的页面状态，每个组件独立加载、独立报错。
package page

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"study_assistant/internal/api"
	"study_assistant/internal/config"
	"study_assistant/internal/model"
	"study_assistant/internal/todo"
	"study_assistant/internal/view"
	"study_assistant/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	CoursesFallback  = "Failed to load courses. Please try again."
	CourseFallback   = "Failed to load course. Please try again."
	ProgressFallback = "Failed to load progress data. Please try again."
)

type DashboardAPI interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	todo.API
}

type Dashboard struct {
	Courses []model.Course
	Todos   *todo.List
	Loading bool
	Err     string

	NextTestDays  int
	RecentCourses int
	Now           func() time.Time

	api DashboardAPI
}

func NewDashboard(client DashboardAPI, cfg config.DashboardConfig) *Dashboard {
	d := &Dashboard{
		Todos:         todo.NewList(client),
		NextTestDays:  cfg.NextTestDays,
		RecentCourses: cfg.RecentCourse,
		Now:           time.Now,
		api:           client,
	}
	if d.NextTestDays <= 0 {
		d.NextTestDays = 3
	}
	if d.RecentCourses <= 0 {
		d.RecentCourses = 3
	}
	return d
}

// Load 并发加载课程与待办；两者互不影响，返回第一个错误
func (d *Dashboard) Load(ctx context.Context) error {
	d.Loading = true
	defer func() { d.Loading = false }()

	var g errgroup.Group
	g.Go(func() error {
		courses, err := d.api.ListCourses(ctx)
		if err != nil {
			d.Err = api.Message(err, CoursesFallback)
			logger.Log.Warn("Load courses failed", zap.Error(err))
			return err
		}
		d.Courses = courses
		d.Err = ""
		return nil
	})
	g.Go(func() error {
		return d.Todos.Refresh(ctx)
	})
	return g.Wait()
}

// Recent 按创建时间倒序的前 RecentCourses 门课程
func (d *Dashboard) Recent() []model.Course {
	sorted := append([]model.Course(nil), d.Courses...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CreatedAt.Time, sorted[j].CreatedAt.Time
		if a.Equal(b) {
			return sorted[i].ID > sorted[j].ID
		}
		return a.After(b)
	})
	if len(sorted) > d.RecentCourses {
		sorted = sorted[:d.RecentCourses]
	}
	return sorted
}

// NextTest 下一次考试日期与剩余天数
func (d *Dashboard) NextTest() (time.Time, int) {
	return d.Now().AddDate(0, 0, d.NextTestDays), d.NextTestDays
}

func (d *Dashboard) View() string {
	var b strings.Builder
	b.WriteString(view.TitleStyle.Render("Dashboard") + "\n\n")
	if d.Err != "" {
		b.WriteString(view.ErrorBanner(d.Err) + "\n")
	}

	fmt.Fprintf(&b, "Courses: %d\n", len(d.Courses))
	date, days := d.NextTest()
	fmt.Fprintf(&b, "Next test: %s (%d days to go)\n\n", date.Format("02 January"), days)

	b.WriteString(view.TitleStyle.Render("Recent Courses") + "\n")
	recent := d.Recent()
	if len(recent) == 0 {
		b.WriteString(view.MutedStyle.Render("No courses yet. Create one with `courses create`.") + "\n")
	}
	for _, c := range recent {
		b.WriteString(view.CourseCard{Course: c}.View() + "\n")
	}

	b.WriteString("\n" + view.TitleStyle.Render("To-Do List") + "\n")
	b.WriteString(d.Todos.View(d.Now()))
	return b.String()
}
