package page

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"study_assistant/internal/api"
	"study_assistant/internal/config"
	"study_assistant/internal/export"
	"study_assistant/internal/fakeapi"
	"study_assistant/internal/model"
	"study_assistant/internal/pomodoro"
	"study_assistant/internal/tokenstore"
	"study_assistant/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	client  *api.Client
	backend *fakeapi.Server
	token   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	srv, backend := fakeapi.NewTestServer()
	t.Cleanup(srv.Close)
	token, err := backend.CreateUser("ada", "lovelace")
	require.NoError(t, err)
	client := api.NewClient(api.Options{BaseURL: srv.URL, Timeout: 5 * time.Second}, tokenstore.NewMemoryStore(token))
	return env{client: client, backend: backend, token: token}
}

func (e env) course(t *testing.T, title string) *model.Course {
	t.Helper()
	c, err := e.client.CreateCourse(context.Background(), model.CreateCourseRequest{Title: title})
	require.NoError(t, err)
	return c
}

func TestDashboard_LoadsCoursesAndTodos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for _, title := range []string{"A", "B", "C", "D"} {
		e.course(t, title)
	}
	_, err := e.client.CreateTodo(ctx, model.CreateTodoRequest{Text: "read chapter 1"})
	require.NoError(t, err)

	d := NewDashboard(e.client, config.DashboardConfig{})
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	d.Now = func() time.Time { return now }

	require.NoError(t, d.Load(ctx))
	assert.False(t, d.Loading)
	assert.Empty(t, d.Err)
	assert.Len(t, d.Courses, 4)
	require.Len(t, d.Todos.Items, 1)

	recent := d.Recent()
	require.Len(t, recent, 3)
	assert.Equal(t, "D", recent[0].Title)
	assert.Equal(t, "B", recent[2].Title)

	date, days := d.NextTest()
	assert.Equal(t, 3, days)
	assert.Equal(t, now.AddDate(0, 0, 3), date)
	assert.Contains(t, d.View(), "Recent Courses")
}

func TestDashboard_CourseFailureKeepsTodos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.client.CreateTodo(ctx, model.CreateTodoRequest{Text: "review"})
	require.NoError(t, err)
	e.backend.FailNext(http.MethodGet, "/api/courses", http.StatusInternalServerError, "")

	d := NewDashboard(e.client, config.DashboardConfig{NextTestDays: 7, RecentCourse: 1})
	assert.Error(t, d.Load(ctx))
	assert.Equal(t, CoursesFallback, d.Err)
	assert.Len(t, d.Todos.Items, 1)
	assert.Empty(t, d.Todos.Err)

	_, days := d.NextTest()
	assert.Equal(t, 7, days)
}

func TestStudyPage_LoadAndGenerate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := e.course(t, "Algorithms")

	p := NewStudyPage(e.client, c.ID, pomodoro.NewTimer(pomodoro.DefaultSettings(), nil, nil))
	require.NoError(t, p.Load(ctx))
	require.NotNil(t, p.Course)
	assert.Equal(t, "Algorithms", p.Course.Title)
	assert.Empty(t, p.Notes)

	p.NoteGen.Topic = "graphs"
	note, err := p.GenerateNotes(ctx)
	require.NoError(t, err)
	require.Len(t, p.Notes, 1)
	assert.Equal(t, note.ID, p.ActiveNote)
	assert.Contains(t, p.View(), "Algorithms - Study Session")

	p.QuestionGen.Topic = "graphs"
	p.QuestionGen.SetCount(3)
	qs, err := p.GenerateQuestions(ctx)
	require.NoError(t, err)
	assert.Len(t, qs, 3)
	assert.Equal(t, 3, p.Practice.Len())
	assert.Equal(t, 0.0, p.Practice.Progress())

	require.NoError(t, p.Practice.SelectConfidence(model.ConfidenceHigh))
	require.NoError(t, p.Practice.Next(ctx))
	assert.Equal(t, 1, e.backend.Hits(http.MethodPost, "/api/progress/question-progress"))

	require.NoError(t, p.DeleteNote(ctx, note.ID))
	assert.Empty(t, p.Notes)
	assert.Zero(t, p.ActiveNote)
}

func TestStudyPage_CourseLoadFailure(t *testing.T) {
	e := newEnv(t)
	c := e.course(t, "Physics")
	e.backend.FailNext(http.MethodGet, "/api/courses/:id", http.StatusBadGateway, "")

	p := NewStudyPage(e.client, c.ID, nil)
	assert.Error(t, p.Load(context.Background()))
	assert.Equal(t, CourseFallback, p.Err)
	assert.Contains(t, p.View(), CourseFallback)
}

func TestStudyPage_FailedGenerationKeepsNotes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := e.course(t, "Chemistry")
	p := NewStudyPage(e.client, c.ID, nil)
	require.NoError(t, p.Load(ctx))

	p.NoteGen.Topic = "acids"
	_, err := p.GenerateNotes(ctx)
	require.NoError(t, err)

	e.backend.FailNext(http.MethodPost, "/api/course/:id/generate-notes", http.StatusInternalServerError, "")
	p.NoteGen.Topic = "bases"
	_, err = p.GenerateNotes(ctx)
	assert.Error(t, err)
	assert.Len(t, p.Notes, 1)
	assert.NotEmpty(t, p.NoteGen.Err)
	assert.False(t, p.NoteGen.Generating)
}

func TestProgressPage_SummaryAndExport(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	today := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	e.backend.SetClock(func() time.Time { return today })
	require.NoError(t, e.backend.LogStudyMinutes(e.token, today, 90))
	require.NoError(t, e.backend.LogStudyMinutes(e.token, today.AddDate(0, 0, -1), 120))

	dir := t.TempDir()
	p := NewProgressPage(e.client, export.NewExporter(&export.LocalDir{Dir: dir}))

	_, err := p.Export(ctx)
	assert.ErrorIs(t, err, util.ErrNothingToExport)

	require.NoError(t, p.Load(ctx))
	s := p.Summarize()
	assert.Equal(t, 3.5, s.TotalHours)
	assert.Equal(t, 2, s.Streak)
	assert.Equal(t, "2024-05-09", s.MostProductiveDay)
	assert.Zero(t, s.AveragePerformance)
	assert.Contains(t, p.View(), "Progress Tracking")

	path, err := p.Export(ctx)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestProgressPage_Summarize(t *testing.T) {
	p := &ProgressPage{Data: &model.WeeklyProgress{
		WeeklyData: model.WeeklySeries{
			Labels: []string{"Mon", "Tue", "Wed"},
			Values: []float64{1, 2.5, 0.5},
		},
		ConfidenceDistribution: model.ConfidenceDistribution{Low: 1, Medium: 1, High: 2},
		CoursePerformance: []model.CoursePerformance{
			{Title: "Math", Performance: 80},
			{Title: "CS", Performance: 65},
		},
		TotalHours: 4,
	}}
	s := p.Summarize()
	assert.Equal(t, "Tue", s.MostProductiveDay)
	assert.Equal(t, 72.5, s.AveragePerformance)
	assert.Equal(t, 25.0, s.ConfidenceLow)
	assert.Equal(t, 25.0, s.ConfidenceMedium)
	assert.Equal(t, 50.0, s.ConfidenceHigh)

	assert.Equal(t, Summary{}, (&ProgressPage{}).Summarize())
}

func TestProgressPage_LoadFailure(t *testing.T) {
	e := newEnv(t)
	e.backend.FailNext(http.MethodGet, "/api/progress/weekly-progress", http.StatusInternalServerError, "")

	p := NewProgressPage(e.client, nil)
	assert.Error(t, p.Load(context.Background()))
	assert.Equal(t, ProgressFallback, p.Err)
	_, err := p.Export(context.Background())
	assert.Error(t, err)
}

func TestStrategiesPage_GenerateAndExport(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	dir := t.TempDir()
	p := NewStrategiesPage(e.client, export.NewExporter(&export.LocalDir{Dir: dir}))

	_, err := p.Export(ctx)
	assert.ErrorIs(t, err, util.ErrNothingToExport)

	p.Form.TestType = "essay"
	p.Form.ToggleProblem("anxiety")
	text, err := p.Generate(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, text)
	assert.Contains(t, p.View(), "[x] Test anxiety")

	path, err := p.Export(ctx)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
}
