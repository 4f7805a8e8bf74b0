package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"study_assistant/internal/api"
	"study_assistant/internal/config"
	"study_assistant/internal/fakeapi"
	"study_assistant/internal/tokenstore"
	"study_assistant/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t       *testing.T
	baseURL string
	backend *fakeapi.Server
	store   *tokenstore.MemoryStore
	exports string
	cfgDir  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv, backend := fakeapi.NewTestServer()
	t.Cleanup(srv.Close)
	return &harness{
		t:       t,
		baseURL: srv.URL,
		backend: backend,
		store:   tokenstore.NewMemoryStore(""),
		exports: t.TempDir(),
		cfgDir:  t.TempDir(),
	}
}

func (h *harness) factory(_ context.Context, cfg *config.Config, out io.Writer) (*App, error) {
	cfg.Storage.LocalPath = h.exports
	cfg.Storage.ExportType = util.StorageLocal
	return New(cfg, h.store, out), nil
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var buf bytes.Buffer
	c := &cli{factory: h.factory}
	full := append([]string{"--config", h.cfgDir, "--base-url", h.baseURL}, args...)
	err := c.run(context.Background(), full, &buf)
	return buf.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *harness) login() {
	h.t.Helper()
	h.mustRun("register", "-u", "ada", "-e", "ada@example.com", "-p", "secret")
}

func (h *harness) client() *api.Client {
	return api.NewClient(api.Options{BaseURL: h.baseURL, Timeout: 5 * time.Second}, h.store)
}

func courseID(t *testing.T, h *harness) string {
	t.Helper()
	courses, err := h.client().ListCourses(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, courses)
	return strconv.FormatUint(uint64(courses[0].ID), 10)
}

func todoID(t *testing.T, h *harness) string {
	t.Helper()
	todos, err := h.client().ListTodos(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, todos)
	return strconv.FormatUint(uint64(todos[0].ID), 10)
}

func TestCLI_AuthFlow(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("whoami")
	assert.ErrorIs(t, err, util.ErrNoToken)

	_, err = h.run("register", "-u", "ada")
	assert.ErrorIs(t, err, errNotInteractive)

	out := h.mustRun("register", "-u", "ada", "-e", "ada@example.com", "-p", "secret")
	assert.Contains(t, out, "Registration successful")
	assert.True(t, tokenstore.IsAuthenticated(h.store))

	out = h.mustRun("whoami")
	assert.Contains(t, out, "User ID:")
	assert.Contains(t, out, h.baseURL)

	h.mustRun("logout")
	assert.False(t, tokenstore.IsAuthenticated(h.store))

	_, err = h.run("login", "-u", "ada", "-p", "wrong")
	require.Error(t, err)

	out = h.mustRun("login", "-u", "ada", "-p", "secret")
	assert.Contains(t, out, "Login successful")
}

func TestCLI_Courses(t *testing.T) {
	h := newHarness(t)
	h.login()

	out := h.mustRun("courses", "list")
	assert.Contains(t, out, "No courses yet")

	out = h.mustRun("courses", "create", "--title", "Databases", "-d", "SQL and more")
	assert.Contains(t, out, "Created course")

	out = h.mustRun("courses", "list")
	assert.Contains(t, out, "Databases")
	assert.Contains(t, out, "SQL and more")

	_, err := h.run("courses", "show", "abc")
	assert.ErrorIs(t, err, util.ErrInvalidID)

	_, err = h.run("courses", "show", "999")
	assert.Error(t, err)
}

func TestCLI_StudyContent(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.mustRun("courses", "create", "--title", "Algorithms")
	id := courseID(t, h)

	out := h.mustRun("notes", "generate", id, "--topic", "sorting", "--detail", "brief")
	assert.Contains(t, out, "Generated Notes: sorting")

	out = h.mustRun("notes", "list", id)
	assert.Contains(t, out, "Generated Notes: sorting")

	out = h.mustRun("study", id)
	assert.Contains(t, out, "Algorithms - Study Session")

	out = h.mustRun("questions", "generate", id, "--topic", "heaps", "-n", "2")
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "2. ")
	assert.Contains(t, out, "Answer:")

	_, err := h.run("notes", "generate", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please enter a topic")
}

func TestCLI_StrategiesExport(t *testing.T) {
	h := newHarness(t)
	h.login()

	out := h.mustRun("strategies", "--type", "essay", "-p", "time", "-p", "anxiety", "--export")
	assert.Contains(t, out, "Saved to")

	matches, err := filepath.Glob(filepath.Join(h.exports, "strategies", "essay-*.html"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	_, err = h.run("strategies", "--type", "oral")
	assert.Error(t, err)
}

func TestCLI_Todos(t *testing.T) {
	h := newHarness(t)
	h.login()

	out := h.mustRun("todos", "add", "read", "chapter", "3", "--due", "2030-01-02")
	assert.Contains(t, out, "read chapter 3")

	_, err := h.run("todos", "add", "x", "--due", "02/01/2030")
	assert.Error(t, err)

	out = h.mustRun("todos", "list")
	assert.Contains(t, out, "read chapter 3")

	id := todoID(t, h)
	out = h.mustRun("todos", "toggle", id)
	assert.Contains(t, out, "completed: true")
	h.mustRun("todos", "done", id)
	h.mustRun("todos", "done", id)
	out = h.mustRun("todos", "toggle", id)
	assert.Contains(t, out, "completed: false")

	_, err = h.run("todos", "toggle", "4242")
	assert.ErrorIs(t, err, util.ErrNotFound)

	h.mustRun("todos", "delete", id)
	out = h.mustRun("todos", "list")
	assert.NotContains(t, out, "read chapter 3")
}

func TestCLI_DashboardAndProgress(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.mustRun("courses", "create", "--title", "Statistics")

	out := h.mustRun("dashboard")
	assert.Contains(t, out, "Statistics")
	assert.Contains(t, out, "days to go")

	out = h.mustRun("progress", "--export")
	assert.Contains(t, out, "Progress Tracking")
	assert.Contains(t, out, "Saved to")

	entries, err := os.ReadDir(filepath.Join(h.exports, "progress"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestApp_CloseWithoutResources(t *testing.T) {
	cfg := &config.Config{}
	a := New(cfg, tokenstore.NewMemoryStore(""), io.Discard)
	assert.NoError(t, a.Close(context.Background()))

	cfg.Storage.ExportType = util.StorageMinio
	_, err := a.Exporter()
	assert.Error(t, err)
}
