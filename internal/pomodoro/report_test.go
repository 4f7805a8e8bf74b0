package pomodoro

import (
	"context"
	"net/http"
	"testing"
	"time"

	"study_assistant/internal/api"
	"study_assistant/internal/fakeapi"
	"study_assistant/internal/tokenstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReporter(t *testing.T) (*SessionReporter, *fakeapi.Server) {
	t.Helper()
	srv, backend := fakeapi.NewTestServer()
	t.Cleanup(srv.Close)
	token, err := backend.CreateUser("linus", "torvalds")
	require.NoError(t, err)
	client := api.NewClient(api.Options{BaseURL: srv.URL, Timeout: 5 * time.Second}, tokenstore.NewMemoryStore(token))
	return NewSessionReporter(client, nil), backend
}

func TestSessionReporter_FocusLifecycle(t *testing.T) {
	r, backend := newReporter(t)
	ctx := context.Background()

	require.NoError(t, r.FocusStarted(ctx))
	require.NoError(t, r.FocusStarted(ctx))
	assert.Equal(t, 1, backend.Hits(http.MethodPost, "/api/progress/study-session/start"))
	assert.NotZero(t, r.Open())

	// 离开休息不结束会话
	s, err := r.Completed(ctx, Transition{From: ModeBreak, To: ModeFocus})
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.NotZero(t, r.Open())

	s, err = r.Completed(ctx, Transition{From: ModeFocus, To: ModeBreak, CompletedSessions: 1})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Zero(t, r.Open())
	assert.Equal(t, 1, backend.Hits(http.MethodPost, "/api/progress/study-session/:id/end"))

	s, err = r.Close(ctx)
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestSessionReporter_StartFailure(t *testing.T) {
	r, backend := newReporter(t)
	backend.FailNext(http.MethodPost, "/api/progress/study-session/start", http.StatusInternalServerError, "")

	assert.Error(t, r.FocusStarted(context.Background()))
	assert.Zero(t, r.Open())
}
