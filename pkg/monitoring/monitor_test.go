package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "/api/courses/:id", EndpointLabel("/api/courses/17"))
	assert.Equal(t, "/api/course/:id/generate-notes", EndpointLabel("/api/course/3/generate-notes"))
	assert.Equal(t, "/api/progress/todos", EndpointLabel("/api/progress/todos"))
}

func TestTransport_CountsRequests(t *testing.T) {
	Init()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/api/courses/:id", "418"))

	client := &http.Client{Transport: &Transport{}}
	resp, err := client.Get(srv.URL + "/api/courses/9")
	require.NoError(t, err)
	resp.Body.Close()

	after := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/api/courses/:id", "418"))
	assert.Equal(t, before+1, after)
}

func TestRecordGenerationAndTextfile(t *testing.T) {
	Init()
	RecordGeneration("notes", nil)
	RecordGeneration("notes", errors.New("boom"))
	RecordTransition("focus", "break")

	assert.GreaterOrEqual(t, testutil.ToFloat64(GenerationRequests.WithLabelValues("notes", "failure")), 1.0)

	path := filepath.Join(t.TempDir(), "study.prom")
	require.NoError(t, WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pomodoro_transitions_total")
	assert.Contains(t, string(data), `generation_requests_total{kind="notes",result="success"}`)

	assert.NoError(t, WriteTextfile(""))
}
