package loadtest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	httpClient "github.com/cloudposse/cluster-testkit/pkg/http"
)

func fastScenario(name, path string) Scenario {
	return Scenario{
		Name:     name,
		Path:     path,
		Rate:     50,
		TimeUnit: time.Second,
		Duration: 200 * time.Millisecond,
		VUs:      5,
	}
}

// recordingServer counts requests per path and checks the request headers.
type recordingServer struct {
	t      *testing.T
	mu     sync.Mutex
	hits   map[string]int
	status int
	delay  time.Duration
}

func (s *recordingServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	assert.Equal(s.t, "application/json", r.Header.Get("Content-Type"))
	assert.Equal(s.t, "Bearer test-token", r.Header.Get("Authorization"))

	s.mu.Lock()
	s.hits[r.URL.Path]++
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	w.WriteHeader(s.status)
}

func newRecordingServer(t *testing.T, status int) (*recordingServer, *Runner) {
	t.Helper()
	rec := &recordingServer{t: t, hits: map[string]int{}, status: status}
	server := httptest.NewServer(rec)
	t.Cleanup(server.Close)

	client := httpClient.NewDefaultClient(httpClient.WithBearerToken("test-token"))
	return rec, NewRunner(client, server.URL)
}

func TestRun(t *testing.T) {
	rec, runner := newRecordingServer(t, http.StatusOK)

	results, err := runner.Run(context.Background(), []Scenario{
		fastScenario("shared_about", "/Base/shared-cluster/about"),
		fastScenario("dedicated_test", "/Base/dedicated-cluster/test"),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, result := range results {
		assert.Positive(t, result.Iterations())
		assert.Equal(t, result.Iterations(), result.Passed())
		assert.Zero(t, result.Failed())
		assert.Zero(t, result.Errors())
		assert.Positive(t, result.MaxLatency())
		assert.LessOrEqual(t, result.MinLatency(), result.Latency(50))
		assert.InDelta(t, 100.0, result.PassRate(), 0.001)
	}
	assert.Equal(t, "shared_about", results[0].Scenario)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.EqualValues(t, results[0].Iterations(), rec.hits["/Base/shared-cluster/about"])
	assert.EqualValues(t, results[1].Iterations(), rec.hits["/Base/dedicated-cluster/test"])
	// 50/s for 200ms starts about 10 iterations.
	assert.LessOrEqual(t, rec.hits["/Base/shared-cluster/about"], 12)

	assert.NoError(t, CheckResults(results))
}

func TestRun_FailedChecks(t *testing.T) {
	_, runner := newRecordingServer(t, http.StatusUnauthorized)

	results, err := runner.Run(context.Background(), []Scenario{fastScenario("shared_about", "/about")})
	require.NoError(t, err)

	assert.Positive(t, results[0].Failed())
	assert.Zero(t, results[0].Passed())

	err = CheckResults(results)
	assert.ErrorIs(t, err, errUtils.ErrChecksFailed)
	assert.Equal(t, errUtils.ExitCodeChecksFailed, errUtils.GetExitCode(err))
}

func TestRun_DropsWhenVUsBusy(t *testing.T) {
	rec, runner := newRecordingServer(t, http.StatusOK)
	rec.delay = 300 * time.Millisecond

	scenario := fastScenario("slow", "/slow")
	scenario.Rate = 100
	scenario.VUs = 1

	results, err := runner.Run(context.Background(), []Scenario{scenario})
	require.NoError(t, err)

	// The single VU is busy for the whole run, so later iterations are dropped
	// and the in-flight one still completes.
	assert.EqualValues(t, 1, results[0].Iterations())
	assert.EqualValues(t, 1, results[0].Passed())
	assert.Positive(t, results[0].Dropped())
}

func TestRun_CancelledContext(t *testing.T) {
	_, runner := newRecordingServer(t, http.StatusOK)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := runner.Run(ctx, []Scenario{fastScenario("shared_about", "/about")})
	require.NoError(t, err)
	assert.Zero(t, results[0].Iterations())
}

func TestRun_RequestErrors(t *testing.T) {
	client := httpClient.NewDefaultClient(httpClient.WithTimeout(time.Second))
	// Nothing listens on this port.
	runner := NewRunner(client, "http://127.0.0.1:1")

	results, err := runner.Run(context.Background(), []Scenario{fastScenario("down", "/about")})
	require.NoError(t, err)
	assert.Positive(t, results[0].Errors())
	assert.Equal(t, results[0].Iterations(), results[0].Failed())
}

func TestRun_InvalidScenario(t *testing.T) {
	_, runner := newRecordingServer(t, http.StatusOK)

	scenario := fastScenario("bad", "/about")
	scenario.VUs = 0

	_, err := runner.Run(context.Background(), []Scenario{scenario})
	assert.ErrorIs(t, err, errUtils.ErrInvalidScenario)
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://cluster.example.com", BaseURL("cluster.example.com", false))
	assert.Equal(t, "http://localhost:8080", BaseURL("localhost:8080/", true))
}

func TestWriteReport(t *testing.T) {
	result := newResult("shared_about")
	result.record(http.StatusOK, 12*time.Millisecond, nil)
	result.record(http.StatusInternalServerError, 30*time.Millisecond, nil)
	result.drop()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, []*Result{result}))

	out := buf.String()
	assert.Contains(t, out, "Check: Get status is 200")
	assert.Contains(t, out, "shared_about")
	assert.Contains(t, out, "1 (50.0%)")
	assert.Contains(t, out, "Dropped")
	assert.EqualValues(t, 1, TotalFailed([]*Result{result}))
}
