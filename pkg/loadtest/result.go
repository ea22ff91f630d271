package loadtest

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// CheckName is the check applied to every response.
const CheckName = "Get status is 200"

// Latencies are recorded in microseconds between 1µs and one minute.
const (
	minLatencyMicros = 1
	maxLatencyMicros = int64(time.Minute / time.Microsecond)
	sigFigs          = 3
)

// Result collects the outcome of one scenario run. It is safe for concurrent use.
type Result struct {
	Scenario string

	iterations atomic.Int64
	passed     atomic.Int64
	failed     atomic.Int64
	dropped    atomic.Int64
	errors     atomic.Int64

	mu        sync.Mutex
	histogram *hdrhistogram.Histogram
}

func newResult(scenario string) *Result {
	return &Result{
		Scenario:  scenario,
		histogram: hdrhistogram.New(minLatencyMicros, maxLatencyMicros, sigFigs),
	}
}

// record registers a completed iteration. A request error counts as a failed check.
func (r *Result) record(status int, latency time.Duration, err error) {
	r.iterations.Add(1)
	if err != nil {
		r.errors.Add(1)
	}
	if err == nil && status == 200 {
		r.passed.Add(1)
	} else {
		r.failed.Add(1)
	}

	micros := min(max(latency.Microseconds(), minLatencyMicros), maxLatencyMicros)
	r.mu.Lock()
	_ = r.histogram.RecordValue(micros)
	r.mu.Unlock()
}

func (r *Result) drop() {
	r.dropped.Add(1)
}

// Iterations is the number of completed iterations.
func (r *Result) Iterations() int64 { return r.iterations.Load() }

// Passed is the number of iterations whose check passed.
func (r *Result) Passed() int64 { return r.passed.Load() }

// Failed is the number of iterations whose check failed.
func (r *Result) Failed() int64 { return r.failed.Load() }

// Dropped is the number of iterations not started because every VU was busy.
func (r *Result) Dropped() int64 { return r.dropped.Load() }

// Errors is the number of iterations whose request did not complete.
func (r *Result) Errors() int64 { return r.errors.Load() }

// Latency returns the latency at quantile q (0-100).
func (r *Result) Latency(q float64) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.histogram.TotalCount() == 0 {
		return 0
	}
	return time.Duration(r.histogram.ValueAtQuantile(q)) * time.Microsecond
}

// MinLatency returns the fastest recorded iteration.
func (r *Result) MinLatency() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.histogram.TotalCount() == 0 {
		return 0
	}
	return time.Duration(r.histogram.Min()) * time.Microsecond
}

// MaxLatency returns the slowest recorded iteration.
func (r *Result) MaxLatency() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.histogram.TotalCount() == 0 {
		return 0
	}
	return time.Duration(r.histogram.Max()) * time.Microsecond
}

// PassRate returns the share of iterations that passed, as a percentage.
func (r *Result) PassRate() float64 {
	total := r.Iterations()
	if total == 0 {
		return 0
	}
	return float64(r.Passed()) * 100 / float64(total)
}

func (r *Result) row() []string {
	return []string{
		r.Scenario,
		strconv.FormatInt(r.Iterations(), 10),
		fmt.Sprintf("%d (%.1f%%)", r.Passed(), r.PassRate()),
		strconv.FormatInt(r.Failed(), 10),
		strconv.FormatInt(r.Dropped(), 10),
		formatLatency(r.MinLatency()),
		formatLatency(r.Latency(50)),
		formatLatency(r.Latency(90)),
		formatLatency(r.Latency(95)),
		formatLatency(r.Latency(99)),
		formatLatency(r.MaxLatency()),
	}
}

func formatLatency(d time.Duration) string {
	return d.Round(10 * time.Microsecond).String()
}
