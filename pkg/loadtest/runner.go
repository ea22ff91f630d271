package loadtest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	httpClient "github.com/cloudposse/cluster-testkit/pkg/http"
	log "github.com/cloudposse/cluster-testkit/pkg/logger"
)

// Runner executes scenarios against a base URL.
type Runner struct {
	client  httpClient.Client
	baseURL string
}

// NewRunner returns a Runner that sends requests through client to baseURL.
// The client is expected to add the bearer token.
func NewRunner(client httpClient.Client, baseURL string) *Runner {
	return &Runner{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// BaseURL builds the target origin for domain.
func BaseURL(domain string, insecure bool) string {
	scheme := "https"
	if insecure {
		scheme = "http"
	}
	return scheme + "://" + strings.TrimSuffix(domain, "/")
}

// Run executes all scenarios concurrently and returns their results in order.
// Cancelling ctx stops starting new iterations; in-flight requests finish.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) ([]*Result, error) {
	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	results := make([]*Result, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	for i, scenario := range scenarios {
		results[i] = newResult(scenario.Name)
		g.Go(func() error {
			return r.runScenario(gctx, scenario, results[i])
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runScenario(ctx context.Context, scenario Scenario, result *Result) error {
	url := r.baseURL + scenario.Path
	// Requests outlive the scenario deadline so in-flight iterations complete.
	requestCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	pool, err := ants.NewPoolWithFunc(scenario.VUs, func(arg any) {
		defer wg.Done()
		start := arg.(time.Time)
		status, err := httpClient.GetStatus(requestCtx, url, r.client)
		latency := time.Since(start)
		result.record(status, latency, err)
		if err != nil {
			log.Debug("Request failed", "scenario", scenario.Name, "error", err)
		} else if status != 200 {
			log.Debug("Check failed", "scenario", scenario.Name, "status", status)
		}
	}, ants.WithNonblocking(true), ants.WithPreAlloc(true))
	if err != nil {
		return errUtils.Build(errUtils.ErrWorkerPool).WithCause(err).WithContext("scenario", scenario.Name).Err()
	}
	defer pool.Release()

	log.Info("Starting scenario",
		"scenario", scenario.Name,
		"url", url,
		"rate", scenario.Rate,
		"time_unit", scenario.TimeUnit,
		"duration", scenario.Duration,
		"vus", scenario.VUs,
	)

	runCtx, cancel := context.WithTimeout(ctx, scenario.Duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(scenario.interval()), 1)
	for {
		// Wait fails once the next start would fall past the deadline.
		if err := limiter.Wait(runCtx); err != nil {
			break
		}

		wg.Add(1)
		if err := pool.Invoke(time.Now()); err != nil {
			wg.Done()
			if errors.Is(err, ants.ErrPoolOverload) {
				result.drop()
				continue
			}
			return errUtils.Build(errUtils.ErrWorkerPool).WithCause(err).WithContext("scenario", scenario.Name).Err()
		}
	}

	wg.Wait()

	log.Info("Finished scenario",
		"scenario", scenario.Name,
		"iterations", result.Iterations(),
		"passed", result.Passed(),
		"failed", result.Failed(),
		"dropped", result.Dropped(),
	)
	return nil
}

// CheckResults returns ErrChecksFailed when any iteration failed its check.
func CheckResults(results []*Result) error {
	failed := TotalFailed(results)
	if failed == 0 {
		return nil
	}
	return errUtils.Build(errUtils.ErrChecksFailed).
		WithExplanationf("%d iterations failed the `%s` check", failed, CheckName).
		WithHint("Verify the token is valid and not expired, then rerun setup-user to refresh it").
		WithExitCode(errUtils.ExitCodeChecksFailed).
		Err()
}
