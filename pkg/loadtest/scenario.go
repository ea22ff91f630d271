// Package loadtest drives constant-arrival-rate HTTP load against cluster
// endpoints and checks that every response is a 200.
package loadtest

import (
	"strings"
	"time"

	"github.com/samber/lo"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	"github.com/cloudposse/cluster-testkit/pkg/schema"
)

// scenarioSuffix is accepted on names for compatibility with existing SCENARIOS values.
const scenarioSuffix = "_scenario"

// Built-in executor settings.
const (
	DefaultRate     = 10
	DefaultTimeUnit = time.Second
	DefaultDuration = 20 * time.Second
	DefaultVUs      = 10
)

// Scenario is a single constant-arrival-rate workload.
type Scenario struct {
	Name string
	Path string
	// Rate iterations are started every TimeUnit.
	Rate     int
	TimeUnit time.Duration
	Duration time.Duration
	// VUs bounds concurrent iterations; iterations beyond it are dropped.
	VUs int
}

var builtinScenarios = []Scenario{
	newScenario("shared_about", "/Base/shared-cluster/about"),
	newScenario("dedicated_test", "/Base/dedicated-cluster/test"),
	newScenario("dedicated_hostname", "/Base/dedicated-cluster/hostname"),
}

func newScenario(name, path string) Scenario {
	return Scenario{
		Name:     name,
		Path:     path,
		Rate:     DefaultRate,
		TimeUnit: DefaultTimeUnit,
		Duration: DefaultDuration,
		VUs:      DefaultVUs,
	}
}

// Builtin returns the built-in scenarios.
func Builtin() []Scenario {
	return append([]Scenario(nil), builtinScenarios...)
}

// Names returns the names of the built-in scenarios.
func Names() []string {
	return lo.Map(builtinScenarios, func(s Scenario, _ int) string { return s.Name })
}

// Select returns the built-in scenarios named in names, in the given order.
// Entries may themselves be comma-separated; blanks and duplicates are ignored.
func Select(names []string) ([]Scenario, error) {
	split := lo.FlatMap(names, func(name string, _ int) []string { return strings.Split(name, ",") })
	cleaned := lo.Uniq(lo.FilterMap(split, func(name string, _ int) (string, bool) {
		name = strings.TrimSuffix(strings.TrimSpace(name), scenarioSuffix)
		return name, name != ""
	}))

	if len(cleaned) == 0 {
		return nil, errUtils.Build(errUtils.ErrNoScenarios).
			WithHintf("Set SCENARIOS or pass --scenarios with any of: %s", strings.Join(Names(), ", ")).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}

	selected := make([]Scenario, 0, len(cleaned))
	for _, name := range cleaned {
		scenario, ok := lo.Find(builtinScenarios, func(s Scenario) bool { return s.Name == name })
		if !ok {
			return nil, errUtils.Build(errUtils.ErrUnknownScenario).
				WithExplanationf("Scenario `%s` does not exist", name).
				WithHintf("Available scenarios: %s", strings.Join(Names(), ", ")).
				WithContext("scenario", name).
				WithExitCode(errUtils.ExitCodeUsage).
				Err()
		}
		selected = append(selected, scenario)
	}

	return selected, nil
}

// ApplySettings overrides the executor settings of every scenario with the
// non-zero values in settings.
func ApplySettings(scenarios []Scenario, settings schema.Load) []Scenario {
	return lo.Map(scenarios, func(s Scenario, _ int) Scenario {
		if settings.Rate != 0 {
			s.Rate = settings.Rate
		}
		if settings.TimeUnit != 0 {
			s.TimeUnit = settings.TimeUnit
		}
		if settings.Duration != 0 {
			s.Duration = settings.Duration
		}
		if settings.VUs != 0 {
			s.VUs = settings.VUs
		}
		return s
	})
}

// Validate reports whether s can be run.
func (s Scenario) Validate() error {
	var problem string
	switch {
	case s.Rate <= 0:
		problem = "rate must be positive"
	case s.TimeUnit <= 0:
		problem = "time unit must be positive"
	case s.Duration <= 0:
		problem = "duration must be positive"
	case s.VUs <= 0:
		problem = "VUs must be positive"
	case !strings.HasPrefix(s.Path, "/"):
		problem = "path must start with /"
	default:
		return nil
	}
	return errUtils.Build(errUtils.ErrInvalidScenario).
		WithExplanationf("Scenario `%s`: %s", s.Name, problem).
		WithContext("scenario", s.Name).
		WithExitCode(errUtils.ExitCodeUsage).
		Err()
}

// interval is the time between iteration starts.
func (s Scenario) interval() time.Duration {
	return s.TimeUnit / time.Duration(s.Rate)
}
