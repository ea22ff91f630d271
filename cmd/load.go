package cmd

import (
	"context"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	cfg "github.com/cloudposse/cluster-testkit/pkg/config"
	httpClient "github.com/cloudposse/cluster-testkit/pkg/http"
	"github.com/cloudposse/cluster-testkit/pkg/loadtest"
	log "github.com/cloudposse/cluster-testkit/pkg/logger"
	"github.com/cloudposse/cluster-testkit/pkg/schema"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load test cluster endpoints with a bearer token",
	Long: `Run constant-arrival-rate load scenarios against https://DOMAIN and check that
every response has status 200. The token is usually the ID token printed by
setup-user.

Scenarios: shared_about, dedicated_test, dedicated_hostname.`,
	Example: `  eval "$(testkit setup-user --output env)"
  DOMAIN=cluster.example.com SCENARIOS=shared_about,dedicated_test testkit load`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoad(cmd.Context(), cmd.OutOrStdout(), configuration)
	},
}

func init() {
	flags := loadCmd.Flags()

	flags.String("domain", "", "Cluster domain to target (DOMAIN)")
	flags.String("token", "", "Bearer token sent with every request (TOKEN)")
	flags.StringSlice("scenarios", nil, "Comma-separated scenarios to run (SCENARIOS)")
	flags.Int("rate", cfg.DefaultLoadRate, "Iterations started per time unit")
	flags.Duration("time-unit", cfg.DefaultLoadTimeUnit, "Time unit for --rate")
	flags.Duration("duration", cfg.DefaultLoadDuration, "How long each scenario starts iterations")
	flags.Int("vus", cfg.DefaultLoadVUs, "Maximum concurrent iterations per scenario")
	flags.Duration("timeout", cfg.DefaultLoadTimeout, "Per-request timeout")
	flags.Bool("strict", false, "Exit with an error when any check fails")
	flags.Bool("insecure-http", false, "Use http instead of https")

	bindFlag(flags, "domain", cfg.KeyLoadDomain)
	bindFlag(flags, "token", cfg.KeyLoadToken)
	bindFlag(flags, "scenarios", cfg.KeyLoadScenarios)
	bindFlag(flags, "rate", cfg.KeyLoadRate)
	bindFlag(flags, "time-unit", cfg.KeyLoadTimeUnit)
	bindFlag(flags, "duration", cfg.KeyLoadDuration)
	bindFlag(flags, "vus", cfg.KeyLoadVUs)
	bindFlag(flags, "timeout", cfg.KeyLoadTimeout)
	bindFlag(flags, "strict", cfg.KeyLoadStrict)
	bindFlag(flags, "insecure-http", cfg.KeyLoadInsecureHTTP)

	if err := loadCmd.RegisterFlagCompletionFunc("scenarios", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return loadtest.Names(), cobra.ShellCompDirectiveNoFileComp
	}); err != nil {
		log.Trace("Failed to register scenarios flag completion", "error", err)
	}

	RootCmd.AddCommand(loadCmd)
}

func runLoad(ctx context.Context, out io.Writer, conf *schema.Configuration) error {
	settings := conf.Load

	for _, required := range []struct{ value, flag, env string }{
		{settings.Domain, "--domain", "DOMAIN"},
		{settings.Token, "--token", "TOKEN"},
	} {
		if required.value == "" {
			return errUtils.Build(errUtils.ErrMissingParameter).
				WithExplanationf("`%s` is required", required.flag).
				WithHintf("Pass `%s` or set %s", required.flag, required.env).
				WithExitCode(errUtils.ExitCodeUsage).
				Err()
		}
	}

	scenarios, err := loadtest.Select(settings.Scenarios)
	if err != nil {
		return err
	}
	scenarios = loadtest.ApplySettings(scenarios, settings)

	maxVUs := lo.MaxBy(scenarios, func(a, b loadtest.Scenario) bool { return a.VUs > b.VUs }).VUs
	client := httpClient.NewDefaultClient(
		httpClient.WithTimeout(settings.Timeout),
		httpClient.WithMaxConnsPerHost(maxVUs*len(scenarios)),
		httpClient.WithBearerToken(settings.Token),
	)

	runner := loadtest.NewRunner(client, loadtest.BaseURL(settings.Domain, settings.InsecureHTTP))
	results, err := runner.Run(ctx, scenarios)
	if err != nil {
		return err
	}

	if err := loadtest.WriteReport(out, results); err != nil {
		return errUtils.Build(errUtils.ErrWriteReport).WithCause(err).Err()
	}

	if err := loadtest.CheckResults(results); err != nil {
		if settings.Strict {
			return err
		}
		log.Warn("Some checks failed", "failed", loadtest.TotalFailed(results))
	}
	return nil
}
