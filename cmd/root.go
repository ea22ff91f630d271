package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	cfg "github.com/cloudposse/cluster-testkit/pkg/config"
	log "github.com/cloudposse/cluster-testkit/pkg/logger"
	"github.com/cloudposse/cluster-testkit/pkg/schema"
)

// configKeyAnnotation ties a flag to the configuration key it overrides.
const configKeyAnnotation = "testkit_config_key"

var (
	// configuration is loaded by the root PersistentPreRunE before any command runs.
	configuration *schema.Configuration
	logCloser     io.Closer
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "testkit",
	Short: "Prepare Cognito test users and load test cluster endpoints",
	Long: `testkit prepares a Cognito user for integration tests by setting a permanent
password and authenticating with USER_PASSWORD_AUTH, then load tests the cluster
endpoints with the resulting token.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String("logs-level", cfg.DefaultLogsLevel, "Logs level: Trace, Debug, Info, Warning, Off")
	flags.String("logs-file", cfg.DefaultLogsFile, "File to write logs to (/dev/stderr, /dev/stdout, /dev/null or a path)")
	flags.String("config", "", "Path to a testkit.yaml file or a directory holding one")
	bindFlag(flags, "logs-level", cfg.KeyLogsLevel)
	bindFlag(flags, "logs-file", cfg.KeyLogsFile)
}

// Execute runs the root command with ctx. It is called by main.main().
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// Cleanup releases resources opened during command execution.
func Cleanup() {
	if logCloser != nil {
		if err := logCloser.Close(); err != nil {
			log.Debug("Failed to close log file", "error", err)
		}
		logCloser = nil
	}
}

// initConfig loads configuration with flags taking precedence over the
// environment, config files and defaults, then configures the logger.
func initConfig(cmd *cobra.Command) error {
	v, err := cfg.NewViper()
	if err != nil {
		return err
	}

	if err := bindFlagsToViper(v, cmd.Flags()); err != nil {
		return errUtils.Build(errUtils.ErrLoadConfig).WithCause(err).Err()
	}

	configPath, _ := cmd.Flags().GetString("config")
	conf, err := cfg.Load(v, configPath)
	if err != nil {
		return err
	}

	logger, closer, err := log.NewLoggerFromConfig(conf.Logs)
	if err != nil {
		return err
	}
	Cleanup()
	log.SetDefault(logger)
	logCloser = closer

	configuration = conf
	log.Trace("Loaded configuration", "command", cmd.Name(), "config_file", v.ConfigFileUsed())
	return nil
}

// bindFlag records the configuration key a flag overrides.
func bindFlag(flags *pflag.FlagSet, name, key string) {
	if err := flags.SetAnnotation(name, configKeyAnnotation, []string{key}); err != nil {
		panic(err)
	}
}

// bindFlagsToViper binds every annotated flag to its configuration key.
// Viper only uses a flag value when the flag was set on the command line.
func bindFlagsToViper(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(flag *pflag.Flag) {
		keys := flag.Annotations[configKeyAnnotation]
		if len(keys) == 0 || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(keys[0], flag)
	})
	return bindErr
}
