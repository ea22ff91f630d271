package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/cloudposse/cluster-testkit/pkg/config"
)

func TestBindFlagsToViper(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("region", "us-east-1", "")
	flags.String("unbound", "", "")
	bindFlag(flags, "region", cfg.KeyAWSRegion)

	v := viper.New()
	v.SetDefault(cfg.KeyAWSRegion, "us-east-1")
	require.NoError(t, bindFlagsToViper(v, flags))
	assert.Equal(t, "us-east-1", v.GetString(cfg.KeyAWSRegion))

	require.NoError(t, flags.Parse([]string{"--region", "eu-central-1"}))
	assert.Equal(t, "eu-central-1", v.GetString(cfg.KeyAWSRegion))
}

func TestFlagPrecedence(t *testing.T) {
	tk := NewTestKit(t)
	isolateEnv(tk)
	t.Setenv("TESTKIT_AWS_REGION", "ap-south-1")
	t.Setenv("PROFILE", "from-env")

	// whoami carries the shared AWS flags.
	require.NoError(t, RootCmd.PersistentPreRunE(whoamiCmd, nil))
	assert.Equal(t, "ap-south-1", configuration.AWS.Region)
	assert.Equal(t, "from-env", configuration.AWS.Profile)
	assert.Equal(t, 10, configuration.AWS.Retry.MaxAttempts)

	require.NoError(t, whoamiCmd.Flags().Set("region", "us-west-2"))
	require.NoError(t, RootCmd.PersistentPreRunE(whoamiCmd, nil))
	assert.Equal(t, "us-west-2", configuration.AWS.Region)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"setup-user", "load", "whoami", "version"} {
		assert.True(t, names[name], "missing command %s", name)
	}
	assert.Contains(t, setupUserCmd.Aliases, "setup-users")
}
