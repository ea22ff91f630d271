package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolateEnv points HOME, the working directory and the AWS shared files at a
// temp dir and clears variables that would leak into configuration.
func isolateEnv(t testing.TB) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Setenv("TESTKIT_XDG_CONFIG_HOME", "")
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "aws-config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "aws-credentials"))
	t.Chdir(dir)

	for _, name := range []string{
		"PROFILE", "AWS_PROFILE", "AWS_REGION", "AWS_DEFAULT_REGION",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_SESSION_TOKEN",
		"SHARED_USER_POOL_ID", "SHARED_CLIENT_ID", "SHARED_USERNAME", "TEST_PASSWORD",
		"DOMAIN", "TOKEN", "SCENARIOS", "TESTKIT_CONFIG_PATH",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	t.Setenv("TESTKIT_LOGS_FILE", "/dev/null")
	return dir
}

// executeCommand runs RootCmd with args and returns stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	RootCmd.SetArgs(args)
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)

	err := Execute(context.Background())
	return out.String(), err
}
