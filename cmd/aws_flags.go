package cmd

import (
	"github.com/spf13/pflag"

	cfg "github.com/cloudposse/cluster-testkit/pkg/config"
)

// addAWSFlags registers the SDK client flags shared by commands that call AWS.
func addAWSFlags(flags *pflag.FlagSet) {
	flags.String("profile", "", "AWS profile (PROFILE)")
	flags.String("region", cfg.DefaultRegion, "AWS region")
	flags.Int("max-attempts", cfg.DefaultRetryMaxAttempts, "Maximum attempts per AWS request, including the first")
	flags.String("retry-mode", cfg.DefaultRetryMode, "AWS retry mode: standard or adaptive")

	bindFlag(flags, "profile", cfg.KeyAWSProfile)
	bindFlag(flags, "region", cfg.KeyAWSRegion)
	bindFlag(flags, "max-attempts", cfg.KeyAWSRetryMaxAttempts)
	bindFlag(flags, "retry-mode", cfg.KeyAWSRetryMode)
}
