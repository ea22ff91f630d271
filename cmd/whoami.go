package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	awsUtils "github.com/cloudposse/cluster-testkit/pkg/aws"
	"github.com/cloudposse/cluster-testkit/pkg/aws/identity"
	cfg "github.com/cloudposse/cluster-testkit/pkg/config"
	"github.com/cloudposse/cluster-testkit/pkg/schema"
)

// getCallerIdentity is replaced in tests.
var getCallerIdentity = identity.GetCallerIdentity

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the AWS identity used for Cognito admin calls",
	Long: `Resolve AWS credentials the same way setup-user does and print the caller
identity. Use it to check that PROFILE points at an account that can call
AdminSetUserPassword on the user pool.`,
	Example: "  PROFILE=dev testkit whoami",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWhoami(cmd.Context(), cmd.OutOrStdout(), configuration)
	},
}

func init() {
	flags := whoamiCmd.Flags()
	addAWSFlags(flags)
	flags.StringP("output", "o", cfg.DefaultOutputFormat, "Output format: text or json")
	bindFlag(flags, "output", cfg.KeyOutputFormat)

	RootCmd.AddCommand(whoamiCmd)
}

func runWhoami(ctx context.Context, out io.Writer, conf *schema.Configuration) error {
	awsConfig, err := awsUtils.LoadConfig(ctx, conf.AWS)
	if err != nil {
		return err
	}

	caller, err := getCallerIdentity(ctx, awsConfig)
	if err != nil {
		return err
	}

	switch conf.Output.Format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(caller)
	case "text", "":
		_, err = fmt.Fprintf(out, "Account: %s\nARN: %s\nUser ID: %s\nRegion: %s\n",
			caller.Account, caller.Arn, caller.UserID, caller.Region)
	default:
		return errUtils.Build(errUtils.ErrInvalidOutputFormat).
			WithHint("Supported formats for whoami: text, json").
			WithContext("format", conf.Output.Format).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}
	return err
}
