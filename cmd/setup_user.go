package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	awsUtils "github.com/cloudposse/cluster-testkit/pkg/aws"
	"github.com/cloudposse/cluster-testkit/pkg/cognito"
	cfg "github.com/cloudposse/cluster-testkit/pkg/config"
	log "github.com/cloudposse/cluster-testkit/pkg/logger"
	"github.com/cloudposse/cluster-testkit/pkg/schema"
	"github.com/cloudposse/cluster-testkit/pkg/secrets"
	"github.com/cloudposse/cluster-testkit/pkg/tokens"
)

// newPasswordStore is replaced in tests.
var newPasswordStore = secrets.NewSystemKeyringStore

var setupUserCmd = &cobra.Command{
	Use:     "setup-user",
	Aliases: []string{"setup-users"},
	Short:   "Set a permanent password for a Cognito user and print its tokens",
	Long: `Set a permanent password for a user in a Cognito user pool, authenticate it with
the USER_PASSWORD_AUTH flow and print the ID, access and refresh tokens.

The AWS profile is read from the PROFILE environment variable. The user pool,
client and username can also come from SHARED_USER_POOL_ID, SHARED_CLIENT_ID and
SHARED_USERNAME, and the password from TEST_PASSWORD.`,
	Example: `  PROFILE=dev testkit setup-user --user-pool-id us-east-1_AbCdEf --client-id 1example23 --username test-user --password-keyring-service testkit
  eval "$(testkit setup-user --output env)"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetupUser(cmd.Context(), cmd.OutOrStdout(), configuration)
	},
}

func init() {
	flags := setupUserCmd.Flags()

	flags.String("user-pool-id", "", "Cognito user pool ID (SHARED_USER_POOL_ID)")
	flags.String("client-id", "", "Cognito app client ID (SHARED_CLIENT_ID)")
	flags.String("client-secret", "", "Cognito app client secret, when the client has one")
	flags.String("username", "", "Username of the test user (SHARED_USERNAME)")
	flags.String("password", "", "Password to set (TEST_PASSWORD)")
	flags.String("password-keyring-service", "", "System keyring service holding the password, keyed by username")
	flags.Bool("generate-password", false, "Generate a password when none is provided")
	flags.Bool("save-password", false, "Store the password in the system keyring service")
	flags.StringP("output", "o", cfg.DefaultOutputFormat, "Output format: text, json or env")
	flags.String("token-file", "", "Also write the tokens in env format to this file (mode 0600)")

	for name, key := range map[string]string{
		"user-pool-id":             cfg.KeyCognitoUserPoolID,
		"client-id":                cfg.KeyCognitoClientID,
		"client-secret":            cfg.KeyCognitoClientSecret,
		"username":                 cfg.KeyCognitoUsername,
		"password":                 cfg.KeyPasswordValue,
		"password-keyring-service": cfg.KeyPasswordKeyringService,
		"generate-password":        cfg.KeyPasswordGenerate,
		"save-password":            cfg.KeyPasswordSave,
		"output":                   cfg.KeyOutputFormat,
		"token-file":               cfg.KeyOutputTokenFile,
	} {
		bindFlag(flags, name, key)
	}
	addAWSFlags(flags)
	flags.String("endpoint-url", "", "Override the Cognito endpoint, for local emulators")
	bindFlag(flags, "endpoint-url", cfg.KeyAWSEndpointURL)

	if err := setupUserCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(tokens.FormatText), string(tokens.FormatJSON), string(tokens.FormatEnv)}, cobra.ShellCompDirectiveNoFileComp
	}); err != nil {
		log.Trace("Failed to register output flag completion", "error", err)
	}

	RootCmd.AddCommand(setupUserCmd)
}

func runSetupUser(ctx context.Context, out io.Writer, conf *schema.Configuration) error {
	// Fail on a bad format before touching the user.
	format, err := tokens.ParseFormat(conf.Output.Format)
	if err != nil {
		return err
	}

	if conf.Cognito.Username == "" {
		return errUtils.Build(errUtils.ErrMissingParameter).
			WithExplanation("The username is required").
			WithHint("Pass `--username` or set SHARED_USERNAME").
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}

	password, err := secrets.NewResolver(newPasswordStore()).Resolve(conf.Password, conf.Cognito.Username)
	if err != nil {
		return err
	}

	awsConfig, err := awsUtils.LoadConfig(ctx, conf.AWS)
	if err != nil {
		return err
	}

	service := cognito.NewFromConfig(awsConfig, conf.AWS.EndpointURL)
	result, err := service.SetupUser(ctx, cognito.SetupInput{
		UserPoolID:   conf.Cognito.UserPoolID,
		ClientID:     conf.Cognito.ClientID,
		ClientSecret: conf.Cognito.ClientSecret,
		Username:     conf.Cognito.Username,
		Password:     password.Password,
	})
	if err != nil {
		return err
	}

	if password.Source == secrets.SourceGenerated && !conf.Password.Save {
		log.Warn("The generated password was not saved; use --save-password to keep it in the keyring",
			"username", conf.Cognito.Username)
	}

	if err := tokens.Write(out, format, result); err != nil {
		return err
	}

	if conf.Output.TokenFile != "" {
		return tokens.WriteFile(conf.Output.TokenFile, result)
	}
	return nil
}
