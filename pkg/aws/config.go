// Package aws loads AWS SDK configuration for testkit commands.
package aws

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	log "github.com/cloudposse/cluster-testkit/pkg/logger"
	"github.com/cloudposse/cluster-testkit/pkg/schema"
)

// SignatureVersionV4 is the only request signing scheme the SDK clients support.
const SignatureVersionV4 = "v4"

// LoadConfig loads AWS SDK config for the given settings.
/*
	Credentials are resolved by the SDK in its usual order:

	Static credentials from settings (access key, secret, session token), if set.

	Environment variables:
	  AWS_ACCESS_KEY_ID
	  AWS_SECRET_ACCESS_KEY
	  AWS_SESSION_TOKEN

	Shared config and credentials files for the selected profile
	(settings.Profile, which comes from PROFILE, or AWS_PROFILE when unset).

	SSO, web identity and container/instance metadata providers.

	Requests are signed with SigV4. Retries use the SDK retryer with
	settings.Retry.MaxAttempts attempts in settings.Retry.Mode mode.
*/
func LoadConfig(ctx context.Context, settings schema.AWS) (aws.Config, error) {
	opts, err := loadOptions(settings)
	if err != nil {
		return aws.Config{}, err
	}

	log.Debug("Loading AWS SDK config",
		"profile", settings.Profile,
		"region", settings.Region,
		"max_attempts", settings.Retry.MaxAttempts,
		"retry_mode", settings.Retry.Mode,
	)

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		builder := errUtils.Build(errUtils.ErrLoadAwsConfig).
			WithCause(err).
			WithContext("region", settings.Region).
			WithExitCode(errUtils.ExitCodeAuthFailure)
		if settings.Profile != "" {
			builder = builder.
				WithContext("profile", settings.Profile).
				WithHintf("Check that profile `%s` exists in ~/.aws/config or ~/.aws/credentials", settings.Profile).
				WithHint("The profile is taken from the PROFILE environment variable or --profile")
		}
		return aws.Config{}, builder.Err()
	}

	log.Debug("Loaded AWS SDK config", "region", cfg.Region)
	return cfg, nil
}

func loadOptions(settings schema.AWS) ([]func(*config.LoadOptions) error, error) {
	if err := validateSignatureVersion(settings.SignatureVersion); err != nil {
		return nil, err
	}

	mode, err := parseRetryMode(settings.Retry.Mode)
	if err != nil {
		return nil, err
	}

	if settings.Retry.MaxAttempts < 1 {
		return nil, errUtils.Build(errUtils.ErrInvalidRetryMode).
			WithHintf("Retry max attempts must be at least 1, got %d", settings.Retry.MaxAttempts).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRetryMaxAttempts(settings.Retry.MaxAttempts),
		config.WithRetryMode(mode),
	}

	if settings.Region != "" {
		opts = append(opts, config.WithRegion(settings.Region))
	}

	if settings.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(settings.Profile))
	}

	if settings.AccessKeyID != "" || settings.SecretAccessKey != "" {
		log.Debug("Using static AWS credentials from configuration")
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, settings.SessionToken),
		))
	}

	return opts, nil
}

func validateSignatureVersion(version string) error {
	if version == "" || strings.EqualFold(version, SignatureVersionV4) {
		return nil
	}
	return errUtils.Build(errUtils.ErrUnsupportedSignatureVersion).
		WithHintf("Signature version `%s` is not supported, use `%s`", version, SignatureVersionV4).
		WithContext("signature_version", version).
		WithExitCode(errUtils.ExitCodeUsage).
		Err()
}

func parseRetryMode(mode string) (aws.RetryMode, error) {
	if mode == "" {
		return aws.RetryModeStandard, nil
	}
	parsed, err := aws.ParseRetryMode(mode)
	if err != nil {
		return "", errUtils.Build(errUtils.ErrInvalidRetryMode).
			WithCause(err).
			WithHint("Supported retry modes are `standard` and `adaptive`").
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}
	return parsed, nil
}
