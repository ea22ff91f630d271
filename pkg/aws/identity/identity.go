// Package identity resolves the AWS principal behind the loaded SDK config.
package identity

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	log "github.com/cloudposse/cluster-testkit/pkg/logger"
)

// CallerIdentity holds the information returned by AWS STS GetCallerIdentity.
type CallerIdentity struct {
	Account string `json:"account"`
	Arn     string `json:"arn"`
	UserID  string `json:"user_id"`
	Region  string `json:"region"` // The AWS region from the loaded config.
}

// stsClient is the subset of the STS client used here.
type stsClient interface {
	GetCallerIdentity(ctx context.Context, input *sts.GetCallerIdentityInput, opts ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// GetCallerIdentity calls STS GetCallerIdentity with the credentials in cfg.
func GetCallerIdentity(ctx context.Context, cfg aws.Config) (*CallerIdentity, error) {
	return getCallerIdentityWithClient(ctx, sts.NewFromConfig(cfg), cfg.Region)
}

func getCallerIdentityWithClient(ctx context.Context, client stsClient, region string) (*CallerIdentity, error) {
	log.Debug("Getting AWS caller identity")

	output, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrAwsCallerIdentity).
			WithCause(err).
			WithHint("Verify that the selected AWS profile has valid, unexpired credentials").
			WithExitCode(errUtils.ExitCodeAuthFailure).
			Err()
	}

	identity := &CallerIdentity{
		Account: aws.ToString(output.Account),
		Arn:     aws.ToString(output.Arn),
		UserID:  aws.ToString(output.UserId),
		Region:  region,
	}

	log.Debug("Retrieved AWS caller identity",
		"account", identity.Account,
		"arn", identity.Arn,
		"region", identity.Region,
	)

	return identity, nil
}
