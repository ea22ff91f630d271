package cognito

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	log "github.com/cloudposse/cluster-testkit/pkg/logger"
)

// Auth parameter names for the USER_PASSWORD_AUTH flow.
const (
	authParamUsername   = "USERNAME"
	authParamPassword   = "PASSWORD"
	authParamSecretHash = "SECRET_HASH"
)

// Tokens is the token triple returned by a successful authentication.
// Values are opaque and passed through unchanged.
type Tokens struct {
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int32  `json:"expires_in,omitempty"`
}

// AuthInput holds the parameters for a USER_PASSWORD_AUTH request.
type AuthInput struct {
	ClientID     string
	ClientSecret string // Optional; enables SECRET_HASH.
	Username     string
	Password     string
}

// SetupInput holds everything needed to prepare a test user.
type SetupInput struct {
	UserPoolID   string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// Service runs Cognito operations through a Client.
type Service struct {
	client Client
}

// NewService returns a Service backed by client.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// NewFromConfig returns a Service backed by an SDK client built from cfg.
func NewFromConfig(cfg aws.Config, endpoint string) *Service {
	return NewService(NewClient(cfg, endpoint))
}

// SetPermanentPassword sets password for username in userPoolID and marks it
// permanent, which moves the user out of FORCE_CHANGE_PASSWORD.
func (s *Service) SetPermanentPassword(ctx context.Context, userPoolID, username, password string) error {
	if err := requireParams(
		param{"user pool ID", "--user-pool-id", userPoolID},
		param{"username", "--username", username},
		param{"password", "--password", password},
	); err != nil {
		return err
	}

	log.Debug("Setting permanent password", "user_pool", userPoolID, "username", username)

	_, err := s.client.AdminSetUserPassword(ctx, &cognitoidentityprovider.AdminSetUserPasswordInput{
		UserPoolId: aws.String(userPoolID),
		Username:   aws.String(username),
		Password:   aws.String(password),
		Permanent:  true,
	})
	if err != nil {
		return classifyError(errUtils.ErrSetPasswordFailed, err, map[string]string{
			"user_pool": userPoolID,
			"username":  username,
		})
	}

	log.Info("Permanent password set", "username", username)
	return nil
}

// Authenticate runs the USER_PASSWORD_AUTH flow and returns the token triple.
func (s *Service) Authenticate(ctx context.Context, input AuthInput) (*Tokens, error) {
	if err := requireParams(
		param{"client ID", "--client-id", input.ClientID},
		param{"username", "--username", input.Username},
		param{"password", "--password", input.Password},
	); err != nil {
		return nil, err
	}

	params := map[string]string{
		authParamUsername: input.Username,
		authParamPassword: input.Password,
	}
	if input.ClientSecret != "" {
		params[authParamSecretHash] = SecretHash(input.ClientSecret, input.Username, input.ClientID)
	}

	log.Debug("Initiating password authentication",
		"client_id", input.ClientID,
		"username", input.Username,
		"secret_hash", input.ClientSecret != "",
	)

	out, err := s.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		ClientId:       aws.String(input.ClientID),
		AuthParameters: params,
	})
	if err != nil {
		return nil, classifyError(errUtils.ErrAuthenticateFailed, err, map[string]string{
			"client_id": input.ClientID,
			"username":  input.Username,
		})
	}

	return tokensFromOutput(out)
}

// SetupUser sets the permanent password and then authenticates. Every parameter
// is checked before the first request, and authentication is not attempted when
// setting the password fails.
func (s *Service) SetupUser(ctx context.Context, input SetupInput) (*Tokens, error) {
	if err := requireParams(
		param{"user pool ID", "--user-pool-id", input.UserPoolID},
		param{"client ID", "--client-id", input.ClientID},
		param{"username", "--username", input.Username},
		param{"password", "--password", input.Password},
	); err != nil {
		return nil, err
	}

	if err := s.SetPermanentPassword(ctx, input.UserPoolID, input.Username, input.Password); err != nil {
		return nil, err
	}

	tokens, err := s.Authenticate(ctx, AuthInput{
		ClientID:     input.ClientID,
		ClientSecret: input.ClientSecret,
		Username:     input.Username,
		Password:     input.Password,
	})
	if err != nil {
		return nil, err
	}

	log.Info("Authentication successful", "username", input.Username)
	return tokens, nil
}

func tokensFromOutput(out *cognitoidentityprovider.InitiateAuthOutput) (*Tokens, error) {
	if out == nil || out.AuthenticationResult == nil {
		var challenge types.ChallengeNameType
		if out != nil {
			challenge = out.ChallengeName
		}
		if challenge != "" {
			return nil, errUtils.Build(errUtils.ErrAuthChallenge).
				WithExplanationf("Cognito answered with the `%s` challenge instead of tokens", challenge).
				WithHint("USER_PASSWORD_AUTH only succeeds for users without MFA or pending password changes").
				WithContext("challenge", string(challenge)).
				WithExitCode(errUtils.ExitCodeAuthFailure).
				Err()
		}
		return nil, errUtils.Build(errUtils.ErrIncompleteTokens).
			WithExplanation("Cognito returned neither tokens nor a challenge").
			WithExitCode(errUtils.ExitCodeAuthFailure).
			Err()
	}

	result := out.AuthenticationResult
	tokens := &Tokens{
		IDToken:      aws.ToString(result.IdToken),
		AccessToken:  aws.ToString(result.AccessToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		TokenType:    aws.ToString(result.TokenType),
		ExpiresIn:    result.ExpiresIn,
	}

	var missing []string
	if tokens.IDToken == "" {
		missing = append(missing, "id")
	}
	if tokens.AccessToken == "" {
		missing = append(missing, "access")
	}
	if tokens.RefreshToken == "" {
		missing = append(missing, "refresh")
	}
	if len(missing) > 0 {
		return nil, errUtils.Build(errUtils.ErrIncompleteTokens).
			WithExplanationf("Missing tokens: %v", missing).
			WithHint("Check that the app client issues refresh tokens and allows ALLOW_USER_PASSWORD_AUTH").
			WithExitCode(errUtils.ExitCodeAuthFailure).
			Err()
	}

	return tokens, nil
}

type param struct {
	name  string
	flag  string
	value string
}

func requireParams(params ...param) error {
	for _, p := range params {
		if p.value == "" {
			return errUtils.Build(errUtils.ErrMissingParameter).
				WithExplanationf("The %s is required", p.name).
				WithHintf("Pass `%s` or set it in the environment or config file", p.flag).
				WithContext("parameter", p.name).
				WithExitCode(errUtils.ExitCodeUsage).
				Err()
		}
	}
	return nil
}
