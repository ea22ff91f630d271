package cognito

import (
	"errors"

	"github.com/aws/smithy-go"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
)

type errorClass struct {
	sentinel error
	hint     string
	exitCode int
}

// errorClasses maps Cognito API error codes to sentinels and hints.
var errorClasses = map[string]errorClass{
	"UserNotFoundException": {
		sentinel: errUtils.ErrUserNotFound,
		hint:     "Check the username and that it belongs to the given user pool",
		exitCode: errUtils.ExitCodeAuthFailure,
	},
	"InvalidPasswordException": {
		sentinel: errUtils.ErrInvalidPassword,
		hint:     "Use a password that meets the user pool policy (length, digits, symbols, upper and lower case)",
		exitCode: errUtils.ExitCodeFailure,
	},
	"NotAuthorizedException": {
		sentinel: errUtils.ErrNotAuthorized,
		hint:     "Check the password and that the app client allows ALLOW_USER_PASSWORD_AUTH",
		exitCode: errUtils.ExitCodeAuthFailure,
	},
	"InvalidParameterException": {
		sentinel: errUtils.ErrInvalidParameter,
		hint:     "Check the user pool ID, client ID and whether the client requires a client secret",
		exitCode: errUtils.ExitCodeUsage,
	},
	"ResourceNotFoundException": {
		sentinel: errUtils.ErrResourceNotFound,
		hint:     "Check the user pool ID, client ID and region",
		exitCode: errUtils.ExitCodeUsage,
	},
	"TooManyRequestsException": {
		sentinel: errUtils.ErrTooManyRequests,
		hint:     "Retries were exhausted; raise --max-attempts or try again later",
		exitCode: errUtils.ExitCodeFailure,
	},
}

// classifyError wraps an SDK error under op, marking it with the sentinel for
// its API error code. Unknown codes are marked ErrCognitoRequest.
func classifyError(op error, err error, fields map[string]string) error {
	builder := errUtils.Build(op).WithCause(err)
	for k, v := range fields {
		builder = builder.WithContext(k, v)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		builder = builder.WithContext("error_code", apiErr.ErrorCode())
		if class, ok := errorClasses[apiErr.ErrorCode()]; ok {
			return builder.
				WithSentinel(class.sentinel).
				WithHint(class.hint).
				WithExitCode(class.exitCode).
				Err()
		}
	}

	return builder.
		WithSentinel(errUtils.ErrCognitoRequest).
		WithExitCode(errUtils.ExitCodeFailure).
		Err()
}
