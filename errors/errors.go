package errors

import "errors"

// Configuration errors.
var (
	ErrLoadConfig                  = errors.New("failed to load testkit configuration")
	ErrInvalidLogLevel             = errors.New("invalid log level")
	ErrMissingParameter            = errors.New("missing required parameter")
	ErrInvalidOutputFormat         = errors.New("invalid output format")
	ErrUnsupportedSignatureVersion = errors.New("unsupported signature version")
	ErrInvalidRetryMode            = errors.New("invalid retry mode")
)

// AWS and Cognito errors.
var (
	ErrLoadAwsConfig      = errors.New("failed to load AWS config")
	ErrAwsCallerIdentity  = errors.New("failed to get AWS caller identity")
	ErrCognitoRequest     = errors.New("cognito request failed")
	ErrSetPasswordFailed  = errors.New("failed to set permanent password")
	ErrAuthenticateFailed = errors.New("failed to authenticate user")
	ErrUserNotFound       = errors.New("user not found in user pool")
	ErrInvalidPassword    = errors.New("password does not satisfy the user pool policy")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrResourceNotFound   = errors.New("user pool or app client not found")
	ErrTooManyRequests    = errors.New("request rate exceeded")
	ErrAuthChallenge      = errors.New("authentication requires a challenge response")
	ErrIncompleteTokens   = errors.New("authentication result is missing tokens")
)

// Password source errors.
var (
	ErrPasswordNotProvided = errors.New("no password provided")
	ErrKeyringUnavailable  = errors.New("system keyring not available")
	ErrKeyringStore        = errors.New("failed to store password in keyring")
	ErrPasswordGeneration  = errors.New("failed to generate password")
)

// Output errors.
var (
	ErrWriteTokens    = errors.New("failed to write tokens")
	ErrWriteTokenFile = errors.New("failed to write token file")
	ErrWriteReport    = errors.New("failed to write load test report")
)

// Load test errors.
var (
	ErrUnknownScenario   = errors.New("unknown load scenario")
	ErrNoScenarios       = errors.New("no load scenarios selected")
	ErrInvalidScenario   = errors.New("invalid load scenario")
	ErrChecksFailed      = errors.New("load test checks failed")
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	ErrWorkerPool        = errors.New("failed to create worker pool")
)
