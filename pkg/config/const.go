package config

import "time"

const (
	// EnvPrefix prefixes every environment variable testkit reads on its own.
	EnvPrefix = "TESTKIT"

	// ConfigFileName is the config file searched for in the home and working directories.
	ConfigFileName = "testkit.yaml"

	// ConfigPathEnvVar points at a directory or file holding the configuration.
	ConfigPathEnvVar = "TESTKIT_CONFIG_PATH"

	homeConfigDir = ".testkit"
)

// Defaults shared by flags and viper.
const (
	DefaultRegion           = "us-east-1"
	DefaultSignatureVersion = "v4"
	DefaultRetryMaxAttempts = 10
	DefaultRetryMode        = "standard"
	DefaultOutputFormat     = "text"
	DefaultLogsLevel        = "Info"
	DefaultLogsFile         = "/dev/stderr"
	DefaultPasswordLength   = 24
	DefaultLoadRate         = 10
	DefaultLoadTimeUnit     = time.Second
	DefaultLoadDuration     = 20 * time.Second
	DefaultLoadVUs          = 10
	DefaultLoadTimeout      = 30 * time.Second
)

// Configuration keys.
const (
	KeyLogsLevel = "logs.level"
	KeyLogsFile  = "logs.file"

	KeyAWSProfile          = "aws.profile"
	KeyAWSRegion           = "aws.region"
	KeyAWSSignatureVersion = "aws.signature_version"
	KeyAWSEndpointURL      = "aws.endpoint_url"
	KeyAWSRetryMaxAttempts = "aws.retry.max_attempts"
	KeyAWSRetryMode        = "aws.retry.mode"
	KeyAWSAccessKeyID      = "aws.access_key_id"
	KeyAWSSecretAccessKey  = "aws.secret_access_key"
	KeyAWSSessionToken     = "aws.session_token"

	KeyCognitoUserPoolID   = "cognito.user_pool_id"
	KeyCognitoClientID     = "cognito.client_id"
	KeyCognitoClientSecret = "cognito.client_secret"
	KeyCognitoUsername     = "cognito.username"

	KeyPasswordValue          = "password.value"
	KeyPasswordKeyringService = "password.keyring_service"
	KeyPasswordGenerate       = "password.generate"
	KeyPasswordSave           = "password.save"
	KeyPasswordLength         = "password.generated_length"

	KeyOutputFormat    = "output.format"
	KeyOutputTokenFile = "output.token_file"

	KeyLoadDomain       = "load.domain"
	KeyLoadToken        = "load.token"
	KeyLoadScenarios    = "load.scenarios"
	KeyLoadRate         = "load.rate"
	KeyLoadTimeUnit     = "load.time_unit"
	KeyLoadDuration     = "load.duration"
	KeyLoadVUs          = "load.vus"
	KeyLoadTimeout      = "load.timeout"
	KeyLoadStrict       = "load.strict"
	KeyLoadInsecureHTTP = "load.insecure_http"
)
