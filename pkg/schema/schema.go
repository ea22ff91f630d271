package schema

import "time"

// Configuration is the root of the testkit configuration.
// It is populated from defaults, an optional YAML file, the environment and flags.
type Configuration struct {
	Logs     Logs     `yaml:"logs" json:"logs" mapstructure:"logs"`
	AWS      AWS      `yaml:"aws" json:"aws" mapstructure:"aws"`
	Cognito  Cognito  `yaml:"cognito" json:"cognito" mapstructure:"cognito"`
	Password Password `yaml:"password" json:"password" mapstructure:"password"`
	Output   Output   `yaml:"output" json:"output" mapstructure:"output"`
	Load     Load     `yaml:"load" json:"load" mapstructure:"load"`
}

type Logs struct {
	Level string `yaml:"level" json:"level" mapstructure:"level"`
	File  string `yaml:"file" json:"file" mapstructure:"file"`
}

// AWS holds the SDK client settings. Credential resolution itself is left to the SDK.
type AWS struct {
	Profile          string `yaml:"profile" json:"profile" mapstructure:"profile"`
	Region           string `yaml:"region" json:"region" mapstructure:"region"`
	SignatureVersion string `yaml:"signature_version" json:"signature_version" mapstructure:"signature_version"`
	EndpointURL      string `yaml:"endpoint_url,omitempty" json:"endpoint_url,omitempty" mapstructure:"endpoint_url"`
	Retry            Retry  `yaml:"retry" json:"retry" mapstructure:"retry"`

	// Static credentials, mainly for local Cognito emulators.
	AccessKeyID     string `yaml:"access_key_id,omitempty" json:"-" mapstructure:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty" json:"-" mapstructure:"secret_access_key"`
	SessionToken    string `yaml:"session_token,omitempty" json:"-" mapstructure:"session_token"`
}

type Retry struct {
	MaxAttempts int    `yaml:"max_attempts" json:"max_attempts" mapstructure:"max_attempts"`
	Mode        string `yaml:"mode" json:"mode" mapstructure:"mode"`
}

// Cognito identifies the user pool, app client and test user.
type Cognito struct {
	UserPoolID   string `yaml:"user_pool_id" json:"user_pool_id" mapstructure:"user_pool_id"`
	ClientID     string `yaml:"client_id" json:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret,omitempty" json:"-" mapstructure:"client_secret"`
	Username     string `yaml:"username" json:"username" mapstructure:"username"`
}

// Password describes where the test user's password comes from.
type Password struct {
	Value           string `yaml:"value,omitempty" json:"-" mapstructure:"value"`
	KeyringService  string `yaml:"keyring_service,omitempty" json:"keyring_service,omitempty" mapstructure:"keyring_service"`
	Generate        bool   `yaml:"generate" json:"generate" mapstructure:"generate"`
	Save            bool   `yaml:"save" json:"save" mapstructure:"save"`
	GeneratedLength int    `yaml:"generated_length" json:"generated_length" mapstructure:"generated_length"`
}

type Output struct {
	Format    string `yaml:"format" json:"format" mapstructure:"format"`
	TokenFile string `yaml:"token_file,omitempty" json:"token_file,omitempty" mapstructure:"token_file"`
}

// Load configures the HTTP load scenarios run against the cluster.
type Load struct {
	Domain       string        `yaml:"domain" json:"domain" mapstructure:"domain"`
	Token        string        `yaml:"token,omitempty" json:"-" mapstructure:"token"`
	Scenarios    []string      `yaml:"scenarios" json:"scenarios" mapstructure:"scenarios"`
	Rate         int           `yaml:"rate" json:"rate" mapstructure:"rate"`
	TimeUnit     time.Duration `yaml:"time_unit" json:"time_unit" mapstructure:"time_unit"`
	Duration     time.Duration `yaml:"duration" json:"duration" mapstructure:"duration"`
	VUs          int           `yaml:"vus" json:"vus" mapstructure:"vus"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
	Strict       bool          `yaml:"strict" json:"strict" mapstructure:"strict"`
	InsecureHTTP bool          `yaml:"insecure_http" json:"insecure_http" mapstructure:"insecure_http"`
}
