package config

import (
	"strings"

	"github.com/spf13/viper"
)

// legacyEnvVars maps configuration keys to the unprefixed variables used by
// the existing cluster test scripts. The prefixed TESTKIT_* name always wins.
var legacyEnvVars = map[string][]string{
	KeyAWSProfile:        {"PROFILE"},
	KeyCognitoUserPoolID: {"SHARED_USER_POOL_ID"},
	KeyCognitoClientID:   {"SHARED_CLIENT_ID"},
	KeyCognitoUsername:   {"SHARED_USERNAME"},
	KeyPasswordValue:     {"TEST_PASSWORD"},
	KeyLoadDomain:        {"DOMAIN"},
	KeyLoadToken:         {"TOKEN"},
	KeyLoadScenarios:     {"SCENARIOS"},
}

var allKeys = []string{
	KeyLogsLevel, KeyLogsFile,
	KeyAWSProfile, KeyAWSRegion, KeyAWSSignatureVersion, KeyAWSEndpointURL,
	KeyAWSRetryMaxAttempts, KeyAWSRetryMode,
	KeyAWSAccessKeyID, KeyAWSSecretAccessKey, KeyAWSSessionToken,
	KeyCognitoUserPoolID, KeyCognitoClientID, KeyCognitoClientSecret, KeyCognitoUsername,
	KeyPasswordValue, KeyPasswordKeyringService, KeyPasswordGenerate, KeyPasswordSave, KeyPasswordLength,
	KeyOutputFormat, KeyOutputTokenFile,
	KeyLoadDomain, KeyLoadToken, KeyLoadScenarios, KeyLoadRate, KeyLoadTimeUnit,
	KeyLoadDuration, KeyLoadVUs, KeyLoadTimeout, KeyLoadStrict, KeyLoadInsecureHTTP,
}

// EnvVarName returns the TESTKIT_* variable for a configuration key.
func EnvVarName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// bindEnv binds every known key to its prefixed variable and any legacy names.
func bindEnv(v *viper.Viper) error {
	for _, key := range allKeys {
		args := append([]string{key, EnvVarName(key)}, legacyEnvVars[key]...)
		if err := v.BindEnv(args...); err != nil {
			return err
		}
	}
	return nil
}
