package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	log "github.com/cloudposse/cluster-testkit/pkg/logger"
	"github.com/cloudposse/cluster-testkit/pkg/schema"
	"github.com/cloudposse/cluster-testkit/pkg/xdg"
)

// NewViper returns a viper instance with testkit defaults and environment bindings.
func NewViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaultConfiguration(v)
	if err := bindEnv(v); err != nil {
		return nil, errUtils.Build(errUtils.ErrLoadConfig).WithCause(err).Err()
	}
	return v, nil
}

// Load merges configuration files into v and decodes the result.
// Files are read from lower to higher priority:
// XDG config dir (~/.config/testkit/testkit.yaml), home dir (~/.testkit/testkit.yaml),
// current directory, TESTKIT_CONFIG_PATH, explicitPath.
// Environment variables and bound flags override every file.
func Load(v *viper.Viper, explicitPath string) (*schema.Configuration, error) {
	sources := []string{filepath.Join(xdg.ConfigDir(), ConfigFileName)}

	if home, err := os.UserHomeDir(); err == nil {
		sources = append(sources, filepath.Join(home, homeConfigDir, ConfigFileName))
	}
	if wd, err := os.Getwd(); err == nil {
		sources = append(sources, filepath.Join(wd, ConfigFileName))
	}
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		sources = append(sources, resolveConfigPath(envPath))
	}

	for _, path := range sources {
		if err := mergeConfigFile(v, path, false); err != nil {
			return nil, err
		}
	}

	if explicitPath != "" {
		if err := mergeConfigFile(v, resolveConfigPath(explicitPath), true); err != nil {
			return nil, err
		}
	}

	var cfg schema.Configuration
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, errUtils.Build(errUtils.ErrLoadConfig).WithCause(err).Err()
	}

	return &cfg, nil
}

// decodeHook converts env and flag strings into durations and lists.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// setDefaultConfiguration sets default configuration for the viper instance.
func setDefaultConfiguration(v *viper.Viper) {
	v.SetDefault(KeyLogsLevel, DefaultLogsLevel)
	v.SetDefault(KeyLogsFile, DefaultLogsFile)

	v.SetDefault(KeyAWSRegion, DefaultRegion)
	v.SetDefault(KeyAWSSignatureVersion, DefaultSignatureVersion)
	v.SetDefault(KeyAWSRetryMaxAttempts, DefaultRetryMaxAttempts)
	v.SetDefault(KeyAWSRetryMode, DefaultRetryMode)

	v.SetDefault(KeyPasswordLength, DefaultPasswordLength)

	v.SetDefault(KeyOutputFormat, DefaultOutputFormat)

	v.SetDefault(KeyLoadRate, DefaultLoadRate)
	v.SetDefault(KeyLoadTimeUnit, DefaultLoadTimeUnit)
	v.SetDefault(KeyLoadDuration, DefaultLoadDuration)
	v.SetDefault(KeyLoadVUs, DefaultLoadVUs)
	v.SetDefault(KeyLoadTimeout, DefaultLoadTimeout)
}

// resolveConfigPath accepts either a file or a directory containing testkit.yaml.
func resolveConfigPath(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, ConfigFileName)
	}
	return path
}

// mergeConfigFile merges a single YAML file into v.
// Missing files are skipped unless required is set.
func mergeConfigFile(v *viper.Viper, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			log.Trace("Config file not found", "file", path)
			return nil
		}
		return errUtils.Build(errUtils.ErrLoadConfig).
			WithCause(err).
			WithHintf("Check that the config file `%s` exists and is readable", path).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return errUtils.Build(errUtils.ErrLoadConfig).
			WithCause(fmt.Errorf("%s: %w", path, err)).
			WithHint("The config file must be valid YAML").
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}

	log.Debug("Merged config file", "file", path)
	return nil
}
