// Package xdg locates testkit directories following XDG Base Directory conventions.
package xdg

import (
	"path/filepath"

	adrg "github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const appName = "testkit"

// ConfigDir returns the testkit config directory. TESTKIT_XDG_CONFIG_HOME
// overrides XDG_CONFIG_HOME; without either, the platform default from
// github.com/adrg/xdg is used. The directory is not created.
func ConfigDir() string {
	v := viper.New()
	if err := v.BindEnv("XDG_CONFIG_HOME", "TESTKIT_XDG_CONFIG_HOME", "XDG_CONFIG_HOME"); err == nil {
		if home := v.GetString("XDG_CONFIG_HOME"); home != "" {
			return filepath.Join(home, appName)
		}
	}

	// Pick up environment changes made after package init.
	adrg.Reload()
	return filepath.Join(adrg.ConfigHome, appName)
}
