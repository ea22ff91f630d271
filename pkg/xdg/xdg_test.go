package xdg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("TESTKIT_XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempHome, ".config"))

	assert.Equal(t, filepath.Join(tempHome, ".config", "testkit"), ConfigDir())
}

func TestConfigDir_TestkitOverride(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempHome, ".config"))
	t.Setenv("TESTKIT_XDG_CONFIG_HOME", filepath.Join(tempHome, "custom"))

	assert.Equal(t, filepath.Join(tempHome, "custom", "testkit"), ConfigDir())
}

func TestConfigDir_PlatformDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("TESTKIT_XDG_CONFIG_HOME", "")

	// Linux: ~/.config/testkit, macOS: ~/Library/Application Support/testkit,
	// Windows: %APPDATA%\testkit.
	dir := ConfigDir()
	assert.Equal(t, "testkit", filepath.Base(dir))
	assert.True(t, filepath.IsAbs(dir))
}
