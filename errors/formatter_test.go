package errors

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestDefaultFormatterConfig(t *testing.T) {
	t.Setenv("TESTKIT_VERBOSE_ERRORS", "")
	config := DefaultFormatterConfig()

	assert.False(t, config.Verbose)
	assert.Equal(t, "auto", config.Color)
	assert.Equal(t, 80, config.MaxLineLength)
}

func TestDefaultFormatterConfig_VerboseFromEnv(t *testing.T) {
	t.Setenv("TESTKIT_VERBOSE_ERRORS", "true")
	assert.True(t, DefaultFormatterConfig().Verbose)
}

func TestFormat_NilError(t *testing.T) {
	assert.Empty(t, Format(nil, DefaultFormatterConfig()))
}

func TestFormat_SimpleError(t *testing.T) {
	result := Format(errors.New("test error"), FormatterConfig{Color: "never", MaxLineLength: 80})

	assert.Contains(t, result, "test error")
	assert.NotContains(t, result, "💡")
}

func TestFormat_ErrorWithHints(t *testing.T) {
	err := Build(ErrNotAuthorized).
		WithHint("Check the password").
		WithHint("Enable USER_PASSWORD_AUTH on the app client").
		Err()

	result := Format(err, FormatterConfig{Color: "never", MaxLineLength: 80})

	assert.Contains(t, result, "not authorized")
	assert.Contains(t, result, "Check the password")
	assert.Contains(t, result, "Enable USER_PASSWORD_AUTH on the app client")
	assert.Equal(t, 2, strings.Count(result, "💡"))
}

func TestFormat_LongErrorMessage(t *testing.T) {
	longMsg := "This is a very long error message that exceeds the maximum line length and should be wrapped to multiple lines"

	result := Format(errors.New(longMsg), FormatterConfig{Color: "never", MaxLineLength: 40})

	for _, line := range strings.Split(result, "\n") {
		assert.LessOrEqual(t, len(line), 40)
	}
}

func TestFormat_WithExplanation(t *testing.T) {
	err := Build(ErrAuthChallenge).
		WithExplanation("Cognito asked for a new password").
		Err()

	result := Format(err, FormatterConfig{Color: "never", MaxLineLength: 80})
	assert.Contains(t, result, "Cognito asked for a new password")
}

func TestFormat_VerboseWithContext(t *testing.T) {
	err := Build(ErrUserNotFound).
		WithContext("user_pool", "us-east-1_pool").
		WithContext("username", "tester").
		WithHint("Check the username").
		Err()

	verbose := Format(err, FormatterConfig{Verbose: true, Color: "never", MaxLineLength: 80})
	assert.Contains(t, verbose, "Context")
	assert.Contains(t, verbose, "us-east-1_pool")
	assert.Contains(t, verbose, "tester")

	plain := Format(err, FormatterConfig{Color: "never", MaxLineLength: 80})
	assert.NotContains(t, plain, "Context")
}

func TestShouldUseColor(t *testing.T) {
	assert.True(t, shouldUseColor("always"))
	assert.False(t, shouldUseColor("never"))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, shouldUseColor("auto"))
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{"fits", "short text", 20, "short text"},
		{"wraps", "a b c", 3, "a b\nc"},
		{"long word kept", "supercalifragilistic word", 5, "supercalifragilistic\nword"},
		{"default width", "one two", 0, "one two"},
		{"empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wrapText(tt.text, tt.width))
		})
	}
}

func TestFormatContextTable_NoContext(t *testing.T) {
	assert.Empty(t, formatContextTable(errors.New("test error"), false))
}

func TestFormatStackTrace(t *testing.T) {
	err := errors.New("test error")
	assert.Contains(t, formatStackTrace(err, false), "test error")
	assert.Contains(t, formatStackTrace(err, true), "test error")
}
