// Package tokens renders the Cognito token triple for people and scripts.
package tokens

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	"github.com/cloudposse/cluster-testkit/pkg/cognito"
	log "github.com/cloudposse/cluster-testkit/pkg/logger"
)

// Format is an output format for the token triple.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatEnv  Format = "env"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatEnv}

const tokenFileMode os.FileMode = 0o600

// Environment variable names written by the env format.
const (
	EnvIDToken      = "ID_TOKEN"
	EnvAccessToken  = "ACCESS_TOKEN"
	EnvRefreshToken = "REFRESH_TOKEN"
	// EnvToken carries the ID token for the load command.
	EnvToken = "TOKEN"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if format == "" {
		return FormatText, nil
	}
	if !lo.Contains(Formats, format) {
		return "", errUtils.Build(errUtils.ErrInvalidOutputFormat).
			WithHintf("Supported formats: %s", strings.Join(lo.Map(Formats, func(f Format, _ int) string { return string(f) }), ", ")).
			WithContext("format", name).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}
	return format, nil
}

// Write renders tokens to w in the given format.
func Write(w io.Writer, format Format, tokens *cognito.Tokens) error {
	var err error
	switch format {
	case FormatText, "":
		err = writeText(w, tokens)
	case FormatJSON:
		err = writeJSON(w, tokens)
	case FormatEnv:
		err = writeEnv(w, tokens)
	default:
		return errUtils.Build(errUtils.ErrInvalidOutputFormat).
			WithContext("format", string(format)).
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}
	if err != nil {
		return errUtils.Build(errUtils.ErrWriteTokens).WithCause(err).Err()
	}
	return nil
}

func writeText(w io.Writer, tokens *cognito.Tokens) error {
	_, err := fmt.Fprintf(w, "Authentication Successful!\nID Token: %s\nAccess Token: %s\nRefresh Token: %s\n",
		tokens.IDToken, tokens.AccessToken, tokens.RefreshToken)
	return err
}

func writeJSON(w io.Writer, tokens *cognito.Tokens) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokens)
}

func writeEnv(w io.Writer, tokens *cognito.Tokens) error {
	lines := []struct {
		name  string
		value string
	}{
		{EnvIDToken, tokens.IDToken},
		{EnvAccessToken, tokens.AccessToken},
		{EnvRefreshToken, tokens.RefreshToken},
		{EnvToken, tokens.IDToken},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "export %s=%s\n", line.name, shellQuote(line.value)); err != nil {
			return err
		}
	}
	return nil
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// WriteFile atomically writes tokens in env format to path with mode 0600,
// so the file can be sourced before running the load command.
func WriteFile(path string, tokens *cognito.Tokens) error {
	var sb strings.Builder
	if err := writeEnv(&sb, tokens); err != nil {
		return errUtils.Build(errUtils.ErrWriteTokenFile).WithCause(err).Err()
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errUtils.Build(errUtils.ErrWriteTokenFile).WithCause(err).WithContext("path", path).Err()
		}
	}

	if err := writeFileAtomic(path, []byte(sb.String()), tokenFileMode); err != nil {
		return errUtils.Build(errUtils.ErrWriteTokenFile).
			WithCause(err).
			WithContext("path", path).
			WithHint("Check that the token file directory is writable").
			Err()
	}

	log.Info("Wrote token file", "path", path)
	return nil
}
