// Package secrets resolves the test user password from an explicit value,
// the system keyring, or a freshly generated value.
package secrets

import (
	"errors"
	"strings"
	"unicode"

	"github.com/sethvargo/go-password/password"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	log "github.com/cloudposse/cluster-testkit/pkg/logger"
	"github.com/cloudposse/cluster-testkit/pkg/schema"
)

// Source names where a password came from.
type Source string

const (
	SourceExplicit  Source = "explicit"
	SourceKeyring   Source = "keyring"
	SourceGenerated Source = "generated"
)

const (
	// MinGeneratedLength is the shortest password Generate produces.
	MinGeneratedLength = 20

	generatedDigits  = 4
	generatedSymbols = 4
	generateAttempts = 10
)

// Result is a resolved password and its source.
type Result struct {
	Password string
	Source   Source
}

// Resolver picks the password for a user.
type Resolver struct {
	store    Store
	generate func(length int) (string, error)
}

// NewResolver returns a Resolver that uses store for keyring lookups and saves.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store, generate: Generate}
}

// Resolve returns the password for username using, in order, the explicit
// value, the keyring entry under settings.KeyringService, and generation.
// When settings.Save is set, a password that did not come from the keyring
// is stored there.
func (r *Resolver) Resolve(settings schema.Password, username string) (*Result, error) {
	result, err := r.lookup(settings, username)
	if err != nil {
		return nil, err
	}

	log.Debug("Resolved password", "username", username, "source", result.Source)

	if settings.Save && result.Source != SourceKeyring {
		if err := r.save(settings.KeyringService, username, result.Password); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (r *Resolver) lookup(settings schema.Password, username string) (*Result, error) {
	if settings.Value != "" {
		return &Result{Password: settings.Value, Source: SourceExplicit}, nil
	}

	if settings.KeyringService != "" {
		secret, err := r.store.Get(settings.KeyringService, username)
		switch {
		case err == nil && secret != "":
			return &Result{Password: secret, Source: SourceKeyring}, nil
		case err == nil, errors.Is(err, ErrNotFound):
			log.Debug("No password in keyring", "service", settings.KeyringService, "username", username)
		case settings.Generate:
			log.Warn("System keyring not available, generating a password", "error", err)
		default:
			return nil, errUtils.Build(errUtils.ErrKeyringUnavailable).
				WithCause(err).
				WithHint("Pass --password or set TEST_PASSWORD when no system keyring is available").
				WithContext("service", settings.KeyringService).
				Err()
		}
	}

	if settings.Generate {
		generated, err := r.generate(settings.GeneratedLength)
		if err != nil {
			return nil, err
		}
		return &Result{Password: generated, Source: SourceGenerated}, nil
	}

	return nil, errUtils.Build(errUtils.ErrPasswordNotProvided).
		WithHint("Pass --password or set TEST_PASSWORD").
		WithHint("Use --password-keyring-service to read it from the system keyring").
		WithHint("Use --generate-password to create one").
		WithExitCode(errUtils.ExitCodeUsage).
		Err()
}

func (r *Resolver) save(service, username, secret string) error {
	if service == "" {
		return errUtils.Build(errUtils.ErrMissingParameter).
			WithExplanation("Saving the password needs a keyring service name").
			WithHint("Pass --password-keyring-service together with --save-password").
			WithExitCode(errUtils.ExitCodeUsage).
			Err()
	}

	if err := r.store.Set(service, username, secret); err != nil {
		return errUtils.Build(errUtils.ErrKeyringStore).
			WithCause(err).
			WithContext("service", service).
			Err()
	}

	log.Info("Saved password to keyring", "service", service, "username", username)
	return nil
}

// Generate returns a random password of at least MinGeneratedLength characters
// containing digits, symbols, and both upper and lower case letters, which
// satisfies the default Cognito password policy.
func Generate(length int) (string, error) {
	if length < MinGeneratedLength {
		length = MinGeneratedLength
	}

	for range generateAttempts {
		generated, err := password.Generate(length, generatedDigits, generatedSymbols, false, true)
		if err != nil {
			return "", errUtils.Build(errUtils.ErrPasswordGeneration).WithCause(err).Err()
		}
		if hasUpperAndLower(generated) {
			return generated, nil
		}
	}

	return "", errUtils.Build(errUtils.ErrPasswordGeneration).
		WithExplanationf("No password with mixed case after %d attempts", generateAttempts).
		Err()
}

func hasUpperAndLower(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0 && strings.IndexFunc(s, unicode.IsLower) >= 0
}
