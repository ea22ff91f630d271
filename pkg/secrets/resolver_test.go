package secrets

import (
	"errors"
	"strings"
	"testing"
	"unicode"

	"github.com/sethvargo/go-password/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	"github.com/cloudposse/cluster-testkit/pkg/schema"
)

const (
	testService  = "testkit-test"
	testUsername = "test-user"
)

func newMockResolver(t *testing.T) *Resolver {
	t.Helper()
	keyring.MockInit()
	return NewResolver(NewSystemKeyringStore())
}

func TestResolve_Explicit(t *testing.T) {
	r := newMockResolver(t)
	require.NoError(t, keyring.Set(testService, testUsername, "from-keyring"))

	result, err := r.Resolve(schema.Password{Value: "explicit-Pass-1!", KeyringService: testService}, testUsername)
	require.NoError(t, err)
	assert.Equal(t, "explicit-Pass-1!", result.Password)
	assert.Equal(t, SourceExplicit, result.Source)
}

func TestResolve_Keyring(t *testing.T) {
	r := newMockResolver(t)
	require.NoError(t, keyring.Set(testService, testUsername, "from-keyring"))

	result, err := r.Resolve(schema.Password{KeyringService: testService, Generate: true}, testUsername)
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", result.Password)
	assert.Equal(t, SourceKeyring, result.Source)
}

func TestResolve_KeyringMissFallsBackToGenerate(t *testing.T) {
	r := newMockResolver(t)

	result, err := r.Resolve(schema.Password{KeyringService: testService, Generate: true, GeneratedLength: 24}, testUsername)
	require.NoError(t, err)
	assert.Equal(t, SourceGenerated, result.Source)
	assert.Len(t, result.Password, 24)
}

func TestResolve_GenerateAndSave(t *testing.T) {
	r := newMockResolver(t)

	result, err := r.Resolve(schema.Password{
		KeyringService: testService,
		Generate:       true,
		Save:           true,
	}, testUsername)
	require.NoError(t, err)

	stored, err := keyring.Get(testService, testUsername)
	require.NoError(t, err)
	assert.Equal(t, result.Password, stored)

	// A second run reads the saved password back.
	again, err := r.Resolve(schema.Password{KeyringService: testService, Generate: true, Save: true}, testUsername)
	require.NoError(t, err)
	assert.Equal(t, SourceKeyring, again.Source)
	assert.Equal(t, result.Password, again.Password)
}

func TestResolve_SaveWithoutService(t *testing.T) {
	r := newMockResolver(t)

	_, err := r.Resolve(schema.Password{Value: "explicit-Pass-1!", Save: true}, testUsername)
	assert.ErrorIs(t, err, errUtils.ErrMissingParameter)
}

func TestResolve_NoSource(t *testing.T) {
	r := newMockResolver(t)

	_, err := r.Resolve(schema.Password{}, testUsername)
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrPasswordNotProvided)
	assert.Equal(t, errUtils.ExitCodeUsage, errUtils.GetExitCode(err))
}

func TestResolve_KeyringUnavailable(t *testing.T) {
	keyring.MockInitWithError(errors.New("dbus: no session bus"))
	t.Cleanup(keyring.MockInit)
	r := NewResolver(NewSystemKeyringStore())

	_, err := r.Resolve(schema.Password{KeyringService: testService}, testUsername)
	assert.ErrorIs(t, err, errUtils.ErrKeyringUnavailable)

	result, err := r.Resolve(schema.Password{KeyringService: testService, Generate: true}, testUsername)
	require.NoError(t, err)
	assert.Equal(t, SourceGenerated, result.Source)
}

func TestResolve_GenerateError(t *testing.T) {
	r := newMockResolver(t)
	r.generate = func(int) (string, error) {
		return "", errUtils.Build(errUtils.ErrPasswordGeneration).Err()
	}

	_, err := r.Resolve(schema.Password{Generate: true}, testUsername)
	assert.ErrorIs(t, err, errUtils.ErrPasswordGeneration)
}

func TestGenerate(t *testing.T) {
	for range 20 {
		generated, err := Generate(0)
		require.NoError(t, err)

		assert.Len(t, generated, MinGeneratedLength)
		assert.True(t, strings.IndexFunc(generated, unicode.IsDigit) >= 0, "missing digit in %q", generated)
		assert.True(t, strings.IndexFunc(generated, unicode.IsUpper) >= 0, "missing upper case in %q", generated)
		assert.True(t, strings.IndexFunc(generated, unicode.IsLower) >= 0, "missing lower case in %q", generated)
		assert.True(t, strings.ContainsAny(generated, password.Symbols), "missing symbol in %q", generated)
	}
}
