package secrets

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// ErrNotFound is returned by a Store when no secret exists for the key.
var ErrNotFound = errors.New("secret not found")

// Store reads and writes secrets keyed by service and user.
type Store interface {
	Get(service, user string) (string, error)
	Set(service, user, secret string) error
}

// systemKeyringStore implements Store using the system keyring via Zalando go-keyring.
type systemKeyringStore struct{}

// NewSystemKeyringStore returns a Store backed by the OS keyring
// (Keychain, Secret Service, Windows Credential Manager).
func NewSystemKeyringStore() Store {
	return systemKeyringStore{}
}

func (systemKeyringStore) Get(service, user string) (string, error) {
	secret, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	return secret, err
}

func (systemKeyringStore) Set(service, user, secret string) error {
	return keyring.Set(service, user, secret)
}
