// Package keyring persists the session token pair in the operating
// system's secret store (Keychain on macOS, Secret Service on Linux,
// Credential Manager on Windows).
package keyring

import (
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/gaulatti/cirrus/internal/common"
)

// Store is durable key/value storage for the access and refresh tokens.
// Absent tokens are reported as common.ErrNotFound.
type Store interface {
	Save(access, refresh string) error
	Access() (string, error)
	Refresh() (string, error)
	DeleteAll() error
}

// SystemStore keeps tokens under a fixed keyring service identifier.
type SystemStore struct {
	service string
}

// NewSystemStore returns a Store backed by the OS keyring.
func NewSystemStore() *SystemStore {
	return &SystemStore{service: common.KeyringService}
}

// Save writes the token pair. An empty refresh token removes any
// previously stored refresh token, so a stale one can never be replayed
// against a newer session.
func (s *SystemStore) Save(access, refresh string) error {
	if err := gokeyring.Set(s.service, common.KeyringAccessAccount, access); err != nil {
		return fmt.Errorf("saving access token: %w", err)
	}

	if refresh == "" {
		if err := gokeyring.Delete(s.service, common.KeyringRefreshAccount); err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
			return fmt.Errorf("clearing refresh token: %w", err)
		}
		return nil
	}

	if err := gokeyring.Set(s.service, common.KeyringRefreshAccount, refresh); err != nil {
		return fmt.Errorf("saving refresh token: %w", err)
	}
	return nil
}

// Access returns the stored access token.
func (s *SystemStore) Access() (string, error) {
	return s.get(common.KeyringAccessAccount)
}

// Refresh returns the stored refresh token.
func (s *SystemStore) Refresh() (string, error) {
	return s.get(common.KeyringRefreshAccount)
}

func (s *SystemStore) get(account string) (string, error) {
	v, err := gokeyring.Get(s.service, account)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("reading %s: %w", account, err)
	}
	return v, nil
}

// DeleteAll removes both tokens. Missing entries are not errors, so the
// call is idempotent.
func (s *SystemStore) DeleteAll() error {
	for _, account := range []string{common.KeyringAccessAccount, common.KeyringRefreshAccount} {
		if err := gokeyring.Delete(s.service, account); err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
			return fmt.Errorf("deleting %s: %w", account, err)
		}
	}
	return nil
}
