// Package session owns the access/refresh token pair: it performs the
// login and refresh exchanges, decides when the access token is expired,
// and mirrors the pair to the credential store so a session survives
// process restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gaulatti/cirrus/internal/client/api"
	"github.com/gaulatti/cirrus/internal/client/keyring"
	"github.com/gaulatti/cirrus/internal/common"
	"github.com/gaulatti/cirrus/internal/logging"
)

// Session is the in-memory token pair. RefreshToken may be empty when
// the server issued none.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// Manager is the sole owner of session state in a process. All token
// acquisition should go through EnsureValidToken so concurrent callers
// do not issue redundant refresh exchanges.
type Manager struct {
	gateway api.Gateway
	store   keyring.Store
	log     logging.Logger

	now func() time.Time // test seam

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// New constructs a Manager backed by the given gateway and credential store.
func New(gw api.Gateway, store keyring.Store, log logging.Logger) *Manager {
	return &Manager{
		gateway: gw,
		store:   store,
		log:     log,
		now:     time.Now,
	}
}

// Login exchanges identifier/secret for a token pair, persists it, and
// adopts it as the current session.
func (m *Manager) Login(ctx context.Context, identifier, secret string) (Session, error) {
	creds, err := m.gateway.CreateSession(ctx, identifier, secret)
	if err != nil {
		return Session{}, fmt.Errorf("login: %w", err)
	}
	return m.adopt(ctx, creds.AccessJWT, creds.RefreshJWT), nil
}

// RefreshSession exchanges the refresh token for a new pair, persisting
// and adopting it exactly as Login does. Without a refresh token in
// memory or in the store it fails with common.ErrNoRefreshToken.
func (m *Manager) RefreshSession(ctx context.Context) (Session, error) {
	m.mu.Lock()
	refresh := m.refreshToken
	m.mu.Unlock()

	if refresh == "" {
		stored, err := m.store.Refresh()
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				m.log.Warn(ctx, "credential store read failed", "err", err)
			}
			return Session{}, common.ErrNoRefreshToken
		}
		refresh = stored
	}

	creds, err := m.gateway.RefreshSession(ctx, refresh)
	if err != nil {
		return Session{}, fmt.Errorf("refresh: %w", err)
	}

	m.log.Info(ctx, "session refreshed")
	return m.adopt(ctx, creds.AccessJWT, creds.RefreshJWT), nil
}

// adopt persists the pair and installs it as the in-memory session.
// A credential store failure is logged, not fatal: the session remains
// usable for this process, it just will not survive a restart.
func (m *Manager) adopt(ctx context.Context, access, refresh string) Session {
	if err := m.store.Save(access, refresh); err != nil {
		m.log.Warn(ctx, "persisting session to credential store failed", "err", err)
	}

	m.mu.Lock()
	m.accessToken = access
	m.refreshToken = refresh
	m.mu.Unlock()

	return Session{AccessToken: access, RefreshToken: refresh}
}

// EnsureValidToken returns a non-expired access token, loading one from
// the credential store and transparently refreshing when needed. When no
// usable token can be obtained it fails with common.ErrUnauthenticated.
func (m *Manager) EnsureValidToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	token := m.accessToken
	m.mu.Unlock()

	if token == "" {
		stored, err := m.store.Access()
		if err == nil {
			token = stored
			m.mu.Lock()
			m.accessToken = stored
			m.mu.Unlock()
		} else if !errors.Is(err, common.ErrNotFound) {
			m.log.Warn(ctx, "credential store read failed", "err", err)
		}
	}

	if token != "" && !Expired(token, m.now()) {
		return token, nil
	}

	if token != "" {
		m.log.Info(ctx, "access token expired, refreshing")
	}

	sess, err := m.RefreshSession(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}
	return sess.AccessToken, nil
}

// Logout clears the in-memory session and the stored credentials.
// Idempotent; storage failures are logged, never surfaced.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.accessToken = ""
	m.refreshToken = ""
	m.mu.Unlock()

	if err := m.store.DeleteAll(); err != nil {
		m.log.Warn(ctx, "clearing credential store failed", "err", err)
	}
}
