// Package session owns the authenticated-user lifecycle.
//
// The Manager is the single writer of the (user, token) pair. It hydrates once
// from local storage at startup, replaces the pair wholesale on login/register,
// clears it wholesale on logout or 401 invalidation, and notifies subscribers
// on every published transition. Callers only ever observe complete states:
// loading, authenticated, or unauthenticated.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/anhqhe/orderfood/internal/domain"
	apperrors "github.com/anhqhe/orderfood/internal/errors"
)

// Status is the coarse authentication state.
type Status int

const (
	// StatusLoading means Restore has not completed yet. Callers must treat
	// this as distinct from unauthenticated and hold off authenticated requests.
	StatusLoading Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session at one point in time.
// User and Token are set together or not at all.
type Snapshot struct {
	Status Status
	User   *domain.User
	Token  string
}

// Authenticated reports whether the snapshot holds a complete session.
func (s Snapshot) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil && s.Token != ""
}

// Admin reports whether the snapshot belongs to an admin user.
func (s Snapshot) Admin() bool {
	return s.Authenticated() && s.User.IsAdmin()
}

// Manager is the single source of truth for who is logged in.
type Manager struct {
	api   domain.AuthAPI
	creds domain.CredentialStore
	users domain.UserStore

	mu      sync.Mutex
	snap    Snapshot
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewManager creates a Manager in the loading state. Call Restore before
// serving any screen.
func NewManager(api domain.AuthAPI, creds domain.CredentialStore, users domain.UserStore) *Manager {
	return &Manager{
		api:   api,
		creds: creds,
		users: users,
		snap:  Snapshot{Status: StatusLoading},
		subs:  make(map[int]func(Snapshot)),
	}
}

// Restore hydrates the session from local storage. Missing or unreadable
// state degrades to unauthenticated; it never returns an error and never
// blocks startup on anything but two local file reads.
func (m *Manager) Restore() {
	token, tokenErr := m.creds.LoadToken()
	user, userErr := m.users.LoadUser()

	if tokenErr != nil || userErr != nil || token == "" || user == nil {
		if tokenErr != nil || userErr != nil {
			slog.Debug("No stored session restored", "token_err", tokenErr, "user_err", userErr)
		}
		m.publish(Snapshot{Status: StatusUnauthenticated})
		return
	}

	m.publish(Snapshot{Status: StatusAuthenticated, User: user, Token: token})
}

// Login authenticates against the backend, persists the session, and
// publishes it. On any failure the previous state is left untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, token, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := m.persist(user, token); err != nil {
		return nil, err
	}

	m.publish(Snapshot{Status: StatusAuthenticated, User: user, Token: token})
	return user, nil
}

// Register provisions a new identity and publishes it exactly like Login.
func (m *Manager) Register(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	user, token, err := m.api.Register(ctx, name, email, phone, password)
	if err != nil {
		return nil, err
	}

	if err := m.persist(user, token); err != nil {
		return nil, err
	}

	m.publish(Snapshot{Status: StatusAuthenticated, User: user, Token: token})
	return user, nil
}

// Logout erases the persisted session and publishes the unauthenticated
// state. Safe to call when already logged out.
func (m *Manager) Logout() error {
	if err := m.creds.DeleteToken(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	if err := m.users.DeleteUser(); err != nil {
		return fmt.Errorf("failed to clear user record: %w", err)
	}

	m.publish(Snapshot{Status: StatusUnauthenticated})
	return nil
}

// Refresh re-reads the user record for the current token and re-persists it.
// Failure leaves the session unchanged.
func (m *Manager) Refresh(ctx context.Context) error {
	snap := m.Snapshot()
	if !snap.Authenticated() {
		return domain.ErrNotAuthenticated
	}

	user, err := m.api.Me(ctx)
	if err != nil {
		return err
	}

	if err := m.users.SaveUser(user); err != nil {
		return fmt.Errorf("failed to persist refreshed user: %w", err)
	}

	m.publish(Snapshot{Status: StatusAuthenticated, User: user, Token: snap.Token})
	return nil
}

// Invalidate clears the session after the server rejected the token (401).
// Storage failures are logged, not surfaced: the in-memory state must drop
// regardless.
func (m *Manager) Invalidate() {
	if err := m.creds.DeleteToken(); err != nil {
		slog.Warn("Failed to clear credentials on invalidation", "error", err)
	}
	if err := m.users.DeleteUser(); err != nil {
		slog.Warn("Failed to clear user record on invalidation", "error", err)
	}
	m.publish(Snapshot{Status: StatusUnauthenticated})
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// IsAuthenticated reports whether a complete session is published.
func (m *Manager) IsAuthenticated() bool {
	return m.Snapshot().Authenticated()
}

// IsAdmin reports whether the current user holds the admin role.
func (m *Manager) IsAdmin() bool {
	return m.Snapshot().Admin()
}

// Token returns the current bearer token, or "" when unauthenticated.
// Shaped to plug straight into the API client's token source.
func (m *Manager) Token() string {
	return m.Snapshot().Token
}

// Subscribe registers fn for session transitions and returns an unsubscribe
// func. fn is called outside the manager's lock.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// persist writes token then user. Either both land or neither: a failed user
// write rolls the token back so storage never holds half a session.
func (m *Manager) persist(user *domain.User, token string) error {
	if user == nil || token == "" {
		return apperrors.ServerError(apperrors.FallbackMessage, fmt.Errorf("server returned incomplete session"))
	}

	if err := m.creds.SaveToken(token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := m.users.SaveUser(user); err != nil {
		if rollbackErr := m.creds.DeleteToken(); rollbackErr != nil {
			slog.Error("Failed to roll back token after user persist failure", "error", rollbackErr)
		}
		return fmt.Errorf("failed to persist user record: %w", err)
	}
	return nil
}

func (m *Manager) publish(snap Snapshot) {
	m.mu.Lock()
	m.snap = snap
	listeners := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
