package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/anhqhe/orderfood/internal/domain"
	"github.com/anhqhe/orderfood/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockAuthAPI struct {
	loginFn    func(ctx context.Context, email, password string) (*domain.User, string, error)
	registerFn func(ctx context.Context, name, email, phone, password string) (*domain.User, string, error)
	meFn       func(ctx context.Context) (*domain.User, error)
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return nil, "", fmt.Errorf("not implemented")
}

func (m *mockAuthAPI) Register(ctx context.Context, name, email, phone, password string) (*domain.User, string, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, name, email, phone, password)
	}
	return nil, "", fmt.Errorf("not implemented")
}

func (m *mockAuthAPI) Me(ctx context.Context) (*domain.User, error) {
	if m.meFn != nil {
		return m.meFn(ctx)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockCredentialStore struct {
	token     string
	saveErr   error
	loadErr   error
	deleteErr error
}

func (m *mockCredentialStore) SaveToken(token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *mockCredentialStore) LoadToken() (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	if m.token == "" {
		return "", storage.ErrNotFound
	}
	return m.token, nil
}

func (m *mockCredentialStore) DeleteToken() error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.token = ""
	return nil
}

type mockUserStore struct {
	user      *domain.User
	saveErr   error
	loadErr   error
	deleteErr error
}

func (m *mockUserStore) SaveUser(user *domain.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.user = user
	return nil
}

func (m *mockUserStore) LoadUser() (*domain.User, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.user == nil {
		return nil, storage.ErrNotFound
	}
	return m.user, nil
}

func (m *mockUserStore) DeleteUser() error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.user = nil
	return nil
}

func testUser(role domain.Role) *domain.User {
	return &domain.User{ID: "u1", Name: "A", Email: "a@b.com", Phone: "123", Role: role}
}

// --- Restore ---

func TestRestore_ValidPersistedSession(t *testing.T) {
	creds := &mockCredentialStore{token: "tok1"}
	users := &mockUserStore{user: testUser(domain.RoleAdmin)}
	m := NewManager(&mockAuthAPI{}, creds, users)

	assert.Equal(t, StatusLoading, m.Snapshot().Status)

	m.Restore()

	assert.True(t, m.IsAuthenticated())
	assert.True(t, m.IsAdmin())
	assert.Equal(t, "tok1", m.Token())
}

func TestRestore_TokenWithoutUser(t *testing.T) {
	creds := &mockCredentialStore{token: "tok1"}
	users := &mockUserStore{}
	m := NewManager(&mockAuthAPI{}, creds, users)

	m.Restore()

	assert.False(t, m.IsAuthenticated())
	assert.Equal(t, StatusUnauthenticated, m.Snapshot().Status)
}

func TestRestore_UserWithoutToken(t *testing.T) {
	creds := &mockCredentialStore{}
	users := &mockUserStore{user: testUser(domain.RoleUser)}
	m := NewManager(&mockAuthAPI{}, creds, users)

	m.Restore()

	assert.False(t, m.IsAuthenticated())
}

func TestRestore_StorageFailureDegradesToLoggedOut(t *testing.T) {
	creds := &mockCredentialStore{loadErr: errors.New("disk fault")}
	users := &mockUserStore{user: testUser(domain.RoleUser)}
	m := NewManager(&mockAuthAPI{}, creds, users)

	m.Restore()

	assert.Equal(t, StatusUnauthenticated, m.Snapshot().Status)
	assert.False(t, m.IsAuthenticated())
}

func TestRestore_FileBackedStores(t *testing.T) {
	dir := t.TempDir()
	creds := storage.NewCredentialFile(dir, storage.NoopCipher{})
	users := storage.NewUserFile(dir)

	require.NoError(t, creds.SaveToken("tok1"))
	require.NoError(t, users.SaveUser(testUser(domain.RoleUser)))

	m := NewManager(&mockAuthAPI{}, creds, users)
	m.Restore()

	assert.True(t, m.IsAuthenticated())
	assert.False(t, m.IsAdmin())
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	creds := &mockCredentialStore{}
	users := &mockUserStore{}
	api := &mockAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			assert.Equal(t, "a@b.com", email)
			assert.Equal(t, "secret1", password)
			return &domain.User{ID: "u1", Name: "A", Role: domain.RoleUser}, "tok1", nil
		},
	}
	m := NewManager(api, creds, users)
	m.Restore()

	user, err := m.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "u1", user.ID)
	assert.True(t, m.IsAuthenticated())
	assert.False(t, m.IsAdmin())
	assert.Equal(t, "tok1", creds.token, "token must be persisted")
	assert.Equal(t, "u1", users.user.ID, "user record must be persisted")
}

func TestLogin_ServerRejectionLeavesStateUntouched(t *testing.T) {
	creds := &mockCredentialStore{token: "old-token"}
	users := &mockUserStore{user: testUser(domain.RoleUser)}
	api := &mockAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return nil, "", errors.New("invalid credentials")
		},
	}
	m := NewManager(api, creds, users)
	m.Restore()

	_, err := m.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)

	assert.True(t, m.IsAuthenticated(), "previous session must survive a failed login")
	assert.Equal(t, "old-token", m.Token())
	assert.Equal(t, "old-token", creds.token)
}

func TestLogin_PersistFailureRollsBackToken(t *testing.T) {
	creds := &mockCredentialStore{}
	users := &mockUserStore{saveErr: errors.New("disk full")}
	api := &mockAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return testUser(domain.RoleUser), "tok1", nil
		},
	}
	m := NewManager(api, creds, users)
	m.Restore()

	_, err := m.Login(context.Background(), "a@b.com", "secret1")
	require.Error(t, err)

	assert.Empty(t, creds.token, "token must be rolled back when user persist fails")
	assert.False(t, m.IsAuthenticated())
}

func TestLogin_IncompleteServerResponse(t *testing.T) {
	api := &mockAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return testUser(domain.RoleUser), "", nil // token missing
		},
	}
	m := NewManager(api, &mockCredentialStore{}, &mockUserStore{})
	m.Restore()

	_, err := m.Login(context.Background(), "a@b.com", "secret1")
	require.Error(t, err)
	assert.False(t, m.IsAuthenticated())
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	creds := &mockCredentialStore{}
	users := &mockUserStore{}
	api := &mockAuthAPI{
		registerFn: func(ctx context.Context, name, email, phone, password string) (*domain.User, string, error) {
			return &domain.User{ID: "u2", Name: name, Email: email, Phone: phone, Role: domain.RoleUser}, "tok2", nil
		},
	}
	m := NewManager(api, creds, users)
	m.Restore()

	user, err := m.Register(context.Background(), "B", "b@c.com", "456", "secret2")
	require.NoError(t, err)

	assert.Equal(t, "u2", user.ID)
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "tok2", creds.token)
}

// --- Logout ---

func TestLogout_ClearsSession(t *testing.T) {
	creds := &mockCredentialStore{token: "tok1"}
	users := &mockUserStore{user: testUser(domain.RoleUser)}
	m := NewManager(&mockAuthAPI{}, creds, users)
	m.Restore()

	require.NoError(t, m.Logout())

	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, creds.token)
	assert.Nil(t, users.user)
}

func TestLogout_IdempotentWhenLoggedOut(t *testing.T) {
	m := NewManager(&mockAuthAPI{}, &mockCredentialStore{}, &mockUserStore{})
	m.Restore()

	require.NoError(t, m.Logout())
	require.NoError(t, m.Logout())

	assert.Equal(t, StatusUnauthenticated, m.Snapshot().Status)
}

// --- Invalidate (401) ---

func TestInvalidate_ClearsSessionEvenOnStorageFailure(t *testing.T) {
	creds := &mockCredentialStore{token: "tok1", deleteErr: errors.New("disk fault")}
	users := &mockUserStore{user: testUser(domain.RoleUser)}
	m := NewManager(&mockAuthAPI{}, creds, users)
	m.Restore()

	m.Invalidate()

	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, m.Token())
}

// --- Refresh ---

func TestRefresh_UpdatesUserRecord(t *testing.T) {
	creds := &mockCredentialStore{token: "tok1"}
	users := &mockUserStore{user: testUser(domain.RoleUser)}
	api := &mockAuthAPI{
		meFn: func(ctx context.Context) (*domain.User, error) {
			return &domain.User{ID: "u1", Name: "Renamed", Role: domain.RoleAdmin}, nil
		},
	}
	m := NewManager(api, creds, users)
	m.Restore()

	require.NoError(t, m.Refresh(context.Background()))

	assert.Equal(t, "Renamed", m.Snapshot().User.Name)
	assert.True(t, m.IsAdmin())
	assert.Equal(t, "tok1", m.Token(), "token must survive a refresh")
}

func TestRefresh_RequiresAuthentication(t *testing.T) {
	m := NewManager(&mockAuthAPI{}, &mockCredentialStore{}, &mockUserStore{})
	m.Restore()

	err := m.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestRefresh_FailureLeavesSessionUnchanged(t *testing.T) {
	creds := &mockCredentialStore{token: "tok1"}
	users := &mockUserStore{user: testUser(domain.RoleUser)}
	api := &mockAuthAPI{
		meFn: func(ctx context.Context) (*domain.User, error) {
			return nil, errors.New("network down")
		},
	}
	m := NewManager(api, creds, users)
	m.Restore()

	require.Error(t, m.Refresh(context.Background()))
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "A", m.Snapshot().User.Name)
}

// --- Subscriptions ---

func TestSubscribe_NotifiedOnTransitions(t *testing.T) {
	creds := &mockCredentialStore{}
	users := &mockUserStore{}
	api := &mockAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return testUser(domain.RoleUser), "tok1", nil
		},
	}
	m := NewManager(api, creds, users)

	var seen []Status
	unsubscribe := m.Subscribe(func(s Snapshot) {
		seen = append(seen, s.Status)
	})

	m.Restore()
	_, err := m.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, m.Logout())

	assert.Equal(t, []Status{StatusUnauthenticated, StatusAuthenticated, StatusUnauthenticated}, seen)

	unsubscribe()
	_, err = m.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Len(t, seen, 3, "no notifications after unsubscribe")
}
