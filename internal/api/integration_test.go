package api_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anhqhe/orderfood/internal/api"
	"github.com/anhqhe/orderfood/internal/cart"
	"github.com/anhqhe/orderfood/internal/config"
	"github.com/anhqhe/orderfood/internal/domain"
	apperrors "github.com/anhqhe/orderfood/internal/errors"
	"github.com/anhqhe/orderfood/internal/mockapi"
	"github.com/anhqhe/orderfood/internal/session"
	"github.com/anhqhe/orderfood/internal/storage"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end: real client, real session manager and cart, against the
// in-process development server.

type harness struct {
	baseURL string
	client  *api.Client
	session *session.Manager
	cart    *cart.Cart
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := &config.MockAPIConfig{
		JWTSecret:     "integration-secret",
		TokenTTL:      time.Hour,
		AdminEmail:    "admin@orderfood.local",
		AdminPassword: "admin123",
	}
	srv, err := mockapi.NewServer(cfg, clockwork.NewRealClock())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	dir := t.TempDir()
	creds := storage.NewCredentialFile(dir, storage.NoopCipher{})
	users := storage.NewUserFile(dir)

	h := &harness{baseURL: ts.URL + "/api"}
	var sess *session.Manager
	h.client = api.New(h.baseURL,
		api.WithTokenSource(func() string { return sess.Token() }),
		api.WithUnauthorizedHook(func() { sess.Invalidate() }),
	)
	sess = session.NewManager(h.client, creds, users)
	sess.Restore()
	h.session = sess
	h.cart = cart.New(h.client)
	return h
}

func TestIntegration_RegisterBrowseOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	user, err := h.session.Register(ctx, "A", "a@b.com", "0123456789", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	require.True(t, h.session.IsAuthenticated())

	foods, err := h.client.ListFoods(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, foods)

	h.cart.AddItem(foods[0])
	h.cart.AddItem(foods[0])
	h.cart.AddItem(foods[1])
	assert.Equal(t, 3, h.cart.TotalItems())

	order, err := h.cart.SubmitOrder(ctx, "12 Alley St", "ring the bell")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.InDelta(t, foods[0].Price*2+foods[1].Price, order.Total, 1e-9)
	assert.True(t, h.cart.Empty())

	mine, err := h.client.MyOrders(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)
}

func TestIntegration_LoginFailureKeepsSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.session.Register(ctx, "A", "a@b.com", "0123456789", "secret1")
	require.NoError(t, err)

	_, err = h.session.Login(ctx, "a@b.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", apperrors.DisplayMessage(err))
	assert.True(t, h.session.IsAuthenticated(), "failed login must not clear the session")
}

func TestIntegration_AdminWorkflow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.session.Login(ctx, "admin@orderfood.local", "admin123")
	require.NoError(t, err)
	require.True(t, h.session.IsAdmin())

	name, price := "Goi Cuon", 30000.0
	food, err := h.client.CreateFood(ctx, domain.FoodInput{Name: &name, Price: &price})
	require.NoError(t, err)

	all, err := h.client.ListAllFoods(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	unavailable := false
	updated, err := h.client.UpdateFood(ctx, food.ID, domain.FoodInput{IsAvailable: &unavailable})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	require.NoError(t, h.client.DeleteFood(ctx, food.ID))

	stats, err := h.client.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalFoods)
}

func TestIntegration_InvalidTokenInvalidatesSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.session.Register(ctx, "A", "a@b.com", "0123456789", "secret1")
	require.NoError(t, err)

	// Simulate a revoked/garbage token by restoring a forged one.
	dir := t.TempDir()
	creds := storage.NewCredentialFile(dir, storage.NoopCipher{})
	users := storage.NewUserFile(dir)
	require.NoError(t, creds.SaveToken("forged-token"))
	require.NoError(t, users.SaveUser(&domain.User{ID: "ghost", Role: domain.RoleUser}))

	var sess *session.Manager
	client := api.New(h.baseURL,
		api.WithTokenSource(func() string { return sess.Token() }),
		api.WithUnauthorizedHook(func() { sess.Invalidate() }),
	)
	sess = session.NewManager(client, creds, users)
	sess.Restore()
	require.True(t, sess.IsAuthenticated())

	_, err = client.MyOrders(ctx)
	require.Error(t, err)

	assert.False(t, sess.IsAuthenticated(), "401 must invalidate the restored session")
	_, err = creds.LoadToken()
	assert.ErrorIs(t, err, storage.ErrNotFound, "persisted token must be cleared")
}
