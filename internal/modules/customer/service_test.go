package customer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/store"
	"homura.shop/app/internal/storefront/storefronttest"
)

const tokenOK = `{"customerAccessTokenCreate":{"customerAccessToken":{"accessToken":"tok-123","expiresAt":"2026-11-01T00:00:00Z"},"customerUserErrors":[]}}`

func newTestService(t *testing.T, sf *storefronttest.Fake) (*Service, *Repo) {
	t.Helper()
	db, err := store.Open(store.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background(), db, "sqlite", nil))

	repo := NewRepo(db)
	svc := NewService(repo, sf, 7*24*time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestLogin(t *testing.T) {
	sf := storefronttest.New().Respond("customerAccessTokenCreate", tokenOK)
	svc, repo := newTestService(t, sf)
	ctx := context.Background()

	sess, err := svc.Login(ctx, " jane@example.com ", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", sess.AccessToken)
	assert.Equal(t, time.Date(2026, 10, 24, 12, 0, 0, 0, time.UTC), sess.ExpiresAt)

	stored, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", stored.AccessToken)

	calls := sf.Calls()
	require.Len(t, calls, 1)
	input := calls[0].Vars["input"].(map[string]string)
	assert.Equal(t, "jane@example.com", input["email"])
}

func TestLoginSessionCappedByTokenExpiry(t *testing.T) {
	sf := storefronttest.New().Respond("customerAccessTokenCreate",
		`{"customerAccessTokenCreate":{"customerAccessToken":{"accessToken":"t","expiresAt":"2026-10-18T00:00:00Z"},"customerUserErrors":[]}}`)
	svc, _ := newTestService(t, sf)

	sess, err := svc.Login(context.Background(), "a@b.co", "pw")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), sess.ExpiresAt)
}

func TestLoginRejected(t *testing.T) {
	sf := storefronttest.New().Respond("customerAccessTokenCreate",
		`{"customerAccessTokenCreate":{"customerAccessToken":null,"customerUserErrors":[{"code":"UNIDENTIFIED_CUSTOMER","field":["input"],"message":"Unidentified customer"}]}}`)
	svc, _ := newTestService(t, sf)

	_, err := svc.Login(context.Background(), "a@b.co", "wrong")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Unauthorized))
	assert.Equal(t, "Incorrect email or password.", apperr.PublicMessage(err))
}

func TestLoginUpstreamFailure(t *testing.T) {
	sf := storefronttest.New().Fail("customerAccessTokenCreate", errors.New("timeout"))
	svc, _ := newTestService(t, sf)

	_, err := svc.Login(context.Background(), "a@b.co", "pw")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Internal))
}

func TestIsLoggedIn(t *testing.T) {
	sf := storefronttest.New().Respond("customerAccessTokenCreate", tokenOK)
	svc, _ := newTestService(t, sf)
	ctx := context.Background()

	ok, err := svc.IsLoggedIn(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsLoggedIn(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	sess, err := svc.Login(ctx, "a@b.co", "pw")
	require.NoError(t, err)

	ok, err = svc.IsLoggedIn(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	svc.now = func() time.Time { return time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC) }
	ok, err = svc.IsLoggedIn(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, ok, "expired session")
}

func TestLogout(t *testing.T) {
	sf := storefronttest.New().
		Respond("customerAccessTokenCreate", tokenOK).
		Fail("customerAccessTokenDelete", errors.New("already revoked"))
	svc, repo := newTestService(t, sf)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "a@b.co", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.ID))
	_, err = repo.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 1, sf.CallCount("customerAccessTokenDelete"))

	require.NoError(t, svc.Logout(ctx, sess.ID), "second logout is a no-op")
	require.NoError(t, svc.Logout(ctx, ""))
}

func TestCurrent(t *testing.T) {
	sf := storefronttest.New().
		Respond("customerAccessTokenCreate", tokenOK).
		Respond("Customer", `{"customer":{"id":"gid://shopify/Customer/1","firstName":"Jane","lastName":"Doe","email":"jane@example.com"}}`)
	svc, _ := newTestService(t, sf)
	ctx := context.Background()

	_, err := svc.Current(ctx, "")
	assert.True(t, apperr.IsKind(err, apperr.Unauthorized))

	sess, err := svc.Login(ctx, "jane@example.com", "pw")
	require.NoError(t, err)

	c, err := svc.Current(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", c.FirstName)
	assert.Equal(t, "tok-123", sf.Calls()[1].Vars["customerAccessToken"])
}

func TestDeleteExpired(t *testing.T) {
	sf := storefronttest.New().Respond("customerAccessTokenCreate", tokenOK)
	svc, repo := newTestService(t, sf)
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@b.co", "pw")
	require.NoError(t, err)

	n, err := repo.DeleteExpired(ctx, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.DeleteExpired(ctx, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
