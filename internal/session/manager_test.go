package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/backend"
	"storefront/internal/domain"
)

// memStore is an in-memory Store for tests
type memStore struct {
	mu   sync.Mutex
	recs map[string]domain.SessionRecord
}

func newMemStore() *memStore {
	return &memStore{recs: make(map[string]domain.SessionRecord)}
}

func (s *memStore) Load(_ context.Context, id string) (*domain.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *memStore) Save(_ context.Context, rec *domain.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.ID] = *rec
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, id)
	return nil
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs)
}

// fakeBackend resolves tokens to users and records every token it sees
type fakeBackend struct {
	users    map[string]domain.User // by token
	password string
	seen     []string
}

func (b *fakeBackend) Login(_ context.Context, email, password string) (backend.AuthResult, error) {
	for tok, u := range b.users {
		if u.Email == email && password == b.password {
			return backend.AuthResult{AccessToken: tok, User: u}, nil
		}
	}
	return backend.AuthResult{}, &backend.APIError{Status: http.StatusUnauthorized, Detail: "Incorrect email or password"}
}

func (b *fakeBackend) Register(_ context.Context, reg domain.Registration) (backend.AuthResult, error) {
	for _, u := range b.users {
		if u.Email == reg.Email {
			return backend.AuthResult{}, &backend.APIError{Status: http.StatusBadRequest, Detail: "Email already registered"}
		}
	}
	u := domain.User{ID: "new-" + reg.Username, Email: reg.Email, Username: reg.Username, IsAdmin: reg.IsAdmin}
	tok := "token-" + reg.Username
	b.users[tok] = u
	return backend.AuthResult{AccessToken: tok, User: u}, nil
}

func (b *fakeBackend) Me(_ context.Context, cred backend.Credentials) (domain.User, error) {
	tok := cred.BearerToken()
	b.seen = append(b.seen, tok)
	u, ok := b.users[tok]
	if !ok {
		return domain.User{}, &backend.APIError{Status: http.StatusUnauthorized, Detail: "Could not validate credentials"}
	}
	return u, nil
}

func newTestManager() (*Manager, *memStore, *fakeBackend) {
	b := &fakeBackend{
		users: map[string]domain.User{
			"tok-a": {ID: "u1", Email: "a@x.com", Username: "alice", WalletBalance: 100},
		},
		password: "p",
	}
	store := newMemStore()
	return NewManager(store, b, 24*time.Hour), store, b
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return tok
}

func TestLogin_PersistsHashedRecord(t *testing.T) {
	m, store, _ := newTestManager()

	s, err := m.Login(context.Background(), "a@x.com", "p")
	require.NoError(t, err)
	require.True(t, s.Authenticated())
	assert.Equal(t, "tok-a", s.BearerToken())
	assert.Equal(t, 100.0, s.User.WalletBalance)

	rec, err := store.Load(context.Background(), HashID(s.ID))
	require.NoError(t, err)
	assert.Equal(t, "tok-a", rec.Token)
	assert.NotEqual(t, s.ID, rec.ID)
}

func TestLogin_FailureRevealsNothing(t *testing.T) {
	m, store, _ := newTestManager()

	s, err := m.Login(context.Background(), "a@x.com", "wrong")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.Empty(t, backend.Detail(err))
	assert.Zero(t, store.len())
}

func TestRegister_ForwardsAdminFlag(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	s, err := m.Register(ctx, domain.Registration{Email: "b@x.com", Username: "bob", Password: "pw", IsAdmin: true})
	require.NoError(t, err)

	resumed, err := m.Resume(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, resumed.User.IsAdmin)
	assert.True(t, resumed.IsAdmin())
}

func TestRegister_DuplicateKeepsBackendDetail(t *testing.T) {
	m, _, _ := newTestManager()

	_, err := m.Register(context.Background(), domain.Registration{Email: "a@x.com", Username: "again", Password: "pw"})
	assert.ErrorIs(t, err, ErrRegistrationFailed)
	assert.Equal(t, "Email already registered", backend.Detail(err))
}

func TestResume_UnknownSession(t *testing.T) {
	m, _, _ := newTestManager()

	_, err := m.Resume(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Resume(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResume_RejectedTokenLogsOut(t *testing.T) {
	m, store, b := newTestManager()
	ctx := context.Background()
	s, err := m.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)

	delete(b.users, "tok-a") // backend revoked the token

	_, err = m.Resume(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Zero(t, store.len())
}

func TestResume_ExpiredTokenNeverReachesBackend(t *testing.T) {
	m, store, b := newTestManager()
	ctx := context.Background()
	dead := signedToken(t, time.Now().Add(-time.Minute))
	b.users[dead] = domain.User{ID: "u2", Email: "c@x.com"}

	require.NoError(t, store.Save(ctx, &domain.SessionRecord{
		ID:        HashID("cookie"),
		Token:     dead,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	_, err := m.Resume(ctx, "cookie")
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, b.seen)
	assert.Zero(t, store.len())
}

func TestStart_ExpiryFollowsTokenClaim(t *testing.T) {
	m, _, b := newTestManager()
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	tok := signedToken(t, exp)
	b.users[tok] = domain.User{ID: "u3", Email: "d@x.com"}

	s, err := m.Login(context.Background(), "d@x.com", "p")
	require.NoError(t, err)
	assert.True(t, s.Record.ExpiresAt.Equal(exp), "got %s want %s", s.Record.ExpiresAt, exp)
}

func TestLogout_StopsCarryingToken(t *testing.T) {
	m, store, b := newTestManager()
	ctx := context.Background()
	s, err := m.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	id := s.ID

	require.NoError(t, m.RefreshProfile(ctx, s))
	require.NoError(t, m.Logout(ctx, s))

	assert.False(t, s.Authenticated())
	assert.Empty(t, s.BearerToken())
	assert.Zero(t, store.len())

	// A later refresh through the same value sends no token
	err = m.RefreshProfile(ctx, s)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, []string{"tok-a", ""}, b.seen)

	_, err = m.Resume(ctx, id)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSave_PersistsNoticesAndDrafts(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()
	s, err := m.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)

	s.Notify(domain.NoticeError, "Insufficient wallet balance")
	s.KeepDraft("topup", domain.Draft{"amount": "50"})
	require.NoError(t, m.Save(ctx, s))

	resumed, err := m.Resume(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "50", resumed.Draft("topup")["amount"])
	notices := resumed.TakeNotices()
	require.Len(t, notices, 1)
	assert.Equal(t, "Insufficient wallet balance", notices[0].Text)
	assert.Empty(t, resumed.TakeNotices())

	resumed.ClearDraft("topup")
	assert.Empty(t, resumed.Draft("topup"))
}

func TestNilSessionIsAnonymous(t *testing.T) {
	var s *Session
	assert.False(t, s.Authenticated())
	assert.False(t, s.IsAdmin())
	assert.Empty(t, s.BearerToken())
	assert.Empty(t, s.Draft("topup"))
	s.Notify(domain.NoticeInfo, "ignored")
	assert.Nil(t, s.TakeNotices())
}

func TestEnd_RemovesRecordWithoutBackend(t *testing.T) {
	m, store, b := newTestManager()
	s, err := m.Login(context.Background(), "a@x.com", b.password)
	require.NoError(t, err)
	require.Equal(t, 1, store.len())
	seen := len(b.seen)

	require.NoError(t, m.End(context.Background(), s.ID))
	assert.Equal(t, 0, store.len())
	assert.Len(t, b.seen, seen)

	_, err = m.Resume(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, m.End(context.Background(), ""))
}
