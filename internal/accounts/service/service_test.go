package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/flowmerce/accounts/internal/accounts/domain"
	"github.com/flowmerce/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/flowmerce/accounts/pkg/cryptox"
	"github.com/flowmerce/accounts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://accounts.flowmerce.test"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestMain(m *testing.M) {
	cryptox.SetPepper("service-test-pepper")
	os.Exit(m.Run())
}

// clock is a shiftable time source shared by the components under test.
type clock struct {
	mu     sync.Mutex
	offset time.Duration
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Now().Add(c.offset)
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset += d
}

type sentLink struct {
	Email string
	Token string
}

// recordingMailer captures links instead of delivering them.
type recordingMailer struct {
	mu          sync.Mutex
	activations []sentLink
	resets      []sentLink
}

func (m *recordingMailer) SendActivationEmail(_ context.Context, email, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activations = append(m.activations, sentLink{email, token})
}

func (m *recordingMailer) SendPasswordResetEmail(_ context.Context, email, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, sentLink{email, token})
}

func (m *recordingMailer) lastActivation(t *testing.T) sentLink {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.activations)
	return m.activations[len(m.activations)-1]
}

func (m *recordingMailer) lastReset(t *testing.T) sentLink {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.resets)
	return m.resets[len(m.resets)-1]
}

func (m *recordingMailer) resetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.resets)
}

type testEnv struct {
	store     *sqlite.Store
	clock     *clock
	mailer    *recordingMailer
	creds     *CredentialStore
	tokens    *TokenRegistry
	sessions  *SessionManager
	auth      *AuthService
	users     *UserService
	merchants *MerchantService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvAt(t, ":memory:")
}

// newFileTestEnv backs the services with a WAL database file, configured the
// way the app opens it, so concurrent callers really use separate connections.
func newFileTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvAt(t, fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", filepath.Join(t.TempDir(), "accounts.db")))
}

func newTestEnvAt(t *testing.T, dsn string) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmHS256,
		Issuer:    testIssuer,
		Secret:    testSecret,
	})
	require.NoError(t, err)

	clk := &clock{}
	mailer := &recordingMailer{}
	creds := &CredentialStore{Store: st, Now: clk.Now}
	tokens := &TokenRegistry{Store: st, Now: clk.Now}
	sessions := &SessionManager{Store: st, KeyManager: km, Issuer: testIssuer, Now: clk.Now}

	return &testEnv{
		store:    st,
		clock:    clk,
		mailer:   mailer,
		creds:    creds,
		tokens:   tokens,
		sessions: sessions,
		auth: &AuthService{
			Store:       st,
			Credentials: creds,
			Tokens:      tokens,
			Sessions:    sessions,
			Mailer:      mailer,
		},
		users: &UserService{Credentials: creds},
		merchants: &MerchantService{
			Store:       st,
			Credentials: creds,
			Sessions:    sessions,
			Now:         clk.Now,
		},
	}
}

// register creates an account and returns it.
func (e *testEnv) register(t *testing.T, email, password string) domain.Account {
	t.Helper()
	ctx := context.Background()
	_, err := e.auth.Register(ctx, RegisterInput{
		Email:    email,
		Password: password,
		FullName: "Test " + email,
	})
	require.NoError(t, err)
	a, err := e.creds.FindByEmail(ctx, email)
	require.NoError(t, err)
	return a
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	res, err := e.auth.Login(context.Background(), email, password)
	require.NoError(t, err)
	return res.Token
}

func (e *testEnv) requireValid(t *testing.T, token string) {
	t.Helper()
	_, _, err := e.sessions.Validate(context.Background(), token)
	require.NoError(t, err)
}

func (e *testEnv) requireInvalid(t *testing.T, token string) {
	t.Helper()
	_, _, err := e.sessions.Validate(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

// requireKind asserts err is a service Error of kind, optionally with msg.
func requireKind(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.ErrorIs(t, err, kind)
	var se *Error
	require.ErrorAs(t, err, &se)
	if msg != "" {
		require.Equal(t, msg, se.Message)
	}
}
