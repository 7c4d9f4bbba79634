package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/notekeep/internal/notes/store"
	"github.com/aussiebroadwan/notekeep/internal/notes/store/drivers/sqlite"
	"github.com/aussiebroadwan/notekeep/pkg/cryptox"
	"github.com/aussiebroadwan/notekeep/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "notekeep-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestCodec(t *testing.T) *jwtx.HS256Codec {
	t.Helper()

	codec, err := jwtx.NewHS256Codec([]byte("0123456789abcdef0123456789abcdef"), "notekeep-test")
	require.NoError(t, err)
	return codec
}

// sentMail records one dispatched message.
type sentMail struct {
	Kind string // "verification", "welcome", "reset", "reset_success"
	To   string
	Body string // code, name or URL depending on kind
}

// mailRecorder is an in-memory Mailer capturing everything the services send.
type mailRecorder struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *mailRecorder) record(kind, to, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{Kind: kind, To: to, Body: body})
}

func (m *mailRecorder) SendVerificationCode(ctx context.Context, to, code string) error {
	m.record("verification", to, code)
	return nil
}

func (m *mailRecorder) SendWelcome(ctx context.Context, to, name string) error {
	m.record("welcome", to, name)
	return nil
}

func (m *mailRecorder) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	m.record("reset", to, resetURL)
	return nil
}

func (m *mailRecorder) SendResetSuccess(ctx context.Context, to string) error {
	m.record("reset_success", to, "")
	return nil
}

// last returns the most recent message of the given kind, or fails the test.
func (m *mailRecorder) last(t *testing.T, kind string) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].Kind == kind {
			return m.sent[i]
		}
	}
	t.Fatalf("no %q mail recorded", kind)
	return sentMail{}
}

func (m *mailRecorder) count(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, s := range m.sent {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

func newTestAuthService(t *testing.T, st store.Store, mailer *mailRecorder) *AuthService {
	t.Helper()

	return &AuthService{
		Store:           st,
		Mailer:          mailer,
		Signer:          newTestCodec(t),
		Issuer:          "notekeep-test",
		ClientURL:       "https://app.example",
		SessionTTL:      jwtx.DefaultSessionTTL,
		VerificationTTL: 24 * time.Hour,
		ResetTTL:        time.Hour,
	}
}
