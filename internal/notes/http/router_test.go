package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/notekeep/internal/notes/service"
	"github.com/aussiebroadwan/notekeep/internal/notes/store/drivers/sqlite"
	"github.com/aussiebroadwan/notekeep/pkg/cryptox"
	"github.com/aussiebroadwan/notekeep/pkg/jwtx"
	"github.com/aussiebroadwan/notekeep/pkg/notesdk"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "notekeep-http-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

// mailRecorder captures outbound mail so tests can read verification codes
// and reset links.
type mailRecorder struct {
	mu     sync.Mutex
	codes  map[string]string // email -> last verification code
	resets map[string]string // email -> last reset URL
}

func newMailRecorder() *mailRecorder {
	return &mailRecorder{codes: map[string]string{}, resets: map[string]string{}}
}

func (m *mailRecorder) SendVerificationCode(_ context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = code
	return nil
}

func (m *mailRecorder) SendWelcome(context.Context, string, string) error { return nil }

func (m *mailRecorder) SendPasswordReset(_ context.Context, to, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets[to] = resetURL
	return nil
}

func (m *mailRecorder) SendResetSuccess(context.Context, string) error { return nil }

func (m *mailRecorder) code(t *testing.T, email string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[email]
	require.True(t, ok, "no verification code recorded for %s", email)
	return code
}

func (m *mailRecorder) resetToken(t *testing.T, email string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	url, ok := m.resets[email]
	require.True(t, ok, "no reset link recorded for %s", email)
	return url[strings.LastIndex(url, "/")+1:]
}

func newTestServer(t *testing.T) (*httptest.Server, *mailRecorder) {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewHS256Codec([]byte("0123456789abcdef0123456789abcdef"), "notekeep-test")
	require.NoError(t, err)

	mailer := newMailRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(codec, "", "test", st, logger)
	router.CookieName = "notekeep_session"
	router.CookieSecure = false
	router.SessionTTL = jwtx.DefaultSessionTTL
	router.AuthService = &service.AuthService{
		Store:           st,
		Mailer:          mailer,
		Signer:          codec,
		Issuer:          "notekeep-test",
		ClientURL:       "https://app.example",
		SessionTTL:      jwtx.DefaultSessionTTL,
		VerificationTTL: 24 * time.Hour,
		ResetTTL:        time.Hour,
	}
	router.NoteService = &service.NoteService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, mailer
}

func newTestClient(t *testing.T, srv *httptest.Server) *notesdk.Client {
	t.Helper()

	client, err := notesdk.NewClient(srv.URL)
	require.NoError(t, err)
	return client
}

func requireAPIError(t *testing.T, err error, status int) *notesdk.APIError {
	t.Helper()

	var apiErr *notesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	return apiErr
}

func TestFullScenario(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	// Sign up establishes a session via the cookie jar.
	user, err := client.SignUp(ctx, notesdk.SignUpRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.False(t, user.IsVerified)
	require.False(t, user.CreatedAt.IsZero())
	require.NoError(t, client.CheckAuth(ctx))

	// Wrong password answers 404, same as an unknown email would.
	_, err = client.Login(ctx, notesdk.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	requireAPIError(t, err, http.StatusNotFound)

	logged, err := client.Login(ctx, notesdk.LoginRequest{Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.NotNil(t, logged.LastLogin)

	// Create two notes, pin the first.
	first, err := client.AddNote(ctx, notesdk.AddNoteRequest{
		Title:   "Groceries",
		Content: "milk, eggs",
		Tags:    []string{"home"},
	})
	require.NoError(t, err)
	second, err := client.AddNote(ctx, notesdk.AddNoteRequest{Title: "Ideas", Content: "write more tests"})
	require.NoError(t, err)

	// An empty patch is a 400 even though the note exists.
	_, err = client.EditNote(ctx, first.ID, notesdk.EditNoteRequest{})
	requireAPIError(t, err, http.StatusBadRequest)

	title := "Shopping list"
	edited, err := client.EditNote(ctx, first.ID, notesdk.EditNoteRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Shopping list", edited.Title)
	require.Equal(t, "milk, eggs", edited.Content)

	pinned, err := client.UpdateNotePinned(ctx, first.ID, true)
	require.NoError(t, err)
	require.True(t, pinned.IsPinned)

	// Pinned note leads the listing despite being older.
	notes, err := client.GetNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, first.ID, notes[0].ID)
	require.Equal(t, second.ID, notes[1].ID)

	// Search hits title and content, case-insensitively.
	found, err := client.SearchNotes(ctx, "SHOPPING")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, first.ID, found[0].ID)

	// Logout drops the cookie; protected routes close again.
	require.NoError(t, client.Logout(ctx))
	err = client.CheckAuth(ctx)
	requireAPIError(t, err, http.StatusUnauthorized)
}

func TestSignUpValidation(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	_, err := client.SignUp(ctx, notesdk.SignUpRequest{Name: "Alice"})
	requireAPIError(t, err, http.StatusBadRequest)

	_, err = client.SignUp(ctx, notesdk.SignUpRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	// Same email again is a conflict.
	_, err = client.SignUp(ctx, notesdk.SignUpRequest{
		Name: "Mallory", Email: "alice@example.com", Password: "other",
	})
	requireAPIError(t, err, http.StatusConflict)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	_, err := client.GetNotes(ctx)
	requireAPIError(t, err, http.StatusUnauthorized)

	_, err = client.AddNote(ctx, notesdk.AddNoteRequest{Title: "t", Content: "c"})
	requireAPIError(t, err, http.StatusUnauthorized)

	err = client.CheckAuth(ctx)
	requireAPIError(t, err, http.StatusUnauthorized)
}

func TestVerifyEmailFlow(t *testing.T) {
	t.Parallel()

	srv, mailer := newTestServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	_, err := client.SignUp(ctx, notesdk.SignUpRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	code := mailer.code(t, "alice@example.com")
	user, err := client.VerifyEmail(ctx, code)
	require.NoError(t, err)
	require.True(t, user.IsVerified)

	// Codes are single-use.
	_, err = client.VerifyEmail(ctx, code)
	requireAPIError(t, err, http.StatusNotFound)
}

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()

	srv, mailer := newTestServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	_, err := client.SignUp(ctx, notesdk.SignUpRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	err = client.ForgotPassword(ctx, "nobody@example.com")
	requireAPIError(t, err, http.StatusNotFound)

	require.NoError(t, client.ForgotPassword(ctx, "alice@example.com"))
	token := mailer.resetToken(t, "alice@example.com")

	require.NoError(t, client.ResetPassword(ctx, token, "new-password"))

	// Token burned, old password dead, new password live.
	err = client.ResetPassword(ctx, token, "again")
	requireAPIError(t, err, http.StatusNotFound)

	_, err = client.Login(ctx, notesdk.LoginRequest{Email: "alice@example.com", Password: "hunter22"})
	requireAPIError(t, err, http.StatusNotFound)

	_, err = client.Login(ctx, notesdk.LoginRequest{Email: "alice@example.com", Password: "new-password"})
	require.NoError(t, err)
}

func TestNoteNotFoundStatusCodes(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	_, err := client.SignUp(ctx, notesdk.SignUpRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	// Edit reports 404 for a missing note, delete and pin report 400.
	title := "x"
	_, err = client.EditNote(ctx, "does-not-exist", notesdk.EditNoteRequest{Title: &title})
	requireAPIError(t, err, http.StatusNotFound)

	err = client.DeleteNote(ctx, "does-not-exist")
	requireAPIError(t, err, http.StatusBadRequest)

	_, err = client.UpdateNotePinned(ctx, "does-not-exist", true)
	requireAPIError(t, err, http.StatusBadRequest)
}

func TestSearchRequiresQuery(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	_, err := client.SignUp(ctx, notesdk.SignUpRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = client.SearchNotes(ctx, "")
	requireAPIError(t, err, http.StatusBadRequest)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	live, err := client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}
