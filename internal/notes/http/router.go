package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/notekeep/internal/notes/service"
	"github.com/aussiebroadwan/notekeep/internal/notes/store"
	"github.com/aussiebroadwan/notekeep/pkg/httpx"
	"github.com/aussiebroadwan/notekeep/pkg/jwtx"
	"github.com/aussiebroadwan/notekeep/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService *service.AuthService
	NoteService *service.NoteService

	// Session cookie settings, shared by the auth handlers and the
	// session gate.
	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration
}

func NewRouter(
	verifier jwtx.Verifier,
	clientOrigin, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORSMiddleware(clientOrigin),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerNotes()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// session gates a handler behind a valid session cookie.
func (r *Router) session(h http.Handler) http.Handler {
	return httpx.Chain(h, httpx.SessionMiddleware(r.verifier, r.CookieName))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:  r.AuthService,
		CookieName:   r.CookieName,
		CookieSecure: r.CookieSecure,
		SessionTTL:   r.SessionTTL,
	}

	r.Mux.Handle("POST /api/auth/sign-up", http.HandlerFunc(h.HandleSignUp))
	r.Mux.Handle("POST /api/auth/login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("POST /api/auth/logout", http.HandlerFunc(h.HandleLogout))
	r.Mux.Handle("POST /api/auth/verify-email", http.HandlerFunc(h.HandleVerifyEmail))
	r.Mux.Handle("POST /api/auth/forgot-password", http.HandlerFunc(h.HandleForgotPassword))
	r.Mux.Handle("POST /api/auth/reset-password/{token}", http.HandlerFunc(h.HandleResetPassword))

	r.Mux.Handle("GET /api/auth/check-auth", r.session(http.HandlerFunc(h.HandleCheckAuth)))
	r.Mux.Handle("GET /api/auth/get-user", r.session(http.HandlerFunc(h.HandleGetUser)))
}

func (r *Router) registerNotes() {
	h := &NotesHandler{NoteService: r.NoteService}

	r.Mux.Handle("GET /api/notes/get-notes", r.session(http.HandlerFunc(h.HandleGetNotes)))
	r.Mux.Handle("POST /api/notes/add-note", r.session(http.HandlerFunc(h.HandleAddNote)))
	r.Mux.Handle("PUT /api/notes/edit-note/{noteId}", r.session(http.HandlerFunc(h.HandleEditNote)))
	r.Mux.Handle("PUT /api/notes/update-note-pinned/{noteId}", r.session(http.HandlerFunc(h.HandleUpdatePinned)))
	r.Mux.Handle("DELETE /api/notes/delete-note/{noteId}", r.session(http.HandlerFunc(h.HandleDeleteNote)))
	r.Mux.Handle("GET /api/notes/search-notes", r.session(http.HandlerFunc(h.HandleSearchNotes)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
