package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/notekeep/internal/notes/service"
	"github.com/aussiebroadwan/notekeep/pkg/httpx"
	"github.com/aussiebroadwan/notekeep/pkg/notesdk"
	"github.com/aussiebroadwan/notekeep/pkg/slogx"
)

// AuthHandler serves the account lifecycle endpoints and owns the session
// cookie plumbing.
type AuthHandler struct {
	AuthService *service.AuthService

	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration
}

// setSessionCookie installs the signed session token. HttpOnly keeps it
// away from client-side scripts.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// HandleSignUp registers an account, sets the session cookie and returns
// the new user with 201.
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req notesdk.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	user, token, err := h.AuthService.Register(ctx, req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		notesdk.NewAPIError(http.StatusBadRequest,
			"All fields (name, email and password) are required.").WriteError(w)
		return
	case errors.Is(err, service.ErrEmailTaken):
		notesdk.NewAPIError(http.StatusConflict,
			"A user with this email already exists.").WriteError(w)
		return
	case err != nil:
		log.Error("sign-up failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	h.setSessionCookie(w, token)
	httpx.WriteJSON(w, http.StatusCreated, userResponse(user))
}

// HandleLogin authenticates and refreshes the session cookie. Unknown email
// and wrong password share the same 404 response.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req notesdk.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	user, token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		notesdk.NewAPIError(http.StatusBadRequest,
			"All fields (email and password) are required.").WriteError(w)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		notesdk.NewAPIError(http.StatusNotFound, "Invalid email or password.").WriteError(w)
		return
	case err != nil:
		log.Error("login failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	h.setSessionCookie(w, token)
	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}

// HandleLogout clears the session cookie. Tokens are stateless so there is
// nothing to revoke server-side.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	httpx.WriteJSON(w, http.StatusOK, notesdk.MessageResponse{
		Message: "Logged out successfully.",
	})
}

// HandleCheckAuth confirms the session's account still exists.
func (h *AuthHandler) HandleCheckAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromCtx(ctx)

	_, err := h.AuthService.GetUser(ctx, userID)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		notesdk.NewAPIError(http.StatusNotFound, "User not found.").WriteError(w)
		return
	case err != nil:
		log.Error("check-auth failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.MessageResponse{
		Message: "User authenticated.",
	})
}

// HandleGetUser returns the session's account.
func (h *AuthHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromCtx(ctx)

	user, err := h.AuthService.GetUser(ctx, userID)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		notesdk.NewAPIError(http.StatusNotFound, "User not found.").WriteError(w)
		return
	case err != nil:
		log.Error("get-user failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}

// HandleVerifyEmail consumes a mailed verification code.
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req notesdk.VerifyEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	user, err := h.AuthService.VerifyEmail(ctx, req.Code)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		notesdk.NewAPIError(http.StatusBadRequest, "Verification code is required.").WriteError(w)
		return
	case errors.Is(err, service.ErrInvalidVerification):
		notesdk.NewAPIError(http.StatusNotFound,
			"Invalid or expired verification code.").WriteError(w)
		return
	case err != nil:
		log.Error("verify-email failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}

// HandleForgotPassword mails a reset link to a known account.
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req notesdk.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	err := h.AuthService.ForgotPassword(ctx, req.Email)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		notesdk.NewAPIError(http.StatusBadRequest, "Email is required.").WriteError(w)
		return
	case errors.Is(err, service.ErrUserNotFound):
		notesdk.NewAPIError(http.StatusNotFound,
			"No account associated with this email address.").WriteError(w)
		return
	case err != nil:
		log.Error("forgot-password failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.MessageResponse{
		Message: "A password reset link has been sent to the email address provided.",
	})
}

// HandleResetPassword consumes the token from the mailed link and stores
// the new password.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	token := r.PathValue("token")

	var req notesdk.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		notesdk.ErrInvalidBody.WriteError(w)
		return
	}

	err := h.AuthService.ResetPassword(ctx, token, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		notesdk.NewAPIError(http.StatusBadRequest, "Password is required.").WriteError(w)
		return
	case errors.Is(err, service.ErrInvalidResetToken):
		notesdk.NewAPIError(http.StatusNotFound,
			"Invalid or expired reset password token.").WriteError(w)
		return
	case err != nil:
		log.Error("reset-password failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.MessageResponse{
		Message: "Password has been successfully reset.",
	})
}
