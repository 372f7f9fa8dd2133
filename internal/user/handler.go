package user

import (
	"errors"
	"net/http"

	"storefront-be/internal/auth"
	"storefront-be/internal/transport"
	"storefront-be/internal/utils"
)

type Handler struct {
	svc    Service
	secure bool
}

// NewHandler builds the auth endpoints; secure marks the token cookie
// Secure, which production deployments want.
func NewHandler(svc Service, secure bool) *Handler {
	return &Handler{svc: svc, secure: secure}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	u, err := h.svc.Register(r.Context(), in)
	if err != nil {
		transport.WriteValidationOr(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, u)
}

// Login serves POST /auth/jwt/create/. The token is returned in the body
// and also set as an HttpOnly cookie for browser clients.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	token, err := h.svc.Login(r.Context(), in)
	if errors.Is(err, ErrInvalidCredentials) {
		transport.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if err != nil {
		transport.WriteValidationOr(r.Context(), w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	transport.WriteJSON(w, http.StatusOK, TokenResponse{Access: token})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	u, err := h.svc.Me(r.Context(), userID)
	if errors.Is(err, ErrUserNotFound) {
		transport.WriteJSONError(w, "Not found.", http.StatusNotFound)
		return
	}
	if err != nil {
		transport.WriteInternalError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, u)
}
