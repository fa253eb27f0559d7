package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"github.com/dmitrijs2005/walletkeeper/internal/logging"
	"github.com/dmitrijs2005/walletkeeper/internal/server/auth"
	"github.com/dmitrijs2005/walletkeeper/internal/server/models"
	"github.com/dmitrijs2005/walletkeeper/internal/server/services"
)

// maxBodyBytes caps request bodies on the auth endpoints.
const maxBodyBytes = 1 << 16

// CredentialService is what the auth handlers need from the service layer.
type CredentialService interface {
	Signup(ctx context.Context, in services.SignupInput) (*models.Credential, error)
	Login(ctx context.Context, identifier, password string) (*services.Session, error)
}

// AuthHandler serves the /api/auth endpoints.
type AuthHandler struct {
	service CredentialService
	logger  logging.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service CredentialService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// LoginPayload is the body of POST /api/auth/login. Identifier is an email
// or a username.
type LoginPayload struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// LoginResponse carries the issued token and its lifetime in seconds.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Signup handles new account registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload services.SignupInput
	if !decode(w, r, &payload) {
		return
	}

	cred, err := h.service.Signup(r.Context(), payload)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, cred)
	case errors.Is(err, common.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrAlreadyExists):
		writeError(w, http.StatusConflict, msgConflict)
	case errors.Is(err, common.ErrStoreUnavailable):
		h.logger.Error(r.Context(), "signup failed", "err", err)
		writeError(w, http.StatusServiceUnavailable, msgUnavailable)
	default:
		h.logger.Error(r.Context(), "signup failed", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// Login authenticates by identifier and password and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if !decode(w, r, &payload) {
		return
	}

	session, err := h.service.Login(r.Context(), payload.Identifier, payload.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, LoginResponse{
			Token:     session.Token,
			ExpiresIn: int64(session.ExpiresIn / time.Second),
		})
	case errors.Is(err, common.ErrorUnauthorized):
		unauthorized(w)
	case errors.Is(err, common.ErrStoreUnavailable):
		h.logger.Error(r.Context(), "login failed", "err", err)
		writeError(w, http.StatusServiceUnavailable, msgUnavailable)
	default:
		h.logger.Error(r.Context(), "login failed", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// Me returns the principal of the authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return false
	}
	return true
}
