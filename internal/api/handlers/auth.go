package handlers

import (
	"context"
	"net/http"
	"time"

	"airfoil-lab-service/internal/api/dto"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/ports"
	"airfoil-lab-service/internal/services"
)

type ctxKey string

const claimsKey ctxKey = "auth_claims"

// WithClaims attaches a verified token identity to the request context.
// The auth middleware is the only writer.
func WithClaims(ctx context.Context, claims services.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom reports the verified identity on the request, if any.
func ClaimsFrom(ctx context.Context) (services.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(services.TokenClaims)
	return claims, ok
}

// userIDPtr is the optional-attribution form: nil for anonymous requests.
func userIDPtr(r *http.Request) *int64 {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		return nil
	}
	return &claims.UserID
}

type AuthHandler struct {
	Repo ports.UserRepository
	Auth services.AuthConfig
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := services.Register(r.Context(), services.RegisterRequest{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		SkillLevel: req.SkillLevel,
	}, h.Repo)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, userDTO(user))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := services.Login(r.Context(), services.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	}, h.Repo, h.Auth)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LoginResponse{
		AccessToken: out.Token,
		TokenType:   "bearer",
		ExpiresAt:   out.ExpiresAt.UTC().Format(time.RFC3339),
		User:        userDTO(out.User),
	})
}

// Me returns the account behind the presented token. The route sits
// behind the required-auth middleware, so missing claims mean the token's
// account was deleted out from under it.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.Repo.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if user == nil {
		writeError(w, r, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, r, http.StatusOK, userDTO(user))
}

func userDTO(u *domain.User) dto.UserResponse {
	res := dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		SkillLevel: u.SkillLevel,
		CreatedAt:  u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.LastLogin != nil {
		res.LastLogin = u.LastLogin.UTC().Format(time.RFC3339)
	}
	return res
}
