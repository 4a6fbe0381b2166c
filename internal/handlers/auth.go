package handlers

import (
	"context"
	"net/http"

	"carwash-backend/internal/errs"
	"carwash-backend/internal/metrics"
	"carwash-backend/internal/models"
	"carwash-backend/internal/repository"
	"carwash-backend/internal/validation"

	"github.com/pkg/errors"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type AuthHandler struct {
	users UserStore
}

func NewAuthHandler(users UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

var errEmailTaken = errs.NewConflictError("Email already registered.")

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- POST /add-user ---

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	if err := validation.Required(&req, "All fields are required."); err != nil {
		writeError(w, r, err, "signup validation")
		return
	}

	existing, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err, "signup lookup failed")
		return
	}
	if existing != nil {
		writeError(w, r, errEmailTaken, "")
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		// A concurrent signup may win between the lookup and the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, r, errEmailTaken, "")
			return
		}
		writeError(w, r, err, "signup insert failed")
		return
	}

	metrics.IncSignup()
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered",
		"id":      user.ID.Hex(),
	})
}

// --- POST /login ---

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	if err := validation.Required(&req, "Email and password are required."); err != nil {
		writeError(w, r, err, "login validation")
		return
	}

	user, err := h.users.FindByCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, "login lookup failed")
		return
	}
	if user == nil {
		writeError(w, r, errs.NewAuthError("Invalid email or password."), "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user,
	})
}
