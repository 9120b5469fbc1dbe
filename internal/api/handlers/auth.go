package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/api/apierror"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/api/middleware"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/auth"
)

type AuthHandler struct {
	Service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{Service: service}
}

type registerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "Missing fields", err)
		return
	}

	user, err := h.Service.Register(r.Context(), auth.RegisterParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			apierror.Write(w, r, http.StatusBadRequest, "Missing fields", err)
		case errors.Is(err, auth.ErrDuplicateEmail):
			apierror.Write(w, r, http.StatusBadRequest, "Email already registered", err)
		default:
			apierror.Write(w, r, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "Missing fields", err)
		return
	}
	if req.Email == "" || req.Password == "" {
		apierror.Write(w, r, http.StatusBadRequest, "Missing fields", nil)
		return
	}

	token, user, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Unknown email and wrong password produce identical responses
			apierror.Write(w, r, http.StatusUnauthorized, "Invalid credentials", err)
			return
		}
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Me returns the authenticated caller's public profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierror.Write(w, r, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
