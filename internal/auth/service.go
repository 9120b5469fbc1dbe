// Package auth handles credential verification and bearer-token session
// management. Tokens are opaque random strings mapped to user ids in the
// session collection. Sessions have no expiry and there is no server-side
// logout; a token stays valid until its entry is removed from the store.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage"
)

var (
	// ErrValidation marks caller-correctable input problems.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicateEmail is returned when registering an email that already
	// has an account. Matching is exact and case-sensitive.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a caller cannot tell which one occurred.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// BcryptCost is the default work factor for password hashing.
const BcryptCost = 12

// User is the public view of an identity. The password hash never appears
// here and never leaves the storage layer.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RegisterParams are the required fields for account creation.
type RegisterParams struct {
	Email     string `validate:"required,email"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Password  string `validate:"required"`
}

type Service struct {
	store    storage.Store
	logger   zerolog.Logger
	cost     int
	validate *validator.Validate
}

func NewService(store storage.Store, logger zerolog.Logger, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = BcryptCost
	}
	return &Service{
		store:    store,
		logger:   logger.With().Str("component", "auth").Logger(),
		cost:     bcryptCost,
		validate: validator.New(),
	}
}

// Register creates a new account. Fails with ErrDuplicateEmail if the email
// is taken. Returns the public user view, never the hash.
func (s *Service) Register(ctx context.Context, params RegisterParams) (User, error) {
	if err := s.validate.Struct(params); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	rec := storage.User{
		ID:           "user-" + uuid.New().String(),
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: string(hash),
	}

	err = s.store.Update(ctx, func(ds *storage.Dataset) error {
		if _, taken := ds.UserByEmail(params.Email); taken {
			return ErrDuplicateEmail
		}
		ds.Users = append(ds.Users, rec)
		return nil
	})
	if err != nil {
		return User{}, err
	}

	s.logger.Info().Str("user_id", rec.ID).Msg("user registered")
	return publicView(rec), nil
}

// Login verifies the credentials, mints a fresh opaque token, and records
// the session. Multiple concurrent sessions per user are permitted; the
// session map is token to user, not user to token.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	var rec storage.User
	err := s.store.View(ctx, func(ds *storage.Dataset) error {
		u, ok := ds.UserByEmail(email)
		if !ok {
			return ErrInvalidCredentials
		}
		rec = u
		return nil
	})
	if err != nil {
		return "", User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := NewToken()
	if err != nil {
		return "", User{}, err
	}

	err = s.store.Update(ctx, func(ds *storage.Dataset) error {
		ds.Sessions[token] = rec.ID
		return nil
	})
	if err != nil {
		return "", User{}, err
	}

	s.logger.Info().Str("user_id", rec.ID).Msg("user logged in")
	return token, publicView(rec), nil
}

// ResolveToken maps a bearer token to its user. This is the single gate used
// by every protected operation.
func (s *Service) ResolveToken(ctx context.Context, token string) (User, error) {
	if token == "" {
		return User{}, ErrMissingToken
	}

	var rec storage.User
	err := s.store.View(ctx, func(ds *storage.Dataset) error {
		userID, ok := ds.Sessions[token]
		if !ok {
			return ErrInvalidToken
		}
		u, ok := ds.UserByID(userID)
		if !ok {
			// Session points at a user that no longer exists; treat the
			// token as dead rather than failing loudly.
			return ErrInvalidToken
		}
		rec = u
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return publicView(rec), nil
}

func publicView(rec storage.User) User {
	return User{
		ID:        rec.ID,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
	}
}
