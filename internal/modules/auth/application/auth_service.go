package application

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"

	"github.com/aigerim-zh/kshop/internal/modules/auth/domain"
	"github.com/aigerim-zh/kshop/internal/modules/auth/infrastructure/jwt"
	"github.com/aigerim-zh/kshop/internal/shared/utils"
)

// DTOs for registration and login
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	Token string `json:"token"`
}

// UpdateUserRequest carries the fields the admin console may edit.
type UpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAdmin   bool   `json:"is_admin"`
}

// AuthService provides account and session operations
type AuthService struct {
	repo                 domain.UserRepository
	jwtSecret            string
	jwtExpiry            time.Duration
	googleTokenValidator func(ctx context.Context, token string, audience string) (*idtoken.Payload, error)
}

// NewAuthService creates a new auth service
func NewAuthService(repo domain.UserRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		repo:                 repo,
		jwtSecret:            jwtSecret,
		jwtExpiry:            jwtExpiry,
		googleTokenValidator: idtoken.Validate,
	}
}

// Register creates a new shop account. New accounts are never admins.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if req.Email == "" {
		return nil, errors.New("email is required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, errors.New("invalid email format")
	}

	hashedPass, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashedPass),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsAdmin:      false,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns a JWT token plus the profile that
// the client persists alongside it.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, *domain.User, error) {
	if req.Email == "" || req.Password == "" {
		return "", nil, errors.New("missing email or password")
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials // Don't reveal user existence
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(s.jwtSecret, s.jwtExpiry, user.ID, user.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GoogleLogin validates a Google ID token, creating the account on first
// sign-in, and returns an application JWT.
func (s *AuthService) GoogleLogin(ctx context.Context, googleClientID string, req GoogleLoginRequest) (string, *domain.User, error) {
	validate := s.googleTokenValidator
	if validate == nil {
		validate = idtoken.Validate
	}

	payload, err := validate(ctx, req.Token, googleClientID)
	if err != nil {
		log.Printf("[AuthService.GoogleLogin] token validate failed: %v", err)
		return "", nil, errors.New("invalid google token")
	}

	email, _ := payload.Claims["email"].(string)
	givenName, _ := payload.Claims["given_name"].(string)
	familyName, _ := payload.Claims["family_name"].(string)

	if email == "" {
		return "", nil, errors.New("email not provided by google")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err != domain.ErrUserNotFound {
			return "", nil, err
		}
		user = &domain.User{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: "", // No password for OAuth accounts
			FirstName:    givenName,
			LastName:     familyName,
			IsAdmin:      false,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if createErr := s.repo.Create(ctx, user); createErr != nil {
			return "", nil, createErr
		}
	}

	token, err := jwt.GenerateToken(s.jwtSecret, s.jwtExpiry, user.ID, user.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUser retrieves a user by ID. Backs the /check-auth endpoint.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenStr string) (*jwt.CustomClaims, error) {
	return jwt.ValidateToken(tokenStr, s.jwtSecret)
}

// ListUsers returns one admin-console page of users and the total count.
func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// UpdateUser edits name fields and the admin flag of an account.
func (s *AuthService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.IsAdmin = req.IsAdmin
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account.
func (s *AuthService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
