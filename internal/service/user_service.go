// internal/service/user_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"splitledger/internal/auth"
	"splitledger/internal/domain"
	"splitledger/internal/repository"
	"splitledger/internal/util"
)

// TokenIssuer issues session tokens. *auth.JWTManager implements it.
type TokenIssuer interface {
	Generate(userID int64) (string, error)
}

// UserService defines the interface for registration, login and user lookups.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// userService implements the UserService interface.
type userService struct {
	dbExecutor repository.DBExecutor // For single-statement writes and reads (e.g., *sqlx.DB)
	userRepo   repository.UserRepository
	tokens     TokenIssuer
	logger     *slog.Logger
}

// NewUserService creates a new instance of UserService.
func NewUserService(dbExecutor repository.DBExecutor, userRepo repository.UserRepository, tokens TokenIssuer, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		tokens:     tokens,
		logger:     logger,
	}
}

// Register creates an account and returns it with a fresh session token.
func (s *userService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", util.NewValidationError("name", "is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return nil, "", util.NewValidationError("email", "must be a valid email address")
	}
	if len(password) < auth.MinPasswordLength {
		return nil, "", util.NewValidationError("password", fmt.Sprintf("must be at least %d characters", auth.MinPasswordLength))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	user := domain.NewUser(name, email, hash)
	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, user); err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	s.logger.InfoContext(ctx, "User registered", "user_id", user.ID)
	return user, token, nil
}

// Login checks credentials and returns the user with a fresh session token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", util.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: failed to get user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	return user, token, nil
}

// GetUser returns the user with the given id.
func (s *userService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// ListUsers returns every registered user.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
