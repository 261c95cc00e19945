package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"farmstock_backend/internal/models"
	"farmstock_backend/internal/repositories"
	"farmstock_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Service-level errors for authentication.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user with this username or email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// RegisterRequest is the DTO for creating an administrative user.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff"`
}

// LoginRequest is the DTO for an authentication attempt.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService defines the interface for administrative authentication.
type AuthService interface {
	Register(req RegisterRequest) (*models.User, error)
	Login(req LoginRequest) (*LoginResponse, error)
	GetUserByID(id int64) (*models.User, error)
}

type authService struct {
	db       *sql.DB
	authRepo repositories.AuthRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *sql.DB, authRepo repositories.AuthRepository) AuthService {
	return &authService{db: db, authRepo: authRepo}
}

func (s *authService) Register(req RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "staff"
	}
	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if _, err := s.authRepo.CreateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(req LoginRequest) (*LoginResponse, error) {
	user, err := s.authRepo.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *authService) GetUserByID(id int64) (*models.User, error) {
	user, err := s.authRepo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	return user, nil
}
