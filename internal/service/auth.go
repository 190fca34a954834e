package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/rohingrover/absuma/config"
	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
)

// ErrInvalidCredentials is returned when the username or password is wrong.
// The two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Identity is the authenticated user carried through the request context
type Identity struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
}

// LoginInput is the login payload
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUserInput is the payload for creating a back-office user
type CreateUserInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role"`
}

// AuthService defines authentication and user management operations
type AuthService interface {
	Login(ctx context.Context, in *LoginInput) (string, *Identity, error)
	ParseToken(tokenString string) (*Identity, error)
	CreateUser(ctx context.Context, in *CreateUserInput) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepository, cfg *config.AuthConfig) AuthService {
	return &authService{
		users:  users,
		secret: []byte(cfg.JWTSecret),
		ttl:    time.Duration(cfg.TokenTTLHours) * time.Hour,
	}
}

// Login verifies the password hash and issues a signed session token
// carrying the user's identity claims.
func (s *authService) Login(ctx context.Context, in *LoginInput) (string, *Identity, error) {
	if errs := structErrors(in); len(errs) > 0 {
		return "", nil, NewValidationError(errs)
	}

	user, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"username":  user.Username,
		"full_name": user.FullName,
		"role":      string(user.Role),
		"exp":       time.Now().Add(s.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}

	identity := &Identity{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}
	return token, identity, nil
}

// ParseToken validates a session token and extracts the identity claims
func (s *authService) ParseToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, _ := claims["user_id"].(float64)
	username, _ := claims["username"].(string)
	fullName, _ := claims["full_name"].(string)
	role, _ := claims["role"].(string)

	return &Identity{
		UserID:   uint(userID),
		Username: username,
		FullName: fullName,
		Role:     models.Role(role),
	}, nil
}

// CreateUser hashes the password and stores a new back-office user
func (s *authService) CreateUser(ctx context.Context, in *CreateUserInput) (*models.User, error) {
	if errs := structErrors(in); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	role := models.RoleStaff
	switch in.Role {
	case "", string(models.RoleStaff):
	case string(models.RoleAdmin):
		role = models.RoleAdmin
	default:
		return nil, NewValidationError([]string{"role must be admin or staff"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewConflictError("username %s is already taken", in.Username)
		}
		return nil, err
	}
	return user, nil
}
