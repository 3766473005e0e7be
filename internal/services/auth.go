package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/blog-store/internal/logger"
	"github.com/sbilibin2017/blog-store/internal/models"
)

// Error variables
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserReader returns the privileged view of a user, or nil when there is none.
type UserReader interface {
	GetFullByUsername(ctx context.Context, username string) (*models.UserFull, error)
}

// PasswordVerifier checks a plaintext password against a stored digest.
type PasswordVerifier interface {
	Verify(plaintext, digest string) bool
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID int64) (string, error)
}

// AuthService handles login.
type AuthService struct {
	reader   UserReader
	verifier PasswordVerifier
	jwt      JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, verifier PasswordVerifier, jwt JWTGenerator) *AuthService {
	return &AuthService{
		reader:   reader,
		verifier: verifier,
		jwt:      jwt,
	}
}

// Login authenticates a user and returns a JWT token. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.reader.GetFullByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Infow("user does not exist", "username", username)
		return "", ErrInvalidCredentials
	}

	if !svc.verifier.Verify(password, user.HashedPassword) {
		logger.Log.Infow("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}
