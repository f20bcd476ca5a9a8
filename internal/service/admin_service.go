package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"terra-form/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10

	// AdminRole and AdminSubject are carried in every admin token.
	AdminRole    = "admin"
	AdminSubject = "admin"

	DefaultTokenExpiration = 12 * time.Hour
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token has expired")

	// ErrPasswordMismatch reports that a hash is already stored and the
	// configured password no longer matches it. The stored hash stays.
	ErrPasswordMismatch = errors.New("configured admin password differs from stored hash")
)

// AdminService defines the interface for the single-admin login
type AdminService interface {
	// EnsurePassword stores the hash of password unless a hash already
	// exists, and reports whether it stored one. An existing hash that does
	// not match password yields ErrPasswordMismatch.
	EnsurePassword(ctx context.Context, password string) (bool, error)
	Login(ctx context.Context, password string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims represents the JWT claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type adminService struct {
	configRepo      repository.AdminConfigRepository
	jwtSecret       string
	tokenExpiration time.Duration
	now             func() time.Time
}

// NewAdminService creates a new instance of AdminService. A non-positive
// tokenExpiration falls back to DefaultTokenExpiration.
func NewAdminService(
	configRepo repository.AdminConfigRepository,
	jwtSecret string,
	tokenExpiration time.Duration,
) AdminService {
	if tokenExpiration <= 0 {
		tokenExpiration = DefaultTokenExpiration
	}
	return &adminService{
		configRepo:      configRepo,
		jwtSecret:       jwtSecret,
		tokenExpiration: tokenExpiration,
		now:             time.Now,
	}
}

func (s *adminService) EnsurePassword(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, fmt.Errorf("admin password must not be empty")
	}

	hash, err := s.configRepo.Get(ctx, repository.ConfigKeyAdminPasswordHash)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
			return false, ErrPasswordMismatch
		}
		return false, nil
	case !errors.Is(err, repository.ErrConfigNotFound):
		return false, fmt.Errorf("failed to read admin password: %w", err)
	}

	hashedPassword, err := s.hashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	stored, err := s.configRepo.SetIfAbsent(ctx, repository.ConfigKeyAdminPasswordHash, hashedPassword)
	if err != nil {
		return false, fmt.Errorf("failed to store admin password: %w", err)
	}
	return stored, nil
}

// Login checks password against the stored hash and issues a signed token
func (s *adminService) Login(ctx context.Context, password string) (string, error) {
	if err := s.checkPassword(ctx, password); err != nil {
		return "", err
	}

	token, err := s.generateAccessToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *adminService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != AdminRole {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *adminService) checkPassword(ctx context.Context, password string) error {
	hash, err := s.configRepo.Get(ctx, repository.ConfigKeyAdminPasswordHash)
	if err != nil {
		if errors.Is(err, repository.ErrConfigNotFound) {
			return ErrInvalidPassword
		}
		return fmt.Errorf("failed to read admin password: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

func (s *adminService) hashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *adminService) generateAccessToken() (string, error) {
	now := s.now()
	claims := &Claims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   AdminSubject,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
