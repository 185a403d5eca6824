package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/auth"
)

var ErrInvalidToken = fmt.Errorf("%w: invalid token", apperr.ErrUnauthenticated)

type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Service signs and verifies HS256 caller tokens.
type Service struct {
	cfg Config
	now func() time.Time
}

func NewService(cfg Config) (*Service, error) {
	if len(cfg.Secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 bytes")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &Service{cfg: cfg, now: time.Now}, nil
}

func (s *Service) Issue(userID string, role auth.Role) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("token subject is required")
	}
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Role: string(role),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and issuer, and resolves the caller.
func (s *Service) Verify(raw string) (auth.Caller, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return auth.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return auth.Caller{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	role, err := auth.ParseRole(claims.Role)
	if err != nil {
		return auth.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return auth.Caller{UserID: claims.Subject, Role: role}, nil
}
