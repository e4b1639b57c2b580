package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"portfolio-api/internal/domain"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Claims are the identity fields signed into a token.
type Claims struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() domain.Identity {
	return domain.Identity{ID: c.ID, Email: c.Email, DisplayName: c.FullName}
}

// TokenService issues and verifies HS256 tokens with a shared secret.
type TokenService struct {
	secret []byte
	clock  Clock
	parser *jwt.Parser
}

type TokenOption func(*TokenService)

func WithClock(clock Clock) TokenOption {
	return func(s *TokenService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewTokenService(secret string, opts ...TokenOption) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, newError(KindConfiguration, errors.New("jwt secret is empty"))
	}

	s := &TokenService{
		secret: []byte(secret),
		clock:  SystemClock,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	return s, nil
}

// Issue signs a token for identity valid for TokenTTL from now.
func (s *TokenService) Issue(identity domain.Identity) (string, error) {
	// NumericDate keeps whole seconds; truncate first so exp-iat is exactly TokenTTL.
	now := s.clock.Now().UTC().Truncate(time.Second)

	claims := Claims{
		ID:       identity.ID,
		Email:    identity.Email,
		FullName: identity.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of token and returns its claims.
// Failures are ErrMalformed, ErrInvalidSignature or ErrExpired.
func (s *TokenService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if claims.ID <= 0 || claims.IssuedAt == nil {
		return nil, newError(KindMalformed, errors.New("identity claims missing"))
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return newError(KindExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return newError(KindInvalidSignature, err)
	default:
		return newError(KindMalformed, err)
	}
}
