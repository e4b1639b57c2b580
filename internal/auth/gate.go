package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

// Mode is the per-route authentication policy.
type Mode int

const (
	ModePublic Mode = iota
	ModeOptional
	ModeRequired
)

func (m Mode) String() string {
	switch m {
	case ModePublic:
		return "public"
	case ModeOptional:
		return "optional"
	case ModeRequired:
		return "required"
	default:
		return "unknown"
	}
}

// Observer is notified of every gate decision.
type Observer interface {
	ObserveAuth(mode, outcome string)
}

const (
	OutcomeAuthenticated = "authenticated"
	OutcomeAnonymous     = "anonymous"
)

// Gate decides whether a request may proceed and with which identity.
type Gate struct {
	tokens   *TokenService
	accounts AccountStore
	logger   logrus.FieldLogger
	observer Observer
}

type GateOption func(*Gate)

func WithLogger(logger logrus.FieldLogger) GateOption {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func WithObserver(observer Observer) GateOption {
	return func(g *Gate) { g.observer = observer }
}

func NewGate(tokens *TokenService, accounts AccountStore, opts ...GateOption) *Gate {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	g := &Gate{
		tokens:   tokens,
		accounts: accounts,
		logger:   discard,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authenticate applies mode to the raw Authorization header value.
//
// Public never looks at the header. Optional trusts the token claims without
// reading the store and returns a nil identity on any failure, expired tokens
// included. Required also checks that the subject still exists and returns
// ErrUnauthenticated, ErrInvalidToken or ErrTokenExpired; store failures are
// returned unclassified.
func (g *Gate) Authenticate(ctx context.Context, header string, mode Mode) (*domain.Identity, error) {
	switch mode {
	case ModePublic:
		return nil, nil
	case ModeOptional:
		claims, err := g.verify(header)
		if err != nil {
			if !errors.Is(err, ErrNoToken) {
				g.logger.WithError(err).Debug("optional auth: continuing anonymously")
			}
			g.observe(mode, OutcomeAnonymous)
			return nil, nil
		}
		identity := claims.Identity()
		g.observe(mode, OutcomeAuthenticated)
		return &identity, nil
	}

	identity, err := g.authenticate(ctx, header)
	if err != nil {
		kind := KindOf(err)
		if kind == KindUnknown {
			g.observe(mode, "error")
		} else {
			g.observe(mode, kind.String())
		}
		return nil, err
	}
	g.observe(mode, OutcomeAuthenticated)
	return identity, nil
}

func (g *Gate) verify(header string) (*Claims, error) {
	token, err := bearerToken(header)
	if err != nil {
		return nil, err
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrExpired) {
			return nil, newError(KindTokenExpired, err)
		}
		return nil, newError(KindInvalidToken, err)
	}
	return claims, nil
}

// authenticate verifies the header and reloads the subject from the store.
func (g *Gate) authenticate(ctx context.Context, header string) (*domain.Identity, error) {
	claims, err := g.verify(header)
	if err != nil {
		return nil, err
	}

	account, err := g.accounts.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindUnauthenticated, ErrUnknownSubject)
		}
		return nil, fmt.Errorf("load token subject: %w", err)
	}

	identity := account.Identity()
	return &identity, nil
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", newError(KindUnauthenticated, ErrNoToken)
	}
	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", newError(KindInvalidToken, fmt.Errorf("unsupported authorization scheme %q", scheme))
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", newError(KindUnauthenticated, ErrNoToken)
	}
	return token, nil
}

func (g *Gate) observe(mode Mode, outcome string) {
	if g.observer != nil {
		g.observer.ObserveAuth(mode.String(), outcome)
	}
}
