// Package token issues and verifies the signed session tokens that identify
// an account on every authenticated request.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the session lifetime when Config.TTL is zero.
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrMalformed means the token could not be parsed or names no account.
	ErrMalformed = errors.New("token malformed")
	// ErrInvalidSignature means the token was not signed by this service.
	ErrInvalidSignature = errors.New("token signature invalid")
	// ErrExpired means the token is outside its validity window.
	ErrExpired = errors.New("token expired")
)

// Config describes how tokens are signed and scoped.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Service signs and verifies HS256 session tokens. It is stateless: a token
// stays valid until it expires.
type Service struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a Service. An empty secret is rejected.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &Service{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue returns a signed token whose subject is accountID.
func (s *Service) Issue(accountID uint) (string, error) {
	if accountID == 0 {
		return "", errors.New("account id is required")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(accountID), 10),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and validity window of tokenString and returns
// the account id it names.
func (s *Service) Verify(tokenString string) (uint, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		// The library treats exp as exclusive; the window is checked exactly below.
		jwt.WithLeeway(time.Second),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(s.audience))
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.NewParser(parserOpts...).ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return 0, classify(err)
	}

	// A token is good up to and including its expiry second.
	now := s.now()
	if now.After(claims.ExpiresAt.Time) {
		return 0, ErrExpired
	}
	if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
		return 0, ErrExpired
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 || id > uint64(^uint(0)) {
		return 0, ErrMalformed
	}
	return uint(id), nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrInvalidSignature
	default:
		return ErrMalformed
	}
}
