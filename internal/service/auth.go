package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayush-assistant/herbcatalog/internal/domain"
)

// dummyHash is compared against when the email is unknown so that sign-in
// takes about as long whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthConfig holds the identity settings for AuthService.
type AuthConfig struct {
	// Secret signs session tokens with HS256.
	Secret []byte
	// TTL is how long an issued session stays valid.
	TTL time.Duration
	// Accounts maps an email to its bcrypt password hash.
	Accounts map[string]string
	// Admins is the allow-list of emails that may hold a session.
	Admins []string
}

// AuthService signs admins in and verifies their session tokens.
type AuthService struct {
	secret   []byte
	ttl      time.Duration
	accounts map[string]string
	admins   map[string]bool
	now      func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiry
}

// NewAuthService constructs an AuthService. Emails are compared
// case-insensitively.
func NewAuthService(cfg AuthConfig) *AuthService {
	s := &AuthService{
		secret:   cfg.Secret,
		ttl:      cfg.TTL,
		accounts: make(map[string]string, len(cfg.Accounts)),
		admins:   make(map[string]bool, len(cfg.Admins)),
		now:      time.Now,
		revoked:  make(map[string]time.Time),
	}
	for email, hash := range cfg.Accounts {
		s.accounts[normalizeEmail(email)] = hash
	}
	for _, email := range cfg.Admins {
		s.admins[normalizeEmail(email)] = true
	}
	return s
}

// SignIn checks the credentials and issues a session for an admin.
// Valid credentials for an email outside the allow-list yield
// domain.ErrForbidden and no session.
func (s *AuthService) SignIn(_ context.Context, email, password string) (domain.Session, error) {
	email = normalizeEmail(email)

	hash, ok := s.accounts[email]
	if !ok {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return domain.Session{}, fmt.Errorf("service.AuthService.SignIn: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.SignIn: %w", domain.ErrUnauthorized)
	}
	if !s.admins[email] {
		return domain.Session{}, fmt.Errorf("service.AuthService.SignIn: %w", domain.ErrForbidden)
	}

	now := s.now()
	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.SignIn: sign: %w", err)
	}
	return domain.Session{Token: token, Email: email, ExpiresAt: expires}, nil
}

// Verify returns the admin email a session token was issued to.
// Bad signatures, expired or revoked tokens, and subjects no longer on the
// allow-list all yield domain.ErrUnauthorized.
func (s *AuthService) Verify(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", fmt.Errorf("service.AuthService.Verify: %w", err)
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return "", fmt.Errorf("service.AuthService.Verify: token revoked: %w", domain.ErrUnauthorized)
	}

	if !s.admins[claims.Subject] {
		return "", fmt.Errorf("service.AuthService.Verify: %w", domain.ErrUnauthorized)
	}
	return claims.Subject, nil
}

// SignOut revokes a session token until it would have expired anyway.
func (s *AuthService) SignOut(token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return fmt.Errorf("service.AuthService.SignOut: %w", err)
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for jti, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, jti)
		}
	}
	s.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

func (s *AuthService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token expired: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("missing claim: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
