package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/pkg/auth"
	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
	"github.com/AndyMuloki/zen-spa/pkg/logger"
	"github.com/AndyMuloki/zen-spa/pkg/security"
)

// Credentials hold the single configured admin account.
type Credentials struct {
	Username     string
	PasswordHash string
}

// Session is an issued admin token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	creds   Credentials
	hasher  security.PasswordHasher
	jwtSvc  auth.JWTService
	revoked *cache.Cache
	logger  *logger.Logger
}

func NewService(creds Credentials, hasher security.PasswordHasher, jwtSvc auth.JWTService, logger *logger.Logger) *Service {
	return &Service{
		creds:   creds,
		hasher:  hasher,
		jwtSvc:  jwtSvc,
		revoked: cache.New(cache.NoExpiration, 10*time.Minute),
		logger:  logger,
	}
}

// Enabled is false when no admin account is configured; every login then fails.
func (s *Service) Enabled() bool {
	return s.creds.Username != "" && s.creds.PasswordHash != ""
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (*Session, error) {
	if !s.Enabled() {
		return nil, apperrors.Unauthorized(nil)
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.creds.Username)) == 1
	passErr := s.hasher.Compare(s.creds.PasswordHash, req.Password)
	if !userOK || passErr != nil {
		s.logger.Warn("Admin login rejected", "username", req.Username)
		return nil, &apperrors.AppError{Code: apperrors.ErrUnauthorized, Message: "Invalid credentials", Err: passErr}
	}

	token, claims, err := s.jwtSvc.GenerateAdminToken(s.creds.Username)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	s.logger.Info("Admin logged in", "username", req.Username)
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// IsAdmin reports whether token is a live, unrevoked admin token.
func (s *Service) IsAdmin(token string) bool {
	if token == "" {
		return false
	}
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil || !claims.Admin {
		return false
	}
	_, revoked := s.revoked.Get(claims.ID)
	return !revoked
}

// Logout revokes token until its natural expiry. Unknown or invalid tokens are ignored.
func (s *Service) Logout(token string) {
	if token == "" {
		return
	}
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return
	}
	s.revoked.Set(claims.ID, struct{}{}, ttl)
}
