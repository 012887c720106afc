package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "zen-spa"

var ErrInvalidToken = errors.New("invalid token")

// AdminClaims is the payload of an admin session token.
type AdminClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateAdminToken(subject string) (string, *AdminClaims, error)
	ValidateToken(token string) (*AdminClaims, error)
}

type hmacService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(secret string, ttl time.Duration) JWTService {
	return &hmacService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *hmacService) GenerateAdminToken(subject string) (string, *AdminClaims, error) {
	now := s.now()
	claims := &AdminClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, claims, nil
}

func (s *hmacService) ValidateToken(token string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
