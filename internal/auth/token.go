package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/teacher-directory/internal/domain"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a TokenManager.
type Option func(*TokenManager)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(tm *TokenManager) {
		tm.now = now
	}
}

// NewTokenManager builds a manager signing with secret. An empty secret is a configuration error.
func NewTokenManager(secret string, ttl time.Duration, opts ...Option) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrSecretNotConfigured
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	tm := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Claims describes JWT payload.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for user valid from now until now+ttl.
func (tm *TokenManager) IssueToken(user *domain.User) (*domain.Token, error) {
	if tm == nil || len(tm.secret) == 0 {
		return nil, ErrSecretNotConfigured
	}
	if user == nil || user.ID == "" {
		return nil, errors.New("auth: cannot issue token without user id")
	}

	issuedAt := tm.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(tm.ttl)
	tokenID := uuid.NewString()

	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return nil, err
	}
	return &domain.Token{
		ID:        tokenID,
		Value:     tokenString,
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyToken checks signature and expiry. On any failure it returns nil claims and an
// *AuthError of kind KindMalformed or KindExpired.
func (tm *TokenManager) VerifyToken(tokenStr string) (*Claims, error) {
	if tm == nil || len(tm.secret) == 0 {
		return nil, ErrSecretNotConfigured
	}
	if tokenStr == "" {
		return nil, newAuthError(KindMissing, nil)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, newAuthError(KindMalformed, err)
	}
	if !parsed.Valid || claims.UserID == "" || claims.ExpiresAt == nil {
		return nil, newAuthError(KindMalformed, errors.New("invalid token claims"))
	}

	// Expired when expires-at <= now.
	if !tm.now().Before(claims.ExpiresAt.Time) {
		return nil, newAuthError(KindExpired, jwt.ErrTokenExpired)
	}
	return claims, nil
}

// TTL returns the lifetime of issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
