package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/teacher-directory/pkg/util"
)

const claimsKey = "auth_claims"

// AuthMiddleware validates bearer tokens and stores their claims on the request.
type AuthMiddleware struct {
	tokens  *TokenManager
	revoked Denylist
}

// NewAuthMiddleware constructs middleware. A nil denylist disables revocation checks.
func NewAuthMiddleware(tokens *TokenManager, revoked Denylist) *AuthMiddleware {
	if revoked == nil {
		revoked = NoopDenylist{}
	}
	return &AuthMiddleware{tokens: tokens, revoked: revoked}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw, err := ExtractBearer(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return UnauthorizedError(err)
	}

	claims, err := m.tokens.VerifyToken(raw)
	if err != nil {
		return UnauthorizedError(err)
	}

	revoked, err := m.revoked.IsRevoked(c.UserContext(), claims.ID)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if revoked {
		return apperrors.NewUnauthorized("Token revoked")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// UnauthorizedError maps a token rejection to the API error taxonomy.
func UnauthorizedError(err error) error {
	kind, ok := KindOf(err)
	if !ok {
		return apperrors.NewInternalError(err)
	}
	switch kind {
	case KindMissing:
		return apperrors.NewUnauthorized("Token required")
	case KindExpired:
		return apperrors.NewUnauthorized("Token expired")
	default:
		return apperrors.NewUnauthorized("Invalid token")
	}
}

// ClaimsFromContext retrieves the authenticated caller's claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
