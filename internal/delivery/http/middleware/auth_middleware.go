package middleware

import (
	"strings"

	"devconnect/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// TokenHeader is the wire contract clients already use for authentication.
const TokenHeader = "x-auth-token"

const CtxUserIDKey = "user_id"

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware is the only authorization gate in the system: requests are
// either authenticated or they are not, there are no roles or scopes.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := strings.TrimSpace(c.Get(TokenHeader))
		if token == "" {
			return NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil, nil)
		}

		userID, err := m.jwt.Verify(token)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Token is not valid", nil, err)
		}

		c.Locals(CtxUserIDKey, userID)
		return c.Next()
	}
}

// UserIDFromCtx reads the identity the guard attached. The second return is
// false on routes that never passed through the guard.
func UserIDFromCtx(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	return id, ok
}
