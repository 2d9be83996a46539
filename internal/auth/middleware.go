package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserIDLocalKey is the Fiber locals key holding the authenticated user id.
const UserIDLocalKey = "user_id"

// RequireAuth rejects requests without a valid "Authorization: Bearer <token>" header
// by returning ErrUnauthenticated to the error handler. On success the user id is
// stored in locals under UserIDLocalKey.
func RequireAuth(v Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ErrUnauthenticated
		}

		id, err := v.Verify(strings.TrimSpace(token))
		if err != nil {
			return err
		}

		c.Locals(UserIDLocalKey, id)
		return c.Next()
	}
}

// UserID returns the authenticated user id stored by RequireAuth.
func UserID(c *fiber.Ctx) (int64, error) {
	id, ok := c.Locals(UserIDLocalKey).(int64)
	if !ok || id <= 0 {
		return 0, ErrUnauthenticated
	}
	return id, nil
}
