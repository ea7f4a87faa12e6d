// Package middleware provides the Fiber middleware chain: authentication,
// structured request logging, rate limiting, metrics and tracing.
package middleware

import (
	"strings"

	"medconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier resolves a bearer token to the account id it was issued for.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// AuthRequired rejects requests without a valid bearer token. Every rejection
// carries the same body so callers cannot tell a missing token from a forged one.
// It never touches storage.
func AuthRequired(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthenticated(c)
		}

		accountID, err := verifier.Verify(tokenString)
		if err != nil {
			Logger.DebugContext(c.UserContext(), "token rejected", "error", err)
			return unauthenticated(c)
		}

		c.Locals("userID", accountID)
		c.SetUserContext(WithUserID(c.UserContext(), accountID))

		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthenticated(c *fiber.Ctx) error {
	return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthenticatedError())
}
