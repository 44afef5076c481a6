// Package middleware provides authentication, logging, and rate limiting middleware.
package middleware

import (
	"devconnector/internal/auth"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserIDKey is the locals key under which the authenticated identity is stored.
const UserIDKey = "userID"

// TokenHeader is the request header carrying the session token.
const TokenHeader = "x-auth-token"

// TokenRequired gates protected routes. It verifies the session token from
// the x-auth-token header and attaches the decoded identity to the request;
// downstream handlers never run for unauthenticated requests. Purely a gate,
// no state is mutated.
func TokenRequired(tokens *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Get(TokenHeader)
		if tokenStr == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("No token, authorization denied"))
		}

		userHex, err := tokens.Verify(tokenStr)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token is not valid"))
		}

		userID, err := primitive.ObjectIDFromHex(userHex)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token is not valid"))
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// AuthenticatedUser returns the identity attached by TokenRequired.
func AuthenticatedUser(c *fiber.Ctx) primitive.ObjectID {
	return c.Locals(UserIDKey).(primitive.ObjectID)
}
