package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

var ErrMissingBearer = errors.New("authorization header must be 'Bearer <token>'")

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingBearer
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingBearer
	}
	return token, nil
}

// BearerSecret guards a route with a shared secret. An empty secret locks the
// route entirely. Comparison is constant-time.
func BearerSecret(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !SecretMatches(secret, c.Get(fiber.HeaderAuthorization)) {
			return shared.ResponseRaw(c, fiber.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		}
		return c.Next()
	}
}

func SecretMatches(secret, header string) bool {
	if secret == "" {
		return false
	}
	token, err := BearerToken(header)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}
