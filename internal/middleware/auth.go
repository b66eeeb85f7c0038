package middleware

import (
	"github.com/authorizerdev/authorizer-go"
	"github.com/gofiber/fiber/v2"
	"github.com/moodscribe/moodscribe/internal/config"
	"github.com/moodscribe/moodscribe/internal/services"
	"github.com/moodscribe/moodscribe/internal/types"
	"gorm.io/gorm"
)

// AuthUser validates the session cookie and resolves the local user row for
// the authenticated subject, creating it on first sight. The resolved
// *models.User is stored in c.Locals("user").
func AuthUser(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Lazy init so the service can start before the Authorizer is up
		if !services.IsAuthorizerInitialized() {
			if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
				return types.NewCustomError(fiber.StatusServiceUnavailable,
					types.ErrTypeAuthInit, "Authorizer unavailable: %v", err)
			}
		}

		session := c.Cookies("cookie_session")
		if session == "" {
			return types.NewCustomError(fiber.StatusForbidden,
				types.ErrTypeAuthUser, "Authorizer cookie %q not found", "cookie_session")
		}

		subject, err := services.ValidateSession(session)
		if err != nil {
			return types.NewCustomError(fiber.StatusForbidden,
				types.ErrTypeAuthUser, "Invalid session: %v", err)
		}

		subjectID, email, name := subjectFields(subject)
		if subjectID == "" {
			return types.NewCustomError(fiber.StatusForbidden,
				types.ErrTypeAuthUser, "Session has no user id")
		}

		user, err := services.FindOrCreateUser(db, subjectID, email, name)
		if err != nil {
			return types.NewCustomError(fiber.StatusInternalServerError,
				types.ErrTypeAuthUser, "Failed to resolve user: %v", err)
		}

		c.Locals("user", user)

		return c.Next()
	}
}

// subjectFields extracts id, email and name from the identity-provider user.
// GivenName is optional in the SDK payload.
func subjectFields(user *authorizer.User) (string, string, string) {
	if user == nil {
		return "", "", ""
	}

	name := ""
	if user.GivenName != nil {
		name = *user.GivenName
	}

	return user.ID, user.Email, name
}
