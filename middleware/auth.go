// middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID = "user_id"
	LocalHolder = "holder"
	LocalRoles  = "user_roles"
)

// HolderContextMiddleware extracts the user and the wallet they act for, as
// set by the Gateway. Secured routes (/s/...) need both; admin routes also
// need the admin role.
func HolderContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		holder := strings.TrimSpace(c.Get("X-Wallet-Address"))

		var roles []string
		for _, r := range strings.Split(c.Get("X-User-Roles"), ",") {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, r)
			}
		}

		path := c.Path()
		if strings.HasPrefix(path, "/s/") {
			if userID == "" || holder == "" {
				log.Printf("❌ [HOLDER_CTX] X-User-ID and X-Wallet-Address required on %s", path)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "missing X-User-ID or X-Wallet-Address: request must come through gateway with auth context",
				})
			}
			if strings.HasPrefix(path, "/s/admin/") && !hasRole(roles, "admin") {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "admin role required",
				})
			}
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalHolder, holder)
		c.Locals(LocalRoles, roles)
		return c.Next()
	}
}

func hasRole(roles []string, want string) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}
