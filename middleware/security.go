package middleware

import "github.com/gofiber/fiber/v2"

// The API only serves JSON and text downloads, so nothing may be embedded or executed.
const apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'"

// Security sets browser hardening headers on every response. HSTS is only
// sent when the server runs behind TLS in production.
func Security(production bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "no-referrer")
		c.Set("Content-Security-Policy", apiContentSecurityPolicy)
		if production {
			c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		err := c.Next()

		// Note bodies and session data must not be kept by shared caches.
		if c.Path() != "/health" {
			c.Set(fiber.HeaderCacheControl, "no-store")
		}
		return err
	}
}
