package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const AdminCookieName = "admin_auth"

// IssueAdminToken mints the signed token carried by the admin cookie.
func IssueAdminToken(secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// VerifyAdminToken reports whether a cookie value is a valid admin token.
func VerifyAdminToken(secret, tokenStr string) bool {
	if tokenStr == "" {
		return false
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	role, _ := claims["role"].(string)
	return role == "admin"
}

// AdminRequired gates the admin surface behind the admin_auth cookie.
func AdminRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !VerifyAdminToken(secret, c.Cookies(AdminCookieName)) {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "unauthorized"})
		}
		return c.Next()
	}
}

// UserFromToken optionally attaches the authenticated user id from a
// bearer token. Checkout stays open to guests, so a missing or invalid
// token just means no user id on the request.
func UserFromToken(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if len(header) > 7 && header[:7] == "Bearer " {
			tokenStr := header[7:]
			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err == nil && token.Valid {
				if claims, ok := token.Claims.(jwt.MapClaims); ok {
					if sub, ok := claims["sub"].(string); ok && sub != "" {
						c.Locals("user_id", sub)
					}
				}
			}
		}
		return c.Next()
	}
}
