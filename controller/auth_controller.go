package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/a-nebula-dev/ProjectLaserBunny/middleware"
)

const adminSessionTTL = 24 * time.Hour

type AuthController struct {
	AdminPassword     string
	AdminPasswordHash string // bcrypt; takes precedence when set
	JWTSecret         string
}

func (ac *AuthController) checkPassword(password string) bool {
	if ac.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(ac.AdminPasswordHash), []byte(password)) == nil
	}
	return ac.AdminPassword != "" && password == ac.AdminPassword
}

func (ac *AuthController) AdminLogin(c *fiber.Ctx) error {
	if ac.AdminPassword == "" && ac.AdminPasswordHash == "" {
		return fail(c, 500, "admin password not configured")
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid payload")
	}
	if req.Password == "" {
		return fail(c, 400, "password is required")
	}
	if !ac.checkPassword(req.Password) {
		return fail(c, 401, "incorrect password")
	}

	token, err := middleware.IssueAdminToken(ac.JWTSecret, adminSessionTTL)
	if err != nil {
		return fail(c, 500, "failed to authenticate")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   int(adminSessionTTL.Seconds()),
		Path:     "/",
	})
	return c.JSON(fiber.Map{"success": true})
}

func (ac *AuthController) AdminStatus(c *fiber.Ctx) error {
	authenticated := middleware.VerifyAdminToken(ac.JWTSecret, c.Cookies(middleware.AdminCookieName))
	return c.JSON(fiber.Map{"success": true, "authenticated": authenticated})
}
