package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/a-nebula-dev/ProjectLaserBunny/middleware"
)

func authTestApp() *fiber.App {
	ac := &AuthController{AdminPassword: "hunter2", JWTSecret: "test-secret"}

	app := fiber.New()
	app.Post("/api/auth/admin", ac.AdminLogin)
	app.Get("/api/auth/admin", ac.AdminStatus)
	app.Get("/api/orders", middleware.AdminRequired("test-secret"), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func login(t *testing.T, app *fiber.App, password string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"password": password})
	req := httptest.NewRequest("POST", "/api/auth/admin", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func adminCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.AdminCookieName {
			return cookie
		}
	}
	return nil
}

func TestAdminLoginWrongPassword(t *testing.T) {
	app := authTestApp()
	resp := login(t, app, "wrong")
	require.Equal(t, 401, resp.StatusCode)
	require.Nil(t, adminCookie(resp))
}

func TestAdminLoginIssuesCookie(t *testing.T) {
	app := authTestApp()
	resp := login(t, app, "hunter2")
	require.Equal(t, 200, resp.StatusCode)

	cookie := adminCookie(resp)
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)
	require.True(t, middleware.VerifyAdminToken("test-secret", cookie.Value))
}

func TestAdminGateRejectsWithoutCookie(t *testing.T) {
	app := authTestApp()

	req := httptest.NewRequest("GET", "/api/orders", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)

	// forged flag cookies from the old scheme do not pass
	req = httptest.NewRequest("GET", "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AdminCookieName, Value: "true"})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestAdminGateAcceptsIssuedCookie(t *testing.T) {
	app := authTestApp()
	cookie := adminCookie(login(t, app, "hunter2"))
	require.NotNil(t, cookie)

	req := httptest.NewRequest("GET", "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AdminCookieName, Value: cookie.Value})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}

func TestAdminStatus(t *testing.T) {
	app := authTestApp()

	req := httptest.NewRequest("GET", "/api/auth/admin", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, false, body["authenticated"])

	cookie := adminCookie(login(t, app, "hunter2"))
	req = httptest.NewRequest("GET", "/api/auth/admin", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AdminCookieName, Value: cookie.Value})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, true, body["authenticated"])
}
