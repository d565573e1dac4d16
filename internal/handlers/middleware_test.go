package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"internmatch/internal/models"
)

func authTestApp(t *testing.T, secret string, role models.Role) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Get("/protected", RequireAuth(secret), RequireRole(role), func(c *fiber.Ctx) error {
		return c.SendString(currentUserID(c).String())
	})
	return app
}

func TestRequireAuthRoundTrip(t *testing.T) {
	secret := "test-secret"
	user := &models.User{ID: uuid.New(), Role: models.RoleStudent}

	token, err := IssueToken(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	app := authTestApp(t, secret, models.RoleStudent)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != user.ID.String() {
		t.Fatalf("expected user id %s in locals, got %q", user.ID, body)
	}
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	app := authTestApp(t, "test-secret", models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleStudent}
	token, err := IssueToken(user, "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	app := authTestApp(t, "test-secret", models.RoleStudent)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleStudent}
	token, err := IssueToken(user, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	app := authTestApp(t, "test-secret", models.RoleStudent)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleCompany}
	token, err := IssueToken(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	app := authTestApp(t, "test-secret", models.RoleStudent)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestValidAllocationStatus(t *testing.T) {
	for _, status := range []models.AllocationStatus{
		models.StatusMatched, models.StatusApplied, models.StatusShortlisted, models.StatusRejected,
	} {
		if !models.ValidAllocationStatus(status) {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	if models.ValidAllocationStatus("hired") {
		t.Fatalf("expected unknown status to be invalid")
	}
}
