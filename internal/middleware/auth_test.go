package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/charityhub/internal/auth"
	"anoa.com/charityhub/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func setupRouter(t *testing.T) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	m := NewAuthMiddleware(tokens)

	router := gin.New()
	api := router.Group("/api", m.RequireAuth())
	api.GET("/campaigns", func(c *gin.Context) {
		identity, _ := auth.FromContext(c)
		c.JSON(http.StatusOK, identity)
	})
	admin := api.Group("/admin", m.RequireRole(entity.RoleAdmin))
	admin.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, tokens
}

func issue(t *testing.T, tokens *auth.TokenManager, role string) string {
	t.Helper()
	token, _, err := tokens.Issue(auth.Identity{ID: uuid.New(), Username: "someone", Role: role})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	return token
}

func do(router *gin.Engine, path, authorization string) (int, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec.Code, body
}

func TestRequireAuthMissingToken(t *testing.T) {
	router, _ := setupRouter(t)

	code, body := do(router, "/api/campaigns", "")
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if body["error"] != "authentication required" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	router, _ := setupRouter(t)

	expired := auth.NewTokenManager("test-secret", -time.Minute)
	otherKey := auth.NewTokenManager("other-secret", time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{"malformed", "Bearer not-a-jwt"},
		{"wrong scheme", "Basic abc"},
		{"expired", "Bearer " + issue(t, expired, entity.RoleDonor)},
		{"foreign signature", "Bearer " + issue(t, otherKey, entity.RoleDonor)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(router, "/api/campaigns", tt.header)
			if code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", code)
			}
			if body["error"] != "invalid or expired token" {
				t.Errorf("unexpected error message: %v", body["error"])
			}
		})
	}
}

func TestRequireAuthResolvesIdentity(t *testing.T) {
	router, tokens := setupRouter(t)

	code, body := do(router, "/api/campaigns", "Bearer "+issue(t, tokens, entity.RoleDonor))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["role"] != entity.RoleDonor || body["username"] != "someone" {
		t.Errorf("unexpected identity: %v", body)
	}
}

func TestRequireRoleForbidsDonorOnAdminRoutes(t *testing.T) {
	router, tokens := setupRouter(t)

	for _, role := range []string{entity.RoleDonor, entity.RoleVolunteer} {
		code, body := do(router, "/api/admin/stats", "Bearer "+issue(t, tokens, role))
		if code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", role, code)
		}
		if body["error"] != "insufficient permissions" {
			t.Errorf("%s: unexpected error message: %v", role, body["error"])
		}
	}

	code, _ := do(router, "/api/admin/stats", "Bearer "+issue(t, tokens, entity.RoleAdmin))
	if code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", code)
	}
}

func TestRequireAuthAcceptsQueryToken(t *testing.T) {
	router, tokens := setupRouter(t)

	code, _ := do(router, "/api/campaigns?token="+issue(t, tokens, entity.RoleAdmin), "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}
