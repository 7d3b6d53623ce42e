package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ulmj7/fulltravelapp/internal/auth"
	"github.com/Ulmj7/fulltravelapp/internal/models"
)

func newProtectedRouter(t *testing.T, jwtService *auth.JWTService, roles ...models.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("")
	group.Use(JWT(jwtService))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.MustGet(ContextUserID).(uuid.UUID),
			"role":   c.MustGet(ContextUserRole).(string),
		})
	})
	return router
}

func get(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTMissingToken(t *testing.T) {
	router := newProtectedRouter(t, auth.NewJWTService("secret", 24))
	if w := get(router, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no header: status = %d, want 401", w.Code)
	}
	if w := get(router, "Token abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong scheme: status = %d, want 401", w.Code)
	}
}

func TestJWTInvalidToken(t *testing.T) {
	router := newProtectedRouter(t, auth.NewJWTService("secret", 24))
	if w := get(router, "Bearer garbage"); w.Code != http.StatusForbidden {
		t.Errorf("garbage token: status = %d, want 403", w.Code)
	}

	foreign, err := auth.NewJWTService("other-secret", 24).Generate(uuid.New(), models.RoleTourist)
	if err != nil {
		t.Fatal(err)
	}
	if w := get(router, "Bearer "+foreign); w.Code != http.StatusForbidden {
		t.Errorf("foreign token: status = %d, want 403", w.Code)
	}
}

func TestJWTAttachesClaims(t *testing.T) {
	svc := auth.NewJWTService("secret", 24)
	router := newProtectedRouter(t, svc)

	token, err := svc.Generate(uuid.New(), models.RoleOrganization)
	if err != nil {
		t.Fatal(err)
	}
	if w := get(router, "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	svc := auth.NewJWTService("secret", 24)
	router := newProtectedRouter(t, svc, models.RoleAdmin)

	touristToken, err := svc.Generate(uuid.New(), models.RoleTourist)
	if err != nil {
		t.Fatal(err)
	}
	if w := get(router, "Bearer "+touristToken); w.Code != http.StatusForbidden {
		t.Errorf("tourist on admin route: status = %d, want 403", w.Code)
	}

	adminToken, err := svc.Generate(uuid.Nil, models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if w := get(router, "Bearer "+adminToken); w.Code != http.StatusOK {
		t.Errorf("admin on admin route: status = %d, want 200", w.Code)
	}
}
