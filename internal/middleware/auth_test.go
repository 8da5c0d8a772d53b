package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skanderbz/batitrack/internal/models"
	"github.com/skanderbz/batitrack/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-key-for-testing")
}

func authTestRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserID(c),
			"email":   GetEmail(c),
			"role":    GetRole(c),
		})
	})
	r.POST("/moa-only", AuthRequired(), RoleRequired(models.RoleMOA), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(r *gin.Engine, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_MissingToken(t *testing.T) {
	r := authTestRouter()

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"bearer without token", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/protected", tt.header)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, expected 401", w.Code)
			}
		})
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	r := authTestRouter()

	w := doRequest(r, http.MethodGet, "/protected", "Bearer not.a.valid.token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, expected 401", w.Code)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	r := authTestRouter()

	token, err := utils.GenerateToken(7, "moa@example.com", models.RoleMOA, 8)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	w := doRequest(r, http.MethodGet, "/protected", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200: %s", w.Code, w.Body.String())
	}
}

func TestRoleRequired(t *testing.T) {
	r := authTestRouter()

	moaToken, _ := utils.GenerateToken(1, "moa@example.com", models.RoleMOA, 8)
	labToken, _ := utils.GenerateToken(2, "labo@example.com", models.RoleLabo, 8)

	if w := doRequest(r, http.MethodPost, "/moa-only", "Bearer "+moaToken); w.Code != http.StatusOK {
		t.Errorf("moa should pass, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/moa-only", "Bearer "+labToken); w.Code != http.StatusForbidden {
		t.Errorf("labo should be forbidden, got %d", w.Code)
	}
}
