package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tax-badge-api/config"
	"tax-badge-api/models"
	"tax-badge-api/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func signToken(t *testing.T, secret string, userID int, email string) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	config.DB = db

	admin := models.User{Email: "admin@example.com", Password: "x"}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	regular := models.User{Email: "user@example.com", Password: "x"}
	if err := db.Create(&regular).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	admins := services.NewAdminList([]string{"admin@example.com"})
	router := gin.New()
	router.GET("/whoami", AuthMiddleware(admins), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetInt("userID"),
			"is_admin": c.GetBool("isAdmin"),
		})
	})

	get := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	if w := get(""); w.Code != http.StatusUnauthorized {
		t.Errorf("no header: status = %d, want 401", w.Code)
	}
	if w := get("NotBearer xyz"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad scheme: status = %d, want 401", w.Code)
	}
	if w := get("Bearer not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", w.Code)
	}

	wrongKey := signToken(t, "other-secret", admin.UserID, admin.Email)
	if w := get("Bearer " + wrongKey); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong signing key: status = %d, want 401", w.Code)
	}

	ghost := signToken(t, "test-secret", 4242, "ghost@example.com")
	if w := get("Bearer " + ghost); w.Code != http.StatusUnauthorized {
		t.Errorf("deleted user: status = %d, want 401", w.Code)
	}

	w := get("Bearer " + signToken(t, "test-secret", admin.UserID, admin.Email))
	if w.Code != http.StatusOK {
		t.Fatalf("valid admin token: status = %d, body %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, `"is_admin":true`) {
		t.Errorf("admin flag missing in %s", body)
	}

	w = get("Bearer " + signToken(t, "test-secret", regular.UserID, regular.Email))
	if w.Code != http.StatusOK {
		t.Fatalf("valid user token: status = %d", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, `"is_admin":false`) {
		t.Errorf("non-admin flagged as admin in %s", body)
	}
}
