package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-service/internal/auth"
	"maintenance-service/internal/model"
)

const testSecret = "middleware-secret"

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(auth.NewParser(testSecret)), func(c *gin.Context) {
		principal, ok := MustPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": principal.UserID.String(), "email": principal.Email})
	})
	return r
}

func signedToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := auth.Claims{
		UserID: userID,
		Email:  "owner@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestAuth(t *testing.T) {
	r := newEngine()
	userID := uuid.New()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + signedToken(t, userID), http.StatusUnauthorized},
		{"no token", "Bearer", http.StatusUnauthorized},
		{"bad token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid", "Bearer " + signedToken(t, userID), http.StatusOK},
		{"lowercase scheme", "bearer " + signedToken(t, userID), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
				assert.Contains(t, w.Body.String(), "owner@example.com")
			}
		})
	}
}

func TestMustPrincipal(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := MustPrincipal(c)
	assert.False(t, ok)

	c.Set(principalContextKey, "not a principal")
	_, ok = MustPrincipal(c)
	assert.False(t, ok)

	want := model.Principal{UserID: uuid.New()}
	c.Set(principalContextKey, want)
	got, ok := MustPrincipal(c)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
