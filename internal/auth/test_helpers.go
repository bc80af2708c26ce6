package auth

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"straterra-backend/internal/database"
	"straterra-backend/internal/testutil"
)

// GetAccessToken logs in through the real login handler and returns the token.
// Meant for tests that need an authenticated request against admin routes.
func GetAccessToken(t *testing.T, db *database.DBinstanceStruct, username, password string) (string, error) {
	t.Helper()

	r := gin.New()
	handler := NewLocalAuthHandler(db)
	r.POST("/auth/login", handler.LocalLoginHandler)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"username": username,
		"password": password,
	}, "", r, "/auth/login", http.MethodPost)

	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with code %d: %v", rec.Code, resp)
	}

	token, _ := resp["token"].(string)
	return token, nil
}
