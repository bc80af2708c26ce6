package auth

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"straterra-backend/internal/database"
	"straterra-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func loginRouter() *gin.Engine {
	r := gin.New()
	handler := NewLocalAuthHandler(testDB)
	r.POST("/auth/login", handler.LocalLoginHandler)
	return r
}

func TestLocalLogin_Success(t *testing.T) {
	r := loginRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"username": database.TestAdminUser.Username,
		"password": database.TestSeedPassword,
	}, "", r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp["token"])

	token, _ := resp["token"].(string)
	parsed, err := ValidatedToken(token)
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestLocalLogin_ByEmail(t *testing.T) {
	r := loginRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"username": database.TestAdminUser.Email,
		"password": database.TestSeedPassword,
	}, "", r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp["token"])
}

func TestLocalLogin_WrongPassword(t *testing.T) {
	r := loginRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"username": database.TestAdminUser.Username,
		"password": "not-the-password",
	}, "", r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", resp["error"])
}

func TestLocalLogin_MissingFields(t *testing.T) {
	r := loginRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"username": database.TestAdminUser.Username,
	}, "", r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocalLogin_UnknownUser(t *testing.T) {
	r := loginRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"username": "nobody",
		"password": "whatever123",
	}, "", r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
