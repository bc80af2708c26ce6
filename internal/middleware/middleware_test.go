package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"straterra-backend/internal/auth"
	"straterra-backend/internal/database"
	"straterra-backend/internal/model"
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

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/secret", RequireAuth(testDB), CheckRole(model.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func TestRequireAuth_NoHeader(t *testing.T) {
	r := protectedRouter()

	req, _ := http.NewRequest(http.MethodGet, "/secret", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	r := protectedRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "not-a-token", r, "/secret", http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ValidAdmin(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := protectedRouter()
	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/secret", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp["message"])
}

func TestSizeLimit_RejectsOversizedBody(t *testing.T) {
	r := gin.New()
	r.POST("/upload", SizeLimit(16), func(c *gin.Context) {
		buf := make([]byte, 1024*1024)
		if _, err := c.Request.Body.Read(buf); err != nil {
			var maxErr *http.MaxBytesError
			if assert.ErrorAs(t, err, &maxErr) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	body := make(map[string]interface{})
	body["data"] = string(make([]byte, 64*1024))

	rec, _ := testutil.MakeJSONRequest(body, "", r, "/upload", http.MethodPost)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
