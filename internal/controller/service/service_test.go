package service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"straterra-backend/internal/auth"
	"straterra-backend/internal/database"
	"straterra-backend/internal/middleware"
	"straterra-backend/internal/model"
	"straterra-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
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

func serviceRouter(t *testing.T) (*gin.Engine, string) {
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := gin.Default()
	sc := NewServiceController(testDB)
	r.GET("/services", sc.GetServices)
	r.GET("/services/by-slug/:slug", sc.GetServiceBySlug)
	admin := r.Group("", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin))
	admin.POST("/services", sc.CreateServiceHandler)
	admin.PUT("/services/:id", sc.EditService)
	admin.DELETE("/services/:id", sc.DeleteService)
	return r, token
}

func TestServiceLifecycle(t *testing.T) {
	r, token := serviceRouter(t)

	rec, created := testutil.MakeJSONRequest(gin.H{
		"title":       "Heavy Haulage",
		"category":    "Logistics",
		"description": "Oversize load transport across the region.",
		"features":    []string{"Route surveys", "Escort vehicles"},
		"order":       2,
	}, token, r, "/services", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "heavy-haulage", created["slug"])
	id := fmt.Sprintf("%.0f", created["id"].(float64))

	rec, fetched := testutil.MakeJSONRequest(nil, "", r, "/services/by-slug/heavy-haulage", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Heavy Haulage", fetched["title"])

	// Duplicate title rejected
	rec, resp := testutil.MakeJSONRequest(gin.H{"title": "Heavy Haulage"}, token, r, "/services", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Service with this title already exists", resp["error"])

	// Deactivating hides the page from the public reads
	rec, _ = testutil.MakeJSONRequest(gin.H{"title": "Heavy Haulage", "isActive": false}, token, r,
		"/services/"+id, http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/services/by-slug/heavy-haulage", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/services/"+id, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetServices_orderedByDisplayOrder(t *testing.T) {
	r, token := serviceRouter(t)

	for i, title := range []string{"Grid Maintenance", "Substation Builds"} {
		rec, _ := testutil.MakeJSONRequest(gin.H{
			"title":    title,
			"category": "Electricity",
			"order":    2 - i,
		}, token, r, "/services", http.MethodPost)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	services := []model.Service{}
	rec := testutil.MakeListRequest("", r, "/services?category=Electricity", &services)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, services, 2)
	assert.Equal(t, "Substation Builds", services[0].Title)
	assert.Equal(t, "Grid Maintenance", services[1].Title)
}
