package career

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

func publicRouter() (*gin.Engine, *CareerController) {
	r := gin.Default()
	cc := NewCareerController(testDB)
	r.GET("/jobs", cc.GetCareers)
	r.GET("/jobs/by-slug/:slug", cc.GetCareerBySlug)
	return r, cc
}

func adminRouter(t *testing.T) (*gin.Engine, string) {
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := gin.Default()
	cc := NewCareerController(testDB)
	admin := r.Group("", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin))
	admin.POST("/jobs", cc.CreateCareerHandler)
	admin.GET("/jobs/:id", cc.GetCareerByID)
	admin.PUT("/jobs/:id", cc.EditCareer)
	admin.DELETE("/jobs/:id", cc.DeleteCareer)
	return r, token
}

func TestGetCareers_excludesInactive(t *testing.T) {
	r, _ := publicRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	careers := []model.Career{}
	rec = testutil.MakeListRequest("", r, "/jobs", &careers)
	assert.Equal(t, http.StatusOK, rec.Code)

	slugs := map[string]bool{}
	for _, c := range careers {
		slugs[c.Slug] = true
	}
	assert.True(t, slugs[database.TestCareerOpen.Slug])
	assert.True(t, slugs[database.TestCareerExpired.Slug], "listing does not enforce deadlines, only the active flag")
	assert.False(t, slugs[database.TestCareerInactive.Slug])
}

func TestGetCareers_departmentFilter(t *testing.T) {
	r, _ := publicRouter()

	careers := []model.Career{}
	rec := testutil.MakeListRequest("", r, "/jobs?department=Logistics", &careers)
	assert.Equal(t, http.StatusOK, rec.Code)
	for _, c := range careers {
		assert.Equal(t, model.DepartmentLogistics, c.Department)
	}

	all := []model.Career{}
	rec = testutil.MakeListRequest("", r, "/jobs?department=All", &all)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, len(all), len(careers))
}

func TestGetCareerBySlug_incrementsViews(t *testing.T) {
	r, _ := publicRouter()

	rec, first := testutil.MakeJSONRequest(nil, "", r, "/jobs/by-slug/"+database.TestCareerOpen.Slug, http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, second := testutil.MakeJSONRequest(nil, "", r, "/jobs/by-slug/"+database.TestCareerOpen.Slug, http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, first["views"].(float64)+1, second["views"].(float64))
}

func TestGetCareerBySlug_inactiveHidden(t *testing.T) {
	r, _ := publicRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/jobs/by-slug/"+database.TestCareerInactive.Slug, http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/jobs/by-slug/no-such-job", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCareer_success(t *testing.T) {
	r, token := adminRouter(t)

	body := gin.H{
		"title":       "Site Engineer",
		"department":  "Construction",
		"location":    "Kabul",
		"type":        "Full-time",
		"experience":  "3-5 years",
		"description": "Oversee structural works.",
		"deadline":    time.Now().AddDate(0, 0, 1).Format(time.RFC3339),
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "site-engineer", resp["slug"])
	assert.Equal(t, float64(0), resp["views"])
	assert.Equal(t, float64(0), resp["applications"])
	assert.Equal(t, true, resp["isActive"])
}

func TestCreateCareer_duplicateTitle(t *testing.T) {
	r, token := adminRouter(t)

	body := gin.H{
		"title":    database.TestCareerOpen.Title,
		"deadline": time.Now().AddDate(0, 0, 1).Format(time.RFC3339),
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Job with this title already exists", resp["error"])
}

func TestCreateCareer_missingTitle(t *testing.T) {
	r, token := adminRouter(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{"location": "Kabul"}, token, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Title is required", resp["error"])
}

func TestEditCareer_slugSurvivesTitleChange(t *testing.T) {
	r, token := adminRouter(t)

	body := gin.H{
		"title":    "Warehouse Manager",
		"deadline": time.Now().AddDate(0, 0, 10).Format(time.RFC3339),
	}
	rec, created := testutil.MakeJSONRequest(body, token, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	id := fmt.Sprintf("%.0f", created["id"].(float64))

	rec, updated := testutil.MakeJSONRequest(gin.H{
		"title":    "Senior Warehouse Manager",
		"location": "Mazar-i-Sharif",
	}, token, r, "/jobs/"+id, http.MethodPut)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Senior Warehouse Manager", updated["title"])
	assert.Equal(t, "Mazar-i-Sharif", updated["location"])
	assert.Equal(t, "warehouse-manager", updated["slug"])
}

func TestDeleteCareer(t *testing.T) {
	r, token := adminRouter(t)

	body := gin.H{
		"title":    "Temporary Surveyor",
		"deadline": time.Now().AddDate(0, 0, 5).Format(time.RFC3339),
	}
	rec, created := testutil.MakeJSONRequest(body, token, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	id := fmt.Sprintf("%.0f", created["id"].(float64))

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/jobs/"+id, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/jobs/"+id, http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCareer_notFound(t *testing.T) {
	r, token := adminRouter(t)

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/jobs/99999", http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
