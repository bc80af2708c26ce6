package setting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
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

func settingRouter(t *testing.T) (*gin.Engine, string) {
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := gin.Default()
	st := NewSettingController(testDB)
	r.GET("/settings", st.GetSettings)
	admin := r.Group("", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin))
	admin.PUT("/settings", st.UpsertSettings)
	admin.DELETE("/settings/:key", st.DeleteSetting)
	return r, token
}

// putSettings sends the JSON array body the upsert endpoint expects.
func putSettings(t *testing.T, r *gin.Engine, token string, settings []model.Setting) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(settings)
	assert.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPut, "/settings", strings.NewReader(string(payload)))
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUpsertSettings(t *testing.T) {
	r, token := settingRouter(t)

	rec := putSettings(t, r, token, []model.Setting{
		{Key: "contact_phone", Value: "+93 700 000 000", Group: "contact", Label: "Phone"},
		{Key: "hero_tagline", Value: "Building the future", Group: "homepage"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Writing the same key again overwrites instead of duplicating
	rec = putSettings(t, r, token, []model.Setting{
		{Key: "contact_phone", Value: "+93 799 999 999", Group: "contact", Label: "Phone"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	settings := []model.Setting{}
	listRec := testutil.MakeListRequest("", r, "/settings?group=contact", &settings)
	assert.Equal(t, http.StatusOK, listRec.Code)
	assert.Len(t, settings, 1)
	assert.Equal(t, "+93 799 999 999", settings[0].Value)
}

func TestUpsertSettings_rejectsEmptyAndKeyless(t *testing.T) {
	r, token := settingRouter(t)

	rec := putSettings(t, r, token, []model.Setting{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = putSettings(t, r, token, []model.Setting{{Value: "orphan"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteSetting(t *testing.T) {
	r, token := settingRouter(t)

	rec := putSettings(t, r, token, []model.Setting{{Key: "doomed_key", Value: "x"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	delRec, _ := testutil.MakeJSONRequest(nil, token, r, "/settings/doomed_key", http.MethodDelete)
	assert.Equal(t, http.StatusOK, delRec.Code)

	delRec, _ = testutil.MakeJSONRequest(nil, token, r, "/settings/doomed_key", http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, delRec.Code)
}
