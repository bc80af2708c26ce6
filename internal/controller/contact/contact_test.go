package contact

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"straterra-backend/internal/auth"
	"straterra-backend/internal/database"
	"straterra-backend/internal/mailer"
	"straterra-backend/internal/middleware"
	"straterra-backend/internal/model"
	"straterra-backend/internal/testutil"
	"straterra-backend/internal/utilities"

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

// unconfiguredMailer has no SMTP credentials, sending is skipped entirely.
func unconfiguredMailer() *mailer.Mailer {
	return &mailer.Mailer{}
}

func contactRouter(t *testing.T) (*gin.Engine, string) {
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := gin.Default()
	cn := NewContactController(testDB, unconfiguredMailer())
	r.POST("/contact", cn.SubmitContactHandler)
	admin := r.Group("", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin))
	admin.GET("/contact", cn.GetSubmissions)
	admin.PATCH("/contact", cn.UpdateSubmissionStatus)
	admin.DELETE("/contact", cn.DeleteSubmission)
	return r, token
}

func TestSubmitContact_withoutSMTP(t *testing.T) {
	r, _ := contactRouter(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"name":    "Jane",
		"email":   "jane@x.com",
		"message": "Hi",
	}, "", r, "/contact", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])
	assert.NotZero(t, resp["id"])

	stored := model.ContactSubmission{}
	assert.NoError(t, testDB.Where("email = ?", "jane@x.com").First(&stored).Error)
	assert.Equal(t, model.ContactStatusUnread, stored.Status)
	assert.NotEmpty(t, stored.IPAddress)
	// the test request carries no User-Agent header
	assert.Equal(t, "unknown", stored.UserAgent)
}

func TestSubmitContact_missingFields(t *testing.T) {
	cn := NewContactController(testDB, unconfiguredMailer())

	rec, resp, err := utilities.SimulateAPICall(cn.SubmitContactHandler, "/contact", http.MethodPost, gin.H{
		"name":  "Jane",
		"email": "jane@x.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name, email and message are required", resp["error"])
}

func TestUpdateSubmissionStatus(t *testing.T) {
	r, token := contactRouter(t)

	rec, created := testutil.MakeJSONRequest(gin.H{
		"name":    "Omar",
		"email":   "omar@x.com",
		"message": "Quote request",
	}, "", r, "/contact", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	id := created["id"].(float64)

	for _, status := range []string{"read", "replied", "unread"} {
		rec, resp := testutil.MakeJSONRequest(gin.H{"id": id, "status": status}, token, r,
			"/contact", http.MethodPatch)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, status, resp["status"])
	}

	rec, _ = testutil.MakeJSONRequest(gin.H{"id": id, "status": "starred"}, token, r,
		"/contact", http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSubmissions_statusFilter(t *testing.T) {
	r, token := contactRouter(t)

	submissions := []model.ContactSubmission{}
	rec := testutil.MakeListRequest(token, r, "/contact?status=unread", &submissions)
	assert.Equal(t, http.StatusOK, rec.Code)
	for _, s := range submissions {
		assert.Equal(t, model.ContactStatusUnread, s.Status)
	}
}

func TestGetSubmissions_statusAll(t *testing.T) {
	r, token := contactRouter(t)

	seeded := []model.ContactSubmission{
		{Name: "Mixed A", Email: "mixed-a@x.com", Message: "m", Status: model.ContactStatusUnread,
			IPAddress: "unknown", UserAgent: "unknown"},
		{Name: "Mixed B", Email: "mixed-b@x.com", Message: "m", Status: model.ContactStatusRead,
			IPAddress: "unknown", UserAgent: "unknown"},
	}
	assert.NoError(t, testDB.Create(&seeded).Error)

	submissions := []model.ContactSubmission{}
	rec := testutil.MakeListRequest(token, r, "/contact?status=all&limit=200", &submissions)
	assert.Equal(t, http.StatusOK, rec.Code)

	seen := map[string]bool{}
	for _, s := range submissions {
		seen[s.Status] = true
	}
	assert.True(t, seen[model.ContactStatusUnread], "status=all must include unread submissions")
	assert.True(t, seen[model.ContactStatusRead], "status=all must include read submissions")
}

func TestGetSubmissions_defaultLimit(t *testing.T) {
	r, token := contactRouter(t)

	bulk := make([]model.ContactSubmission, 0, 60)
	for i := 0; i < 60; i++ {
		bulk = append(bulk, model.ContactSubmission{
			Name:      "Bulk",
			Email:     fmt.Sprintf("bulk-%d@x.com", i),
			Message:   "m",
			Status:    model.ContactStatusUnread,
			IPAddress: "unknown",
			UserAgent: "unknown",
		})
	}
	assert.NoError(t, testDB.Create(&bulk).Error)

	submissions := []model.ContactSubmission{}
	rec := testutil.MakeListRequest(token, r, "/contact", &submissions)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, submissions, 50)
}

func TestDeleteSubmission(t *testing.T) {
	r, token := contactRouter(t)

	rec, created := testutil.MakeJSONRequest(gin.H{
		"name":    "Gone",
		"email":   "gone@x.com",
		"message": "Delete me",
	}, "", r, "/contact", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	id := created["id"].(float64)

	rec, _ = testutil.MakeJSONRequest(gin.H{"id": id}, token, r, "/contact", http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{"id": id}, token, r, "/contact", http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
