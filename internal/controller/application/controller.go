// Package application provides HTTP handlers for the candidate submission workflow.
package application

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"straterra-backend/internal/database"
	"straterra-backend/internal/model"
	"straterra-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
}

// NewApplicationController creates a new instance of ApplicationController with the provided database connection.
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

// submitRequest is the payload accepted by the public submission endpoint.
// Experience arrives as either a number or a free-text string and falls back
// to 0 when it does not parse.
type submitRequest struct {
	CareerID       uint          `json:"careerId"`
	FirstName      string        `json:"firstName"`
	LastName       string        `json:"lastName"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	Resume         resumePayload `json:"resume"`
	CoverLetter    string        `json:"coverLetter"`
	Experience     any           `json:"experience"`
	Qualifications []string      `json:"qualifications"`
	ExpectedSalary string        `json:"expectedSalary"`
	StartDate      *time.Time    `json:"startDate"`
}

type resumePayload struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// parseExperience accepts both JSON numbers and numeric strings, anything
// else counts as zero years.
func parseExperience(raw any) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// derivePublicID extracts the media host storage id from the resume URL.
func derivePublicID(url string) string {
	base := path.Base(url)
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	if base == "" || base == "." || base == "/" {
		return fmt.Sprintf("resume_%d", time.Now().Unix())
	}
	return base
}

// validate checks required fields and the email shape, in submission order.
// The first violation wins.
func (req *submitRequest) validate() string {
	if req.CareerID == 0 {
		return "Career ID is required"
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return "First name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		return "Last name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return "Invalid email address"
	}
	if strings.TrimSpace(req.Phone) == "" {
		return "Phone number is required"
	}
	if strings.TrimSpace(req.Resume.URL) == "" || strings.TrimSpace(req.Resume.Filename) == "" {
		return "Resume is required"
	}
	return ""
}

// SubmitApplicationHandler handles a candidate applying to a job posting.
// @Summary Submit job application
// @Description Public endpoint. One application per email per posting, the posting must be active with a deadline in the future.
// @Tags Application
// @Accept json
// @Produce json
// @Param application body model.Application true "Application information"
// @Success 201 {object} model.Application "Successfully applied, returned with the career projection"
// @Failure 400 {object} utilities.ErrorResponse "Missing or malformed field, inactive posting, passed deadline, or duplicate application"
// @Failure 404 {object} utilities.ErrorResponse "Referenced job posting not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [post]
func (j *ApplicationController) SubmitApplicationHandler(c *gin.Context) {

	// Extract application detail from request body
	req := submitRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: msg})
		return
	}

	// The posting must exist, be active and still accept applications
	career := model.Career{}
	if err := j.DB.Where("id = ?", req.CareerID).First(&career).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job posting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job posting: %s", err.Error()),
		})
		return
	}
	if !career.Active() {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "This job posting is no longer active",
		})
		return
	}
	if career.Deadline.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "The application deadline for this job has passed",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Prevent duplicate applications: check if this email already applied to
	// the same posting
	existing := model.Application{}
	if err := j.DB.
		Where("career_id = ? AND email = ?", req.CareerID, email).
		First(&existing).Error; err == nil {
		// Found an existing application
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "You have already applied to this job",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		// Some other DB error occurred
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to check existing application",
		})
		return
	}

	application := model.Application{
		CareerID:  req.CareerID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Resume: model.ResumeRef{
			URL:      req.Resume.URL,
			PublicID: derivePublicID(req.Resume.URL),
			Filename: req.Resume.Filename,
		},
		CoverLetter:    req.CoverLetter,
		Experience:     parseExperience(req.Experience),
		Qualifications: req.Qualifications,
		ExpectedSalary: req.ExpectedSalary,
		StartDate:      req.StartDate,
		Status:         model.ApplicationStatusPending,
		AppliedAt:      time.Now(),
	}

	// Save application to database. The composite unique index closes the
	// race between the duplicate check above and this insert.
	if err := j.DB.Create(&application).Error; err != nil {
		var pqErr *pgconn.PgError
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "You have already applied to this job",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
		})
		return
	}

	// Count the application on the parent posting, best effort
	if err := j.DB.Model(&career).
		UpdateColumn("applications", gorm.Expr("applications + 1")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application counter: %s", err.Error()),
		})
		return
	}

	summary := career.Summary()
	application.Career = &summary

	// Return response
	c.JSON(http.StatusCreated, application)
}

// GetApplications fetches applications that match query from the database
// and returns them as a JSON response.
// @Summary Get applications based on query
// @Description Only admin have access to this endpoint. Applications whose posting was deleted come back with a null career projection.
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId query integer false "Filter by owning job posting ID"
// @Param status query string false "Filter by application status, pass all to disable the filter"
// @Param limit query integer false "Cap the number of returned applications"
// @Success 200 {array} model.Application "Return application(s), newest applied first"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [get]
func (j *ApplicationController) GetApplications(c *gin.Context) {

	rawJobID := c.Query("jobId")
	rawStatus := c.Query("status")
	rawLimit := c.Query("limit")

	result := j.DB.Order("applied_at DESC")

	if rawJobID != "" {
		result = result.Where("career_id = ?", rawJobID)
	}

	if rawStatus != "" && rawStatus != "all" {
		result = result.Where("status = ?", rawStatus)
	}

	if limit, err := strconv.Atoi(rawLimit); err == nil && limit > 0 {
		result = result.Limit(limit)
	}

	applications := []model.Application{}
	if err := result.Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch applications: ", err.Error()),
		})
		return
	}

	if err := j.attachCareers(applications); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch job postings: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// attachCareers fills the career projection on each application. There is no
// foreign key behind CareerID, applications pointing at a deleted posting keep
// a nil projection.
func (j *ApplicationController) attachCareers(applications []model.Application) error {
	if len(applications) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(applications))
	seen := make(map[uint]bool)
	for _, a := range applications {
		if !seen[a.CareerID] {
			seen[a.CareerID] = true
			ids = append(ids, a.CareerID)
		}
	}

	careers := []model.Career{}
	if err := j.DB.Where("id IN ?", ids).Find(&careers).Error; err != nil {
		return err
	}

	summaries := make(map[uint]model.CareerSummary, len(careers))
	for i := range careers {
		summaries[careers[i].ID] = careers[i].Summary()
	}

	for i := range applications {
		if s, ok := summaries[applications[i].CareerID]; ok {
			summary := s
			applications[i].Career = &summary
		}
	}
	return nil
}

// UpdateApplicationStatus allows an admin to move an application to any status.
// @Summary Update application status
// @Description Only admin have access to this endpoint. Any status may follow any other, re-selecting the current one is a no-op.
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired application"
// @Param status body object true "New status, one of pending/reviewed/shortlisted/rejected/hired"
// @Success 200 {object} model.Application "Successfully update application status"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body or unknown status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [patch]
func (j *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	id := c.Param("id")

	body := struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if !utilities.Contains(model.ApplicationStatuses, body.Status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid status: %s", body.Status),
		})
		return
	}

	application := model.Application{}
	if err := j.DB.Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	updates := map[string]interface{}{"status": body.Status}
	if body.Notes != "" {
		updates["notes"] = body.Notes
	}
	if err := j.DB.Model(&application).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, application)
}

// DeleteApplication allows an admin to delete an application.
// @Summary Delete given application ID
// @Description Only admin have access to this endpoint. The parent posting's counter is not decremented.
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired application"
// @Success 200 {object} utilities.MessageResponse "Successfully delete application"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [delete]
func (j *ApplicationController) DeleteApplication(c *gin.Context) {
	id := c.Param("id")

	application := model.Application{}
	if err := j.DB.Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	if err := j.DB.Delete(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application deleted"})
}
