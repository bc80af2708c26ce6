// Package contact provides HTTP handlers for contact form submissions.
package contact

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"straterra-backend/internal/database"
	"straterra-backend/internal/mailer"
	"straterra-backend/internal/model"
	"straterra-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// maxListedSubmissions caps the inbox list when no explicit limit is given.
const maxListedSubmissions = 50

// ContactController handles contact form related endpoints
type ContactController struct {
	DB     *database.DBinstanceStruct
	Mailer *mailer.Mailer
}

// NewContactController creates a new instance of ContactController
func NewContactController(db *database.DBinstanceStruct, m *mailer.Mailer) *ContactController {
	return &ContactController{
		DB:     db,
		Mailer: m,
	}
}

// SubmitContactHandler records a contact form message and notifies the operator.
// @Summary Submit contact form
// @Description Public endpoint. The submission is stored first, email notification is best effort and never fails the request.
// @Tags Contact
// @Accept json
// @Produce json
// @Param contact body model.ContactSubmission true "Contact form content"
// @Success 200 {object} map[string]interface{} "Submission stored"
// @Failure 400 {object} utilities.ErrorResponse "Missing name, email or message"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /contact [post]
func (cn *ContactController) SubmitContactHandler(c *gin.Context) {

	body := struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Service string `json:"service"`
		Message string `json:"message"`
	}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if strings.TrimSpace(body.Name) == "" ||
		strings.TrimSpace(body.Email) == "" ||
		strings.TrimSpace(body.Message) == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Name, email and message are required",
		})
		return
	}

	ipAddress := c.ClientIP()
	if ipAddress == "" {
		ipAddress = "unknown"
	}
	userAgent := c.Request.UserAgent()
	if userAgent == "" {
		userAgent = "unknown"
	}

	submission := model.ContactSubmission{
		Name:      strings.TrimSpace(body.Name),
		Email:     strings.TrimSpace(body.Email),
		Phone:     strings.TrimSpace(body.Phone),
		Service:   strings.TrimSpace(body.Service),
		Message:   body.Message,
		Status:    model.ContactStatusUnread,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := cn.DB.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store submission: %s", err.Error()),
		})
		return
	}

	// The record is durable at this point. Mail failures are logged inside
	// the mailer and must not surface to the submitter.
	if cn.Mailer.Enabled() {
		if err := cn.Mailer.SendContactNotification(&submission); err != nil {
			log.Printf("contact notification for submission %d not sent: %v", submission.ID, err)
		}
		if err := cn.Mailer.SendContactAutoReply(&submission); err != nil {
			log.Printf("contact auto-reply for submission %d not sent: %v", submission.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thank you for your message. We will get back to you soon.",
		"id":      submission.ID,
	})
}

// GetSubmissions fetches contact submissions that match query from the database
// and returns them as a JSON response.
// @Summary Get contact submissions based on query
// @Description Only admin have access to this endpoint
// @Tags Contact
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param status query string false "Filter by submission status, pass all to disable the filter"
// @Param limit query integer false "Cap the number of returned submissions, defaults to 50"
// @Success 200 {array} model.ContactSubmission "Return submission(s), newest first"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /contact [get]
func (cn *ContactController) GetSubmissions(c *gin.Context) {

	rawStatus := c.Query("status")
	rawLimit := c.Query("limit")

	result := cn.DB.Order("created_at DESC")

	if rawStatus != "" && rawStatus != "all" {
		result = result.Where("status = ?", rawStatus)
	}

	limit := maxListedSubmissions
	if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed > 0 {
		limit = parsed
	}
	result = result.Limit(limit)

	submissions := []model.ContactSubmission{}
	if err := result.Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch submissions: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// UpdateSubmissionStatus moves a contact submission to a new status.
// The target id travels in the request body rather than the path.
// @Summary Update contact submission status
// @Description Only admin have access to this endpoint. Any of unread/read/replied may follow any other.
// @Tags Contact
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param status body object true "Submission id and new status"
// @Success 200 {object} model.ContactSubmission "Successfully update submission"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body or unknown status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Submission not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /contact [patch]
func (cn *ContactController) UpdateSubmissionStatus(c *gin.Context) {

	body := struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if !utilities.Contains(model.ContactStatuses, body.Status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid status: %s", body.Status),
		})
		return
	}

	submission := model.ContactSubmission{}
	if err := cn.DB.Where("id = ?", body.ID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve submission: %s", err.Error()),
		})
		return
	}

	if err := cn.DB.Model(&submission).Update("status", body.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update submission: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, submission)
}

// DeleteSubmission removes a contact submission. The id travels in the body.
// @Summary Delete contact submission
// @Description Only admin have access to this endpoint
// @Tags Contact
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id body object true "Submission id"
// @Success 200 {object} utilities.MessageResponse "Successfully delete submission"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Submission not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /contact [delete]
func (cn *ContactController) DeleteSubmission(c *gin.Context) {

	body := struct {
		ID uint `json:"id"`
	}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	submission := model.ContactSubmission{}
	if err := cn.DB.Where("id = ?", body.ID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve submission: %s", err.Error()),
		})
		return
	}

	if err := cn.DB.Delete(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete submission: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Submission deleted"})
}
