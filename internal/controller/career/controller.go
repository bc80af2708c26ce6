// Package career provides HTTP handlers for job posting related operations.
package career

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"straterra-backend/internal/database"
	"straterra-backend/internal/model"
	"straterra-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const maxListedCareers = 50

// CareerController handles job posting related endpoints
type CareerController struct {
	DB *database.DBinstanceStruct
}

// NewCareerController creates a new instance of CareerController
func NewCareerController(db *database.DBinstanceStruct) *CareerController {
	return &CareerController{
		DB: db,
	}
}

// CreateCareerHandler handles the creation of a new job posting by an admin.
// @Summary Create job posting based on given json structure
// @Description Only admin have access to this endpoint. The slug is derived from the title and never changes afterwards.
// @Tags Career
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Career body model.EditableCareerInfo true "Input job posting information"
// @Success 201 {object} model.Career "Successfully create job posting"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body, missing title, or duplicate slug"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (cc *CareerController) CreateCareerHandler(c *gin.Context) {

	// construct career from request
	career := model.Career{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&career.EditableCareerInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if career.Title == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Title is required"})
		return
	}

	career.Slug = utilities.Slugify(career.Title)
	if career.Slug == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Title must contain at least one alphanumeric character",
		})
		return
	}

	// save job posting, the unique index on slug rejects duplicate titles
	if err := cc.DB.Create(&career).Error; err != nil {
		var pqErr *pgconn.PgError
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "Job with this title already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job posting: ", err),
		})
		return
	}

	// response
	c.JSON(http.StatusCreated, career)
}

// GetCareers fetches active job postings that match query from the database
// and returns them as a JSON response.
// @Summary Get active job postings based on query
// @Description Public endpoint. Passing "All" for department or type skips that filter.
// @Tags Career
// @Produce json
// @Param department query string false "Department field, must exactly match to get result, 'All' returns every department"
// @Param type query string false "Employment type field, must exactly match to get result, 'All' returns every type"
// @Param location query string false "Search from location with substring matching and case insensitive"
// @Success 200 {array} model.Career "Return active job posting(s), newest first, at most 50"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (cc *CareerController) GetCareers(c *gin.Context) {

	rawDepartment := c.Query("department")
	rawType := c.Query("type")
	rawLocation := c.Query("location")

	result := cc.DB.Where("is_active = ?", true)

	if rawDepartment != "" && rawDepartment != "All" {
		result = result.Where("department = ?", rawDepartment)
	}

	if rawType != "" && rawType != "All" {
		result = result.Where("type = ?", rawType)
	}

	if rawLocation != "" {
		result = result.Where("location ILIKE ?", "%"+rawLocation+"%")
	}

	careers := []model.Career{}
	if err := result.
		Order("created_at DESC").
		Limit(maxListedCareers).
		Find(&careers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch job postings: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, careers)
}

// GetCareerByID fetches a job posting by its ID from the database
// and returns it as a JSON response.
// @Summary Get job posting by ID
// @Description Only admin have access to this endpoint. Inactive postings are returned as well.
// @Tags Career
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job posting"
// @Success 200 {object} model.Career "Return the job posting with the specified ID"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Job posting not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (cc *CareerController) GetCareerByID(c *gin.Context) {
	id := c.Param("id")

	career := model.Career{}
	if err := cc.DB.Where("id = ?", id).First(&career).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job posting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job posting: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, career)
}

// GetCareerBySlug fetches an active job posting by its slug and counts the view.
// @Summary Get active job posting by slug
// @Description Public endpoint backing the job detail page. Every fetch increments the posting's view counter.
// @Tags Career
// @Produce json
// @Param slug path string true "Slug of desired job posting"
// @Success 200 {object} model.Career "Return the job posting with the specified slug"
// @Failure 404 {object} utilities.ErrorResponse "Job posting not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/by-slug/{slug} [get]
func (cc *CareerController) GetCareerBySlug(c *gin.Context) {
	slug := c.Param("slug")

	career := model.Career{}
	if err := cc.DB.
		Where("slug = ? AND is_active = ?", slug, true).
		First(&career).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job posting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job posting: %s", err.Error()),
		})
		return
	}

	// Count the view without touching updated_at. Lost increments under
	// concurrent fetches are acceptable for this counter.
	if err := cc.DB.Model(&career).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update view counter: %s", err.Error()),
		})
		return
	}
	career.Views++

	c.JSON(http.StatusOK, career)
}

// EditCareer allows an admin to update a job posting.
// @Summary Edit job posting based on given json structure
// @Description Only admin have access to this endpoint. Title edits do not change the slug, existing links keep working.
// @Tags Career
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job posting"
// @Param Career body model.EditableCareerInfo true "Input job posting information"
// @Success 200 {object} model.Career "Successfully update job posting"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Job posting not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [put]
func (cc *CareerController) EditCareer(c *gin.Context) {

	// Get job posting id from path
	id := c.Param("id")

	career := model.Career{}

	// Find existing job posting
	if err := cc.DB.Where("id = ?", id).First(&career).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job posting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job posting: %s", err.Error()),
		})
		return
	}

	// Bind incoming JSON to a temporary struct to avoid overwriting the slug
	// and the counters
	updated := model.Career{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&updated.EditableCareerInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	// Update fields on the existing record without saving associations
	if err := cc.DB.Model(&career).Updates(updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job posting: %s", err.Error()),
		})
		return
	}

	// Reload the job posting to return the latest data
	if err := cc.DB.Where("id = ?", career.ID).First(&career).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated job posting: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, career)
}

// DeleteCareer allows an admin to delete a job posting.
// @Summary Delete given job posting ID
// @Description Only admin have access to this endpoint. Applications referencing the posting are kept and render with a null career projection.
// @Tags Career
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job posting"
// @Success 200 {object} utilities.MessageResponse "Successfully delete job posting"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Job posting not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (cc *CareerController) DeleteCareer(c *gin.Context) {
	id := c.Param("id")

	career := model.Career{}
	if err := cc.DB.Where("id = ?", id).First(&career).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job posting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job posting: %s", err.Error()),
		})
		return
	}

	if err := cc.DB.Delete(&career).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job posting: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job posting deleted"})
}
