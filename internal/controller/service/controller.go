// Package service provides HTTP handlers for the public services pages.
package service

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

// ServiceController handles service page related endpoints
type ServiceController struct {
	DB *database.DBinstanceStruct
}

// NewServiceController creates a new instance of ServiceController
func NewServiceController(db *database.DBinstanceStruct) *ServiceController {
	return &ServiceController{
		DB: db,
	}
}

// CreateServiceHandler creates a new service page entry.
// @Summary Create service page based on given json structure
// @Description Only admin have access to this endpoint
// @Tags Service
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Service body model.EditableServiceInfo true "Input service information"
// @Success 201 {object} model.Service "Successfully create service"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body, missing title, or duplicate slug"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /services [post]
func (sc *ServiceController) CreateServiceHandler(c *gin.Context) {

	service := model.Service{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&service.EditableServiceInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if service.Title == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Title is required"})
		return
	}

	service.Slug = utilities.Slugify(service.Title)
	if service.Slug == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Title must contain at least one alphanumeric character",
		})
		return
	}

	if err := sc.DB.Create(&service).Error; err != nil {
		var pqErr *pgconn.PgError
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "Service with this title already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create service: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices fetches active service pages ordered for display.
// @Summary Get active service pages
// @Description Public endpoint. Ordered by the display order column, then newest first.
// @Tags Service
// @Produce json
// @Param category query string false "Category field, must exactly match to get result, 'All' returns every category"
// @Success 200 {array} model.Service "Return active service(s)"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /services [get]
func (sc *ServiceController) GetServices(c *gin.Context) {

	rawCategory := c.Query("category")

	result := sc.DB.Where("is_active = ?", true)

	if rawCategory != "" && rawCategory != "All" {
		result = result.Where("category = ?", rawCategory)
	}

	services := []model.Service{}
	if err := result.
		Order("display_order ASC, created_at DESC").
		Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch services: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetServiceBySlug fetches an active service page by its slug.
// @Summary Get active service page by slug
// @Description Public endpoint backing the service detail page
// @Tags Service
// @Produce json
// @Param slug path string true "Slug of desired service"
// @Success 200 {object} model.Service "Return the service with the specified slug"
// @Failure 404 {object} utilities.ErrorResponse "Service not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /services/by-slug/{slug} [get]
func (sc *ServiceController) GetServiceBySlug(c *gin.Context) {
	slug := c.Param("slug")

	service := model.Service{}
	if err := sc.DB.
		Where("slug = ? AND is_active = ?", slug, true).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve service: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, service)
}

// EditService updates a service page.
// @Summary Edit service page based on given json structure
// @Description Only admin have access to this endpoint. The slug never changes after creation.
// @Tags Service
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired service"
// @Param Service body model.EditableServiceInfo true "Input service information"
// @Success 200 {object} model.Service "Successfully update service"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Service not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /services/{id} [put]
func (sc *ServiceController) EditService(c *gin.Context) {
	id := c.Param("id")

	service := model.Service{}
	if err := sc.DB.Where("id = ?", id).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve service: %s", err.Error()),
		})
		return
	}

	updated := model.Service{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&updated.EditableServiceInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	if err := sc.DB.Model(&service).Updates(updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update service: %s", err.Error()),
		})
		return
	}

	if err := sc.DB.Where("id = ?", service.ID).First(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated service: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a service page.
// @Summary Delete given service ID
// @Description Only admin have access to this endpoint
// @Tags Service
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired service"
// @Success 200 {object} utilities.MessageResponse "Successfully delete service"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Service not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /services/{id} [delete]
func (sc *ServiceController) DeleteService(c *gin.Context) {
	id := c.Param("id")

	service := model.Service{}
	if err := sc.DB.Where("id = ?", id).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve service: %s", err.Error()),
		})
		return
	}

	if err := sc.DB.Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete service: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Service deleted"})
}
