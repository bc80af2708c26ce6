// Package project provides HTTP handlers for the portfolio pages.
package project

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

// ProjectController handles portfolio project related endpoints
type ProjectController struct {
	DB *database.DBinstanceStruct
}

// NewProjectController creates a new instance of ProjectController
func NewProjectController(db *database.DBinstanceStruct) *ProjectController {
	return &ProjectController{
		DB: db,
	}
}

// createRequest wraps the editable fields plus the gallery, which lives in a
// separate table and is replaced wholesale on edit.
type createRequest struct {
	model.EditableProjectInfo
	Images []model.ProjectImage `json:"images"`
}

// CreateProjectHandler creates a new portfolio project.
// @Summary Create portfolio project based on given json structure
// @Description Only admin have access to this endpoint
// @Tags Project
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Project body model.EditableProjectInfo true "Input project information"
// @Success 201 {object} model.Project "Successfully create project"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body, missing title, or duplicate slug"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /projects [post]
func (pc *ProjectController) CreateProjectHandler(c *gin.Context) {

	req := createRequest{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if req.Title == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Title is required"})
		return
	}

	project := model.Project{
		EditableProjectInfo: req.EditableProjectInfo,
		Images:              req.Images,
		Slug:                utilities.Slugify(req.Title),
	}
	if project.Slug == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Title must contain at least one alphanumeric character",
		})
		return
	}

	if err := pc.DB.Create(&project).Error; err != nil {
		var pqErr *pgconn.PgError
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "Project with this title already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create project: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProjects fetches active portfolio projects that match query.
// @Summary Get active portfolio projects based on query
// @Description Public endpoint. Featured projects come first, then newest.
// @Tags Project
// @Produce json
// @Param category query string false "Category field, must exactly match to get result, 'All' returns every category"
// @Param featured query boolean false "Return only featured projects when true"
// @Success 200 {array} model.Project "Return active project(s) with their galleries"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /projects [get]
func (pc *ProjectController) GetProjects(c *gin.Context) {

	rawCategory := c.Query("category")
	rawFeatured := c.Query("featured")

	result := pc.DB.Preload("Images").Where("is_active = ?", true)

	if rawCategory != "" && rawCategory != "All" {
		result = result.Where("category = ?", rawCategory)
	}

	if rawFeatured == "true" {
		result = result.Where("featured = ?", true)
	}

	projects := []model.Project{}
	if err := result.
		Order("featured DESC, created_at DESC").
		Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch projects: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProjectBySlug fetches an active project by its slug with the gallery.
// @Summary Get active portfolio project by slug
// @Description Public endpoint backing the project detail page
// @Tags Project
// @Produce json
// @Param slug path string true "Slug of desired project"
// @Success 200 {object} model.Project "Return the project with the specified slug"
// @Failure 404 {object} utilities.ErrorResponse "Project not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /projects/by-slug/{slug} [get]
func (pc *ProjectController) GetProjectBySlug(c *gin.Context) {
	slug := c.Param("slug")

	project := model.Project{}
	if err := pc.DB.
		Preload("Images").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve project: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, project)
}

// EditProject updates a portfolio project. A supplied gallery replaces the
// stored one entirely.
// @Summary Edit portfolio project based on given json structure
// @Description Only admin have access to this endpoint. The slug never changes after creation.
// @Tags Project
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired project"
// @Param Project body model.EditableProjectInfo true "Input project information"
// @Success 200 {object} model.Project "Successfully update project"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Project not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /projects/{id} [put]
func (pc *ProjectController) EditProject(c *gin.Context) {
	id := c.Param("id")

	project := model.Project{}
	if err := pc.DB.Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve project: %s", err.Error()),
		})
		return
	}

	req := createRequest{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	updated := model.Project{EditableProjectInfo: req.EditableProjectInfo}
	if err := pc.DB.Model(&project).Updates(updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update project: %s", err.Error()),
		})
		return
	}

	if req.Images != nil {
		if err := pc.DB.Where("project_id = ?", project.ID).
			Delete(&model.ProjectImage{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to replace project gallery: %s", err.Error()),
			})
			return
		}
		for i := range req.Images {
			req.Images[i].ID = 0
			req.Images[i].ProjectID = project.ID
		}
		if len(req.Images) > 0 {
			if err := pc.DB.Create(&req.Images).Error; err != nil {
				c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
					Error: fmt.Sprintf("Failed to replace project gallery: %s", err.Error()),
				})
				return
			}
		}
	}

	if err := pc.DB.Preload("Images").
		Where("id = ?", project.ID).First(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated project: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a portfolio project and its gallery.
// @Summary Delete given project ID
// @Description Only admin have access to this endpoint. Gallery rows are removed by the cascade.
// @Tags Project
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired project"
// @Success 200 {object} utilities.MessageResponse "Successfully delete project"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Project not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /projects/{id} [delete]
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	id := c.Param("id")

	project := model.Project{}
	if err := pc.DB.Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve project: %s", err.Error()),
		})
		return
	}

	if err := pc.DB.Select("Images").Delete(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete project: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Project deleted"})
}
