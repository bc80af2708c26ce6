// Package setting provides HTTP handlers for the site settings key-value store.
package setting

import (
	"errors"
	"fmt"
	"net/http"

	"straterra-backend/internal/database"
	"straterra-backend/internal/model"
	"straterra-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingController handles site settings related endpoints
type SettingController struct {
	DB *database.DBinstanceStruct
}

// NewSettingController creates a new instance of SettingController
func NewSettingController(db *database.DBinstanceStruct) *SettingController {
	return &SettingController{
		DB: db,
	}
}

// GetSettings fetches site settings, optionally restricted to one group.
// @Summary Get site settings
// @Description Public endpoint, the frontend reads display settings from here
// @Tags Setting
// @Produce json
// @Param group query string false "Filter by settings group"
// @Success 200 {array} model.Setting "Return setting(s)"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /settings [get]
func (st *SettingController) GetSettings(c *gin.Context) {

	rawGroup := c.Query("group")

	result := st.DB.Order("setting_group ASC, key ASC")

	if rawGroup != "" {
		result = result.Where("setting_group = ?", rawGroup)
	}

	settings := []model.Setting{}
	if err := result.Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch settings: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpsertSettings writes a batch of settings, inserting new keys and
// overwriting existing ones.
// @Summary Create or update site settings
// @Description Only admin have access to this endpoint. Each entry is matched on its key.
// @Tags Setting
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param settings body []model.Setting true "Settings to write"
// @Success 200 {array} model.Setting "Return the stored settings"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body or entry without a key"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /settings [put]
func (st *SettingController) UpsertSettings(c *gin.Context) {

	settings := []model.Setting{}
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if len(settings) == 0 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "No settings supplied"})
		return
	}
	for i := range settings {
		if settings[i].Key == "" {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "Every setting needs a key",
			})
			return
		}
		settings[i].ID = 0
	}

	if err := st.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value", "type", "setting_group", "label", "description", "updated_at",
		}),
	}).Create(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store settings: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// DeleteSetting removes one setting by key.
// @Summary Delete site setting by key
// @Description Only admin have access to this endpoint
// @Tags Setting
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param key path string true "Key of the setting to delete"
// @Success 200 {object} utilities.MessageResponse "Successfully delete setting"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Setting not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /settings/{key} [delete]
func (st *SettingController) DeleteSetting(c *gin.Context) {
	key := c.Param("key")

	setting := model.Setting{}
	if err := st.DB.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Setting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve setting: %s", err.Error()),
		})
		return
	}

	if err := st.DB.Delete(&setting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete setting: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Setting deleted"})
}
