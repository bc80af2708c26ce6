// Package upload provides HTTP handlers for pushing files to the media host.
//
// The submission workflow itself never moves bytes, it only stores the
// URL/filename pair these handlers hand back to the frontend.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"straterra-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	resumeObjectPrefix = "resumes"
	imageObjectPrefix  = "images"
)

// UploadController handles media upload related endpoints
type UploadController struct {
	Storage StorageClient
}

// NewUploadController creates a new instance of UploadController
func NewUploadController(storage StorageClient) *UploadController {
	return &UploadController{
		Storage: storage,
	}
}

// readUpload pulls the named multipart file out of the request, enforcing the
// allowed extensions. On failure the response is already written.
func readUpload(c *gin.Context, fName string, allowed map[string]bool) ([]byte, string, string, bool) {
	rawFile, err := c.FormFile(fName)
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return nil, "", "", false
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return nil, "", "", false
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if !allowed[extension] {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file extension: %s", extension),
		})
		return nil, "", "", false
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return nil, "", "", false
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Print("Failed to close file")
		}
	}()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot read file"})
		return nil, "", "", false
	}

	return fileBytes, rawFile.Filename, extension, true
}

// UploadResume pushes a candidate's resume to the media host and returns the
// reference the application form submits later.
// @Summary Upload resume file
// @Description Only file with .pdf, .doc, or .docx extension is permitted. The response carries the url/filename pair expected by the application endpoint.
// @Tags Upload
// @Accept mpfd
// @Produce json
// @Param resume formData file true "Upload your resume file"
// @Success 200 {object} map[string]interface{} "Stored file reference"
// @Failure 400 {object} utilities.ErrorResponse "No file in request"
// @Failure 413 {object} utilities.ErrorResponse "File too large"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Upload error"
// @Router /upload/resume [post]
func (uc *UploadController) UploadResume(c *gin.Context) {

	fileBytes, filename, extension, ok := readUpload(c, "resume", map[string]bool{
		".pdf":  true,
		".doc":  true,
		".docx": true,
	})
	if !ok {
		return
	}

	objectName := fmt.Sprintf("%s/%s%s", resumeObjectPrefix, uuid.New().String(), extension)
	url, publicID, err := uc.Storage.UploadFile(objectName, bytes.NewReader(fileBytes), "raw")
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store resume: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       url,
		"public_id": publicID,
		"filename":  filename,
	})
}

// UploadImage pushes a site image (service, project gallery) to the media host.
// @Summary Upload image file
// @Description Only admin have access to this endpoint. Only file with .jpg, .jpeg, .png, or .webp extension is permitted.
// @Tags Upload
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param image formData file true "Upload your image file"
// @Success 200 {object} map[string]interface{} "Stored file reference"
// @Failure 400 {object} utilities.ErrorResponse "No file in request"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 413 {object} utilities.ErrorResponse "File too large"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Upload error"
// @Router /upload/image [post]
func (uc *UploadController) UploadImage(c *gin.Context) {

	fileBytes, filename, extension, ok := readUpload(c, "image", map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	})
	if !ok {
		return
	}

	objectName := fmt.Sprintf("%s/%s%s", imageObjectPrefix, uuid.New().String(), extension)
	url, publicID, err := uc.Storage.UploadFile(objectName, bytes.NewReader(fileBytes), "image")
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store image: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       url,
		"public_id": publicID,
		"filename":  filename,
	})
}
