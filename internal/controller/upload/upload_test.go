package upload

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"straterra-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockStorageClient struct {
	uploaded  map[string][]byte
	uploadErr error
}

func newMockStorageClient() *mockStorageClient {
	return &mockStorageClient{uploaded: map[string][]byte{}}
}

func (m *mockStorageClient) UploadFile(objectName string, fileData io.Reader, resourceType string) (string, string, error) {
	if m.uploadErr != nil {
		return "", "", m.uploadErr
	}
	data, err := io.ReadAll(fileData)
	if err != nil {
		return "", "", err
	}
	m.uploaded[objectName] = data
	return "https://media.example.com/" + objectName, objectName, nil
}

func multipartRequest(t *testing.T, field, filename string, content []byte) (*http.Request, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload/resume", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, writer.FormDataContentType()
}

func TestUploadResume_success(t *testing.T) {
	mockStorage := newMockStorageClient()
	uc := NewUploadController(mockStorage)

	r := gin.Default()
	r.POST("/upload/resume", uc.UploadResume)

	req, _ := multipartRequest(t, "resume", "ali-cv.pdf", []byte("%PDF-1.4 stub"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"filename":"ali-cv.pdf"`)
	require.Len(t, mockStorage.uploaded, 1)
	for name := range mockStorage.uploaded {
		require.True(t, strings.HasPrefix(name, resumeObjectPrefix+"/"))
		require.True(t, strings.HasSuffix(name, ".pdf"))
	}
}

func TestUploadResume_unsupportedExtension(t *testing.T) {
	uc := NewUploadController(newMockStorageClient())

	r := gin.Default()
	r.POST("/upload/resume", uc.UploadResume)

	req, _ := multipartRequest(t, "resume", "avatar.png", []byte("png bytes"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUploadResume_missingFile(t *testing.T) {
	uc := NewUploadController(newMockStorageClient())

	r := gin.Default()
	r.POST("/upload/resume", uc.UploadResume)

	req := httptest.NewRequest(http.MethodPost, "/upload/resume", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadResume_tooLarge(t *testing.T) {
	uc := NewUploadController(newMockStorageClient())

	r := gin.Default()
	r.POST("/upload/resume", middleware.SizeLimit(1<<10), uc.UploadResume)

	req, _ := multipartRequest(t, "resume", "big.pdf", bytes.Repeat([]byte("a"), 64<<10))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUploadResume_storageError(t *testing.T) {
	mockStorage := newMockStorageClient()
	mockStorage.uploadErr = errors.New("boom")
	uc := NewUploadController(mockStorage)

	r := gin.Default()
	r.POST("/upload/resume", uc.UploadResume)

	req, _ := multipartRequest(t, "resume", "cv.pdf", []byte("data"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
