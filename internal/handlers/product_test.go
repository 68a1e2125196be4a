// internal/handlers/product_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vervecommerce/verve-backend/internal/config"
	"github.com/vervecommerce/verve-backend/internal/services"
	"github.com/vervecommerce/verve-backend/internal/utils"
)

func previewRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewProductHandler(nil, nil, &config.Config{})

	r := gin.New()
	r.POST("/products/variant-matrix", handler.PreviewVariantMatrix)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", path, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func uploadRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Upload.LocalDir = t.TempDir()
	cfg.Upload.MaxImageSize = 5 * 1024 * 1024
	cfg.Assets.BaseURL = "http://localhost:8080/static"

	storage, err := services.NewStorageService(cfg)
	require.NoError(t, err)
	handler := NewProductHandler(nil, storage, cfg)

	r := gin.New()
	r.POST("/products/upload-image", handler.UploadImage)
	return r, cfg
}

func postImage(t *testing.T, r *gin.Engine, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/products/upload-image", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadImage(t *testing.T) {
	r, cfg := uploadRouter(t)

	w := postImage(t, r, "photo.jpg", []byte("not really a jpeg"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Reference string `json:"reference"`
			ImageURL  string `json:"image_url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Data.Reference, "products/")
	assert.Equal(t, "http://localhost:8080/static/"+resp.Data.Reference, resp.Data.ImageURL)
	assert.FileExists(t, filepath.Join(cfg.Upload.LocalDir, resp.Data.Reference))
}

func TestUploadImageUnsupportedExtension(t *testing.T) {
	r, _ := uploadRouter(t)

	w := postImage(t, r, "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPreviewVariantMatrix(t *testing.T) {
	r := previewRouter()

	payload := map[string]interface{}{
		"base_sku":   "TS",
		"base_price": 19.90,
		"attributes": []map[string]interface{}{
			{
				"attribute_id": uuid.NewString(),
				"name":         "Color",
				"values": []map[string]interface{}{
					{"value_id": uuid.NewString(), "value": "Red"},
					{"value_id": uuid.NewString(), "value": "Blue"},
				},
			},
			{
				"attribute_id": uuid.NewString(),
				"name":         "Size",
				"values": []map[string]interface{}{
					{"value_id": uuid.NewString(), "value": "S"},
					{"value_id": uuid.NewString(), "value": "M"},
				},
			},
		},
	}

	w := postJSON(t, r, "/products/variant-matrix", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Count    int                        `json:"count"`
			Variants []services.ProposedVariant `json:"variants"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 4, resp.Data.Count)
	require.Len(t, resp.Data.Variants, 4)
	assert.Equal(t, "TS-RED-S", resp.Data.Variants[0].SKU)
}

func TestPreviewVariantMatrixEmptyValueSubset(t *testing.T) {
	r := previewRouter()

	payload := map[string]interface{}{
		"base_sku":   "TS",
		"base_price": 19.90,
		"attributes": []map[string]interface{}{
			{
				"attribute_id": uuid.NewString(),
				"name":         "Size",
				"values":       []map[string]interface{}{},
			},
		},
	}

	w := postJSON(t, r, "/products/variant-matrix", payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(services.ErrCodeValidationFailed), resp.Error.Code)
	assert.Equal(t, "attributes", resp.Error.Field)
	assert.Contains(t, resp.Error.Message, "Size")
}

func TestPreviewVariantMatrixMalformedBody(t *testing.T) {
	r := previewRouter()

	req, err := http.NewRequest("POST", "/products/variant-matrix", bytes.NewBufferString("{"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
