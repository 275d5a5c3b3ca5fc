package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitabcloud/controllers"
	"kitabcloud/models"
	"kitabcloud/repository"
	"kitabcloud/routes"
	"kitabcloud/services"
)

// memFolderStore is a minimal in-memory FolderStore for handler tests.
type memFolderStore struct {
	folders map[string]*models.Folder
}

func (s *memFolderStore) Insert(_ context.Context, folder *models.Folder) error {
	clone := *folder
	s.folders[folder.ID] = &clone
	return nil
}

func (s *memFolderStore) FindByID(_ context.Context, id string) (*models.Folder, error) {
	folder, ok := s.folders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *folder
	return &clone, nil
}

func (s *memFolderStore) FindByName(_ context.Context, name string) (*models.Folder, error) {
	for _, folder := range s.folders {
		if folder.Name == name {
			clone := *folder
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memFolderStore) FindAll(_ context.Context) ([]models.Folder, error) {
	all := []models.Folder{}
	for _, folder := range s.folders {
		all = append(all, *folder)
	}
	return all, nil
}

func (s *memFolderStore) Replace(_ context.Context, folder *models.Folder) error {
	if _, ok := s.folders[folder.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *folder
	s.folders[folder.ID] = &clone
	return nil
}

func (s *memFolderStore) DeleteByID(_ context.Context, id string) error {
	if _, ok := s.folders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.folders, id)
	return nil
}

// memObjectStore accepts every operation.
type memObjectStore struct{}

func (memObjectStore) Upload(context.Context, string, []byte) error { return nil }
func (memObjectStore) Delete(context.Context, string) error         { return nil }
func (memObjectStore) Exists(context.Context, string) (bool, error) { return true, nil }
func (memObjectStore) PresignUpload(key string, _ time.Duration) (string, error) {
	return "https://signed.example.com/upload/" + key, nil
}
func (memObjectStore) PresignDownload(key string, _ time.Duration) (string, error) {
	return "https://signed.example.com/download/" + key, nil
}
func (memObjectStore) HealthCheck(context.Context) error { return nil }

func newTestRouter() (*gin.Engine, *memFolderStore) {
	gin.SetMode(gin.TestMode)

	store := &memFolderStore{folders: make(map[string]*models.Folder)}
	folderService := services.NewFolderService(store, memObjectStore{})

	router := gin.New()
	routes.FolderRoutes(router, controllers.NewFolderController(folderService))
	return router, store
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateFolderEndpoint(t *testing.T) {
	router, store := newTestRouter()

	w := doJSON(router, http.MethodPost, "/uploadfolder", models.FolderCreateRequest{
		FolderName: "Invoices",
		Category:   "2024",
		FolderType: "pdf",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, store.folders, 1)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestCreateFolderEndpointValidation(t *testing.T) {
	router, store := newTestRouter()

	w := doJSON(router, http.MethodPost, "/uploadfolder", map[string]string{
		"folderName": "Invoices",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.folders)
}

func TestDeleteFolderEndpointInvalidUUID(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(router, http.MethodDelete, "/deletefolder?folderId=not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteFolderEndpointNotFound(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(router, http.MethodDelete, "/deletefolder?folderId=d94c5eea-6b5e-4ffb-b2b0-6d7e8c8f0a10", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadFileEndpointInvalidDate(t *testing.T) {
	router, store := newTestRouter()
	store.folders["d94c5eea-6b5e-4ffb-b2b0-6d7e8c8f0a10"] = &models.Folder{
		ID:    "d94c5eea-6b5e-4ffb-b2b0-6d7e8c8f0a10",
		Name:  "Invoices",
		Files: []models.File{},
	}

	w := doJSON(router, http.MethodPost, "/uploadfile", models.FileUploadRequest{
		FolderName: "Invoices",
		FileDetails: models.FileDetails{
			Details: "jan.pdf",
			Type:    "application/pdf",
			Date:    "2024-01-01T10:00:00Z",
			Sno:     "1",
		},
		FileURL: "https://bucket.example.com/Invoices/jan.pdf",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPresignedURLEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(router, http.MethodPost, "/getpresignedurl", models.PresignRequest{
		FolderName: "Invoices",
		FileName:   "jan.pdf",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.PresignResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://signed.example.com/upload/Invoices/jan.pdf", resp.Data.URL)
}

func TestListFoldersEndpoint(t *testing.T) {
	router, store := newTestRouter()
	store.folders["d94c5eea-6b5e-4ffb-b2b0-6d7e8c8f0a10"] = &models.Folder{
		ID:    "d94c5eea-6b5e-4ffb-b2b0-6d7e8c8f0a10",
		Name:  "Invoices",
		Files: []models.File{{ID: "f1", Name: "jan.pdf"}},
	}

	w := doJSON(router, http.MethodGet, "/list-folders-files", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Folders []models.Folder `json:"folders"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Folders, 1)
	assert.Equal(t, "https://signed.example.com/download/Invoices/jan.pdf",
		resp.Data.Folders[0].Files[0].URL)
}
