package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"kitabcloud/models"
	"kitabcloud/repository"
	"kitabcloud/storage"
	"kitabcloud/utils"
)

// fileDateLayout is the fixed day/month/year-with-time format clients send
// file dates in.
const fileDateLayout = "02/01/2006 15:04:05"

// FolderStore is the slice of the catalog contract the folder flows consume.
type FolderStore interface {
	Insert(ctx context.Context, folder *models.Folder) error
	FindByID(ctx context.Context, id string) (*models.Folder, error)
	FindByName(ctx context.Context, name string) (*models.Folder, error)
	FindAll(ctx context.Context) ([]models.Folder, error)
	Replace(ctx context.Context, folder *models.Folder) error
	DeleteByID(ctx context.Context, id string) error
}

// FolderService keeps the object store and the folder catalog loosely in
// step. Creates write the object store first and the catalog second; deletes
// clear objects best-effort before removing the catalog document. No
// transaction spans the two systems.
type FolderService struct {
	folders FolderStore
	objects storage.ObjectStore
}

// NewFolderService creates a folder service over the given stores
func NewFolderService(folders FolderStore, objects storage.ObjectStore) *FolderService {
	return &FolderService{
		folders: folders,
		objects: objects,
	}
}

// FileDeleteResult reports one object-store delete attempt from a folder
// deletion batch.
type FileDeleteResult struct {
	FileID  string `json:"fileId"`
	Key     string `json:"key"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// FolderDeleteResult is the structured outcome of a folder deletion: the
// catalog document is always gone, individual objects may have survived.
type FolderDeleteResult struct {
	FolderID string             `json:"folderId"`
	Files    []FileDeleteResult `json:"files"`
}

// CreateFolder drives the two-step create: a folder marker is put to the
// object store at {name}/{category}/ and only on success is the catalog
// document written. A catalog failure after the marker committed is surfaced
// as ErrCatalogWrite so the caller can reconcile; the marker is not rolled
// back.
func (fs *FolderService) CreateFolder(ctx context.Context, req *models.FolderCreateRequest) (*models.Folder, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	markerKey := req.FolderName + "/" + req.Category + "/"
	if err := fs.objects.Upload(ctx, markerKey, nil); err != nil {
		return nil, fmt.Errorf("failed to create folder marker: %w", err)
	}

	now := time.Now()
	folder := &models.Folder{
		ID:        uuid.NewString(),
		Name:      req.FolderName,
		Category:  req.Category,
		Type:      req.FolderType,
		Sno:       now.UnixMilli(),
		Files:     []models.File{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := fs.folders.Insert(ctx, folder); err != nil {
		logrus.WithFields(logrus.Fields{
			"folder": req.FolderName,
			"key":    markerKey,
		}).WithError(err).Error("Folder marker committed but catalog insert failed")
		return nil, fmt.Errorf("%w: %v", ErrCatalogWrite, err)
	}

	return folder, nil
}

// ListFolders returns every folder with each file's URL re-signed for
// download.
func (fs *FolderService) ListFolders(ctx context.Context) ([]models.Folder, error) {
	folders, err := fs.folders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range folders {
		for j := range folders[i].Files {
			file := &folders[i].Files[j]
			url, err := fs.objects.PresignDownload(file.ObjectKey(folders[i].Name), storage.DownloadURLTTL)
			if err != nil {
				return nil, fmt.Errorf("failed to sign download URL: %w", err)
			}
			file.URL = url
		}
	}

	return folders, nil
}

// DeleteFolder removes a folder. All object-store deletes for its embedded
// files are issued concurrently and awaited jointly; per-file failures are
// reported and logged but never abort the batch. The catalog document is
// deleted afterwards regardless of per-file outcomes.
func (fs *FolderService) DeleteFolder(ctx context.Context, folderID string) (*FolderDeleteResult, error) {
	if !utils.IsValidUUID(folderID) {
		return nil, fmt.Errorf("%w: folder id must be a UUID", ErrInvalidIdentifier)
	}

	folder, err := fs.folders.FindByID(ctx, folderID)
	if err != nil {
		return nil, err
	}

	results := make([]FileDeleteResult, len(folder.Files))
	var wg sync.WaitGroup
	for i, file := range folder.Files {
		wg.Add(1)
		go func(i int, file models.File) {
			defer wg.Done()
			key := file.ObjectKey(folder.Name)
			result := FileDeleteResult{FileID: file.ID, Key: key, Deleted: true}
			if err := fs.objects.Delete(ctx, key); err != nil {
				result.Deleted = false
				result.Error = err.Error()
				logrus.WithFields(logrus.Fields{
					"folder": folderID,
					"key":    key,
				}).WithError(err).Warn("Failed to delete object, continuing")
			}
			results[i] = result
		}(i, file)
	}
	wg.Wait()

	if err := fs.folders.DeleteByID(ctx, folderID); err != nil {
		return nil, err
	}

	return &FolderDeleteResult{FolderID: folderID, Files: results}, nil
}

// AddFile appends a file record to the folder with the exact given name
// after the object itself was confirmed stored by the client.
func (fs *FolderService) AddFile(ctx context.Context, req *models.FileUploadRequest) (*models.Folder, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	folder, err := fs.folders.FindByName(ctx, req.FolderName)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(fileDateLayout, req.FileDetails.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q does not match %s", ErrInvalidDate, req.FileDetails.Date, fileDateLayout)
	}

	folder.Files = append(folder.Files, models.File{
		ID:        uuid.NewString(),
		Name:      req.FileDetails.Details,
		Type:      req.FileDetails.Type,
		Date:      date,
		Sno:       req.FileDetails.Sno,
		URL:       req.FileURL,
		CreatedAt: time.Now().Format(time.RFC3339),
	})

	if err := fs.folders.Replace(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// RemoveFile excises the file with the given id from the folder's sequence,
// preserving the order of the remaining entries.
func (fs *FolderService) RemoveFile(ctx context.Context, folderID, fileID string) (*models.Folder, error) {
	if !utils.IsValidUUID(folderID) {
		return nil, fmt.Errorf("%w: folder id must be a UUID", ErrInvalidIdentifier)
	}
	if fileID == "" {
		return nil, fmt.Errorf("%w: file id must not be empty", ErrInvalidIdentifier)
	}

	folder, err := fs.folders.FindByID(ctx, folderID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, file := range folder.Files {
		if file.ID == fileID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, fmt.Errorf("file %s: %w", fileID, repository.ErrNotFound)
	}

	folder.Files = append(folder.Files[:index], folder.Files[index+1:]...)

	if err := fs.folders.Replace(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// PresignFileUpload returns a short-lived PUT URL for a folder file upload
func (fs *FolderService) PresignFileUpload(folderName, fileName string) (string, error) {
	return fs.objects.PresignUpload(folderName+"/"+fileName, storage.UploadURLTTL)
}
