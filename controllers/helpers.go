package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"conference-review-api/config"
	"conference-review-api/models"
	"conference-review-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func getCurrentUserID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(int); ok {
			return id, true
		}
	}
	return 0, false
}

func getCurrentRoleID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("roleID"); ok {
		if id, ok := v.(int); ok {
			return id, true
		}
	}
	return 0, false
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Service messages are passed through verbatim.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr   *services.ValidationError
		preconditionErr *services.PreconditionError
		notFoundErr     *services.NotFoundError
		conflictErr     *services.ConflictError
		dependencyErr   *services.ExternalDependencyError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &preconditionErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     preconditionErr.Message,
			"submitted": preconditionErr.Submitted,
			"required":  preconditionErr.Required,
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Message})
	case errors.As(err, &dependencyErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": dependencyErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

const maxUploadSize = 10 * 1024 * 1024 // 10MB

// storeUploadedFile saves a multipart file under UPLOAD_PATH/<folderType> and
// records it in file_uploads. The stored filename is a uuid to avoid
// collisions; the original name is kept in the record.
func storeUploadedFile(c *gin.Context, file *multipart.FileHeader, folderType string, uploadedBy int) (*models.FileUpload, error) {
	if file.Size > maxUploadSize {
		return nil, fmt.Errorf("file size exceeds 10MB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		return nil, fmt.Errorf("file type %s not allowed", ext)
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	folderPath := filepath.Join(uploadPath, folderType)
	if err := os.MkdirAll(folderPath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	storedName := uuid.New().String() + ext
	fullPath := filepath.Join(folderPath, storedName)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	hash, err := hashFile(fullPath)
	if err != nil {
		os.Remove(fullPath)
		return nil, err
	}

	now := time.Now()
	upload := models.FileUpload{
		OriginalName: file.Filename,
		StoredPath:   fullPath,
		FolderType:   folderType,
		FileSize:     file.Size,
		MimeType:     file.Header.Get("Content-Type"),
		FileHash:     hash,
		IsPublic:     folderType == "keynote_photo",
		UploadedBy:   uploadedBy,
		UploadedAt:   now,
		CreateAt:     now,
		UpdateAt:     now,
	}

	if err := config.DB.Create(&upload).Error; err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to save file info: %w", err)
	}

	return &upload, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// serveFileUpload streams a stored file back as an attachment.
func serveFileUpload(c *gin.Context, file *models.FileUpload) {
	if _, err := os.Stat(file.StoredPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File missing from storage"})
		return
	}
	c.FileAttachment(file.StoredPath, file.OriginalName)
}
