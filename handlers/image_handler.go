package handlers

import (
	"errors"
	"net/http"
	"strings"

	"bidcond-backend/models"
	"bidcond-backend/repository"
	"bidcond-backend/service"
	"bidcond-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ImageHandler handles clause image uploads and serving
type ImageHandler struct {
	selectionService *service.SelectionService
	attachmentRepo   *repository.AttachmentRepository
	store            storage.Storage
}

// NewImageHandler creates a new image handler
func NewImageHandler(selectionService *service.SelectionService, attachmentRepo *repository.AttachmentRepository, store storage.Storage) *ImageHandler {
	return &ImageHandler{
		selectionService: selectionService,
		attachmentRepo:   attachmentRepo,
		store:            store,
	}
}

// UploadImages handles POST /api/estimates/:id/images
//
// The multipart form carries work_type_code, text, and one or more files
// under "images". Files are processed independently; the response reports
// each one.
func (h *ImageHandler) UploadImages(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	key := models.ClauseKey{
		WorkTypeCode: c.PostForm("work_type_code"),
		Text:         c.PostForm("text"),
	}
	if key.WorkTypeCode == "" || key.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CLAUSE_KEY",
				"message": "work_type_code and text are required",
			},
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FORM",
				"message": err.Error(),
			},
		})
		return
	}

	fileHeaders := form.File["images"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "At least one image file is required",
			},
		})
		return
	}

	uploads := make([]service.ImageUpload, 0, len(fileHeaders))
	opened := make([]interface{ Close() error }, 0, len(fileHeaders))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_OPEN_ERROR",
					"message": err.Error(),
				},
			})
			return
		}
		opened = append(opened, file)

		mimeType := fh.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = inferImageMimeType(fh.Filename)
		}

		uploads = append(uploads, service.ImageUpload{
			Filename: fh.Filename,
			MimeType: mimeType,
			Size:     fh.Size,
			Data:     file,
		})
	}

	results, err := h.selectionService.AttachImages(c.Request.Context(), id, key, uploads)
	if err != nil {
		status := http.StatusInternalServerError
		code := "UPLOAD_FAILED"
		if errors.Is(err, service.ErrNotSelected) {
			status = http.StatusConflict
			code = "CLAUSE_NOT_SELECTED"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
	})
}

// RemoveImageRequest represents the request body for removing an attachment
type RemoveImageRequest struct {
	WorkTypeCode string `json:"work_type_code" binding:"required"`
	Text         string `json:"text" binding:"required"`
}

// RemoveImage handles DELETE /api/estimates/:id/images/:imageId
func (h *ImageHandler) RemoveImage(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_IMAGE_ID",
				"message": "Invalid image ID format",
			},
		})
		return
	}

	var req RemoveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	key := models.ClauseKey{WorkTypeCode: req.WorkTypeCode, Text: req.Text}
	if err := h.selectionService.RemoveImage(c.Request.Context(), id, key, imageID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REMOVE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"removed": true},
	})
}

// ServeImage handles GET /api/images/:imageId
func (h *ImageHandler) ServeImage(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_IMAGE_ID",
				"message": "Invalid image ID format",
			},
		})
		return
	}

	att, err := h.attachmentRepo.GetByID(c.Request.Context(), imageID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Image not found",
			},
		})
		return
	}

	reader, err := h.store.Download(c.Request.Context(), att.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOWNLOAD_FAILED",
				"message": err.Error(),
			},
		})
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, att.Size, att.MimeType, reader, nil)
}

// inferImageMimeType maps a filename extension to a MIME type
func inferImageMimeType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
