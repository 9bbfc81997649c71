package handlers

import (
	"errors"
	"net/http"

	"bidcond-backend/models"
	"bidcond-backend/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler handles HTTP requests for document export
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportRequest represents the request body for an export
type ExportRequest struct {
	Options models.ExportOptions `json:"options"`
}

// Export handles POST /api/estimates/:id/export
func (h *ExportHandler) Export(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	req := ExportRequest{Options: models.DefaultExportOptions()}
	if c.Request.ContentLength > 0 {
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
	}

	result, err := h.exportService.Export(c.Request.Context(), service.ExportRequest{
		EstimateID: id,
		Options:    req.Options,
	})
	if err != nil {
		if errors.Is(err, service.ErrExportInvalid) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EXPORT_INVALID",
					"message": err.Error(),
				},
				"data": result.Validation,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"filename":     result.Filename,
			"storage_path": result.StoragePath,
		},
	})
}

// Download handles GET /api/estimates/:id/export/download
//
// It runs the pipeline and returns the self-printing document directly, for
// clients that open it in a browser window.
func (h *ExportHandler) Download(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), service.ExportRequest{
		EstimateID: id,
		Options:    models.DefaultExportOptions(),
	})
	if err != nil {
		if errors.Is(err, service.ErrExportInvalid) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EXPORT_INVALID",
					"message": err.Error(),
				},
				"data": result.Validation,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(result.Document))
}

// History handles GET /api/exports/history
func (h *ExportHandler) History(c *gin.Context) {
	entries, err := h.exportService.History(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HISTORY_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// ClearHistory handles DELETE /api/exports/history
func (h *ExportHandler) ClearHistory(c *gin.Context) {
	if err := h.exportService.ClearHistory(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CLEAR_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"cleared": true},
	})
}
