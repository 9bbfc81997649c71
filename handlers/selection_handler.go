package handlers

import (
	"net/http"

	"bidcond-backend/models"
	"bidcond-backend/parser"
	"bidcond-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SelectionHandler handles HTTP requests for the clause selection
type SelectionHandler struct {
	selectionService *service.SelectionService
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(selectionService *service.SelectionService) *SelectionHandler {
	return &SelectionHandler{selectionService: selectionService}
}

func estimateID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid estimate ID format",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

// ToggleRequest represents the request body for toggling a clause
type ToggleRequest struct {
	Clause models.Clause `json:"clause" binding:"required"`
}

// ToggleClause handles POST /api/estimates/:id/selection/toggle
func (h *SelectionHandler) ToggleClause(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	var req ToggleRequest
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

	selected, err := h.selectionService.Toggle(c.Request.Context(), id, req.Clause)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOGGLE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"selected": selected},
	})
}

// ToggleAll handles POST /api/estimates/:id/selection/toggle-all
func (h *SelectionHandler) ToggleAll(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	selected, err := h.selectionService.ToggleAll(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOGGLE_ALL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"selected": selected},
	})
}

// RemoveClause handles POST /api/estimates/:id/selection/remove
func (h *SelectionHandler) RemoveClause(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	var req ToggleRequest
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

	if err := h.selectionService.Remove(c.Request.Context(), id, req.Clause); err != nil {
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

// ClearSelection handles DELETE /api/estimates/:id/selection
func (h *SelectionHandler) ClearSelection(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	if err := h.selectionService.Clear(c.Request.Context(), id); err != nil {
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

// SetFilterRequest represents the request body for a cascade selection
type SetFilterRequest struct {
	Level string `json:"level" binding:"required"`
	Value string `json:"value"`
}

// SetFilter handles PUT /api/estimates/:id/selection/filter
func (h *SelectionHandler) SetFilter(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	var req SetFilterRequest
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

	level, err := parser.ParseLevel(req.Level)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_LEVEL",
				"message": err.Error(),
			},
		})
		return
	}

	state, err := h.selectionService.SetFilter(c.Request.Context(), id, level, req.Value)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILTER_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    state,
	})
}

// GetFilter handles GET /api/estimates/:id/selection/filter
func (h *SelectionHandler) GetFilter(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	state, err := h.selectionService.Filters(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILTER_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    state,
	})
}

// GetSelection handles GET /api/estimates/:id/selection
func (h *SelectionHandler) GetSelection(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	snapshot, err := h.selectionService.Snapshot(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SELECTION_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    snapshot,
	})
}

// GetSections handles GET /api/estimates/:id/sections
func (h *SelectionHandler) GetSections(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	sections, err := h.selectionService.Sections(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SECTIONS_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sections,
	})
}

// GetPreview handles GET /api/estimates/:id/preview
func (h *SelectionHandler) GetPreview(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	markup, err := h.selectionService.Preview(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PREVIEW_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
}
