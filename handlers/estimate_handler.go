package handlers

import (
	"net/http"
	"strconv"

	"bidcond-backend/models"
	"bidcond-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EstimateHandler handles HTTP requests for estimates
type EstimateHandler struct {
	estimateService *service.EstimateService
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(estimateService *service.EstimateService) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

// CreateEstimateRequest represents the request body for creating an estimate
type CreateEstimateRequest struct {
	ProjectInfo models.ProjectInfo `json:"project_info"`
	WorkType    string             `json:"work_type"`
}

// CreateEstimate handles POST /api/estimates
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var req CreateEstimateRequest
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

	result, err := h.estimateService.CreateEstimate(c.Request.Context(), service.CreateEstimateRequest{
		ProjectInfo: req.ProjectInfo,
		WorkType:    req.WorkType,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Estimate,
	})
}

// GetEstimate handles GET /api/estimates/:id
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid estimate ID format",
			},
		})
		return
	}

	result, err := h.estimateService.GetEstimate(c.Request.Context(), service.GetEstimateRequest{ID: id})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Estimate not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Estimate,
	})
}

// UpdateEstimateRequest represents the request body for updating an estimate
type UpdateEstimateRequest struct {
	Status      *models.EstimateStatus `json:"status"`
	ProjectInfo *models.ProjectInfo    `json:"project_info"`
	WorkType    *string                `json:"work_type"`
}

// UpdateEstimate handles PUT /api/estimates/:id
func (h *EstimateHandler) UpdateEstimate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid estimate ID format",
			},
		})
		return
	}

	var req UpdateEstimateRequest
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

	current, err := h.estimateService.GetEstimate(c.Request.Context(), service.GetEstimateRequest{ID: id})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Estimate not found",
			},
		})
		return
	}

	estimate := current.Estimate
	if req.Status != nil {
		estimate.Status = *req.Status
	}
	if req.ProjectInfo != nil {
		estimate.ProjectInfo = *req.ProjectInfo
	}
	if req.WorkType != nil {
		estimate.WorkType = *req.WorkType
	}

	result, err := h.estimateService.UpdateEstimate(c.Request.Context(), service.UpdateEstimateRequest{
		Estimate: estimate,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Estimate,
	})
}

// ListEstimates handles GET /api/estimates
func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	var status *models.EstimateStatus
	if s := c.Query("status"); s != "" {
		st := models.EstimateStatus(s)
		status = &st
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.estimateService.ListEstimates(c.Request.Context(), service.ListEstimatesRequest{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Estimates,
	})
}

// DeleteEstimate handles DELETE /api/estimates/:id
func (h *EstimateHandler) DeleteEstimate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid estimate ID format",
			},
		})
		return
	}

	if err := h.estimateService.DeleteEstimate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DELETE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
