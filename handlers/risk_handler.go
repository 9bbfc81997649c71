package handlers

import (
	"errors"
	"net/http"

	"bidcond-backend/risk"
	"bidcond-backend/service"

	"github.com/gin-gonic/gin"
)

// RiskHandler handles HTTP requests for the custom-clause risk workflow
type RiskHandler struct {
	riskService *service.RiskService
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(riskService *service.RiskService) *RiskHandler {
	return &RiskHandler{riskService: riskService}
}

// AnalyzeRequest represents the request body for a risk analysis
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// Analyze handles POST /api/estimates/:id/risk/analyze
func (h *RiskHandler) Analyze(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	var req AnalyzeRequest
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

	result, err := h.riskService.Analyze(c.Request.Context(), service.AnalyzeRequest{
		EstimateID: id,
		Text:       req.Text,
	})
	if err != nil {
		status := http.StatusInternalServerError
		code := "ANALYSIS_FAILED"
		if errors.Is(err, risk.ErrNoText) {
			status = http.StatusBadRequest
			code = "NO_TEXT"
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
		"data":    result.Verdict,
	})
}

// AddCustomRequest represents the request body for committing a custom clause
type AddCustomRequest struct {
	Confirm     bool   `json:"confirm"`
	WorkType    string `json:"work_type"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
	Tag         string `json:"tag"`
}

// AddCustom handles POST /api/estimates/:id/risk/add
func (h *RiskHandler) AddCustom(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	var req AddCustomRequest
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

	result, err := h.riskService.AddCustom(c.Request.Context(), service.AddCustomRequest{
		EstimateID: id,
		Confirm:    req.Confirm,
		Defaults: risk.CustomDefaults{
			WorkType:    req.WorkType,
			Category:    req.Category,
			SubCategory: req.SubCategory,
			Tag:         req.Tag,
		},
	})
	if err != nil {
		status := http.StatusInternalServerError
		code := "ADD_FAILED"
		switch {
		case errors.Is(err, risk.ErrAnalysisRequired):
			status = http.StatusConflict
			code = "ANALYSIS_REQUIRED"
		case errors.Is(err, risk.ErrConfirmationRequired):
			status = http.StatusConflict
			code = "CONFIRMATION_REQUIRED"
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
		"data": gin.H{
			"clause":  result.Clause,
			"verdict": result.Verdict,
		},
	})
}

// Reset handles POST /api/estimates/:id/risk/reset
func (h *RiskHandler) Reset(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	h.riskService.Reset(id)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"reset": true},
	})
}

// Status handles GET /api/estimates/:id/risk
func (h *RiskHandler) Status(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.riskService.Status(id),
	})
}

// History handles GET /api/risk/history
func (h *RiskHandler) History(c *gin.Context) {
	entries, err := h.riskService.History(c.Request.Context())
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

// ClearHistory handles DELETE /api/risk/history
func (h *RiskHandler) ClearHistory(c *gin.Context) {
	if err := h.riskService.ClearHistory(c.Request.Context()); err != nil {
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
