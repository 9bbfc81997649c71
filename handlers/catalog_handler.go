package handlers

import (
	"net/http"

	"bidcond-backend/parser"
	"bidcond-backend/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler handles HTTP requests for the clause catalog
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) catalogError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "CATALOG_ERROR"
	if err == service.ErrCatalogNotLoaded {
		status = http.StatusServiceUnavailable
		code = "CATALOG_NOT_LOADED"
	}
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

// ListWorkTypes handles GET /api/catalog/work-types
func (h *CatalogHandler) ListWorkTypes(c *gin.Context) {
	workTypes, err := h.catalogService.WorkTypes(c.Query("q"))
	if err != nil {
		h.catalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    workTypes,
	})
}

// ListCategories handles GET /api/catalog/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.Categories(c.Query("work_type"))
	if err != nil {
		h.catalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// ListSubCategories handles GET /api/catalog/sub-categories
func (h *CatalogHandler) ListSubCategories(c *gin.Context) {
	subCategories, err := h.catalogService.SubCategories(c.Query("work_type"), c.Query("category"))
	if err != nil {
		h.catalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    subCategories,
	})
}

// ListTags handles GET /api/catalog/tags
func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.catalogService.Tags(c.Query("work_type"), c.Query("category"), c.Query("sub_category"))
	if err != nil {
		h.catalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tags,
	})
}

// ListClauses handles GET /api/catalog/clauses
func (h *CatalogHandler) ListClauses(c *gin.Context) {
	cascade := parser.Cascade{
		WorkType:    c.Query("work_type"),
		Category:    c.Query("category"),
		SubCategory: c.Query("sub_category"),
		Tag:         c.Query("tag"),
	}

	clauses, err := h.catalogService.Filtered(cascade)
	if err != nil {
		h.catalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    clauses,
	})
}

// ReloadCatalog handles POST /api/catalog/reload
func (h *CatalogHandler) ReloadCatalog(c *gin.Context) {
	if err := h.catalogService.Reload(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RELOAD_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"reloaded": true},
	})
}
