package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/materiallab/materialmap/internal/domain"
	"github.com/materiallab/materialmap/internal/repository"
	"github.com/materiallab/materialmap/internal/service"
)

// MaterialHandler handles material catalog endpoints.
type MaterialHandler struct {
	materialService *service.MaterialService
}

// NewMaterialHandler creates a new material handler.
// Parameters:
//   - materialService: material service instance.
// Returns:
//   - *MaterialHandler: initialized handler.
func NewMaterialHandler(materialService *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{
		materialService: materialService,
	}
}

// ListMaterials handles GET /api/v1/materials.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := repository.MaterialListFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Limit:    limit,
		Offset:   offset,
	}

	result, err := h.materialService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list materials: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMaterial handles GET /api/v1/materials/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MaterialHandler) GetMaterial(c *gin.Context) {
	material, ok := lookupMaterial(c, h.materialService)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, material)
}

// CreateMaterial handles POST /api/v1/materials.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	var material domain.Material
	if err := c.ShouldBindJSON(&material); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}
	if material.Name == "" && material.NameOfficial == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Material name is required",
		})
		return
	}

	if err := h.materialService.Create(c.Request.Context(), &material); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create material: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, material)
}

// UpdateMaterial handles PUT /api/v1/materials/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	existing, ok := lookupMaterial(c, h.materialService)
	if !ok {
		return
	}

	var material domain.Material
	if err := c.ShouldBindJSON(&material); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}
	material.ID = existing.ID
	material.UUID = existing.UUID

	if err := h.materialService.Update(c.Request.Context(), &material); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update material: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, material)
}

// DeleteMaterial handles DELETE /api/v1/materials/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	material, ok := lookupMaterial(c, h.materialService)
	if !ok {
		return
	}

	if err := h.materialService.Delete(c.Request.Context(), material.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete material: " + err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCategories handles GET /api/v1/categories.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MaterialHandler) GetCategories(c *gin.Context) {
	categories, err := h.materialService.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get categories: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// lookupMaterial resolves the :id path parameter (numeric ID or UUID) to
// a material, writing the error response itself on failure. Shared by the
// material and image handlers.
func lookupMaterial(c *gin.Context, svc *service.MaterialService) (*domain.Material, bool) {
	raw := c.Param("id")

	var material *domain.Material
	var err error
	if id, perr := strconv.ParseUint(raw, 10, 32); perr == nil {
		material, err = svc.Get(c.Request.Context(), uint(id))
	} else {
		material, err = svc.GetByUUID(c.Request.Context(), raw)
	}

	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Material not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to get material: " + err.Error(),
			})
		}
		return nil, false
	}
	return material, true
}
