package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/materiallab/materialmap/internal/service"
)

// DiagnosticsHandler handles the admin image diagnostics endpoints.
type DiagnosticsHandler struct {
	diagnostics *service.DiagnosticsService
}

// NewDiagnosticsHandler creates a new diagnostics handler.
// Parameters:
//   - diagnostics: diagnostics service instance.
// Returns:
//   - *DiagnosticsHandler: initialized handler.
func NewDiagnosticsHandler(diagnostics *service.DiagnosticsService) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		diagnostics: diagnostics,
	}
}

// SweepImages handles GET /api/v1/diagnostics/images. An optional
// "material_id" query limits the sweep to one material.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *DiagnosticsHandler) SweepImages(c *gin.Context) {
	if raw := c.Query("material_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid material_id: " + raw,
			})
			return
		}
		diag, err := h.diagnostics.DiagnoseMaterial(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Material not found",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"materials": []service.MaterialDiagnostics{*diag},
		})
		return
	}

	results, err := h.diagnostics.Sweep(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to run diagnostics sweep: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"materials": results,
		"total":     len(results),
	})
}
