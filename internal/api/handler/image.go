package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/materiallab/materialmap/internal/display"
	"github.com/materiallab/materialmap/internal/domain"
	"github.com/materiallab/materialmap/internal/imageref"
	"github.com/materiallab/materialmap/internal/logger"
	"github.com/materiallab/materialmap/internal/service"
)

// ImageHandler handles image serving and healing endpoints.
type ImageHandler struct {
	materialService *service.MaterialService
	imageService    *service.ImageService
	logger          *logger.Logger
}

// NewImageHandler creates a new image handler.
// Parameters:
//   - materialService: material service instance.
//   - imageService: image service instance.
//   - log: logger instance.
// Returns:
//   - *ImageHandler: initialized handler.
func NewImageHandler(materialService *service.MaterialService, imageService *service.ImageService, log *logger.Logger) *ImageHandler {
	return &ImageHandler{
		materialService: materialService,
		imageService:    imageService,
		logger:          log,
	}
}

// GetImage handles GET /api/v1/materials/:id/image/:kind. Remote refs
// redirect; everything else is served as JPEG bytes. Image-level failures
// degrade to the placeholder, never a 5xx.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes redirect or image bytes).
func (h *ImageHandler) GetImage(c *gin.Context) {
	material, kind, ok := h.materialAndKind(c)
	if !ok {
		return
	}

	d, _ := h.imageService.GetDisplay(c.Request.Context(), material, kind)
	if d.Source == display.SourceURL {
		c.Redirect(http.StatusFound, d.URL)
		return
	}

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	if err := display.WriteJPEG(c.Writer, d); err != nil {
		logger.CtxError(c.Request.Context(), "Failed to write image response: %v", err)
	}
}

// GetImageRef handles GET /api/v1/materials/:id/image/:kind/ref, returning
// the winning reference and the full branch trace as JSON.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ImageHandler) GetImageRef(c *gin.Context) {
	material, kind, ok := h.materialAndKind(c)
	if !ok {
		return
	}

	ref, trace := h.imageService.ResolveImage(c.Request.Context(), material, kind)
	c.JSON(http.StatusOK, gin.H{
		"material_id":    material.ID,
		"kind":           kind,
		"chosen_branch":  trace.ChosenBranch,
		"final_src_type": trace.FinalSrcType,
		"url":            ref.URL,
		"path":           ref.Path,
		"trace":          trace,
	})
}

// HealImage handles POST /api/v1/materials/:id/heal, force-regenerating
// images for the material. An optional "kind" query limits the pass to
// one slot; the default heals all three.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ImageHandler) HealImage(c *gin.Context) {
	material, ok := lookupMaterial(c, h.materialService)
	if !ok {
		return
	}

	kinds := []imageref.Kind{imageref.KindPrimary, imageref.KindSpace, imageref.KindProduct}
	if raw := c.Query("kind"); raw != "" {
		kind, valid := imageref.ParseKind(raw)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid image kind: " + raw,
			})
			return
		}
		kinds = []imageref.Kind{kind}
	}

	healed := make(map[string]string, len(kinds))
	failures := make(map[string]string)
	for _, kind := range kinds {
		relPath, err := h.imageService.Heal(c.Request.Context(), material, kind)
		if err != nil {
			failures[string(kind)] = err.Error()
			continue
		}
		healed[string(kind)] = relPath
	}

	status := http.StatusOK
	if len(healed) == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{
		"material_id": material.ID,
		"healed":      healed,
		"failures":    failures,
	})
}

func (h *ImageHandler) materialAndKind(c *gin.Context) (*domain.Material, imageref.Kind, bool) {
	material, found := lookupMaterial(c, h.materialService)
	if !found {
		return nil, "", false
	}
	kind, valid := imageref.ParseKind(c.Param("kind"))
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid image kind: " + c.Param("kind"),
		})
		return nil, "", false
	}
	return material, kind, true
}
