package service

import (
	"context"
	"fmt"

	"github.com/materiallab/materialmap/internal/display"
	"github.com/materiallab/materialmap/internal/domain"
	"github.com/materiallab/materialmap/internal/imagegen"
	"github.com/materiallab/materialmap/internal/imageref"
	"github.com/materiallab/materialmap/internal/logger"
	"github.com/materiallab/materialmap/internal/repository"
)

// ImageConfig holds configuration for the image service.
type ImageConfig struct {
	// AutoHeal regenerates a missing or unhealthy image synchronously on
	// first request instead of serving the placeholder.
	AutoHeal bool
}

// ImageService owns the resolve -> health-gate -> display pipeline and
// the generation fallbacks behind it.
type ImageService struct {
	materialRepo *repository.MaterialRepository
	imageRepo    *repository.ImageRepository
	resolver     *imageref.Resolver
	generator    *imagegen.Generator
	adapter      *display.Adapter
	logger       *logger.Logger
	projectRoot  string
	autoHeal     bool
}

// NewImageService creates a new image service.
// Parameters:
//   - materialRepo: repository for material records.
//   - imageRepo: repository for image-bearing association records.
//   - resolver: image reference resolver.
//   - generator: placeholder/texture generator.
//   - adapter: display adapter.
//   - log: logger instance.
//   - projectRoot: root directory for local asset paths.
//   - cfg: image service configuration.
// Returns:
//   - *ImageService: initialized image service.
func NewImageService(
	materialRepo *repository.MaterialRepository,
	imageRepo *repository.ImageRepository,
	resolver *imageref.Resolver,
	generator *imagegen.Generator,
	adapter *display.Adapter,
	log *logger.Logger,
	projectRoot string,
	cfg *ImageConfig,
) *ImageService {
	autoHeal := false
	if cfg != nil {
		autoHeal = cfg.AutoHeal
	}
	return &ImageService{
		materialRepo: materialRepo,
		imageRepo:    imageRepo,
		resolver:     resolver,
		generator:    generator,
		adapter:      adapter,
		logger:       log,
		projectRoot:  projectRoot,
		autoHeal:     autoHeal,
	}
}

// ResolveImage runs the fallback chain for one material and kind.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - material: material record with use examples loaded.
//   - kind: image slot being requested.
// Returns:
//   - imageref.Ref: winning reference; zero when every branch missed.
//   - imageref.Trace: per-branch decision record.
func (s *ImageService) ResolveImage(ctx context.Context, material *domain.Material, kind imageref.Kind) (imageref.Ref, imageref.Trace) {
	fields := imageref.FieldsFromMaterial(material)
	ref, trace := s.resolver.Resolve(fields, kind)
	logger.CtxDebug(ctx, "Image resolved: material=%q kind=%s branch=%s", fields.DisplayName(), kind, trace.ChosenBranch)
	return ref, trace
}

// GetDisplay resolves, health-gates, and renders the image for one
// material and kind. A local ref that fails its health check is treated
// as a miss. On a miss with AutoHeal enabled, the image is regenerated
// synchronously and resolution retried once. Failures degrade to the
// placeholder; this method never returns an error for image-level
// problems.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - material: material record with use examples loaded.
//   - kind: image slot being requested.
// Returns:
//   - display.Display: render result (url, inline bytes, or placeholder).
//   - imageref.Ref: the reference that was rendered; zero on placeholder.
func (s *ImageService) GetDisplay(ctx context.Context, material *domain.Material, kind imageref.Kind) (display.Display, imageref.Ref) {
	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldComponent:  "image",
		logger.FieldMaterialID: material.ID,
		logger.FieldKind:       string(kind),
	})

	ref, _ := s.ResolveImage(ctx, material, kind)
	if healthy := s.gate(ctx, ref); healthy {
		return s.adapter.Render(ref), ref
	}

	if !s.autoHeal {
		return s.adapter.Placeholder(), imageref.Ref{}
	}

	if _, err := s.Heal(ctx, material, kind); err != nil {
		logger.CtxWarn(ctx, "Auto-heal failed: material=%d kind=%s error=%v", material.ID, kind, err)
		return s.adapter.Placeholder(), imageref.Ref{}
	}

	// One retry after healing; a second miss means generation itself is
	// broken and the placeholder is the honest answer.
	fresh, err := s.materialRepo.GetByID(ctx, material.ID)
	if err != nil {
		return s.adapter.Placeholder(), imageref.Ref{}
	}
	ref, _ = s.ResolveImage(ctx, fresh, kind)
	if s.gate(ctx, ref) {
		return s.adapter.Render(ref), ref
	}
	return s.adapter.Placeholder(), imageref.Ref{}
}

// gate reports whether a ref is servable. URLs pass unprobed; local
// paths must pass the health check.
func (s *ImageService) gate(ctx context.Context, ref imageref.Ref) bool {
	if ref.IsZero() {
		return false
	}
	if ref.URL != "" {
		return true
	}
	report := imageref.CheckHealth(ref.Path, s.projectRoot)
	if report.Status != imageref.StatusOK {
		logger.CtxWarn(ctx, "Unhealthy local image: path=%s status=%s reason=%s", ref.Path, report.Status, report.Reason)
		return false
	}
	return true
}

// Heal regenerates the image for one material and kind and records the
// new path so the local branch wins on the next resolution.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - material: material record with use examples loaded.
//   - kind: image slot to regenerate.
// Returns:
//   - string: project-root-relative path of the regenerated file.
//   - error: non-nil if generation or the DB update fails.
func (s *ImageService) Heal(ctx context.Context, material *domain.Material, kind imageref.Kind) (string, error) {
	name := material.DisplayName()

	switch kind {
	case imageref.KindPrimary:
		relPath, err := s.generator.GeneratePrimary(name, material.MainCategory())
		if err != nil {
			return "", fmt.Errorf("failed to generate texture: %w", err)
		}
		if err := s.imageRepo.SetTexturePath(ctx, material.ID, relPath); err != nil {
			return "", fmt.Errorf("failed to record texture path: %w", err)
		}
		logger.CtxInfo(ctx, "Texture regenerated: material=%q path=%s", name, relPath)
		return relPath, nil

	case imageref.KindSpace, imageref.KindProduct:
		example := matchingUseExample(material, kind)
		title, label := useExampleDefaults(name, kind)
		if example != nil {
			if example.Title != "" {
				title = example.Title
			}
			label = example.Domain
		}

		relPath, err := s.generator.GenerateUseExample(name, title, label, kind)
		if err != nil {
			return "", fmt.Errorf("failed to generate use example: %w", err)
		}

		if example != nil {
			if err := s.imageRepo.UpdateUseExamplePath(ctx, example.ID, relPath); err != nil {
				return "", fmt.Errorf("failed to record use example path: %w", err)
			}
		} else {
			record := &domain.UseExample{
				MaterialID: material.ID,
				Title:      title,
				Domain:     label,
				ImagePath:  relPath,
			}
			if err := s.imageRepo.CreateUseExample(ctx, record); err != nil {
				return "", fmt.Errorf("failed to create use example record: %w", err)
			}
		}
		logger.CtxInfo(ctx, "Use example regenerated: material=%q kind=%s path=%s", name, kind, relPath)
		return relPath, nil
	}

	return "", fmt.Errorf("cannot heal image kind %q", kind)
}

// EnsureReport summarizes one startup self-heal pass.
type EnsureReport struct {
	Checked     int `json:"checked"`
	Healthy     int `json:"healthy"`
	Regenerated int `json:"regenerated"`
	Failed      int `json:"failed"`
}

// EnsureAll walks every material and regenerates any image slot whose
// resolution misses or whose local file fails its health check. Run at
// startup or from the maintenance tool; failures are logged and counted,
// never fatal.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *EnsureReport: counts of checked, healthy, regenerated, and failed slots.
//   - error: non-nil only if the material listing itself fails.
func (s *ImageService) EnsureAll(ctx context.Context) (*EnsureReport, error) {
	ctx = logger.WithFields(ctx, logger.Fields{logger.FieldComponent: "ensure"})

	materials, err := s.materialRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &EnsureReport{}
	kinds := []imageref.Kind{imageref.KindPrimary, imageref.KindSpace, imageref.KindProduct}

	for i := range materials {
		material := &materials[i]
		for _, kind := range kinds {
			// Space/product slots only exist where the material has a
			// matching use example; primary always exists.
			if kind != imageref.KindPrimary && matchingUseExample(material, kind) == nil {
				continue
			}
			report.Checked++

			ref, _ := s.ResolveImage(ctx, material, kind)
			if s.gate(ctx, ref) {
				report.Healthy++
				continue
			}

			if _, err := s.Heal(ctx, material, kind); err != nil {
				logger.CtxError(ctx, "Heal failed: material=%d kind=%s error=%v", material.ID, kind, err)
				report.Failed++
				continue
			}
			report.Regenerated++
		}
	}

	logger.CtxInfo(ctx, "Image ensure pass complete: checked=%d healthy=%d regenerated=%d failed=%d",
		report.Checked, report.Healthy, report.Regenerated, report.Failed)
	return report, nil
}

// matchingUseExample returns the first use example row whose domain label
// matches the kind, or nil.
func matchingUseExample(material *domain.Material, kind imageref.Kind) *domain.UseExample {
	fields := imageref.FieldsFromMaterial(material)
	target, ok := fields.UseExampleFor(kind)
	if !ok {
		return nil
	}
	for i := range material.UseExamples {
		ue := &material.UseExamples[i]
		if ue.Domain == target.Domain && ue.ImagePath == target.ImagePath && ue.ImageURL == target.ImageURL {
			return ue
		}
	}
	return nil
}

// useExampleDefaults supplies the title and domain label for a use
// example generated without an existing row.
func useExampleDefaults(materialName string, kind imageref.Kind) (title, label string) {
	switch kind {
	case imageref.KindSpace:
		return materialName + "の空間利用例", "空間"
	case imageref.KindProduct:
		return materialName + "のプロダクト利用例", "プロダクト"
	}
	return materialName, ""
}
