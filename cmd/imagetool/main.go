// Command imagetool is the offline maintenance companion to the API
// server: it verifies, regenerates, and migrates the image assets the
// resolver serves.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/materiallab/materialmap/internal/config"
	"github.com/materiallab/materialmap/internal/display"
	"github.com/materiallab/materialmap/internal/domain"
	"github.com/materiallab/materialmap/internal/imagegen"
	"github.com/materiallab/materialmap/internal/imageref"
	"github.com/materiallab/materialmap/internal/logger"
	"github.com/materiallab/materialmap/internal/repository"
	"github.com/materiallab/materialmap/internal/service"
	"github.com/materiallab/materialmap/internal/storage"
)

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "materialmap-imagetool",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	mode := flag.String("mode", "verify", "Operation: verify, heal, generate, migrate, diagnose")
	configPath := flag.String("config", "", "Path to config file")
	strict := flag.Bool("strict", false, "verify: exit non-zero when any image is unhealthy")
	materialID := flag.Uint("material", 0, "Limit the operation to one material ID (0 = all)")
	dryRun := flag.Bool("dry-run", false, "migrate: list what would be uploaded without uploading")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	materialRepo := repository.NewMaterialRepository(db)
	imageRepo := repository.NewImageRepository(db)

	resolverCfg := imageref.Config{
		BaseURL:     cfg.Images.BaseURL,
		Version:     cfg.Images.Version,
		ProjectRoot: cfg.Images.ProjectRoot,
	}
	if cfg.Images.LegacyFallback {
		resolverCfg.Legacy = imageref.DirScanLookup{ProjectRoot: cfg.Images.ProjectRoot}
	}
	resolver := imageref.NewResolver(resolverCfg)

	generator, err := imagegen.NewGenerator(cfg.Images.ProjectRoot, cfg.Images.FontPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize image generator")
	}
	adapter := display.NewAdapter(cfg.Images.ProjectRoot, cfg.Images.FontPath)

	imageService := service.NewImageService(
		materialRepo, imageRepo, resolver, generator, adapter,
		appLogger, cfg.Images.ProjectRoot,
		&service.ImageConfig{AutoHeal: false},
	)
	diagnosticsService := service.NewDiagnosticsService(materialRepo, resolver, appLogger, cfg.Images.ProjectRoot)

	ctx := appLogger.WithContext(context.Background())

	tool := &imageTool{
		cfg:          cfg,
		materialRepo: materialRepo,
		imageRepo:    imageRepo,
		resolver:     resolver,
		generator:    generator,
		imageService: imageService,
		diagnostics:  diagnosticsService,
		materialID:   *materialID,
		dryRun:       *dryRun,
	}

	switch *mode {
	case "verify":
		tool.runVerify(ctx, *strict)
	case "heal":
		tool.runHeal(ctx)
	case "generate":
		tool.runGenerate(ctx)
	case "migrate":
		tool.runMigrate(ctx)
	case "diagnose":
		tool.runDiagnose(ctx)
	default:
		appLogger.Fatalf("Unknown mode %q (want verify, heal, generate, migrate, or diagnose)", *mode)
	}
}

type imageTool struct {
	cfg          *config.Config
	materialRepo *repository.MaterialRepository
	imageRepo    *repository.ImageRepository
	resolver     *imageref.Resolver
	generator    *imagegen.Generator
	imageService *service.ImageService
	diagnostics  *service.DiagnosticsService
	materialID   uint
	dryRun       bool
}

func (t *imageTool) materials(ctx context.Context) []domain.Material {
	if t.materialID != 0 {
		material, err := t.materialRepo.GetByID(ctx, t.materialID)
		if err != nil {
			logger.CtxFatal(ctx, "Material %d not found: %v", t.materialID, err)
		}
		return []domain.Material{*material}
	}
	materials, err := t.materialRepo.ListAll(ctx)
	if err != nil {
		logger.CtxFatal(ctx, "Failed to list materials: %v", err)
	}
	return materials
}

// runVerify resolves every image slot and health-checks local files. With
// -strict any problem makes the process exit 1, which is what CI wants.
func (t *imageTool) runVerify(ctx context.Context, strict bool) {
	materials := t.materials(ctx)
	kinds := []imageref.Kind{imageref.KindPrimary, imageref.KindSpace, imageref.KindProduct}

	problems := 0
	checked := 0
	for i := range materials {
		fields := imageref.FieldsFromMaterial(&materials[i])
		for _, kind := range kinds {
			if kind != imageref.KindPrimary {
				if _, ok := fields.UseExampleFor(kind); !ok {
					continue
				}
			}
			checked++
			ref, trace := t.resolver.Resolve(fields, kind)
			switch {
			case ref.IsZero():
				problems++
				fmt.Printf("MISS    %-30s %-8s (no branch matched)\n", fields.DisplayName(), kind)
			case ref.Path != "":
				report := imageref.CheckHealth(ref.Path, t.cfg.Images.ProjectRoot)
				if report.Status != imageref.StatusOK {
					problems++
					fmt.Printf("BAD     %-30s %-8s %s: %s\n", fields.DisplayName(), kind, report.Status, report.Reason)
				}
			default:
				// Remote refs are verified by the diagnose mode's HEAD probe.
				_ = trace
			}
		}
	}

	fmt.Printf("\nVerified %d image slots across %d materials, %d problems\n", checked, len(materials), problems)
	if strict && problems > 0 {
		os.Exit(1)
	}
}

// runHeal regenerates every missing or unhealthy image slot.
func (t *imageTool) runHeal(ctx context.Context) {
	report, err := t.imageService.EnsureAll(ctx)
	if err != nil {
		logger.CtxFatal(ctx, "Heal pass failed: %v", err)
	}
	fmt.Printf("Checked %d, healthy %d, regenerated %d, failed %d\n",
		report.Checked, report.Healthy, report.Regenerated, report.Failed)
	if report.Failed > 0 {
		os.Exit(1)
	}
}

// runGenerate regenerates all images unconditionally, including process
// example images, ignoring current health.
func (t *imageTool) runGenerate(ctx context.Context) {
	materials := t.materials(ctx)

	generated, failed := 0, 0
	for i := range materials {
		material := &materials[i]
		for _, kind := range []imageref.Kind{imageref.KindPrimary, imageref.KindSpace, imageref.KindProduct} {
			if kind != imageref.KindPrimary {
				fields := imageref.FieldsFromMaterial(material)
				if _, ok := fields.UseExampleFor(kind); !ok {
					continue
				}
			}
			if _, err := t.imageService.Heal(ctx, material, kind); err != nil {
				logger.CtxError(ctx, "Generation failed: material=%d kind=%s error=%v", material.ID, kind, err)
				failed++
				continue
			}
			generated++
		}

		for j := range material.ProcessExampleImages {
			pe := &material.ProcessExampleImages[j]
			relPath, err := t.generator.GenerateProcessExample(pe.ProcessName)
			if err != nil {
				logger.CtxError(ctx, "Process example generation failed: material=%d process=%q error=%v",
					material.ID, pe.ProcessName, err)
				failed++
				continue
			}
			if err := t.imageRepo.UpdateProcessExamplePath(ctx, pe.ID, relPath); err != nil {
				logger.CtxError(ctx, "Failed to record process example path: id=%d error=%v", pe.ID, err)
				failed++
				continue
			}
			generated++
		}
	}

	// Element badges are catalog-wide, not per-material.
	if t.materialID == 0 {
		for _, e := range imagegen.Elements {
			if _, err := t.generator.GenerateElementBadge(e.Symbol, e.AtomicNumber, e.Group); err != nil {
				logger.CtxError(ctx, "Element badge generation failed: symbol=%s error=%v", e.Symbol, err)
				failed++
				continue
			}
			generated++
		}
	}

	fmt.Printf("Generated %d images, %d failures\n", generated, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// runMigrate uploads local textures to object storage and records the
// public URLs, after which the db_url branch wins resolution.
func (t *imageTool) runMigrate(ctx context.Context) {
	if !t.cfg.Storage.Enabled {
		logger.CtxFatal(ctx, "Object storage is not enabled in config")
	}

	if t.dryRun {
		materials, err := t.imageRepo.ListMaterialsWithLocalImages(ctx)
		if err != nil {
			logger.CtxFatal(ctx, "Failed to list materials with local images: %v", err)
		}
		for i := range materials {
			if t.materialID != 0 && materials[i].ID != t.materialID {
				continue
			}
			fmt.Printf("WOULD UPLOAD %-4d %s\n", materials[i].ID, materials[i].TextureImagePath)
		}
		return
	}

	objectStorage, err := storage.NewStorage(&storage.S3Config{
		Type:      storage.StorageType(t.cfg.Storage.Type),
		Endpoint:  t.cfg.Storage.Endpoint,
		AccessKey: t.cfg.Storage.AccessKey,
		SecretKey: t.cfg.Storage.SecretKey,
		UseSSL:    t.cfg.Storage.UseSSL,
		Bucket:    t.cfg.Storage.Bucket,
		Region:    t.cfg.Storage.Region,
		PublicURL: t.cfg.Storage.PublicURL,
	})
	if err != nil {
		logger.CtxFatal(ctx, "Failed to initialize storage: %v", err)
	}
	if s3, ok := objectStorage.(*storage.S3Storage); ok {
		if err := s3.EnsureBucket(ctx); err != nil {
			logger.CtxFatal(ctx, "Failed to ensure storage bucket: %v", err)
		}
	}

	materials, err := t.imageRepo.ListMaterialsWithLocalImages(ctx)
	if err != nil {
		logger.CtxFatal(ctx, "Failed to list materials with local images: %v", err)
	}

	migrated, failed := 0, 0
	for i := range materials {
		material := &materials[i]
		if t.materialID != 0 && material.ID != t.materialID {
			continue
		}

		localPath := material.TextureImagePath
		if !filepath.IsAbs(localPath) {
			localPath = filepath.Join(t.cfg.Images.ProjectRoot, localPath)
		}

		f, err := os.Open(localPath)
		if err != nil {
			logger.CtxError(ctx, "Cannot open texture: material=%d path=%s error=%v", material.ID, localPath, err)
			failed++
			continue
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			failed++
			continue
		}

		key := "materials/" + filepath.ToSlash(material.TextureImagePath)
		contentType := mime.TypeByExtension(filepath.Ext(localPath))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		err = objectStorage.Upload(ctx, key, f, info.Size(), contentType)
		f.Close()
		if err != nil {
			logger.CtxError(ctx, "Upload failed: material=%d key=%s error=%v", material.ID, key, err)
			failed++
			continue
		}

		url := objectStorage.GetURL(key)
		if err := t.imageRepo.SetTextureURL(ctx, material.ID, url); err != nil {
			logger.CtxError(ctx, "Failed to record texture URL: material=%d error=%v", material.ID, err)
			failed++
			continue
		}
		logger.CtxInfo(ctx, "Migrated texture: material=%d url=%s", material.ID, url)
		migrated++
	}

	fmt.Printf("Migrated %d textures, %d failures\n", migrated, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// runDiagnose prints the full diagnostics sweep as JSON.
func (t *imageTool) runDiagnose(ctx context.Context) {
	var results []service.MaterialDiagnostics
	if t.materialID != 0 {
		diag, err := t.diagnostics.DiagnoseMaterial(ctx, t.materialID)
		if err != nil {
			logger.CtxFatal(ctx, "Material %d not found: %v", t.materialID, err)
		}
		results = []service.MaterialDiagnostics{*diag}
	} else {
		var err error
		results, err = t.diagnostics.Sweep(ctx)
		if err != nil {
			logger.CtxFatal(ctx, "Diagnostics sweep failed: %v", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		logger.CtxFatal(ctx, "Failed to encode diagnostics: %v", err)
	}
}
