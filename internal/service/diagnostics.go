package service

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/materiallab/materialmap/internal/domain"
	"github.com/materiallab/materialmap/internal/imageref"
	"github.com/materiallab/materialmap/internal/logger"
	"github.com/materiallab/materialmap/internal/repository"
)

// Remote probes fail soft: a slow or unreachable host reports "unknown",
// never an error.
const remoteProbeTimeout = 3 * time.Second

// ImageDiagnostic is the full resolution record for one image slot.
type ImageDiagnostic struct {
	Kind         imageref.Kind          `json:"kind"`
	Branch       imageref.Branch        `json:"chosen_branch"`
	SourceType   string                 `json:"final_src_type"`
	URL          string                 `json:"url,omitempty"`
	Path         string                 `json:"path,omitempty"`
	Trace        imageref.Trace         `json:"trace"`
	Health       *imageref.HealthReport `json:"health,omitempty"`
	RemoteStatus string                 `json:"remote_status,omitempty"`
}

// MaterialDiagnostics groups the per-kind diagnostics of one material.
type MaterialDiagnostics struct {
	MaterialID uint              `json:"material_id"`
	Name       string            `json:"name"`
	Slug       string            `json:"slug"`
	Images     []ImageDiagnostic `json:"images"`
}

// DiagnosticsService produces the admin-facing image health sweep.
type DiagnosticsService struct {
	materialRepo *repository.MaterialRepository
	resolver     *imageref.Resolver
	client       *resty.Client
	logger       *logger.Logger
	projectRoot  string
}

// NewDiagnosticsService creates a new diagnostics service.
// Parameters:
//   - materialRepo: repository for material records.
//   - resolver: image reference resolver.
//   - log: logger instance.
//   - projectRoot: root directory for local asset paths.
// Returns:
//   - *DiagnosticsService: initialized diagnostics service.
func NewDiagnosticsService(
	materialRepo *repository.MaterialRepository,
	resolver *imageref.Resolver,
	log *logger.Logger,
	projectRoot string,
) *DiagnosticsService {
	client := resty.New().
		SetTimeout(remoteProbeTimeout).
		SetRetryCount(0)
	return &DiagnosticsService{
		materialRepo: materialRepo,
		resolver:     resolver,
		client:       client,
		logger:       log,
		projectRoot:  projectRoot,
	}
}

// Sweep resolves every image slot of every material and attaches a health
// report (local files) or a HEAD probe result (remote URLs).
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []MaterialDiagnostics: per-material diagnostics, in ID order.
//   - error: non-nil only if the material listing fails.
func (s *DiagnosticsService) Sweep(ctx context.Context) ([]MaterialDiagnostics, error) {
	ctx = logger.WithFields(ctx, logger.Fields{logger.FieldComponent: "diagnostics"})

	materials, err := s.materialRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]MaterialDiagnostics, 0, len(materials))
	for i := range materials {
		results = append(results, s.diagnoseMaterial(ctx, &materials[i]))
	}

	logger.CtxInfo(ctx, "Diagnostics sweep complete: materials=%d duration_ms=%d",
		len(results), time.Since(start).Milliseconds())
	return results, nil
}

// DiagnoseMaterial inspects every image slot of a single material.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: material ID.
// Returns:
//   - *MaterialDiagnostics: diagnostics for the material.
//   - error: non-nil if the material lookup fails.
func (s *DiagnosticsService) DiagnoseMaterial(ctx context.Context, id uint) (*MaterialDiagnostics, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	diag := s.diagnoseMaterial(ctx, material)
	return &diag, nil
}

func (s *DiagnosticsService) diagnoseMaterial(ctx context.Context, material *domain.Material) MaterialDiagnostics {
	fields := imageref.FieldsFromMaterial(material)
	diag := MaterialDiagnostics{
		MaterialID: material.ID,
		Name:       fields.DisplayName(),
		Slug:       fields.Slug(),
	}

	for _, kind := range []imageref.Kind{imageref.KindPrimary, imageref.KindSpace, imageref.KindProduct} {
		ref, trace := s.resolver.Resolve(fields, kind)
		entry := ImageDiagnostic{
			Kind:       kind,
			Branch:     trace.ChosenBranch,
			SourceType: trace.FinalSrcType,
			URL:        ref.URL,
			Path:       ref.Path,
			Trace:      trace,
		}
		switch {
		case ref.Path != "":
			report := imageref.CheckHealth(ref.Path, s.projectRoot)
			entry.Health = &report
		case ref.URL != "":
			entry.RemoteStatus = s.probeRemote(ctx, ref.URL)
		}
		diag.Images = append(diag.Images, entry)
	}
	return diag
}

// probeRemote issues a HEAD request and buckets the outcome. Transport
// failures and timeouts report "unknown" so one dead CDN cannot turn a
// sweep into an error page.
func (s *DiagnosticsService) probeRemote(ctx context.Context, url string) string {
	resp, err := s.client.R().SetContext(ctx).Head(url)
	if err != nil {
		logger.CtxDebug(ctx, "Remote probe failed: url=%s error=%v", url, err)
		return "unknown"
	}
	code := resp.StatusCode()
	switch {
	case code >= 200 && code < 400:
		return "ok"
	case code >= 400:
		return "error"
	}
	return "unknown"
}
