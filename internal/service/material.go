package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/materiallab/materialmap/internal/domain"
	"github.com/materiallab/materialmap/internal/logger"
	"github.com/materiallab/materialmap/internal/repository"
	"gorm.io/gorm"
)

// ErrMaterialNotFound is returned when a material lookup matches nothing.
var ErrMaterialNotFound = errors.New("material not found")

// MaterialListResult bundles a page of materials with the unpaginated total.
type MaterialListResult struct {
	Materials []domain.Material `json:"materials"`
	Total     int64             `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// MaterialService handles material catalog operations.
type MaterialService struct {
	repo   *repository.MaterialRepository
	logger *logger.Logger
}

// NewMaterialService creates a new material service.
// Parameters:
//   - repo: repository for material records.
//   - log: logger instance.
// Returns:
//   - *MaterialService: initialized material service.
func NewMaterialService(repo *repository.MaterialRepository, log *logger.Logger) *MaterialService {
	return &MaterialService{repo: repo, logger: log}
}

// Create registers a new material. A UUID is assigned when the caller did
// not provide one.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - material: material record to persist, with nested associations.
// Returns:
//   - error: non-nil if the insert fails.
func (s *MaterialService) Create(ctx context.Context, material *domain.Material) error {
	if material.UUID == "" {
		material.UUID = uuid.New().String()
	}
	if err := s.repo.Create(ctx, material); err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	logger.CtxInfo(ctx, "Material created: id=%d name=%q", material.ID, material.DisplayName())
	return nil
}

// Get retrieves a material by numeric ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: material ID.
// Returns:
//   - *domain.Material: material record with associations.
//   - error: ErrMaterialNotFound if no row matches.
func (s *MaterialService) Get(ctx context.Context, id uint) (*domain.Material, error) {
	material, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return material, nil
}

// GetByUUID retrieves a material by UUID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: material UUID.
// Returns:
//   - *domain.Material: material record with associations.
//   - error: ErrMaterialNotFound if no row matches.
func (s *MaterialService) GetByUUID(ctx context.Context, id string) (*domain.Material, error) {
	material, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return material, nil
}

// List retrieves a filtered, paginated page of materials plus the total.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filter: category, name-search, and pagination settings.
// Returns:
//   - *MaterialListResult: page of materials and unpaginated total.
//   - error: non-nil if the query fails.
func (s *MaterialService) List(ctx context.Context, filter repository.MaterialListFilter) (*MaterialListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	materials, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count materials: %w", err)
	}

	return &MaterialListResult{
		Materials: materials,
		Total:     total,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	}, nil
}

// Update saves changes to an existing material. The record must already
// exist; its ID is the row key.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - material: material record with updated fields.
// Returns:
//   - error: ErrMaterialNotFound if the row is gone, non-nil on failure.
func (s *MaterialService) Update(ctx context.Context, material *domain.Material) error {
	if _, err := s.Get(ctx, material.ID); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, material); err != nil {
		return fmt.Errorf("failed to update material: %w", err)
	}
	logger.CtxInfo(ctx, "Material updated: id=%d name=%q", material.ID, material.DisplayName())
	return nil
}

// Delete removes a material and its association rows.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: material ID to delete.
// Returns:
//   - error: ErrMaterialNotFound if the row is gone, non-nil on failure.
func (s *MaterialService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	logger.CtxInfo(ctx, "Material deleted: id=%d", id)
	return nil
}

// Categories retrieves all distinct category names.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []string: distinct category names, sorted.
//   - error: non-nil if the query fails.
func (s *MaterialService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.GetCategories(ctx)
}
