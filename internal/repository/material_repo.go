package repository

import (
	"context"
	"fmt"

	"github.com/materiallab/materialmap/internal/domain"
	"gorm.io/gorm"
)

// MaterialListFilter narrows and paginates material listings.
type MaterialListFilter struct {
	Category string
	Query    string
	Limit    int
	Offset   int
}

// MaterialRepository handles material data operations.
type MaterialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository creates a new MaterialRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *MaterialRepository: repository instance bound to db.
func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Create inserts a new material record with its nested associations.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - material: material record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *MaterialRepository) Create(ctx context.Context, material *domain.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

// Update saves an existing material record and its associations.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - material: material record with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *MaterialRepository) Update(ctx context.Context, material *domain.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

// GetByID retrieves a material by its numeric ID with all associations
// preloaded.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: material ID.
// Returns:
//   - *domain.Material: material record if found.
//   - error: non-nil if lookup fails.
func (r *MaterialRepository) GetByID(ctx context.Context, id uint) (*domain.Material, error) {
	var material domain.Material
	if err := r.preloaded(ctx).First(&material, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

// GetByUUID retrieves a material by its UUID with all associations preloaded.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - uuid: material UUID.
// Returns:
//   - *domain.Material: material record if found.
//   - error: non-nil if lookup fails.
func (r *MaterialRepository) GetByUUID(ctx context.Context, uuid string) (*domain.Material, error) {
	var material domain.Material
	if err := r.preloaded(ctx).First(&material, "uuid = ?", uuid).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

// GetByName retrieves a material by exact match against either name column.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - name: display name to look up.
// Returns:
//   - *domain.Material: material record if found.
//   - error: non-nil if lookup fails.
func (r *MaterialRepository) GetByName(ctx context.Context, name string) (*domain.Material, error) {
	var material domain.Material
	if err := r.preloaded(ctx).
		First(&material, "name_official = ? OR name = ?", name, name).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

// List retrieves materials matching the filter, newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filter: category, name-search, and pagination settings.
// Returns:
//   - []domain.Material: matching material records.
//   - error: non-nil if the query fails.
func (r *MaterialRepository) List(ctx context.Context, filter MaterialListFilter) ([]domain.Material, error) {
	var materials []domain.Material
	query := r.preloaded(ctx)
	if filter.Category != "" {
		query = query.Where("category = ? OR category_main = ?", filter.Category, filter.Category)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR name_official LIKE ?", like, like)
	}
	if err := query.
		Limit(filter.Limit).
		Offset(filter.Offset).
		Order("created_at DESC").
		Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

// Count counts materials matching the filter, ignoring pagination.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filter: category and name-search settings.
// Returns:
//   - int64: number of matching records.
//   - error: non-nil if the query fails.
func (r *MaterialRepository) Count(ctx context.Context, filter MaterialListFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Material{})
	if filter.Category != "" {
		query = query.Where("category = ? OR category_main = ?", filter.Category, filter.Category)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR name_official LIKE ?", like, like)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAll retrieves every material with associations. Used by the startup
// heal pass and the diagnostics sweep, which walk the whole catalog.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Material: all material records.
//   - error: non-nil if the query fails.
func (r *MaterialRepository) ListAll(ctx context.Context) ([]domain.Material, error) {
	var materials []domain.Material
	if err := r.preloaded(ctx).Order("id ASC").Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	return materials, nil
}

// GetCategories retrieves all distinct non-empty categories.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []string: distinct category names.
//   - error: non-nil if the query fails.
func (r *MaterialRepository) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&domain.Material{}).
		Where("category <> ''").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete removes a material by ID. Association rows cascade.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: material ID to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (r *MaterialRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select(
		"Properties", "Images", "UseExamples", "ProcessExampleImages",
	).Delete(&domain.Material{ID: id}).Error
}

func (r *MaterialRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Properties").
		Preload("Images").
		Preload("UseExamples").
		Preload("ProcessExampleImages")
}
