package repository

import (
	"context"

	"github.com/materiallab/materialmap/internal/domain"
	"gorm.io/gorm"
)

// ImageRepository handles the image-bearing association records: generic
// images, use examples, and process example images. Healing and migration
// both write through here so path/URL updates stay in one place.
type ImageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new ImageRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ImageRepository: repository instance bound to db.
func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// SetTexturePath records the regenerated primary texture path on a
// material and clears any stale remote URL so the resolver's local branch
// wins on the next pass.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - materialID: material to update.
//   - relPath: project-root-relative path of the new texture file.
// Returns:
//   - error: non-nil if the update fails.
func (r *ImageRepository) SetTexturePath(ctx context.Context, materialID uint, relPath string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Material{}).
		Where("id = ?", materialID).
		Updates(map[string]interface{}{
			"texture_image_path": relPath,
			"texture_image_url":  "",
		}).Error
}

// SetTextureURL records a remote texture URL, e.g. after migration to
// object storage.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - materialID: material to update.
//   - url: public URL of the uploaded texture.
// Returns:
//   - error: non-nil if the update fails.
func (r *ImageRepository) SetTextureURL(ctx context.Context, materialID uint, url string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Material{}).
		Where("id = ?", materialID).
		Update("texture_image_url", url).Error
}

// UpdateUseExamplePath records the regenerated file path on a use example
// and clears its remote URL.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: use example ID.
//   - relPath: project-root-relative path of the new image file.
// Returns:
//   - error: non-nil if the update fails.
func (r *ImageRepository) UpdateUseExamplePath(ctx context.Context, id uint, relPath string) error {
	return r.db.WithContext(ctx).
		Model(&domain.UseExample{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"image_path": relPath,
			"image_url":  "",
		}).Error
}

// UpdateUseExampleURL records a remote URL on a use example.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: use example ID.
//   - url: public URL of the uploaded image.
// Returns:
//   - error: non-nil if the update fails.
func (r *ImageRepository) UpdateUseExampleURL(ctx context.Context, id uint, url string) error {
	return r.db.WithContext(ctx).
		Model(&domain.UseExample{}).
		Where("id = ?", id).
		Update("image_url", url).Error
}

// CreateUseExample inserts a use example record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - example: use example record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *ImageRepository) CreateUseExample(ctx context.Context, example *domain.UseExample) error {
	return r.db.WithContext(ctx).Create(example).Error
}

// UpdateProcessExamplePath records the regenerated file path on a process
// example image.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: process example image ID.
//   - relPath: project-root-relative path of the new image file.
// Returns:
//   - error: non-nil if the update fails.
func (r *ImageRepository) UpdateProcessExamplePath(ctx context.Context, id uint, relPath string) error {
	return r.db.WithContext(ctx).
		Model(&domain.ProcessExampleImage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"image_path": relPath,
			"image_url":  "",
		}).Error
}

// ListMaterialsWithLocalImages retrieves materials whose texture still
// points at a local path. The S3 migration walks this set.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Material: materials with a local texture path and no URL.
//   - error: non-nil if the query fails.
func (r *ImageRepository) ListMaterialsWithLocalImages(ctx context.Context) ([]domain.Material, error) {
	var materials []domain.Material
	if err := r.db.WithContext(ctx).
		Where("texture_image_path <> '' AND (texture_image_url = '' OR texture_image_url IS NULL)").
		Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}
