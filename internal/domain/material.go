package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray is a custom type for storing string arrays as JSON in the database.
type StringArray []string

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded string representation of the slice.
//   - error: non-nil if marshaling fails.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StringArray")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, a)
}

// Material represents one registered material sample.
// NameOfficial is the preferred display name; Name is kept for rows created
// before the rename. TextureImageURL wins over TextureImagePath when both
// are set.
type Material struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	UUID             string      `gorm:"type:text;uniqueIndex:idx_materials_uuid" json:"uuid"`
	Name             string      `gorm:"type:text;index:idx_materials_name" json:"name"`
	NameOfficial     string      `gorm:"type:text" json:"name_official,omitempty"`
	NameAliases      StringArray `gorm:"type:text" json:"name_aliases"`
	Category         string      `gorm:"type:text;index:idx_materials_category" json:"category"`
	CategoryMain     string      `gorm:"type:text" json:"category_main,omitempty"`
	Description      string      `gorm:"type:text" json:"description,omitempty"`
	TextureImagePath string      `gorm:"type:text" json:"texture_image_path,omitempty"`
	TextureImageURL  string      `gorm:"type:text" json:"texture_image_url,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	Properties           []Property            `gorm:"constraint:OnDelete:CASCADE" json:"properties"`
	Images               []Image               `gorm:"constraint:OnDelete:CASCADE" json:"images"`
	UseExamples          []UseExample          `gorm:"constraint:OnDelete:CASCADE" json:"use_examples"`
	ProcessExampleImages []ProcessExampleImage `gorm:"constraint:OnDelete:CASCADE" json:"process_example_images"`
}

// TableName returns the database table name for Material.
func (Material) TableName() string {
	return "materials"
}

// DisplayName returns the official name when set, falling back to the
// legacy name column.
func (m *Material) DisplayName() string {
	if m.NameOfficial != "" {
		return m.NameOfficial
	}
	return m.Name
}

// MainCategory returns the coarse category used for placeholder styling.
func (m *Material) MainCategory() string {
	if m.CategoryMain != "" {
		return m.CategoryMain
	}
	return m.Category
}

// Property is one measured physical property of a material.
type Property struct {
	ID                   uint     `gorm:"primaryKey" json:"id"`
	MaterialID           uint     `gorm:"not null;index:idx_properties_material" json:"material_id"`
	PropertyName         string   `gorm:"type:text;not null" json:"property_name"`
	Value                *float64 `json:"value,omitempty"`
	Unit                 string   `gorm:"type:text" json:"unit,omitempty"`
	MeasurementCondition string   `gorm:"type:text" json:"measurement_condition,omitempty"`
}

// TableName returns the database table name for Property.
func (Property) TableName() string {
	return "properties"
}

// Image is a generic attachment record for a material. The first row is
// conventionally the primary image in legacy flows. URL is authoritative
// over FilePath when both are set.
type Image struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	MaterialID  uint   `gorm:"not null;index:idx_images_material" json:"material_id"`
	FilePath    string `gorm:"type:text" json:"file_path,omitempty"`
	URL         string `gorm:"type:text" json:"url,omitempty"`
	ImageType   string `gorm:"type:text" json:"image_type,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

// TableName returns the database table name for Image.
func (Image) TableName() string {
	return "images"
}

// UseExample is one labeled usage photo of a material. Domain carries a
// free-form label such as "空間" (space) or "プロダクト" (product).
type UseExample struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	MaterialID  uint   `gorm:"not null;index:idx_use_examples_material" json:"material_id"`
	Title       string `gorm:"type:text" json:"title,omitempty"`
	Domain      string `gorm:"type:text" json:"domain,omitempty"`
	ImagePath   string `gorm:"type:text" json:"image_path,omitempty"`
	ImageURL    string `gorm:"type:text" json:"image_url,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

// TableName returns the database table name for UseExample.
func (UseExample) TableName() string {
	return "use_examples"
}

// ProcessExampleImage depicts one processing method's representative photo
// for a material.
type ProcessExampleImage struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	MaterialID  uint   `gorm:"not null;index:idx_process_example_images_material" json:"material_id"`
	ProcessName string `gorm:"type:text;not null" json:"process_name"`
	ImagePath   string `gorm:"type:text" json:"image_path,omitempty"`
	ImageURL    string `gorm:"type:text" json:"image_url,omitempty"`
}

// TableName returns the database table name for ProcessExampleImage.
func (ProcessExampleImage) TableName() string {
	return "process_example_images"
}
