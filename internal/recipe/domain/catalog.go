package domain

// Tag represents a recipe tag (reference data)
type Tag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null"`
	Color string `json:"color"`
	Slug  string `json:"slug" gorm:"uniqueIndex;not null"`
}

// TableName specifies the table name
func (Tag) TableName() string {
	return "tags"
}

// Ingredient represents a catalog ingredient (reference data). Ingredients
// are never deleted while referenced by a recipe line item.
type Ingredient struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"not null;index"`
	MeasurementUnit string `json:"measurement_unit" gorm:"not null"`
}

// TableName specifies the table name
func (Ingredient) TableName() string {
	return "ingredients"
}

// CatalogRepository defines data access for tags and ingredients
type CatalogRepository interface {
	CreateTag(tag *Tag) error
	FindTag(id uint) (*Tag, error)
	ListTags() ([]Tag, error)
	DeleteTag(id uint) error

	CreateIngredient(ingredient *Ingredient) error
	FindIngredient(id uint) (*Ingredient, error)
	ListIngredients(namePrefix string) ([]Ingredient, error)
	DeleteIngredient(id uint) error
}
