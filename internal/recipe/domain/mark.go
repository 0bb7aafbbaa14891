package domain

// MarkKind selects which (user, recipe) membership relation a toggle
// operation acts on. Favorite and shopping cart share identical mechanics.
type MarkKind string

const (
	KindFavorite MarkKind = "favorite"
	KindCart     MarkKind = "shopping_cart"
)

// Favorite marks a recipe as a user's favorite
type Favorite struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_favorite_pair"`
	RecipeID uint   `json:"recipe_id" gorm:"not null;uniqueIndex:idx_favorite_pair"`
	Recipe   Recipe `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// ShoppingCart marks a recipe as present in a user's shopping cart
type ShoppingCart struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_pair"`
	RecipeID uint   `json:"recipe_id" gorm:"not null;uniqueIndex:idx_cart_pair"`
	Recipe   Recipe `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (ShoppingCart) TableName() string {
	return "shopping_carts"
}

// RecipeTarget is the minimal recipe projection returned by toggle operations
type RecipeTarget struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// MarkRepository defines the contract for membership toggles. Add must rely
// on the storage uniqueness constraint as the race-breaker and report a
// duplicate pair as ErrConflict; Remove reports an absent pair as
// ErrNotFound.
type MarkRepository interface {
	Add(kind MarkKind, userID, recipeID uint) error
	Remove(kind MarkKind, userID, recipeID uint) error
	Exists(kind MarkKind, userID, recipeID uint) (bool, error)
}
