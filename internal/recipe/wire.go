//go:build wireinject
// +build wireinject

package recipe

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpdelivery "github.com/tair/foodgram/internal/recipe/delivery/http"
	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/internal/recipe/repository"
	"github.com/tair/foodgram/internal/recipe/usecase/command"
	"github.com/tair/foodgram/internal/recipe/usecase/query"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/imagestore"
)

// ProvideRecipeRepository provides the recipe repository
func ProvideRecipeRepository(db *gorm.DB) domain.RecipeRepository {
	return repository.NewGormRecipeRepositoryWithTracing(db)
}

// ProvideCatalogRepository provides the catalog repository
func ProvideCatalogRepository(db *gorm.DB) domain.CatalogRepository {
	return repository.NewGormCatalogRepository(db)
}

// ProvideMarkRepository provides the mark repository
func ProvideMarkRepository(db *gorm.DB) domain.MarkRepository {
	return repository.NewGormMarkRepository(db)
}

// ProvideImageStore provides the media image store
func ProvideImageStore(store *imagestore.Store) command.ImageStore {
	return store
}

// Command handler providers
func ProvideComposeRecipeHandler(recipes domain.RecipeRepository, catalog domain.CatalogRepository, images command.ImageStore) *command.ComposeRecipeHandler {
	return command.NewComposeRecipeHandler(recipes, catalog, images)
}

func ProvideRecomposeRecipeHandler(recipes domain.RecipeRepository, catalog domain.CatalogRepository, images command.ImageStore) *command.RecomposeRecipeHandler {
	return command.NewRecomposeRecipeHandler(recipes, catalog, images)
}

func ProvideDeleteRecipeHandler(recipes domain.RecipeRepository) *command.DeleteRecipeHandler {
	return command.NewDeleteRecipeHandler(recipes)
}

func ProvideAddMarkHandler(recipes domain.RecipeRepository, marks domain.MarkRepository) *command.AddMarkHandler {
	return command.NewAddMarkHandler(recipes, marks)
}

func ProvideRemoveMarkHandler(marks domain.MarkRepository) *command.RemoveMarkHandler {
	return command.NewRemoveMarkHandler(marks)
}

// Query handler providers
func ProvideGetRecipeHandler(recipes domain.RecipeRepository, marks domain.MarkRepository) *query.GetRecipeHandler {
	return query.NewGetRecipeHandler(recipes, marks)
}

func ProvideListRecipesHandler(recipes domain.RecipeRepository) *query.ListRecipesHandler {
	return query.NewListRecipesHandler(recipes)
}

func ProvideShoppingListHandler(recipes domain.RecipeRepository) *query.ShoppingListHandler {
	return query.NewShoppingListHandler(recipes)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideRecipeRepository,
	ProvideCatalogRepository,
	ProvideMarkRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideComposeRecipeHandler,
	ProvideRecomposeRecipeHandler,
	ProvideDeleteRecipeHandler,
	ProvideAddMarkHandler,
	ProvideRemoveMarkHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetRecipeHandler,
	ProvideListRecipesHandler,
	ProvideShoppingListHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	ProvideImageStore,
)

// InitializeHTTPHandler initializes the recipe HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, store *imagestore.Store, publisher *kafka.Publisher) (*httpdelivery.RecipeHandler, error) {
	wire.Build(
		AllHandlersSet,
		httpdelivery.NewRecipeHandlerWithDI,
	)
	return nil, nil
}
