package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/recipe/domain"
)

var tracer = otel.Tracer("recipe-repository")

// GormRecipeRepositoryWithTracing decorates the GORM repository with a
// span per database operation. The repository interface is context-free,
// so the spans are roots correlated through their attributes.
type GormRecipeRepositoryWithTracing struct {
	base *GormRecipeRepository
}

func NewGormRecipeRepositoryWithTracing(db *gorm.DB) *GormRecipeRepositoryWithTracing {
	return &GormRecipeRepositoryWithTracing{base: NewGormRecipeRepository(db)}
}

func startSpan(op string, attrs ...attribute.KeyValue) trace.Span {
	_, span := tracer.Start(context.Background(), op, trace.WithAttributes(attrs...))
	return span
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *GormRecipeRepositoryWithTracing) Save(recipe *domain.Recipe) error {
	span := startSpan("repository.Save",
		attribute.String("recipe.name", recipe.Name),
		attribute.Int("recipe.author_id", int(recipe.AuthorID)),
		attribute.Int("recipe.line_items", len(recipe.Ingredients)),
	)
	err := r.base.Save(recipe)
	if err == nil {
		span.SetAttributes(attribute.Int("recipe.id", int(recipe.ID)))
	}
	finish(span, err)
	return err
}

func (r *GormRecipeRepositoryWithTracing) Replace(recipe *domain.Recipe) error {
	span := startSpan("repository.Replace",
		attribute.Int("recipe.id", int(recipe.ID)),
		attribute.Int("recipe.line_items", len(recipe.Ingredients)),
	)
	err := r.base.Replace(recipe)
	finish(span, err)
	return err
}

func (r *GormRecipeRepositoryWithTracing) FindByID(id uint) (*domain.Recipe, error) {
	span := startSpan("repository.FindByID", attribute.Int("recipe.id", int(id)))
	recipe, err := r.base.FindByID(id)
	finish(span, err)
	return recipe, err
}

func (r *GormRecipeRepositoryWithTracing) FindAll(filter domain.RecipeFilter) ([]domain.Recipe, error) {
	span := startSpan("repository.FindAll",
		attribute.Int("query.limit", filter.Limit),
		attribute.Int("query.offset", filter.Offset),
	)
	recipes, err := r.base.FindAll(filter)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(recipes)))
	}
	finish(span, err)
	return recipes, err
}

func (r *GormRecipeRepositoryWithTracing) Count() (int64, error) {
	span := startSpan("repository.Count")
	total, err := r.base.Count()
	finish(span, err)
	return total, err
}

func (r *GormRecipeRepositoryWithTracing) Delete(id uint) error {
	span := startSpan("repository.Delete", attribute.Int("recipe.id", int(id)))
	err := r.base.Delete(id)
	finish(span, err)
	return err
}

func (r *GormRecipeRepositoryWithTracing) CartLines(userID uint) ([]domain.RecipeIngredient, error) {
	span := startSpan("repository.CartLines", attribute.Int("user.id", int(userID)))
	lines, err := r.base.CartLines(userID)
	if err == nil {
		span.SetAttributes(attribute.Int("cart.line_items", len(lines)))
	}
	finish(span, err)
	return lines, err
}

var _ domain.RecipeRepository = (*GormRecipeRepositoryWithTracing)(nil)
