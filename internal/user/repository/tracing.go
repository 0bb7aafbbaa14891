package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/foodgram/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// GormUserRepositoryWithTracing decorates the GORM repository with a span
// per database operation. The repository interface is context-free, so
// the spans are roots correlated through their attributes.
type GormUserRepositoryWithTracing struct {
	base *GormUserRepository
}

func NewGormUserRepositoryWithTracing(db *gorm.DB) *GormUserRepositoryWithTracing {
	return &GormUserRepositoryWithTracing{base: NewGormUserRepository(db)}
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

func (r *GormUserRepositoryWithTracing) Create(user *domain.User) error {
	span := startSpan("repository.Create", attribute.String("user.username", user.Username))
	err := r.base.Create(user)
	if err == nil {
		span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	}
	finish(span, err)
	return err
}

func (r *GormUserRepositoryWithTracing) FindByID(id uint) (*domain.User, error) {
	span := startSpan("repository.FindByID", attribute.Int("user.id", int(id)))
	user, err := r.base.FindByID(id)
	finish(span, err)
	return user, err
}

func (r *GormUserRepositoryWithTracing) FindByUsername(username string) (*domain.User, error) {
	span := startSpan("repository.FindByUsername", attribute.String("user.username", username))
	user, err := r.base.FindByUsername(username)
	finish(span, err)
	return user, err
}

func (r *GormUserRepositoryWithTracing) FindByEmail(email string) (*domain.User, error) {
	span := startSpan("repository.FindByEmail")
	user, err := r.base.FindByEmail(email)
	finish(span, err)
	return user, err
}

func (r *GormUserRepositoryWithTracing) FindAll(limit, offset int) ([]domain.User, error) {
	span := startSpan("repository.FindAll",
		attribute.Int("query.limit", limit),
		attribute.Int("query.offset", offset),
	)
	users, err := r.base.FindAll(limit, offset)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(users)))
	}
	finish(span, err)
	return users, err
}

func (r *GormUserRepositoryWithTracing) Update(user *domain.User) error {
	span := startSpan("repository.Update", attribute.Int("user.id", int(user.ID)))
	err := r.base.Update(user)
	finish(span, err)
	return err
}

func (r *GormUserRepositoryWithTracing) Delete(id uint) error {
	span := startSpan("repository.Delete", attribute.Int("user.id", int(id)))
	err := r.base.Delete(id)
	finish(span, err)
	return err
}

func (r *GormUserRepositoryWithTracing) Count() (int64, error) {
	span := startSpan("repository.Count")
	total, err := r.base.Count()
	finish(span, err)
	return total, err
}

func (r *GormUserRepositoryWithTracing) AdjustRecipeCount(authorID uint, delta int) error {
	span := startSpan("repository.AdjustRecipeCount",
		attribute.Int("author.id", int(authorID)),
		attribute.Int("recipe_count.delta", delta),
	)
	err := r.base.AdjustRecipeCount(authorID, delta)
	finish(span, err)
	return err
}

var _ domain.UserRepository = (*GormUserRepositoryWithTracing)(nil)
