//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpdelivery "github.com/tair/foodgram/internal/user/delivery/http"
	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/internal/user/repository"
	"github.com/tair/foodgram/internal/user/usecase/command"
	"github.com/tair/foodgram/internal/user/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepositoryWithTracing(db)
}

// ProvideFollowRepository provides the follow repository
func ProvideFollowRepository(db *gorm.DB) domain.FollowRepository {
	return repository.NewGormFollowRepository(db)
}

// Command Handlers Providers
func ProvideRegisterUserHandler(repo domain.UserRepository) *command.RegisterUserHandler {
	return command.NewRegisterUserHandler(repo)
}

func ProvideLoginUserHandler(repo domain.UserRepository) *command.LoginUserHandler {
	return command.NewLoginUserHandler(repo)
}

func ProvideUpdateUserHandler(repo domain.UserRepository) *command.UpdateUserHandler {
	return command.NewUpdateUserHandler(repo)
}

func ProvideDeleteUserHandler(repo domain.UserRepository) *command.DeleteUserHandler {
	return command.NewDeleteUserHandler(repo)
}

func ProvideChangeRoleHandler(repo domain.UserRepository) *command.ChangeRoleHandler {
	return command.NewChangeRoleHandler(repo)
}

func ProvideToggleActiveHandler(repo domain.UserRepository) *command.ToggleActiveHandler {
	return command.NewToggleActiveHandler(repo)
}

func ProvideFollowAuthorHandler(users domain.UserRepository, follows domain.FollowRepository) *command.FollowAuthorHandler {
	return command.NewFollowAuthorHandler(users, follows)
}

func ProvideUnfollowAuthorHandler(follows domain.FollowRepository) *command.UnfollowAuthorHandler {
	return command.NewUnfollowAuthorHandler(follows)
}

func ProvideSyncRecipeCountHandler(repo domain.UserRepository) *command.SyncRecipeCountHandler {
	return command.NewSyncRecipeCountHandler(repo)
}

// Query Handlers Providers
func ProvideGetUserHandler(users domain.UserRepository, follows domain.FollowRepository) *query.GetUserHandler {
	return query.NewGetUserHandler(users, follows)
}

func ProvideListUsersHandler(repo domain.UserRepository) *query.ListUsersHandler {
	return query.NewListUsersHandler(repo)
}

func ProvideListSubscriptionsHandler(follows domain.FollowRepository) *query.ListSubscriptionsHandler {
	return query.NewListSubscriptionsHandler(follows)
}

func ProvideGetStatsHandler(repo domain.UserRepository) *query.GetStatsHandler {
	return query.NewGetStatsHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	ProvideFollowRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideRegisterUserHandler,
	ProvideLoginUserHandler,
	ProvideUpdateUserHandler,
	ProvideDeleteUserHandler,
	ProvideChangeRoleHandler,
	ProvideToggleActiveHandler,
	ProvideFollowAuthorHandler,
	ProvideUnfollowAuthorHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetUserHandler,
	ProvideListUsersHandler,
	ProvideListSubscriptionsHandler,
	ProvideGetStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*httpdelivery.UserHandler, error) {
	wire.Build(
		AllHandlersSet,
		httpdelivery.NewUserHandlerWithDI,
	)
	return nil, nil
}

// InitializeSyncRecipeCountHandler initializes the recipe count projection handler
func InitializeSyncRecipeCountHandler(db *gorm.DB) (*command.SyncRecipeCountHandler, error) {
	wire.Build(
		ProvideUserRepository,
		ProvideSyncRecipeCountHandler,
	)
	return nil, nil
}
