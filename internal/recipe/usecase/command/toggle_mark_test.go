package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/foodgram/internal/recipe/domain"
)

type markPair struct {
	kind     domain.MarkKind
	userID   uint
	recipeID uint
}

type fakeMarkRepo struct {
	pairs map[markPair]struct{}
}

func newFakeMarkRepo() *fakeMarkRepo {
	return &fakeMarkRepo{pairs: map[markPair]struct{}{}}
}

func (r *fakeMarkRepo) Add(kind domain.MarkKind, userID, recipeID uint) error {
	pair := markPair{kind, userID, recipeID}
	if _, ok := r.pairs[pair]; ok {
		return domain.ErrConflict
	}
	r.pairs[pair] = struct{}{}
	return nil
}

func (r *fakeMarkRepo) Remove(kind domain.MarkKind, userID, recipeID uint) error {
	pair := markPair{kind, userID, recipeID}
	if _, ok := r.pairs[pair]; !ok {
		return domain.ErrNotFound
	}
	delete(r.pairs, pair)
	return nil
}

func (r *fakeMarkRepo) Exists(kind domain.MarkKind, userID, recipeID uint) (bool, error) {
	_, ok := r.pairs[markPair{kind, userID, recipeID}]
	return ok, nil
}

func TestAddMark_ReturnsRecipeTarget(t *testing.T) {
	repo := newFakeRecipeRepo()
	recipe := seedRecipe(t, repo)
	handler := NewAddMarkHandler(repo, newFakeMarkRepo())

	target, err := handler.Handle(AddMarkCommand{UserID: 3, RecipeID: recipe.ID, Kind: domain.KindFavorite})
	require.NoError(t, err)

	assert.Equal(t, recipe.ID, target.ID)
	assert.Equal(t, recipe.Name, target.Name)
	assert.Equal(t, recipe.Image, target.Image)
	assert.Equal(t, recipe.CookingTime, target.CookingTime)
}

func TestAddMark_DuplicateIsConflict(t *testing.T) {
	repo := newFakeRecipeRepo()
	recipe := seedRecipe(t, repo)
	handler := NewAddMarkHandler(repo, newFakeMarkRepo())

	cmd := AddMarkCommand{UserID: 3, RecipeID: recipe.ID, Kind: domain.KindCart}
	_, err := handler.Handle(cmd)
	require.NoError(t, err)

	_, err = handler.Handle(cmd)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestAddMark_KindsAreIndependent(t *testing.T) {
	repo := newFakeRecipeRepo()
	recipe := seedRecipe(t, repo)
	handler := NewAddMarkHandler(repo, newFakeMarkRepo())

	_, err := handler.Handle(AddMarkCommand{UserID: 3, RecipeID: recipe.ID, Kind: domain.KindFavorite})
	require.NoError(t, err)

	_, err = handler.Handle(AddMarkCommand{UserID: 3, RecipeID: recipe.ID, Kind: domain.KindCart})
	require.NoError(t, err)
}

func TestAddMark_UnknownRecipe(t *testing.T) {
	handler := NewAddMarkHandler(newFakeRecipeRepo(), newFakeMarkRepo())

	_, err := handler.Handle(AddMarkCommand{UserID: 3, RecipeID: 42, Kind: domain.KindFavorite})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddMark_RequiresUser(t *testing.T) {
	repo := newFakeRecipeRepo()
	recipe := seedRecipe(t, repo)
	handler := NewAddMarkHandler(repo, newFakeMarkRepo())

	_, err := handler.Handle(AddMarkCommand{RecipeID: recipe.ID, Kind: domain.KindFavorite})
	require.Error(t, err)
}

func TestRemoveMark(t *testing.T) {
	repo := newFakeRecipeRepo()
	recipe := seedRecipe(t, repo)
	marks := newFakeMarkRepo()
	require.NoError(t, marks.Add(domain.KindFavorite, 3, recipe.ID))

	handler := NewRemoveMarkHandler(marks)
	err := handler.Handle(RemoveMarkCommand{UserID: 3, RecipeID: recipe.ID, Kind: domain.KindFavorite})
	require.NoError(t, err)

	// removing a non-member is ErrNotFound
	err = handler.Handle(RemoveMarkCommand{UserID: 3, RecipeID: recipe.ID, Kind: domain.KindFavorite})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
