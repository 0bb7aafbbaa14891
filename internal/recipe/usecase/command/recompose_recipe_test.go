package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/foodgram/internal/recipe/domain"
)

func seedRecipe(t *testing.T, repo *fakeRecipeRepo) *domain.Recipe {
	t.Helper()

	catalog := newFakeCatalog()
	handler := NewComposeRecipeHandler(repo, catalog, &fakeImageStore{})
	recipe, err := handler.Handle(validCompose())
	require.NoError(t, err)
	return recipe
}

func TestRecomposeRecipe_FullReplace(t *testing.T) {
	repo := newFakeRecipeRepo()
	existing := seedRecipe(t, repo)
	handler := NewRecomposeRecipeHandler(repo, newFakeCatalog(), &fakeImageStore{})

	updated, err := handler.Handle(RecomposeRecipeCommand{
		RecipeID:    existing.ID,
		ActorID:     existing.AuthorID,
		Name:        "Thick soup",
		Text:        "Boil longer",
		CookingTime: 90,
		TagIDs:      []uint{2},
		Ingredients: []IngredientInput{{IngredientID: 10, Amount: 20}},
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, existing.AuthorID, updated.AuthorID)
	assert.Equal(t, "Thick soup", updated.Name)
	assert.Equal(t, 90, updated.CookingTime)

	// old sets discarded, not merged
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "dinner", updated.Tags[0].Name)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, uint(10), updated.Ingredients[0].IngredientID)
	assert.Equal(t, 20, updated.Ingredients[0].Amount)
}

func TestRecomposeRecipe_EmptyImageKeepsStored(t *testing.T) {
	repo := newFakeRecipeRepo()
	existing := seedRecipe(t, repo)
	images := &fakeImageStore{}
	handler := NewRecomposeRecipeHandler(repo, newFakeCatalog(), images)

	cmd := validCompose()
	updated, err := handler.Handle(RecomposeRecipeCommand{
		RecipeID:    existing.ID,
		ActorID:     existing.AuthorID,
		Name:        cmd.Name,
		Text:        cmd.Text,
		CookingTime: cmd.CookingTime,
		TagIDs:      cmd.TagIDs,
		Ingredients: cmd.Ingredients,
	})
	require.NoError(t, err)

	assert.Equal(t, existing.Image, updated.Image)
	assert.Empty(t, images.saved)
}

func TestRecomposeRecipe_NewImageReplacesStored(t *testing.T) {
	repo := newFakeRecipeRepo()
	existing := seedRecipe(t, repo)
	handler := NewRecomposeRecipeHandler(repo, newFakeCatalog(), &fakeImageStore{})

	cmd := validCompose()
	updated, err := handler.Handle(RecomposeRecipeCommand{
		RecipeID:    existing.ID,
		ActorID:     existing.AuthorID,
		Name:        cmd.Name,
		Text:        cmd.Text,
		CookingTime: cmd.CookingTime,
		TagIDs:      cmd.TagIDs,
		Ingredients: cmd.Ingredients,
		Image:       "data:image/png;base64,newpayload",
	})
	require.NoError(t, err)

	assert.NotEqual(t, existing.Image, updated.Image)
}

func TestRecomposeRecipe_OnlyAuthorMayEdit(t *testing.T) {
	repo := newFakeRecipeRepo()
	existing := seedRecipe(t, repo)
	handler := NewRecomposeRecipeHandler(repo, newFakeCatalog(), &fakeImageStore{})

	cmd := validCompose()
	_, err := handler.Handle(RecomposeRecipeCommand{
		RecipeID:    existing.ID,
		ActorID:     existing.AuthorID + 1,
		Name:        cmd.Name,
		Text:        cmd.Text,
		CookingTime: cmd.CookingTime,
		TagIDs:      cmd.TagIDs,
		Ingredients: cmd.Ingredients,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRecomposeRecipe_UnknownRecipe(t *testing.T) {
	handler := NewRecomposeRecipeHandler(newFakeRecipeRepo(), newFakeCatalog(), &fakeImageStore{})

	_, err := handler.Handle(RecomposeRecipeCommand{RecipeID: 42, ActorID: 7})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecomposeRecipe_ValidationBeforeWrite(t *testing.T) {
	repo := newFakeRecipeRepo()
	existing := seedRecipe(t, repo)
	handler := NewRecomposeRecipeHandler(repo, newFakeCatalog(), &fakeImageStore{})
	repo.saved = nil

	_, err := handler.Handle(RecomposeRecipeCommand{
		RecipeID: existing.ID,
		ActorID:  existing.AuthorID,
	})
	require.Error(t, err)

	var fieldErrs domain.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Nil(t, repo.saved)

	stored, err := repo.FindByID(existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.Name, stored.Name)
}
