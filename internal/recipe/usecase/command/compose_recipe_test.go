package command

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/pkg/imagestore"
)

type fakeCatalog struct {
	tags        map[uint]domain.Tag
	ingredients map[uint]domain.Ingredient
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		tags: map[uint]domain.Tag{
			1: {ID: 1, Name: "breakfast", Slug: "breakfast"},
			2: {ID: 2, Name: "dinner", Slug: "dinner"},
		},
		ingredients: map[uint]domain.Ingredient{
			10: {ID: 10, Name: "salt", MeasurementUnit: "g"},
			11: {ID: 11, Name: "potato", MeasurementUnit: "g"},
			12: {ID: 12, Name: "water", MeasurementUnit: "ml"},
		},
	}
}

func (c *fakeCatalog) CreateTag(tag *domain.Tag) error { return nil }

func (c *fakeCatalog) FindTag(id uint) (*domain.Tag, error) {
	tag, ok := c.tags[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tag, nil
}

func (c *fakeCatalog) ListTags() ([]domain.Tag, error) { return nil, nil }
func (c *fakeCatalog) DeleteTag(id uint) error         { return nil }

func (c *fakeCatalog) CreateIngredient(ingredient *domain.Ingredient) error { return nil }

func (c *fakeCatalog) FindIngredient(id uint) (*domain.Ingredient, error) {
	ingredient, ok := c.ingredients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ingredient, nil
}

func (c *fakeCatalog) ListIngredients(namePrefix string) ([]domain.Ingredient, error) {
	return nil, nil
}
func (c *fakeCatalog) DeleteIngredient(id uint) error { return nil }

type fakeRecipeRepo struct {
	recipes map[uint]*domain.Recipe
	nextID  uint
	saved   *domain.Recipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[uint]*domain.Recipe{}, nextID: 1}
}

func (r *fakeRecipeRepo) Save(recipe *domain.Recipe) error {
	recipe.ID = r.nextID
	r.nextID++
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	r.saved = recipe
	return nil
}

func (r *fakeRecipeRepo) Replace(recipe *domain.Recipe) error {
	if _, ok := r.recipes[recipe.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	r.saved = recipe
	return nil
}

func (r *fakeRecipeRepo) FindByID(id uint) (*domain.Recipe, error) {
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *recipe
	return &copied, nil
}

func (r *fakeRecipeRepo) FindAll(filter domain.RecipeFilter) ([]domain.Recipe, error) {
	return nil, nil
}
func (r *fakeRecipeRepo) Count() (int64, error) { return int64(len(r.recipes)), nil }

func (r *fakeRecipeRepo) Delete(id uint) error {
	if _, ok := r.recipes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.recipes, id)
	return nil
}

func (r *fakeRecipeRepo) CartLines(userID uint) ([]domain.RecipeIngredient, error) {
	return nil, nil
}

type fakeImageStore struct {
	fail  bool
	saved []string
}

func (s *fakeImageStore) Save(payload string) (string, error) {
	if s.fail {
		return "", imagestore.ErrDecode
	}
	s.saved = append(s.saved, payload)
	return fmt.Sprintf("recipes/%d.png", len(s.saved)), nil
}

func validCompose() ComposeRecipeCommand {
	return ComposeRecipeCommand{
		AuthorID:    7,
		Name:        "Soup",
		Text:        "Boil everything",
		CookingTime: 45,
		TagIDs:      []uint{1, 2},
		Ingredients: []IngredientInput{
			{IngredientID: 11, Amount: 300},
			{IngredientID: 10, Amount: 5},
			{IngredientID: 12, Amount: 1000},
		},
		Image: "data:image/png;base64,payload",
	}
}

func TestComposeRecipe_Success(t *testing.T) {
	repo := newFakeRecipeRepo()
	images := &fakeImageStore{}
	handler := NewComposeRecipeHandler(repo, newFakeCatalog(), images)

	recipe, err := handler.Handle(validCompose())
	require.NoError(t, err)
	require.NotNil(t, recipe)

	assert.Equal(t, uint(7), recipe.AuthorID)
	assert.Equal(t, "Soup", recipe.Name)
	assert.Equal(t, 45, recipe.CookingTime)
	assert.Equal(t, "recipes/1.png", recipe.Image)

	require.Len(t, recipe.Tags, 2)
	assert.Equal(t, "breakfast", recipe.Tags[0].Name)

	// input order preserved, ingredient details resolved
	require.Len(t, recipe.Ingredients, 3)
	assert.Equal(t, uint(11), recipe.Ingredients[0].IngredientID)
	assert.Equal(t, "potato", recipe.Ingredients[0].Ingredient.Name)
	assert.Equal(t, 300, recipe.Ingredients[0].Amount)
	assert.Equal(t, "salt", recipe.Ingredients[1].Ingredient.Name)
}

func TestComposeRecipe_RequiresAuthor(t *testing.T) {
	handler := NewComposeRecipeHandler(newFakeRecipeRepo(), newFakeCatalog(), &fakeImageStore{})

	cmd := validCompose()
	cmd.AuthorID = 0

	_, err := handler.Handle(cmd)
	require.Error(t, err)
}

func TestComposeRecipe_FieldValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ComposeRecipeCommand)
		field   string
		reasons []string
	}{
		{
			name:    "missing name",
			mutate:  func(cmd *ComposeRecipeCommand) { cmd.Name = "" },
			field:   "name",
			reasons: []string{"name is required"},
		},
		{
			name:    "missing text",
			mutate:  func(cmd *ComposeRecipeCommand) { cmd.Text = "" },
			field:   "text",
			reasons: []string{"text is required"},
		},
		{
			name:    "zero cooking time",
			mutate:  func(cmd *ComposeRecipeCommand) { cmd.CookingTime = 0 },
			field:   "cooking_time",
			reasons: []string{"cooking time must be at least 1 minute"},
		},
		{
			name:    "no tags",
			mutate:  func(cmd *ComposeRecipeCommand) { cmd.TagIDs = nil },
			field:   "tags",
			reasons: []string{"at least one tag is required"},
		},
		{
			name:    "unknown tag",
			mutate:  func(cmd *ComposeRecipeCommand) { cmd.TagIDs = []uint{1, 99} },
			field:   "tags",
			reasons: []string{"tag 99 does not exist"},
		},
		{
			name:    "duplicate tags",
			mutate:  func(cmd *ComposeRecipeCommand) { cmd.TagIDs = []uint{1, 1} },
			field:   "tags",
			reasons: []string{"duplicate tag ids"},
		},
		{
			name:    "no ingredients",
			mutate:  func(cmd *ComposeRecipeCommand) { cmd.Ingredients = nil },
			field:   "ingredients",
			reasons: []string{"at least one ingredient is required"},
		},
		{
			name:    "missing image",
			mutate:  func(cmd *ComposeRecipeCommand) { cmd.Image = "" },
			field:   "image",
			reasons: []string{"image is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRecipeRepo()
			handler := NewComposeRecipeHandler(repo, newFakeCatalog(), &fakeImageStore{})

			cmd := validCompose()
			tt.mutate(&cmd)

			_, err := handler.Handle(cmd)
			require.Error(t, err)

			var fieldErrs domain.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Equal(t, tt.reasons, fieldErrs[tt.field])
			assert.Nil(t, repo.saved, "nothing must be written on a validation failure")
		})
	}
}

func TestComposeRecipe_AccumulatesAllFieldErrors(t *testing.T) {
	handler := NewComposeRecipeHandler(newFakeRecipeRepo(), newFakeCatalog(), &fakeImageStore{})

	_, err := handler.Handle(ComposeRecipeCommand{AuthorID: 7})
	require.Error(t, err)

	var fieldErrs domain.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	for _, field := range []string{"name", "text", "cooking_time", "tags", "ingredients", "image"} {
		assert.Contains(t, fieldErrs, field)
	}
}

func TestComposeRecipe_DuplicateIngredientStopsScan(t *testing.T) {
	handler := NewComposeRecipeHandler(newFakeRecipeRepo(), newFakeCatalog(), &fakeImageStore{})

	cmd := validCompose()
	cmd.Ingredients = []IngredientInput{
		{IngredientID: 10, Amount: 5},
		{IngredientID: 10, Amount: 7},
		{IngredientID: 99, Amount: 1},
	}

	_, err := handler.Handle(cmd)
	require.Error(t, err)

	var fieldErrs domain.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	// the scan stops at the duplicate, so the unknown id after it is not reported
	assert.Equal(t, []string{"duplicate ingredient id 10"}, fieldErrs["ingredients"])
}

func TestComposeRecipe_UnknownIngredientStopsScan(t *testing.T) {
	handler := NewComposeRecipeHandler(newFakeRecipeRepo(), newFakeCatalog(), &fakeImageStore{})

	cmd := validCompose()
	cmd.Ingredients = []IngredientInput{
		{IngredientID: 99, Amount: 5},
		{IngredientID: 10, Amount: 0},
	}

	_, err := handler.Handle(cmd)
	require.Error(t, err)

	var fieldErrs domain.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, []string{"ingredient 99 does not exist"}, fieldErrs["ingredients"])
}

func TestComposeRecipe_NonPositiveAmountsAllReported(t *testing.T) {
	handler := NewComposeRecipeHandler(newFakeRecipeRepo(), newFakeCatalog(), &fakeImageStore{})

	cmd := validCompose()
	cmd.Ingredients = []IngredientInput{
		{IngredientID: 10, Amount: 0},
		{IngredientID: 11, Amount: -3},
		{IngredientID: 12, Amount: 100},
	}

	_, err := handler.Handle(cmd)
	require.Error(t, err)

	var fieldErrs domain.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, []string{
		"amount for ingredient 10 must be a positive integer",
		"amount for ingredient 11 must be a positive integer",
	}, fieldErrs["ingredients"])
}

func TestComposeRecipe_MalformedImage(t *testing.T) {
	repo := newFakeRecipeRepo()
	handler := NewComposeRecipeHandler(repo, newFakeCatalog(), &fakeImageStore{fail: true})

	_, err := handler.Handle(validCompose())
	require.Error(t, err)

	var fieldErrs domain.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, []string{"malformed image payload"}, fieldErrs["image"])
	assert.Nil(t, repo.saved)
}

func TestFieldErrorsMessageSortsFields(t *testing.T) {
	errs := domain.FieldErrors{}
	errs.Add("text", "text is required")
	errs.Add("name", "name is required")

	assert.Equal(t, "validation failed: name: name is required; text: text is required", errs.Error())
}
