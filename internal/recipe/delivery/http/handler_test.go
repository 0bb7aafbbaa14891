package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/pkg/auth"
)

type memRecipeRepo struct {
	mu      sync.Mutex
	recipes map[uint]*domain.Recipe
	nextID  uint
}

func (r *memRecipeRepo) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes = map[uint]*domain.Recipe{}
	r.nextID = 1
}

func (r *memRecipeRepo) Save(recipe *domain.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	recipe.ID = r.nextID
	r.nextID++
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	return nil
}

func (r *memRecipeRepo) Replace(recipe *domain.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[recipe.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	return nil
}

func (r *memRecipeRepo) FindByID(id uint) (*domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *recipe
	return &copied, nil
}

func (r *memRecipeRepo) FindAll(filter domain.RecipeFilter) ([]domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.Recipe, 0, len(r.recipes))
	for id := uint(1); id < r.nextID; id++ {
		if recipe, ok := r.recipes[id]; ok {
			all = append(all, *recipe)
		}
	}
	return all, nil
}

func (r *memRecipeRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.recipes)), nil
}

func (r *memRecipeRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.recipes, id)
	return nil
}

func (r *memRecipeRepo) CartLines(userID uint) ([]domain.RecipeIngredient, error) {
	return nil, nil
}

type memCatalog struct{}

func (memCatalog) CreateTag(tag *domain.Tag) error { return nil }

func (memCatalog) FindTag(id uint) (*domain.Tag, error) {
	if id > 3 {
		return nil, domain.ErrNotFound
	}
	return &domain.Tag{ID: id, Name: fmt.Sprintf("tag-%d", id), Slug: fmt.Sprintf("tag-%d", id)}, nil
}

func (memCatalog) ListTags() ([]domain.Tag, error) { return nil, nil }
func (memCatalog) DeleteTag(id uint) error         { return nil }

func (memCatalog) CreateIngredient(ingredient *domain.Ingredient) error { return nil }

func (memCatalog) FindIngredient(id uint) (*domain.Ingredient, error) {
	if id > 30 {
		return nil, domain.ErrNotFound
	}
	return &domain.Ingredient{ID: id, Name: fmt.Sprintf("ingredient-%d", id), MeasurementUnit: "g"}, nil
}

func (memCatalog) ListIngredients(namePrefix string) ([]domain.Ingredient, error) {
	return nil, nil
}
func (memCatalog) DeleteIngredient(id uint) error { return nil }

type memMarkRepo struct {
	mu    sync.Mutex
	pairs map[string]struct{}
}

func (r *memMarkRepo) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairs = map[string]struct{}{}
}

func (r *memMarkRepo) key(kind domain.MarkKind, userID, recipeID uint) string {
	return fmt.Sprintf("%s/%d/%d", kind, userID, recipeID)
}

func (r *memMarkRepo) Add(kind domain.MarkKind, userID, recipeID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.key(kind, userID, recipeID)
	if _, ok := r.pairs[key]; ok {
		return domain.ErrConflict
	}
	r.pairs[key] = struct{}{}
	return nil
}

func (r *memMarkRepo) Remove(kind domain.MarkKind, userID, recipeID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.key(kind, userID, recipeID)
	if _, ok := r.pairs[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.pairs, key)
	return nil
}

func (r *memMarkRepo) Exists(kind domain.MarkKind, userID, recipeID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pairs[r.key(kind, userID, recipeID)]
	return ok, nil
}

type memImageStore struct{}

func (memImageStore) Save(payload string) (string, error) {
	return "recipes/images/test.png", nil
}

// the prometheus registry rejects duplicate collectors, so the handler is
// built once and shared across tests
var (
	envOnce sync.Once
	testEnv struct {
		router  *mux.Router
		recipes *memRecipeRepo
		marks   *memMarkRepo
	}
)

func setupRouter(t *testing.T) (*mux.Router, *memRecipeRepo, *memMarkRepo) {
	t.Helper()

	envOnce.Do(func() {
		testEnv.recipes = &memRecipeRepo{}
		testEnv.marks = &memMarkRepo{}
		handler := NewRecipeHandler(testEnv.recipes, memCatalog{}, testEnv.marks, memImageStore{}, nil)
		testEnv.router = mux.NewRouter()
		handler.RegisterRoutes(testEnv.router)
	})

	testEnv.recipes.reset()
	testEnv.marks.reset()
	return testEnv.router, testEnv.recipes, testEnv.marks
}

func bearer(t *testing.T, userID uint) string {
	t.Helper()

	token, err := auth.GenerateToken(userID, fmt.Sprintf("user-%d", userID), "user")
	require.NoError(t, err)
	return "Bearer " + token
}

func composeBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"name":         "Soup",
		"text":         "Boil everything",
		"cooking_time": 45,
		"tags":         []uint{1, 2},
		"ingredients": []map[string]interface{}{
			{"id": 10, "amount": 300},
			{"id": 11, "amount": 5},
		},
		"image": "data:image/png;base64,payload",
	})
	return body
}

func doRequest(router *mux.Router, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestComposeRecipeEndpoint(t *testing.T) {
	router, recipes, _ := setupRouter(t)
	token := bearer(t, 7)

	rec := doRequest(router, http.MethodPost, "/api/recipes", token, composeBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	stored, err := recipes.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, uint(7), stored.AuthorID)
	assert.Equal(t, "Soup", stored.Name)
}

func TestComposeRecipeEndpoint_Unauthorized(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/recipes", "", composeBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestComposeRecipeEndpoint_ValidationErrorsKeyedByField(t *testing.T) {
	router, _, _ := setupRouter(t)
	token := bearer(t, 7)

	body, _ := json.Marshal(map[string]interface{}{"name": "Soup"})
	rec := doRequest(router, http.MethodPost, "/api/recipes", token, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool                `json:"success"`
		Errors  map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	for _, field := range []string{"text", "cooking_time", "tags", "ingredients", "image"} {
		assert.Contains(t, resp.Errors, field)
	}
}

func TestGetRecipeEndpoint_NotFound(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/recipes/42", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecomposeRecipeEndpoint_ForbiddenForNonAuthor(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/recipes", bearer(t, 7), composeBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, http.MethodPut, "/api/recipes/1", bearer(t, 8), composeBody())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestFavoriteEndpoints(t *testing.T) {
	router, _, marks := setupRouter(t)
	token := bearer(t, 7)

	rec := doRequest(router, http.MethodPost, "/api/recipes", token, composeBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/recipes/1/favorite", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data domain.RecipeTarget `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.Data.ID)
	assert.Equal(t, "Soup", resp.Data.Name)

	// repeated add trips the uniqueness constraint
	rec = doRequest(router, http.MethodPost, "/api/recipes/1/favorite", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(router, http.MethodDelete, "/api/recipes/1/favorite", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	exists, err := marks.Exists(domain.KindFavorite, 7, 1)
	require.NoError(t, err)
	assert.False(t, exists)

	// removing again is a 404
	rec = doRequest(router, http.MethodDelete, "/api/recipes/1/favorite", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShoppingCartEndpointsAreIndependentOfFavorites(t *testing.T) {
	router, _, _ := setupRouter(t)
	token := bearer(t, 7)

	rec := doRequest(router, http.MethodPost, "/api/recipes", token, composeBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/recipes/1/favorite", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/recipes/1/shopping_cart", token, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestDownloadShoppingCartEndpoint(t *testing.T) {
	router, _, _ := setupRouter(t)
	token := bearer(t, 7)

	rec := doRequest(router, http.MethodGet, "/api/recipes/download_shopping_cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="products.txt"`, rec.Header().Get("Content-Disposition"))
}

func TestDownloadShoppingCartEndpoint_Unauthorized(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/recipes/download_shopping_cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteRecipeEndpoint(t *testing.T) {
	router, recipes, _ := setupRouter(t)
	token := bearer(t, 7)

	rec := doRequest(router, http.MethodPost, "/api/recipes", token, composeBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, http.MethodDelete, "/api/recipes/1", bearer(t, 8), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(router, http.MethodDelete, "/api/recipes/1", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := recipes.FindByID(1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
