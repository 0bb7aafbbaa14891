package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ComposeRecipe godoc
// @Summary Create a recipe
// @Description Create a recipe with its tag set and ingredient line items
// @Tags Recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,text=string,cooking_time=int,tags=[]int,ingredients=[]object{id=int,amount=int},image=string} true "Recipe payload"
// @Success 201 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Router /api/recipes [post]
func (h *RecipeHandler) ComposeRecipeDoc() {}

// RecomposeRecipe godoc
// @Summary Update a recipe
// @Description Replace the recipe's scalar fields, tag set and line items
// @Tags Recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/recipes/{id} [put]
func (h *RecipeHandler) RecomposeRecipeDoc() {}

// ListRecipes godoc
// @Summary List recipes
// @Description List recipes ordered by name with optional author/tag filters
// @Tags Recipes
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Param author query int false "Author ID filter"
// @Param tag query string false "Tag slug filter"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/recipes [get]
func (h *RecipeHandler) ListRecipesDoc() {}

// Favorite godoc
// @Summary Toggle favorite
// @Description Add (POST) or remove (DELETE) a recipe from favorites
// @Tags Marks
// @Security BearerAuth
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} object{success=bool,data=object{id=int,name=string,image=string,cooking_time=int}}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/recipes/{id}/favorite [post]
func (h *RecipeHandler) FavoriteDoc() {}

// ShoppingCart godoc
// @Summary Toggle shopping cart
// @Description Add (POST) or remove (DELETE) a recipe from the shopping cart
// @Tags Marks
// @Security BearerAuth
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} object{success=bool,data=object{id=int,name=string,image=string,cooking_time=int}}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/recipes/{id}/shopping_cart [post]
func (h *RecipeHandler) ShoppingCartDoc() {}

// DownloadShoppingCart godoc
// @Summary Download shopping list
// @Description Aggregated cart ingredients as a plain-text attachment
// @Tags Marks
// @Security BearerAuth
// @Produce plain
// @Success 200 {string} string "products.txt"
// @Router /api/recipes/download_shopping_cart [get]
func (h *RecipeHandler) DownloadShoppingCartDoc() {}
