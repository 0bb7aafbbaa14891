package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/internal/recipe/usecase/command"
	"github.com/tair/foodgram/internal/recipe/usecase/query"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/logger"
)

// RecipeHandler handles HTTP requests for recipes using CQRS pattern
type RecipeHandler struct {
	// Command handlers
	composeHandler    *command.ComposeRecipeHandler
	recomposeHandler  *command.RecomposeRecipeHandler
	deleteHandler     *command.DeleteRecipeHandler
	addMarkHandler    *command.AddMarkHandler
	removeMarkHandler *command.RemoveMarkHandler

	// Query handlers
	getHandler          *query.GetRecipeHandler
	listHandler         *query.ListRecipesHandler
	shoppingListHandler *query.ShoppingListHandler

	repo      domain.RecipeRepository
	publisher *kafka.Publisher // optional

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalRecipes   prometheus.Gauge
}

// NewRecipeHandler creates a new recipe handler with CQRS pattern (manual DI)
func NewRecipeHandler(
	recipes domain.RecipeRepository,
	catalog domain.CatalogRepository,
	marks domain.MarkRepository,
	images command.ImageStore,
	publisher *kafka.Publisher,
) *RecipeHandler {
	return NewRecipeHandlerWithDI(
		command.NewComposeRecipeHandler(recipes, catalog, images),
		command.NewRecomposeRecipeHandler(recipes, catalog, images),
		command.NewDeleteRecipeHandler(recipes),
		command.NewAddMarkHandler(recipes, marks),
		command.NewRemoveMarkHandler(marks),
		query.NewGetRecipeHandler(recipes, marks),
		query.NewListRecipesHandler(recipes),
		query.NewShoppingListHandler(recipes),
		recipes,
		publisher,
	)
}

// NewRecipeHandlerWithDI creates a new recipe handler using dependency injection
func NewRecipeHandlerWithDI(
	composeHandler *command.ComposeRecipeHandler,
	recomposeHandler *command.RecomposeRecipeHandler,
	deleteHandler *command.DeleteRecipeHandler,
	addMarkHandler *command.AddMarkHandler,
	removeMarkHandler *command.RemoveMarkHandler,
	getHandler *query.GetRecipeHandler,
	listHandler *query.ListRecipesHandler,
	shoppingListHandler *query.ShoppingListHandler,
	repo domain.RecipeRepository,
	publisher *kafka.Publisher,
) *RecipeHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_service_requests_total",
			Help: "Total number of requests to recipe service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_service_request_duration_seconds",
			Help:    "Duration of recipe service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalRecipes := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_service_total_recipes",
			Help: "Total number of recipes in the system",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalRecipes)

	return &RecipeHandler{
		composeHandler:      composeHandler,
		recomposeHandler:    recomposeHandler,
		deleteHandler:       deleteHandler,
		addMarkHandler:      addMarkHandler,
		removeMarkHandler:   removeMarkHandler,
		getHandler:          getHandler,
		listHandler:         listHandler,
		shoppingListHandler: shoppingListHandler,
		repo:                repo,
		publisher:           publisher,
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
		totalRecipes:        totalRecipes,
	}
}

// Response is the JSON envelope shared by all endpoints
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *RecipeHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers all recipe routes
func (h *RecipeHandler) RegisterRoutes(router *mux.Router) {
	// Shopping cart report comes before the {id} routes so mux does not
	// swallow it as a recipe id
	router.HandleFunc("/api/recipes/download_shopping_cart",
		h.metricsMiddleware("/api/recipes/download_shopping_cart", AuthMiddleware(h.DownloadShoppingCart))).Methods("GET")

	router.HandleFunc("/api/recipes", h.metricsMiddleware("/api/recipes", OptionalAuthMiddleware(h.ListRecipes))).Methods("GET")
	router.HandleFunc("/api/recipes", h.metricsMiddleware("/api/recipes", AuthMiddleware(h.ComposeRecipe))).Methods("POST")
	router.HandleFunc("/api/recipes/{id}", h.metricsMiddleware("/api/recipes/{id}", OptionalAuthMiddleware(h.GetRecipe))).Methods("GET")
	router.HandleFunc("/api/recipes/{id}", h.metricsMiddleware("/api/recipes/{id}", AuthMiddleware(h.RecomposeRecipe))).Methods("PUT", "PATCH")
	router.HandleFunc("/api/recipes/{id}", h.metricsMiddleware("/api/recipes/{id}", AuthMiddleware(h.DeleteRecipe))).Methods("DELETE")

	router.HandleFunc("/api/recipes/{id}/favorite",
		h.metricsMiddleware("/api/recipes/{id}/favorite", AuthMiddleware(h.markHandler(domain.KindFavorite)))).Methods("POST", "DELETE")
	router.HandleFunc("/api/recipes/{id}/shopping_cart",
		h.metricsMiddleware("/api/recipes/{id}/shopping_cart", AuthMiddleware(h.markHandler(domain.KindCart)))).Methods("POST", "DELETE")

	router.HandleFunc("/health", h.metricsMiddleware("/health", h.HealthCheck)).Methods("GET")
}

// recipePayload is the JSON body shared by compose and recompose
type recipePayload struct {
	Name        string                    `json:"name"`
	Text        string                    `json:"text"`
	CookingTime int                       `json:"cooking_time"`
	Tags        []uint                    `json:"tags"`
	Ingredients []command.IngredientInput `json:"ingredients"`
	Image       string                    `json:"image"`
}

// ComposeRecipe handles POST /api/recipes
func (h *RecipeHandler) ComposeRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	recipe, err := h.composeHandler.Handle(command.ComposeRecipeCommand{
		AuthorID:    actingUserID(r),
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: req.Ingredients,
		Image:       req.Image,
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to compose recipe")
		return
	}

	h.publishRecipeEvent(r, kafka.EventTypeRecipeCreated, recipe.ID, recipe.AuthorID)
	h.updateRecipesMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Recipe created successfully",
		Data:    recipe,
	})
}

// RecomposeRecipe handles PUT/PATCH /api/recipes/{id}
func (h *RecipeHandler) RecomposeRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	var req recipePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	recipe, err := h.recomposeHandler.Handle(command.RecomposeRecipeCommand{
		RecipeID:    id,
		ActorID:     actingUserID(r),
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: req.Ingredients,
		Image:       req.Image,
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to recompose recipe")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Recipe updated successfully",
		Data:    recipe,
	})
}

// GetRecipe handles GET /api/recipes/{id}
func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	detail, err := h.getHandler.Handle(query.GetRecipeQuery{ID: id, UserID: actingUserID(r)})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to get recipe")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: detail})
}

// ListRecipes handles GET /api/recipes
func (h *RecipeHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	authorID, _ := strconv.ParseUint(r.URL.Query().Get("author"), 10, 32)

	q := query.ListRecipesQuery{
		AuthorID: uint(authorID),
		TagSlug:  r.URL.Query().Get("tag"),
		Limit:    limit,
		Offset:   offset,
	}

	recipes, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list recipes")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list recipes"})
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"recipes": recipes,
			"total":   count,
			"limit":   q.Limit,
			"offset":  offset,
		},
	})
}

// DeleteRecipe handles DELETE /api/recipes/{id}
func (h *RecipeHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteRecipeCommand{RecipeID: id, ActorID: actingUserID(r)}); err != nil {
		h.respondDomainError(w, r, err, "Failed to delete recipe")
		return
	}

	h.publishRecipeEvent(r, kafka.EventTypeRecipeDeleted, id, actingUserID(r))
	h.updateRecipesMetric()

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Recipe deleted successfully"})
}

// markHandler serves POST and DELETE for one membership kind. Favorite and
// shopping cart share this handler; only the kind differs.
func (h *RecipeHandler) markHandler(kind domain.MarkKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := recipeID(w, r)
		if !ok {
			return
		}
		userID := actingUserID(r)

		if r.Method == http.MethodDelete {
			err := h.removeMarkHandler.Handle(command.RemoveMarkCommand{UserID: userID, RecipeID: id, Kind: kind})
			if err != nil {
				h.respondDomainError(w, r, err, "Failed to remove mark")
				return
			}
			respondJSON(w, http.StatusNoContent, Response{Success: true, Message: "Removed"})
			return
		}

		target, err := h.addMarkHandler.Handle(command.AddMarkCommand{UserID: userID, RecipeID: id, Kind: kind})
		if err != nil {
			h.respondDomainError(w, r, err, "Failed to add mark")
			return
		}
		respondJSON(w, http.StatusCreated, Response{Success: true, Data: target})
	}
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart.
// The aggregated report is served as a plain-text attachment.
func (h *RecipeHandler) DownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.shoppingListHandler.Handle(query.ShoppingListQuery{UserID: actingUserID(r)})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to aggregate shopping list")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to aggregate shopping list"})
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", `attachment; filename="products.txt"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(query.Render(items)))
}

// HealthCheck handles GET /health
func (h *RecipeHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "healthy"})
}

// respondDomainError maps typed domain errors to HTTP status codes
func (h *RecipeHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	var fieldErrs domain.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Validation failed", Errors: fieldErrs})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Not found"})
	case errors.Is(err, domain.ErrConflict):
		respondJSON(w, http.StatusConflict, Response{Success: false, Error: "Already exists"})
	case errors.Is(err, domain.ErrForbidden):
		respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "Not the recipe author"})
	default:
		logger.Error(r.Context()).Err(err).Msg(logMsg)
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	}
}

func (h *RecipeHandler) publishRecipeEvent(r *http.Request, eventType string, recipeID, authorID uint) {
	if h.publisher == nil {
		return
	}
	event := kafka.RecipeEvent{RecipeID: recipeID, AuthorID: authorID}
	if err := h.publisher.PublishRecipeEvent(r.Context(), eventType, event); err != nil {
		logger.Error(r.Context()).Err(err).Str("event_type", eventType).Msg("Failed to publish recipe event")
	}
}

func (h *RecipeHandler) updateRecipesMetric() {
	if count, err := h.repo.Count(); err == nil {
		h.totalRecipes.Set(float64(count))
	}
}

func recipeID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid recipe ID"})
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status != http.StatusNoContent {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}
