package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/internal/recipe/usecase/query"
	"github.com/tair/foodgram/pkg/logger"
)

// CatalogHandler handles HTTP requests for the tag and ingredient catalog
type CatalogHandler struct {
	listTagsHandler        *query.ListTagsHandler
	listIngredientsHandler *query.ListIngredientsHandler

	repo domain.CatalogRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(repo domain.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{
		listTagsHandler:        query.NewListTagsHandler(repo),
		listIngredientsHandler: query.NewListIngredientsHandler(repo),
		repo:                   repo,
	}
}

// RegisterRoutes registers catalog routes. Reads are public; writes are
// admin-only reference-data maintenance.
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/tags", h.ListTags).Methods("GET")
	router.HandleFunc("/api/tags", AdminMiddleware(h.CreateTag)).Methods("POST")
	router.HandleFunc("/api/tags/{id}", h.GetTag).Methods("GET")
	router.HandleFunc("/api/tags/{id}", AdminMiddleware(h.DeleteTag)).Methods("DELETE")

	router.HandleFunc("/api/ingredients", h.ListIngredients).Methods("GET")
	router.HandleFunc("/api/ingredients", AdminMiddleware(h.CreateIngredient)).Methods("POST")
	router.HandleFunc("/api/ingredients/{id}", h.GetIngredient).Methods("GET")
	router.HandleFunc("/api/ingredients/{id}", AdminMiddleware(h.DeleteIngredient)).Methods("DELETE")
}

// ListTags handles GET /api/tags
func (h *CatalogHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.listTagsHandler.Handle(query.ListTagsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list tags")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list tags"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: tags})
}

// GetTag handles GET /api/tags/{id}
func (h *CatalogHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	id, ok := catalogID(w, r)
	if !ok {
		return
	}

	tag, err := h.repo.FindTag(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Tag not found"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: tag})
}

// CreateTag handles POST /api/tags
func (h *CatalogHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Name == "" || req.Slug == "" {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Name and slug are required"})
		return
	}

	tag := &domain.Tag{Name: req.Name, Color: req.Color, Slug: req.Slug}
	if err := h.repo.CreateTag(tag); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			respondJSON(w, http.StatusConflict, Response{Success: false, Error: "Slug already exists"})
			return
		}
		logger.Logger.Error().Err(err).Msg("Failed to create tag")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to create tag"})
		return
	}
	respondJSON(w, http.StatusCreated, Response{Success: true, Data: tag})
}

// DeleteTag handles DELETE /api/tags/{id}
func (h *CatalogHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := catalogID(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeleteTag(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Tag not found"})
			return
		}
		logger.Logger.Error().Err(err).Msg("Failed to delete tag")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to delete tag"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Tag deleted successfully"})
}

// ListIngredients handles GET /api/ingredients
func (h *CatalogHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.listIngredientsHandler.Handle(query.ListIngredientsQuery{
		Search: r.URL.Query().Get("name"),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list ingredients")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list ingredients"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: ingredients})
}

// GetIngredient handles GET /api/ingredients/{id}
func (h *CatalogHandler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := catalogID(w, r)
	if !ok {
		return
	}

	ingredient, err := h.repo.FindIngredient(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Ingredient not found"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: ingredient})
}

// CreateIngredient handles POST /api/ingredients
func (h *CatalogHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Name == "" || req.MeasurementUnit == "" {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Name and measurement unit are required"})
		return
	}

	ingredient := &domain.Ingredient{Name: req.Name, MeasurementUnit: req.MeasurementUnit}
	if err := h.repo.CreateIngredient(ingredient); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create ingredient")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to create ingredient"})
		return
	}
	respondJSON(w, http.StatusCreated, Response{Success: true, Data: ingredient})
}

// DeleteIngredient handles DELETE /api/ingredients/{id}. An ingredient
// referenced by any recipe line item cannot be deleted.
func (h *CatalogHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := catalogID(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeleteIngredient(id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Ingredient not found"})
		case errors.Is(err, domain.ErrConflict):
			respondJSON(w, http.StatusConflict, Response{Success: false, Error: "Ingredient is referenced by recipes"})
		default:
			logger.Logger.Error().Err(err).Msg("Failed to delete ingredient")
			respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to delete ingredient"})
		}
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Ingredient deleted successfully"})
}

func catalogID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}
