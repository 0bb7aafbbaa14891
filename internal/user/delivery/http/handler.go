package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/internal/user/usecase/command"
	"github.com/tair/foodgram/internal/user/usecase/query"
	"github.com/tair/foodgram/pkg/logger"
)

// UserHandler handles HTTP requests for users and subscriptions
type UserHandler struct {
	// Command handlers
	registerHandler     *command.RegisterUserHandler
	loginHandler        *command.LoginUserHandler
	updateHandler       *command.UpdateUserHandler
	deleteHandler       *command.DeleteUserHandler
	changeRoleHandler   *command.ChangeRoleHandler
	toggleActiveHandler *command.ToggleActiveHandler
	followHandler       *command.FollowAuthorHandler
	unfollowHandler     *command.UnfollowAuthorHandler

	// Query handlers
	getUserHandler       *query.GetUserHandler
	listHandler          *query.ListUsersHandler
	subscriptionsHandler *query.ListSubscriptionsHandler
	statsHandler         *query.GetStatsHandler

	repo           domain.UserRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	activeUsers    prometheus.Gauge
}

// NewUserHandler creates a new user handler
func NewUserHandler(users domain.UserRepository, follows domain.FollowRepository) *UserHandler {
	return NewUserHandlerWithDI(
		command.NewRegisterUserHandler(users),
		command.NewLoginUserHandler(users),
		command.NewUpdateUserHandler(users),
		command.NewDeleteUserHandler(users),
		command.NewChangeRoleHandler(users),
		command.NewToggleActiveHandler(users),
		command.NewFollowAuthorHandler(users, follows),
		command.NewUnfollowAuthorHandler(follows),
		query.NewGetUserHandler(users, follows),
		query.NewListUsersHandler(users),
		query.NewListSubscriptionsHandler(follows),
		query.NewGetStatsHandler(users),
		users,
	)
}

// NewUserHandlerWithDI creates a new user handler with injected dependencies
func NewUserHandlerWithDI(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	updateHandler *command.UpdateUserHandler,
	deleteHandler *command.DeleteUserHandler,
	changeRoleHandler *command.ChangeRoleHandler,
	toggleActiveHandler *command.ToggleActiveHandler,
	followHandler *command.FollowAuthorHandler,
	unfollowHandler *command.UnfollowAuthorHandler,
	getUserHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
	subscriptionsHandler *query.ListSubscriptionsHandler,
	statsHandler *query.GetStatsHandler,
	repo domain.UserRepository,
) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_service_requests_total",
			Help: "Total number of requests to user service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_service_request_duration_seconds",
			Help:    "Duration of user service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	activeUsers := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "user_service_active_users",
			Help: "Number of active users in the system",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(activeUsers)

	return &UserHandler{
		registerHandler:      registerHandler,
		loginHandler:         loginHandler,
		updateHandler:        updateHandler,
		deleteHandler:        deleteHandler,
		changeRoleHandler:    changeRoleHandler,
		toggleActiveHandler:  toggleActiveHandler,
		followHandler:        followHandler,
		unfollowHandler:      unfollowHandler,
		getUserHandler:       getUserHandler,
		listHandler:          listHandler,
		subscriptionsHandler: subscriptionsHandler,
		statsHandler:         statsHandler,
		repo:                 repo,
		requestCounter:       requestCounter,
		requestLatency:       requestLatency,
		activeUsers:          activeUsers,
	}
}

// Response is the JSON envelope shared by all endpoints
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Count   *int64      `json:"count,omitempty"`
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
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/auth/register", h.metricsMiddleware("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", h.metricsMiddleware("/auth/login", h.Login)).Methods("POST")

	// Subscriptions come before the {id} routes so mux does not swallow
	// the path segment as a user id
	router.HandleFunc("/api/users/subscriptions",
		h.metricsMiddleware("/api/users/subscriptions", AuthMiddleware(h.ListSubscriptions))).Methods("GET")
	router.HandleFunc("/api/users/me", h.metricsMiddleware("/api/users/me", AuthMiddleware(h.GetProfile))).Methods("GET")
	router.HandleFunc("/api/users/me", h.metricsMiddleware("/api/users/me", AuthMiddleware(h.UpdateProfile))).Methods("PUT")

	router.HandleFunc("/api/users", h.metricsMiddleware("/api/users", h.ListUsers)).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", OptionalAuthMiddleware(h.GetUser))).Methods("GET")
	router.HandleFunc("/api/users/{id}/subscribe",
		h.metricsMiddleware("/api/users/{id}/subscribe", AuthMiddleware(h.Subscribe))).Methods("POST", "DELETE")

	// Admin routes
	router.HandleFunc("/admin/users/{id}", h.metricsMiddleware("/admin/users/{id}", AdminMiddleware(h.DeleteUser))).Methods("DELETE")
	router.HandleFunc("/admin/users/{id}/role", h.metricsMiddleware("/admin/users/{id}/role", AdminMiddleware(h.ChangeRole))).Methods("PUT")
	router.HandleFunc("/admin/users/{id}/active", h.metricsMiddleware("/admin/users/{id}/active", AdminMiddleware(h.ToggleActive))).Methods("PUT")
	router.HandleFunc("/admin/stats", h.metricsMiddleware("/admin/stats", AdminMiddleware(h.GetStats))).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *UserHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Bio       string `json:"bio"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RegisterUserCommand{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      domain.RoleUser,
	}

	user, err := h.registerHandler.Handle(cmd)
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to register user")
		return
	}

	h.updateActiveUsersMetric()
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "User registered successfully", Data: user})
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.loginHandler.Handle(command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: response})
}

// GetProfile handles GET /api/users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := actingUserID(r)

	profile, err := h.getUserHandler.Handle(query.GetUserQuery{ID: userID}, 0)
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: profile})
}

// UpdateProfile handles PUT /api/users/me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Bio       string `json:"bio"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.updateHandler.Handle(command.UpdateUserCommand{
		ID:        actingUserID(r),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Profile updated successfully", Data: user})
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, total, err := h.listHandler.Handle(query.ListUsersQuery{Limit: limit, Offset: offset})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: users, Count: &total})
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	profile, err := h.getUserHandler.Handle(query.GetUserQuery{ID: id}, actingUserID(r))
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to get user")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: profile})
}

// Subscribe handles POST and DELETE /api/users/{id}/subscribe
func (h *UserHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	subscriberID := actingUserID(r)

	if r.Method == http.MethodDelete {
		err := h.unfollowHandler.Handle(command.UnfollowAuthorCommand{UserID: subscriberID, AuthorID: id})
		if err != nil {
			h.respondDomainError(w, r, err, "Failed to unsubscribe")
			return
		}
		respondJSON(w, http.StatusNoContent, Response{Success: true})
		return
	}

	author, err := h.followHandler.Handle(command.FollowAuthorCommand{UserID: subscriberID, AuthorID: id})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to subscribe")
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Subscribed successfully", Data: author})
}

// ListSubscriptions handles GET /api/users/subscriptions
func (h *UserHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	authors, total, err := h.subscriptionsHandler.Handle(query.ListSubscriptionsQuery{
		UserID: actingUserID(r),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to list subscriptions")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: authors, Count: &total})
}

// DeleteUser handles DELETE /admin/users/{id} (admin only)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteUserCommand{ID: id}); err != nil {
		h.respondDomainError(w, r, err, "Failed to delete user")
		return
	}

	h.updateActiveUsersMetric()
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "User deleted successfully"})
}

// ChangeRole handles PUT /admin/users/{id}/role (admin only)
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.changeRoleHandler.Handle(command.ChangeRoleCommand{UserID: id, Role: req.Role})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to change role")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// ToggleActive handles PUT /admin/users/{id}/active (admin only)
func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.toggleActiveHandler.Handle(command.ToggleActiveCommand{UserID: id, IsActive: req.IsActive})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to toggle active status")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// GetStats handles GET /admin/stats (admin only)
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to load stats")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// HealthCheck handles GET /health
func (h *UserHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: err.Error()})
			return
		}

		respondJSON(w, http.StatusOK, Response{Success: true, Message: "healthy"})
	}
}

// respondDomainError maps typed domain errors to HTTP status codes
func (h *UserHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Not found"})
	case errors.Is(err, domain.ErrConflict):
		respondJSON(w, http.StatusConflict, Response{Success: false, Error: "Already exists"})
	case errors.Is(err, domain.ErrForbidden):
		respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "Forbidden"})
	default:
		logger.Error(r.Context()).Err(err).Msg(logMsg)
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	}
}

// updateActiveUsersMetric updates the active users gauge
func (h *UserHandler) updateActiveUsersMetric() {
	count, err := h.repo.Count()
	if err == nil {
		h.activeUsers.Set(float64(count))
	}
}

func userID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
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
