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
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Register godoc
// @Summary Register a new user
// @Description Create a new user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,first_name=string,last_name=string,bio=string} true "User registration data"
// @Success 201 {object} object{success=bool,data=object{id=int,username=string,email=string,first_name=string,last_name=string}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary User login
// @Description Authenticate user and get JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{success=bool,data=object{token=string,user=object}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /auth/login [post]
func (h *UserHandler) LoginDoc() {}

// GetProfile godoc
// @Summary Get current user profile
// @Description Get authenticated user's profile information
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{id=int,username=string,email=string,first_name=string,last_name=string,bio=string,recipe_count=int}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/users/me [get]
func (h *UserHandler) GetProfileDoc() {}

// UpdateProfile godoc
// @Summary Update current user profile
// @Description Update authenticated user's profile
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{email=string,first_name=string,last_name=string,bio=string} true "Update data"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/users/me [put]
func (h *UserHandler) UpdateProfileDoc() {}

// ListUsers godoc
// @Summary List users
// @Description Get paginated list of users
// @Tags Users
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array,count=int}
// @Router /api/users [get]
func (h *UserHandler) ListUsersDoc() {}

// GetUser godoc
// @Summary Get user by ID
// @Description Get a user profile with the caller's subscription state
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{success=bool,data=object{id=int,username=string,is_subscribed=bool}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUserDoc() {}

// Subscribe godoc
// @Summary Subscribe to an author
// @Description Follow an author to see their recipes in subscriptions
// @Tags Subscriptions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Author ID"
// @Success 201 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/users/{id}/subscribe [post]
func (h *UserHandler) SubscribeDoc() {}

// Unsubscribe godoc
// @Summary Unsubscribe from an author
// @Description Stop following an author
// @Tags Subscriptions
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 204
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/users/{id}/subscribe [delete]
func (h *UserHandler) UnsubscribeDoc() {}

// ListSubscriptions godoc
// @Summary List subscriptions
// @Description Get the authors the authenticated user follows
// @Tags Subscriptions
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array,count=int}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/users/subscriptions [get]
func (h *UserHandler) ListSubscriptionsDoc() {}

// GetStats godoc
// @Summary User statistics
// @Description Get aggregate user statistics (admin)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{total_users=int}}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /admin/stats [get]
func (h *UserHandler) GetStatsDoc() {}
