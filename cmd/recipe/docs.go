package main

// @title Recipe Service API
// @version 1.0
// @description Microservice for recipes, favorites and shopping carts with full observability stack (Prometheus, Jaeger, Grafana)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8081
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Recipes
// @tag.description Recipe composition and browsing endpoints

// @tag.name Marks
// @tag.description Favorite and shopping cart endpoints

// @tag.name Catalog
// @tag.description Tag and ingredient reference data endpoints

// @tag.name Health
// @tag.description Health check endpoints
