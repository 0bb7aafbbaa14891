package kafka

import "time"

// RecipeEvent represents a recipe lifecycle event
type RecipeEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	RecipeID  uint      `json:"recipe_id"`
	AuthorID  uint      `json:"author_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeRecipeCreated = "recipe.created"
	EventTypeRecipeDeleted = "recipe.deleted"
)

// Kafka topics
const (
	TopicRecipeEvents = "recipe-events"
)
