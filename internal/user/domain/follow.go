package domain

import "time"

// Follow links a subscriber to an author. The (user_id, author_id) pair
// is unique so a double subscribe surfaces as a constraint violation
// instead of a silent duplicate.
type Follow struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_follow_pair;not null"`
	AuthorID  uint      `json:"author_id" gorm:"uniqueIndex:idx_follow_pair;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Follow) TableName() string {
	return "follows"
}

// FollowRepository defines the contract for subscription data access
type FollowRepository interface {
	Add(follow *Follow) error
	Remove(userID, authorID uint) error
	Exists(userID, authorID uint) (bool, error)
	ListAuthors(userID uint, limit, offset int) ([]User, error)
	CountAuthors(userID uint) (int64, error)
}
