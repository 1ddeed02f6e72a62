package announcement

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

type Announcement struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"        json:"id"`
	Title     string             `bson:"title"                json:"title"`
	Body      string             `bson:"body"                 json:"body"`
	Priority  Priority           `bson:"priority"             json:"priority"`
	Active    bool               `bson:"active"               json:"active"`
	ExpiresAt *time.Time         `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	CreatedBy string             `bson:"created_by"           json:"created_by"`
	CreatedAt time.Time          `bson:"created_at"           json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"           json:"updated_at"`
}

// Visible reports whether the public listing shows a at now.
func (a *Announcement) Visible(now time.Time) bool {
	return a.Active && (a.ExpiresAt == nil || a.ExpiresAt.After(now))
}

type Query struct {
	// Public restricts the listing to active, unexpired announcements.
	Public bool
	Now    time.Time
	Limit  int
	Offset int
}

// CreateRequest payload of announcement creation.
// swagger:model CreateAnnouncementRequest
type CreateRequest struct {
	Title     string     `json:"title"      binding:"required,max=120" example:"Dashain special"`
	Body      string     `json:"body"       binding:"required,max=2000"`
	Priority  string     `json:"priority"   binding:"omitempty,oneof=low normal high"`
	Active    *bool      `json:"active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type UpdateRequest struct {
	Title     *string    `json:"title"      binding:"omitempty,max=120"`
	Body      *string    `json:"body"       binding:"omitempty,max=2000"`
	Priority  *string    `json:"priority"   binding:"omitempty,oneof=low normal high"`
	Active    *bool      `json:"active"`
	ExpiresAt *time.Time `json:"expires_at"`
}
