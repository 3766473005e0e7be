package models

import "time"

// Content event types
const (
	EventPostCreated    = "post.created"
	EventPostDeleted    = "post.deleted"
	EventCommentCreated = "comment.created"
	EventCommentDeleted = "comment.deleted"
)

// ContentEvent describes a change to a post or a comment.
type ContentEvent struct {
	EventID    string    `json:"event_id"`    // Unique event identifier
	Type       string    `json:"type"`        // One of the Event* constants
	EntityID   int64     `json:"entity_id"`   // Post or comment id
	PostID     int64     `json:"post_id"`     // Post the entity belongs to
	OwnerID    int64     `json:"owner_id"`    // Author, zero when unknown
	OccurredAt time.Time `json:"occurred_at"` // UTC
}
