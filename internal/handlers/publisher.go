package handlers

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=handlers

import "context"

// EventPublisher announces content changes. It never fails the request.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, entityID, postID, ownerID int64)
}
