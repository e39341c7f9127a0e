package festival

import (
	"context"
	"net/url"
	"time"
)

// Resource is a single festival shaped for a response, together with
// the timestamp driving conditional GET.
type Resource struct {
	Body         map[string]any
	LastModified time.Time
}

// Service is the festival collection logic behind the HTTP handlers.
type Service interface {
	// List applies the query builder and returns the collection envelope.
	List(ctx context.Context, values url.Values, requestURI string) (*CollectionEnvelope, error)

	// Get fetches one festival by identifier.
	Get(ctx context.Context, id string) (*Resource, error)

	// Create validates and persists the recognized field set.
	Create(ctx context.Context, body map[string]any) (map[string]any, error)

	// Replace runs create-level validation and swaps the full field set.
	Replace(ctx context.Context, id string, body map[string]any) (map[string]any, error)

	// Patch merges the provided fields as-is into the stored record.
	Patch(ctx context.Context, id string, body map[string]any) (map[string]any, error)

	// Delete removes a festival.
	Delete(ctx context.Context, id string) error

	// Seed wipes the collection and inserts amount synthetic festivals.
	// Deliberately not atomic: concurrent readers may observe a
	// partially repopulated collection.
	Seed(ctx context.Context, amount int) error
}
