package festival

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the document-store surface the festival domain needs:
// plain CRUD plus filtered query/count and the destructive delete-all
// used by reseeding.
type Repository interface {
	Find(ctx context.Context, filter Filter, limit, offset int) ([]*Record, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)
	Create(ctx context.Context, doc map[string]any) (*Record, error)
	Replace(ctx context.Context, id uuid.UUID, doc map[string]any) (*Record, error)
	Patch(ctx context.Context, id uuid.UUID, fields map[string]any) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
	DeleteAll(ctx context.Context) error
}
