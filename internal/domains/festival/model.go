package festival

import (
	"time"

	"github.com/google/uuid"
)

// Field defaults applied on create when the client leaves them out.
const (
	DefaultImageURL     = "https://placehold.co/600x400/png?text=No+Image"
	DefaultCountryCode  = "nl"
	DefaultLocationType = "other"
)

// LocationTypes is the closed set of allowed locationType values.
var LocationTypes = []string{"park", "countryside", "venue", "street", "other"}

// IsLocationType reports whether v belongs to the locationType enum.
func IsLocationType(v string) bool {
	for _, t := range LocationTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Record is a stored festival: the schemaless document plus the
// store-assigned identity and timestamps. The document is kept as a map
// because PATCH merges arbitrary fields into it as-is.
type Record struct {
	ID        uuid.UUID      `json:"id"`
	Doc       map[string]any `json:"doc"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// LastModified is the timestamp used for conditional GET: updatedAt,
// falling back to createdAt.
func (r *Record) LastModified() time.Time {
	if r.UpdatedAt.IsZero() {
		return r.CreatedAt
	}
	return r.UpdatedAt
}

// Filter is the sanitized query filter; only these three fields are
// recognized, every other query key is dropped.
type Filter struct {
	HasBookmark *bool
	Organizer   *string
	CountryCode *string
}
