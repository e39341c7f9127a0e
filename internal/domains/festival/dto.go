package festival

import (
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"festivals-backend/internal/shared/hyper"
)

// CollectionEnvelope wraps a festival listing: the (projected) items,
// the collection hyperlinks and the pagination metadata.
type CollectionEnvelope struct {
	Items      []map[string]any `json:"items"`
	Links      hyper.Links      `json:"_links"`
	Pagination Pagination       `json:"pagination"`
}

// documentFields is the recognized field set persisted on create and
// full update. Unknown body fields are rejected implicitly by never
// being copied.
var documentFields = []string{
	"name", "description", "review",
	"location", "locationType", "imageUrl", "hasBookmark",
	"date", "organizer", "countryCode", "genre", "lineup",
}

// notBlank fails on missing, non-string or whitespace-only values.
func notBlank(message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_required", message)
		}
		return nil
	}
}

// jsonNumber accepts only an actual JSON number. Numeric strings such
// as "7" are rejected: a review must be a number, checked independently
// of any other field.
func jsonNumber(message string) validation.RuleFunc {
	return func(value interface{}) error {
		if _, ok := value.(float64); !ok {
			return validation.NewError("validation_number", message)
		}
		return nil
	}
}

// ValidateDocument checks a create/full-update body and returns every
// violated field. A nil return means the body is valid.
func ValidateDocument(body map[string]any) ValidationErrors {
	errs := validation.Errors{
		"name":        validation.Validate(body["name"], validation.By(notBlank("Name is required"))),
		"description": validation.Validate(body["description"], validation.By(notBlank("Description is required"))),
		"review":      validation.Validate(body["review"], validation.By(jsonNumber("Review must be a number"))),
	}

	if lt, ok := body["locationType"]; ok {
		if s, _ := lt.(string); !IsLocationType(s) {
			errs["locationType"] = validation.NewError("validation_in",
				"LocationType must be one of park, countryside, venue, street, other")
		}
	}

	return collectErrors(errs)
}

// ValidatePatch applies the partial-update rule: a required field may be
// absent, but must not be explicitly emptied. Anything else merges as-is.
func ValidatePatch(body map[string]any) error {
	if v, ok := body["name"]; ok {
		if s, _ := v.(string); strings.TrimSpace(s) == "" {
			return &PatchError{Message: "Name may not be empty"}
		}
	}
	if v, ok := body["description"]; ok {
		if s, _ := v.(string); strings.TrimSpace(s) == "" {
			return &PatchError{Message: "Description may not be empty"}
		}
	}
	if v, ok := body["review"]; ok {
		if _, isNumber := v.(float64); !isNumber {
			return &PatchError{Message: "Review must be a number"}
		}
	}
	return nil
}

// BuildDocument copies the recognized field set out of a validated body
// and fills in defaults. The identifier is never taken from the body.
func BuildDocument(body map[string]any) map[string]any {
	doc := make(map[string]any, len(documentFields))
	for _, field := range documentFields {
		if v, ok := body[field]; ok && v != nil {
			doc[field] = v
		}
	}

	if _, ok := doc["locationType"]; !ok {
		doc["locationType"] = DefaultLocationType
	}
	if _, ok := doc["imageUrl"]; !ok {
		doc["imageUrl"] = DefaultImageURL
	}
	if _, ok := doc["hasBookmark"]; !ok {
		doc["hasBookmark"] = false
	}
	if _, ok := doc["countryCode"]; !ok {
		doc["countryCode"] = DefaultCountryCode
	}
	if _, ok := doc["date"]; !ok {
		doc["date"] = time.Now().UTC().Format(time.RFC3339)
	}

	return doc
}

func collectErrors(errs validation.Errors) ValidationErrors {
	fields := make([]string, 0, len(errs))
	for field, err := range errs {
		if err != nil {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)

	out := make(ValidationErrors, len(fields))
	for i, field := range fields {
		out[i] = FieldError{Field: field, Message: errs[field].Error()}
	}
	return out
}
