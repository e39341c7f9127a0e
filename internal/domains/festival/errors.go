package festival

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no festival exists for an identifier.
var ErrNotFound = errors.New("festival not found")

// FieldError is a single violated field in a create/update request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists every violated field of a create or full
// update, not just the first.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	fields := make([]string, len(e))
	for i, fe := range e {
		fields[i] = fe.Field
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// PatchError is the single-message rejection used by partial updates.
type PatchError struct {
	Message string
}

func (e *PatchError) Error() string {
	return e.Message
}
