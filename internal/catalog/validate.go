package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is returned for an incomplete custom entry.
var ErrValidation = errors.New("incomplete entry")

// FieldError names the field that failed validation.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// ValidateFields checks form input before any mutation is attempted.
// Name, first type and sprite URL must all be non-blank.
func ValidateFields(f Fields) error {
	if strings.TrimSpace(f.Name) == "" {
		return &FieldError{Field: "name"}
	}
	if len(f.Types) == 0 || strings.TrimSpace(f.Types[0]) == "" {
		return &FieldError{Field: "type"}
	}
	if strings.TrimSpace(f.SpriteURL) == "" {
		return &FieldError{Field: "image"}
	}
	return nil
}

// PersistEligible reports whether e may be written to local storage:
// a name, at least one type with a non-empty first name, and a sprite URL.
func PersistEligible(e Entry) bool {
	return e.Name != "" &&
		len(e.Types) > 0 &&
		e.Types[0] != "" &&
		e.SpriteURL != ""
}

// PartitionEligible splits entries into those that may be persisted and
// the ids of those that may not. Order is preserved.
func PartitionEligible(entries []Entry) ([]Entry, []int64) {
	keep := make([]Entry, 0, len(entries))
	var dropped []int64
	for _, e := range entries {
		if PersistEligible(e) {
			keep = append(keep, e)
			continue
		}
		dropped = append(dropped, e.ID)
	}
	return keep, dropped
}

// SplitTypes parses a comma-separated type list as typed into a form.
func SplitTypes(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
