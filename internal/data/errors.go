package data

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a requested table does not exist in the dataset.
// Direct lookups surface it; the detector treats it as "no evidence" and never
// propagates it.
type NotFoundError struct {
	Kind     string // "alphabet", "frequency list", "language"
	Language string
	Script   string
}

func (e *NotFoundError) Error() string {
	if e.Script != "" {
		return fmt.Sprintf("%s not found for language %q script %q", e.Kind, e.Language, e.Script)
	}
	return fmt.Sprintf("%s not found for language %q", e.Kind, e.Language)
}

// IsNotFound reports whether err is a dataset NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
