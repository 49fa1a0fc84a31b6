package docconv

import (
	"errors"
	"fmt"
)

// ErrTimeout reports that the conversion budget elapsed. The budget
// covers the whole attempt including fallback, so a timed-out request is
// never retried against the fallback converter.
var ErrTimeout = errors.New("conversion timed out")

// NotFoundError reports a source path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// UnsupportedTypeError reports a source extension outside the supported
// set.
type UnsupportedTypeError struct {
	Path string
	Ext  string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q: %s", e.Ext, e.Path)
}

// MissingDependencyError reports that the converter capability a format
// needs is not available, naming the absent component.
type MissingDependencyError struct {
	Component string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing converter dependency: %s", e.Component)
}

// FailureKind classifies a conversion error for transport layers.
type FailureKind string

const (
	FailureNotFound          FailureKind = "NotFound"
	FailureUnsupportedType   FailureKind = "UnsupportedType"
	FailureTimeout           FailureKind = "Timeout"
	FailureMissingDependency FailureKind = "MissingDependency"
	FailureOther             FailureKind = "ConversionFailed"
)

// Classify maps an error from Convert to its failure kind.
func Classify(err error) FailureKind {
	var notFound *NotFoundError
	var unsupported *UnsupportedTypeError
	var missing *MissingDependencyError

	switch {
	case errors.Is(err, ErrTimeout):
		return FailureTimeout
	case errors.As(err, &notFound):
		return FailureNotFound
	case errors.As(err, &unsupported):
		return FailureUnsupportedType
	case errors.As(err, &missing):
		return FailureMissingDependency
	default:
		return FailureOther
	}
}
