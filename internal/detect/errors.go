package detect

import (
	"errors"
	"fmt"
)

// Kind identifies a stable failure category of the detection pipeline.
// Callers map kinds to transport-level responses; the pipeline itself
// never retries or recovers.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindLighting      Kind = "lighting"
	KindBlur          Kind = "blur"
	KindNoFace        Kind = "no_face"
	KindMultipleFaces Kind = "multiple_faces"
)

// Error is a pipeline failure carrying a stable kind and a human-readable
// message with the measured offending values.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a pipeline error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// ErrKind returns the pipeline error kind of err, or "" if err is not a
// pipeline error.
func ErrKind(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
