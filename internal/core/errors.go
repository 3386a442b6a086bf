package core

import (
	"errors"
	"fmt"
)

// Error kinds returned by the configuration core. Callers match them with
// errors.Is; document failures additionally carry a *DocumentError.
var (
	// ErrMissingAttribute indicates a required attribute is absent.
	ErrMissingAttribute = errors.New("rd: missing attribute")

	// ErrMalformedDocument indicates a required element is absent.
	ErrMalformedDocument = errors.New("rd: malformed document")

	// ErrUnrecognizedValue indicates a value outside a closed enumeration.
	ErrUnrecognizedValue = errors.New("rd: unrecognized value")

	// ErrInvalidFormat indicates text that does not parse as the expected type.
	ErrInvalidFormat = errors.New("rd: invalid format")

	// ErrNotFound indicates a parameter lookup by name found nothing.
	ErrNotFound = errors.New("rd: not found")

	// ErrInvalidOperation indicates an undo or redo with nothing to replay.
	ErrInvalidOperation = errors.New("rd: invalid operation")

	// ErrOutOfRange indicates a cell or chemical index outside the arena.
	ErrOutOfRange = errors.New("rd: out of range")

	// ErrNotEditable indicates the engine does not support the mutator.
	ErrNotEditable = errors.New("rd: not editable for this engine")
)

// DocumentError reports which element or attribute of a document failed.
type DocumentError struct {
	Element   string
	Attribute string
	Value     string
	Err       error
}

func (e *DocumentError) Error() string {
	where := e.Element
	if e.Attribute != "" {
		where += "@" + e.Attribute
	}
	if e.Value != "" {
		return fmt.Sprintf("%v: %s (%q)", e.Err, where, e.Value)
	}
	return fmt.Sprintf("%v: %s", e.Err, where)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
