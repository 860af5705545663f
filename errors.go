package policymcp

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes of the server. Every error returned
// by the registry and policydoc packages matches exactly one of them under
// errors.Is.
var (
	ErrStorage      = errors.New("policymcp: storage failure")
	ErrDocumentRead = errors.New("policymcp: document unreadable")
	ErrExtraction   = errors.New("policymcp: text extraction failed")
	ErrInvalidInput = errors.New("policymcp: invalid input")
)

// Kind names a failure class as it is shown to MCP clients.
type Kind string

const (
	KindStorage      Kind = "storage_error"
	KindDocumentRead Kind = "document_read_error"
	KindExtraction   Kind = "extraction_error"
	KindInvalidInput Kind = "invalid_input"
	KindInternal     Kind = "internal_error"
)

var kindSentinels = map[Kind]error{
	KindStorage:      ErrStorage,
	KindDocumentRead: ErrDocumentRead,
	KindExtraction:   ErrExtraction,
	KindInvalidInput: ErrInvalidInput,
}

// Error represents a failure of a specific operation. It wraps the underlying
// cause and records the failure class.
type Error struct {
	Op   string // operation name, e.g. "registry.Append"
	Kind Kind
	Err  error // underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// NewError creates an Error of the given kind wrapping err with operation context.
func NewError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// StorageError wraps err as a durable-store failure.
func StorageError(op string, err error) *Error {
	return NewError(op, KindStorage, err)
}

// DocumentReadError wraps err as a failure to read the policy document.
func DocumentReadError(op string, err error) *Error {
	return NewError(op, KindDocumentRead, err)
}

// ExtractionError wraps err as a failure to turn document bytes into text.
func ExtractionError(op string, err error) *Error {
	return NewError(op, KindExtraction, err)
}

// InvalidInputError wraps err as a malformed request argument.
func InvalidInputError(op string, err error) *Error {
	return NewError(op, KindInvalidInput, err)
}

// KindOf returns the failure class of err. Errors outside the taxonomy are
// reported as KindInternal; a nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
