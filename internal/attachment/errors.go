package attachment

import (
	"errors"
	"fmt"
)

// Kind classifies why an attachment could not be embedded.
type Kind string

// Failure kinds, in the order checks are performed.
const (
	KindFetchFailed Kind = "fetch-failed"
	KindEmpty       Kind = "empty"
	KindBadHeader   Kind = "bad-header"
	KindUnparseable Kind = "unparseable"
	KindZeroPages   Kind = "zero-pages"
)

// Sentinel errors matched by *Error through errors.Is.
var (
	ErrFetchFailed         = errors.New("attachment fetch failed")
	ErrEmptyPayload        = errors.New("attachment is empty")
	ErrInvalidHeader       = errors.New("attachment does not start with a PDF header")
	ErrUnparseableDocument = errors.New("attachment cannot be parsed as PDF")
	ErrZeroPages           = errors.New("attachment PDF has no pages")
)

// ErrInvalidSource indicates a Source with zero or several locators set.
var ErrInvalidSource = errors.New("invalid attachment source")

var sentinels = map[Kind]error{
	KindFetchFailed: ErrFetchFailed,
	KindEmpty:       ErrEmptyPayload,
	KindBadHeader:   ErrInvalidHeader,
	KindUnparseable: ErrUnparseableDocument,
	KindZeroPages:   ErrZeroPages,
}

// reasons are the human-readable texts drawn on item pages.
var reasons = map[Kind]string{
	KindFetchFailed: "Documentul nu a putut fi încărcat",
	KindEmpty:       "Documentul este gol",
	KindBadHeader:   "Fișierul nu este un document PDF (antet invalid)",
	KindUnparseable: "Documentul PDF este deteriorat și nu poate fi citit",
	KindZeroPages:   "Documentul PDF nu conține nicio pagină",
}

// Error reports a failed attachment. It never aborts an export.
type Error struct {
	Kind   Kind
	Source string // display name or locator
	Err    error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := sentinels[e.Kind].Error()
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	errs := []error{sentinels[e.Kind]}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Reason returns the text shown to the reader of the generated document.
func (e *Error) Reason() string {
	return reasons[e.Kind]
}

func newError(kind Kind, source string, cause error) *Error {
	return &Error{Kind: kind, Source: source, Err: cause}
}

// KindOf returns the Kind carried by err, or "" when err is not an
// attachment error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
