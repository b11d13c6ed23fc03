package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping and recovery decisions.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthorization
	KindNotFound
	KindConflict
	KindInternal
)

// Error is the structured failure type crossing service boundaries. Guard
// violations and bad input are always values of this type; infrastructure
// failures stay plain wrapped errors and map to 500.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error

	// Meta carries extra payload for the response body (e.g. the most
	// similar project on a high-similarity block).
	Meta map[string]any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func (e *Error) WithMeta(key string, val any) *Error {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[key] = val
	return e
}

// Error codes shared between services and handlers.
const (
	CodeNoGroupMembership     = "no_group_membership"
	CodeGroupRequired         = "group_required"
	CodeMissingContent        = "missing_content"
	CodeBlockedHighSimilarity = "blocked_high_similarity"
	CodeAlreadyReviewed       = "already_reviewed"
	CodeInvalidTransition     = "invalid_transition"
	CodeInvalidProgress       = "invalid_progress"
	CodeNotApprovedYet        = "not_approved_yet"
	CodeNotOwner              = "not_owner"
	CodeNotYourGroup          = "not_your_group"
	CodeInvalidStatus         = "invalid_status"
	CodeNotFound              = "not_found"
)

// HTTPStatus maps the taxonomy onto response codes. The similarity block is
// the one conflict surfaced as 409; the remaining state-machine guards are
// plain 400s.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		if e.Code == CodeBlockedHighSimilarity {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func IsCode(err error, code string) bool {
	if ae, ok := As(err); ok {
		return ae.Code == code
	}
	return false
}
