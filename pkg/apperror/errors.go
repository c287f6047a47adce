package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrInvalidAttachment   = errors.New("invalid attachment")
	ErrInvalidTargetStatus = errors.New("invalid target status")
	ErrInvalidInput        = errors.New("invalid input")
	ErrStorageFailure      = errors.New("storage failure")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrRateLimitExceeded   = errors.New("rate limit exceeded")
)

// Kind names reported in the "kind" field of error responses.
const (
	KindNotFound            = "not_found"
	KindDuplicateSubmission = "duplicate_submission"
	KindInvalidAttachment   = "invalid_attachment"
	KindInvalidTargetStatus = "invalid_target_status"
	KindInvalidInput        = "invalid_input"
	KindStorageFailure      = "storage_failure"
	KindUnauthorized        = "unauthorized"
	KindForbidden           = "forbidden"
	KindRateLimited         = "rate_limited"
)

// AppError carries one of the sentinel kinds above together with a
// human readable message and optional structured details.
type AppError struct {
	Kind    error
	Message string
	Err     error
	Meta    map[string]any
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of this error, so callers can
// use errors.Is(err, apperror.ErrNotFound).
func (e *AppError) Is(target error) bool {
	return e.Kind == target
}

// New creates a new AppError
func New(kind error, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// WithMeta attaches a detail value returned to clients next to the message.
func (e *AppError) WithMeta(key string, value any) *AppError {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

func NotFound(message string) *AppError {
	return New(ErrNotFound, message, nil)
}

func InvalidInput(message string) *AppError {
	return New(ErrInvalidInput, message, nil)
}

func InvalidAttachment(reason string) *AppError {
	return New(ErrInvalidAttachment, reason, nil).WithMeta("reason", reason)
}

func StorageFailure(err error) *AppError {
	return New(ErrStorageFailure, "", err)
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateSubmission):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidAttachment),
		errors.Is(err, ErrInvalidTargetStatus),
		errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	}
	// Default to internal server error
	return http.StatusInternalServerError
}

// KindOf returns the kind name for err. Anything unrecognised is a
// storage failure.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicateSubmission):
		return KindDuplicateSubmission
	case errors.Is(err, ErrInvalidAttachment):
		return KindInvalidAttachment
	case errors.Is(err, ErrInvalidTargetStatus):
		return KindInvalidTargetStatus
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrRateLimitExceeded):
		return KindRateLimited
	}
	return KindStorageFailure
}

// MetaOf returns the details attached to the first AppError in the chain.
func MetaOf(err error) map[string]any {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Meta
	}
	return nil
}
