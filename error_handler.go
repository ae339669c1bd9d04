package ltimiddleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/edutools/go-lti-middleware/validator"
)

var (
	// ErrLaunchRejected is matched by every launch rejection the
	// middleware reports. Unwrap reaches the specific validator
	// sentinel (ErrInvalidSignature, ErrReplayedNonce, ...).
	ErrLaunchRejected = errors.New("lti launch rejected")

	// ErrMethodNotAllowed is returned for non-POST requests; LTI v1
	// launches are always POSTed.
	ErrMethodNotAllowed = errors.New("lti launches must use POST")

	// ErrMalformedBody is returned when the launch body cannot be
	// parsed as a form.
	ErrMalformedBody = errors.New("could not parse launch body")
)

// ErrorHandler is called when a launch fails validation. The default
// handler answers 401 for rejections, 400 for malformed bodies, 405 for
// wrong methods, and 500 otherwise; custom handlers should take the
// same error kinds into account or the middleware will not behave as
// intended.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler is used when no WithErrorHandler option is given.
// Responses carry a short human-readable reason; secrets and signatures
// never appear in them.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"message":"LTI launch requests must use POST."}`))
	case errors.Is(err, ErrMalformedBody):
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Launch body is not a valid form."}`))
	case errors.Is(err, ErrLaunchRejected):
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write(fmt.Appendf(nil, `{"message":%q}`, err.Error()))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Something went wrong while checking the launch."}`))
	}
}

// rejectionError wraps a validator rejection with the concrete error
// ErrLaunchRejected. Not exposed publicly; Is and Unwrap give callers
// all they need.
type rejectionError struct {
	details error
}

// Is allows the error to support equality to ErrLaunchRejected.
func (e rejectionError) Is(target error) bool {
	return target == ErrLaunchRejected
}

// Error returns a string representation of the error.
func (e rejectionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrLaunchRejected, e.details)
}

// Unwrap allows the error to support equality to the underlying
// validator sentinel.
func (e rejectionError) Unwrap() error {
	return e.details
}

// rejectionCode returns the metric label for a middleware error.
func rejectionCode(err error) string {
	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		return "method_not_allowed"
	case errors.Is(err, ErrMalformedBody):
		return "malformed_body"
	default:
		return validator.Code(err)
	}
}
