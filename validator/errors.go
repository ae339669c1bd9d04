package validator

import (
	"errors"
	"fmt"
)

// Sentinel errors for the launch rejection taxonomy. Every rejection a
// validator returns matches exactly one of these with errors.Is. All of
// them are terminal for the request: an LTI consumer must re-issue a
// failed launch with a fresh nonce and timestamp.
var (
	// ErrMissingField is returned when a required oauth_* or LTI
	// parameter is absent from the launch body.
	ErrMissingField = errors.New("required launch parameter missing")

	// ErrUnknownConsumer is returned when oauth_consumer_key is not in
	// the consumer registry.
	ErrUnknownConsumer = errors.New("oauth_consumer_key is not registered")

	// ErrStaleTimestamp is returned when oauth_timestamp is not numeric,
	// falls outside the allowed clock-skew window, or predates the
	// process epoch.
	ErrStaleTimestamp = errors.New("oauth_timestamp outside the accepted window")

	// ErrReplayedNonce is returned when the (timestamp, nonce) pair has
	// been seen before.
	ErrReplayedNonce = errors.New("oauth_nonce and oauth_timestamp already used")

	// ErrInvalidSignature is returned when the recomputed HMAC-SHA1
	// signature does not match oauth_signature.
	ErrInvalidSignature = errors.New("oauth_signature does not match")
)

// Machine-readable rejection codes, suitable as metric labels.
const (
	CodeMissingField     = "missing_field"
	CodeUnknownConsumer  = "unknown_consumer"
	CodeStaleTimestamp   = "stale_timestamp"
	CodeReplayedNonce    = "replayed_nonce"
	CodeInvalidSignature = "invalid_signature"
	CodeInternal         = "internal"
)

// Code maps a rejection to its machine-readable code. Errors outside the
// taxonomy map to CodeInternal.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrMissingField):
		return CodeMissingField
	case errors.Is(err, ErrUnknownConsumer):
		return CodeUnknownConsumer
	case errors.Is(err, ErrStaleTimestamp):
		return CodeStaleTimestamp
	case errors.Is(err, ErrReplayedNonce):
		return CodeReplayedNonce
	case errors.Is(err, ErrInvalidSignature):
		return CodeInvalidSignature
	default:
		return CodeInternal
	}
}

// IsRejection reports whether err belongs to the launch rejection
// taxonomy, as opposed to a transport or configuration failure.
func IsRejection(err error) bool {
	return Code(err) != CodeInternal
}

func missingField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}
