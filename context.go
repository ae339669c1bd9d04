package ltimiddleware

import (
	"context"
	"errors"

	"github.com/edutools/go-lti-middleware/validator"
)

// ContextKey is the request context key under which validated launch
// claims are stored.
type ContextKey struct{}

// ErrClaimsNotFound is returned when no validated launch claims are
// present in the context.
var ErrClaimsNotFound = errors.New("launch claims not found in context")

// SetLaunchClaims stores validated launch claims in the context. It is
// exported so framework adapters and tests can populate the context the
// same way CheckLaunch does.
func SetLaunchClaims(ctx context.Context, claims *validator.LaunchClaims) context.Context {
	return context.WithValue(ctx, ContextKey{}, claims)
}

// GetLaunchClaims retrieves the validated launch claims stored by
// CheckLaunch.
func GetLaunchClaims(ctx context.Context) (*validator.LaunchClaims, error) {
	claims, ok := ctx.Value(ContextKey{}).(*validator.LaunchClaims)
	if !ok {
		return nil, ErrClaimsNotFound
	}
	return claims, nil
}

// HasLaunchClaims reports whether validated launch claims are present
// in the context.
func HasLaunchClaims(ctx context.Context) bool {
	_, ok := ctx.Value(ContextKey{}).(*validator.LaunchClaims)
	return ok
}
