package ltiecho

import (
	"github.com/labstack/echo/v4"

	ltimiddleware "github.com/edutools/go-lti-middleware"
)

// Option is a function that configures the middleware
type Option func(*echoMiddlewareConfig)

// WithErrorHandler sets a custom error handler
func WithErrorHandler(handler func(echo.Context, error)) Option {
	return func(config *echoMiddlewareConfig) {
		config.errorHandler = handler
	}
}

// WithContextKey sets a custom context key to store claims
func WithContextKey(key string) Option {
	return func(config *echoMiddlewareConfig) {
		config.contextKey = key
	}
}

// WithTrustedProxies sets the forwarded header trust config used when
// reconstructing the launch URL
func WithTrustedProxies(proxies *ltimiddleware.TrustedProxyConfig) Option {
	return func(config *echoMiddlewareConfig) {
		config.trustedProxies = proxies
	}
}
