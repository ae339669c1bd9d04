package ltigin

import (
	"github.com/gin-gonic/gin"

	ltimiddleware "github.com/edutools/go-lti-middleware"
)

// Option defines a functional option for configuring the middleware
type Option func(*GinMiddlewareConfig)

// WithErrorHandler sets a custom error handler for the middleware
func WithErrorHandler(handler func(*gin.Context, error)) Option {
	return func(config *GinMiddlewareConfig) {
		config.errorHandler = handler
	}
}

// WithContextKey sets a custom context key to store claims
func WithContextKey(key string) Option {
	return func(config *GinMiddlewareConfig) {
		config.contextKey = key
	}
}

// WithTrustedProxies sets the forwarded header trust config used when
// reconstructing the launch URL
func WithTrustedProxies(proxies *ltimiddleware.TrustedProxyConfig) Option {
	return func(config *GinMiddlewareConfig) {
		config.trustedProxies = proxies
	}
}
