// Package ltigin adapts the LTI launch middleware to Gin.
package ltigin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ltimiddleware "github.com/edutools/go-lti-middleware"
	"github.com/edutools/go-lti-middleware/validator"
)

const DefaultClaimsKey = "lti"

var (
	ErrMissingClaims = errors.New("no launch claims found in context")
	ErrInvalidClaims = errors.New("invalid launch claims type")
)

type GinMiddlewareConfig struct {
	errorHandler   func(*gin.Context, error)
	contextKey     string
	trustedProxies *ltimiddleware.TrustedProxyConfig
}

// NewGinMiddleware creates a Gin middleware that authenticates LTI
// launch requests. launchValidator is typically a *validator.Validator;
// it must be safe for concurrent use.
func NewGinMiddleware(launchValidator ltimiddleware.LaunchValidator, opts ...Option) (gin.HandlerFunc, error) {
	config := &GinMiddlewareConfig{
		errorHandler: defaultGinErrorHandler,
		contextKey:   DefaultClaimsKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	middlewareOpts := []ltimiddleware.Option{
		ltimiddleware.WithValidator(launchValidator),
		ltimiddleware.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			c, exists := r.Context().Value(gin.ContextKey).(*gin.Context)
			if !exists || c == nil {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(err.Error()))
				return
			}
			config.errorHandler(c, err)
		}),
	}
	if config.trustedProxies != nil {
		middlewareOpts = append(middlewareOpts, ltimiddleware.WithTrustedProxies(config.trustedProxies))
	}

	middleware, err := ltimiddleware.New(middlewareOpts...)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		encounteredError := true
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			encounteredError = false
			c.Request = r

			if claims, ok := r.Context().Value(ltimiddleware.ContextKey{}).(*validator.LaunchClaims); ok {
				c.Set(config.contextKey, claims)
			}

			c.Next()
		}

		middleware.CheckLaunch(handler).ServeHTTP(c.Writer, c.Request)

		if encounteredError {
			c.Abort()
		}
	}, nil
}

func defaultGinErrorHandler(c *gin.Context, err error) {
	status := http.StatusUnauthorized
	switch {
	case errors.Is(err, ltimiddleware.ErrMethodNotAllowed):
		status = http.StatusMethodNotAllowed
	case errors.Is(err, ltimiddleware.ErrMalformedBody):
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{
		"message": err.Error(),
	})
}

// GetClaims extracts the validated launch claims from the Gin context.
func GetClaims(c *gin.Context, contextKey string) (*validator.LaunchClaims, error) {
	if contextKey == "" {
		contextKey = DefaultClaimsKey
	}
	claims, exists := c.Get(contextKey)
	if !exists {
		return nil, ErrMissingClaims
	}

	launchClaims, ok := claims.(*validator.LaunchClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	return launchClaims, nil
}
