// Package ltiecho adapts the LTI launch middleware to Echo.
package ltiecho

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	ltimiddleware "github.com/edutools/go-lti-middleware"
	"github.com/edutools/go-lti-middleware/validator"
)

var DefaultClaimsKey = "lti"

// echoMiddlewareConfig holds all configuration for the middleware
type echoMiddlewareConfig struct {
	errorHandler   func(echo.Context, error)
	contextKey     string
	trustedProxies *ltimiddleware.TrustedProxyConfig
}

// NewEchoMiddleware creates an Echo middleware that authenticates LTI
// launch requests. launchValidator is typically a *validator.Validator;
// it must be safe for concurrent use.
func NewEchoMiddleware(launchValidator ltimiddleware.LaunchValidator, opts ...Option) (echo.MiddlewareFunc, error) {
	config := &echoMiddlewareConfig{
		errorHandler: defaultEchoErrorHandler,
		contextKey:   DefaultClaimsKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	middlewareOpts := []ltimiddleware.Option{
		ltimiddleware.WithValidator(launchValidator),
		ltimiddleware.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			e := echo.New()
			c := e.NewContext(r, w)
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

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			encounteredError := true
			var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
				encounteredError = false
				c.SetRequest(r)

				if claims, ok := r.Context().Value(ltimiddleware.ContextKey{}).(*validator.LaunchClaims); ok {
					c.Set(config.contextKey, claims)
				}

				if err := next(c); err != nil {
					c.Error(err)
				}
			}

			middleware.CheckLaunch(handler).ServeHTTP(c.Response(), c.Request())

			if encounteredError {
				return nil
			}
			return nil
		}
	}, nil
}

func defaultEchoErrorHandler(c echo.Context, err error) {
	status := http.StatusUnauthorized
	switch {
	case errors.Is(err, ltimiddleware.ErrMethodNotAllowed):
		status = http.StatusMethodNotAllowed
	case errors.Is(err, ltimiddleware.ErrMalformedBody):
		status = http.StatusBadRequest
	}
	_ = c.JSON(status, map[string]string{
		"message": err.Error(),
	})
}

// GetClaims extracts the validated launch claims from the Echo context
func GetClaims(c echo.Context, contextKey string) (*validator.LaunchClaims, bool) {
	if contextKey == "" {
		contextKey = DefaultClaimsKey
	}
	claims := c.Get(contextKey)
	if claims == nil {
		return nil, false
	}

	launchClaims, ok := claims.(*validator.LaunchClaims)
	return launchClaims, ok
}
