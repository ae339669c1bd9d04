package ltimiddleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/edutools/go-lti-middleware/validator"
)

// LaunchValidator is the interface the middleware delegates launch
// authentication to. *validator.Validator implements it.
type LaunchValidator interface {
	ValidateLaunch(ctx context.Context, launchURL string, headers http.Header, params url.Values) (*validator.LaunchClaims, error)
}

// Option is how options for the LTIMiddleware are set up.
type Option func(*LTIMiddleware) error

var (
	// ErrValidatorNil is returned when New is called without a launch
	// validator.
	ErrValidatorNil = errors.New("launch validator must not be nil")

	// ErrErrorHandlerNil is returned when WithErrorHandler is given a
	// nil handler.
	ErrErrorHandlerNil = errors.New("error handler must not be nil")
)

// WithValidator sets the launch validator the middleware authenticates
// incoming launch requests with. It is required.
func WithValidator(v LaunchValidator) Option {
	return func(m *LTIMiddleware) error {
		if v == nil {
			return ErrValidatorNil
		}
		m.validator = v
		return nil
	}
}

// WithErrorHandler sets the handler which is called when a launch is
// rejected or the request is malformed.
//
// The default is DefaultErrorHandler, which writes a JSON body with an
// appropriate status code.
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *LTIMiddleware) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		m.errorHandler = h
		return nil
	}
}

// WithLogger sets the logger the middleware reports validation events
// with. The default logs via the standard library log package.
func WithLogger(l Logger) Option {
	return func(m *LTIMiddleware) error {
		if l == nil {
			return errors.New("logger must not be nil")
		}
		m.logger = l
		return nil
	}
}

// WithMetrics sets the metrics sink. The default is NoopMetrics.
func WithMetrics(metrics Metrics) Option {
	return func(m *LTIMiddleware) error {
		if metrics == nil {
			return errors.New("metrics must not be nil")
		}
		m.metrics = metrics
		return nil
	}
}

// WithTracer sets the tracer. The default is NoopTracer.
func WithTracer(tracer Tracer) Option {
	return func(m *LTIMiddleware) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		m.tracer = tracer
		return nil
	}
}
