package ltimiddleware

import (
	"fmt"
	"net/http"
	"time"
)

// LTIMiddleware authenticates LTI launch requests before handing them to
// the wrapped handler.
type LTIMiddleware struct {
	validator      LaunchValidator
	errorHandler   ErrorHandler
	trustedProxies *TrustedProxyConfig
	logger         Logger
	metrics        Metrics
	tracer         Tracer
}

// New constructs a new LTIMiddleware instance with the supplied options.
// All parameters are passed via options; WithValidator is required.
//
// Example:
//
//	launchValidator, err := validator.New(
//	    validator.WithConsumer("my-key", "my-secret"),
//	)
//	if err != nil {
//	    log.Fatalf("failed to set up validator: %v", err)
//	}
//
//	middleware, err := ltimiddleware.New(
//	    ltimiddleware.WithValidator(launchValidator),
//	)
//	if err != nil {
//	    log.Fatalf("failed to create middleware: %v", err)
//	}
func New(opts ...Option) (*LTIMiddleware, error) {
	m := &LTIMiddleware{}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if m.validator == nil {
		return nil, fmt.Errorf("invalid middleware configuration: %w", ErrValidatorNil)
	}

	m.applyDefaults()

	return m, nil
}

// applyDefaults sets default values for optional fields.
func (m *LTIMiddleware) applyDefaults() {
	if m.errorHandler == nil {
		m.errorHandler = DefaultErrorHandler
	}
	if m.logger == nil {
		m.logger = &DefaultLogger{}
	}
	if m.metrics == nil {
		m.metrics = &NoopMetrics{}
	}
	if m.tracer == nil {
		m.tracer = &NoopTracer{}
	}
}

// CheckLaunch is the main LTIMiddleware function which performs the main
// logic. It is passed a http.Handler which will be called if the launch
// request passes validation. The validated claims are stored in the
// request context under ContextKey.
func (m *LTIMiddleware) CheckLaunch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := m.tracer.StartSpan("lti.check_launch")
		defer span.Finish()

		if r.Method != http.MethodPost {
			m.logger.Debugf("rejecting %s request, launches must be POSTs", r.Method)
			m.metrics.IncCounter("lti_launch_rejections_total", map[string]string{"code": rejectionCode(ErrMethodNotAllowed)})
			m.errorHandler(w, r, ErrMethodNotAllowed)
			return
		}

		if err := r.ParseForm(); err != nil {
			m.logger.Warnf("failed to parse launch request body: %v", err)
			m.metrics.IncCounter("lti_launch_rejections_total", map[string]string{"code": rejectionCode(ErrMalformedBody)})
			m.errorHandler(w, r, fmt.Errorf("%w: %v", ErrMalformedBody, err))
			return
		}

		launchURL := reconstructLaunchURL(r, m.trustedProxies)
		span.SetTag("lti.launch_url", launchURL)

		start := time.Now()
		claims, err := m.validator.ValidateLaunch(r.Context(), launchURL, r.Header, r.PostForm)
		m.metrics.ObserveHistogram("lti_launch_validation_seconds", time.Since(start).Seconds(), nil)
		if err != nil {
			wrapped := &rejectionError{details: err}
			code := rejectionCode(wrapped)
			m.logger.Warnf("launch validation failed: %v", err)
			m.metrics.IncCounter("lti_launch_rejections_total", map[string]string{"code": code})
			span.SetTag("lti.rejection_code", code)
			m.errorHandler(w, r, wrapped)
			return
		}

		m.logger.Debugf("launch validated for consumer %q", claims.Get("oauth_consumer_key"))
		m.metrics.IncCounter("lti_launch_accepted_total", nil)

		r = r.Clone(SetLaunchClaims(r.Context(), claims))
		next.ServeHTTP(w, r)
	})
}
