package ltimiddleware

import (
	"net/http"
	"strings"
)

// TrustedProxyConfig defines which reverse proxy headers to trust when
// reconstructing the launch URL that tool consumers signed.
//
// SECURITY WARNING: only trust forwarded headers when a reverse proxy in
// front of this service strips client-provided values. In direct
// internet-facing deployments a client can inject these headers, though
// doing so only changes which URL the signature is checked against and
// still requires knowledge of the consumer secret.
//
// LTI deployments almost always sit behind a TLS-terminating proxy, and
// consumers sign the public https URL. A nil config therefore trusts
// X-Forwarded-Proto so that launches validate out of the box; pass an
// explicit zero-value config to disable all header trust.
type TrustedProxyConfig struct {
	// TrustXForwardedProto enables the X-Forwarded-Proto header
	// (https/http scheme).
	TrustXForwardedProto bool

	// TrustXForwardedHost enables the X-Forwarded-Host header
	// (original hostname).
	TrustXForwardedHost bool
}

// defaultProxyConfig preserves the historical behavior of trusting the
// scheme reported by the proxy.
var defaultProxyConfig = &TrustedProxyConfig{
	TrustXForwardedProto: true,
}

// WithTrustedProxies configures trusted proxy headers for launch URL
// reconstruction.
//
// Example:
//
//	middleware, err := ltimiddleware.New(
//	    ltimiddleware.WithValidator(launchValidator),
//	    ltimiddleware.WithTrustedProxies(&ltimiddleware.TrustedProxyConfig{
//	        TrustXForwardedProto: true,
//	        TrustXForwardedHost:  true,
//	    }),
//	)
func WithTrustedProxies(config *TrustedProxyConfig) Option {
	return func(m *LTIMiddleware) error {
		if config == nil {
			return nil
		}
		m.trustedProxies = config
		return nil
	}
}

// WithDirectConnection disables all forwarded header trust. Use this
// when clients connect to the service directly without a reverse proxy.
func WithDirectConnection() Option {
	return WithTrustedProxies(&TrustedProxyConfig{})
}

// reconstructLaunchURL builds the absolute URL the tool consumer signed.
// The scheme and host come from the request, overridden by forwarded
// headers where the proxy config trusts them.
func reconstructLaunchURL(r *http.Request, config *TrustedProxyConfig) string {
	if config == nil {
		config = defaultProxyConfig
	}

	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	host := r.Host

	if config.TrustXForwardedProto {
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = getLeftmost(proto)
		}
	}
	if config.TrustXForwardedHost {
		if hostHeader := r.Header.Get("X-Forwarded-Host"); hostHeader != "" {
			host = getLeftmost(hostHeader)
		}
	}

	return scheme + "://" + host + r.URL.RequestURI()
}

// getLeftmost extracts the leftmost value from a comma-separated header.
// With multiple proxies ("value1, value2") the leftmost value is closest
// to the client.
func getLeftmost(header string) string {
	parts := strings.Split(header, ",")
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(parts[0])
}
