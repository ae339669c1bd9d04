/*
Package ltimiddleware provides HTTP middleware for authenticating LTI v1
launch requests.

An LTI (Learning Tools Interoperability) v1 launch is a form-encoded
HTTP POST signed with OAuth 1.0 HMAC-SHA1 using a shared consumer
key/secret pair. This package validates launches — structural fields,
consumer identity, timestamp freshness, nonce replay, and signature —
and makes the validated parameters available in the request context.
The validation core lives in the validator package; this package is the
net/http transport adapter, with framework adapters for Gin and Echo
under framework/.

# Quick Start

	import (
	    ltimiddleware "github.com/edutools/go-lti-middleware"
	    "github.com/edutools/go-lti-middleware/validator"
	)

	func main() {
	    launchValidator, err := validator.New(
	        validator.WithConsumers(map[string]string{
	            "consumer-key": "consumer-secret",
	        }),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    middleware, err := ltimiddleware.New(
	        ltimiddleware.WithValidator(launchValidator),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    http.Handle("/lti/launch", middleware.CheckLaunch(launchHandler))
	    http.ListenAndServe(":8080", nil)
	}

# Accessing Claims

	func launchHandler(w http.ResponseWriter, r *http.Request) {
	    claims, err := ltimiddleware.GetLaunchClaims(r.Context())
	    if err != nil {
	        http.Error(w, "unauthorized", http.StatusUnauthorized)
	        return
	    }

	    loginName, err := claims.LoginName()
	    if err != nil {
	        http.Error(w, "launch carried no email", http.StatusUnauthorized)
	        return
	    }
	    fmt.Fprintf(w, "Hello, %s!", loginName)
	}

For the common "validate, establish a session, redirect" flow, use
LaunchHandler instead of CheckLaunch: it extracts the login name,
invokes a SessionFunc, and redirects to the launch's custom_next
parameter or a configured default.

# Rejections

Every rejection maps to one sentinel in the validator package
(ErrMissingField, ErrUnknownConsumer, ErrStaleTimestamp,
ErrReplayedNonce, ErrInvalidSignature) and surfaces as a 401 with a
short reason; malformed bodies surface as 400 and non-POST methods as
405. Wrap-aware checks work through ErrLaunchRejected:

	if errors.Is(err, ltimiddleware.ErrLaunchRejected) { ... }

# Reverse Proxies

The launch URL is part of the signed material, so the externally
visible scheme must be reconstructed when the service sits behind a
TLS-terminating proxy. By default the leftmost x-forwarded-proto hop is
trusted when the header is present, matching how LTI tool providers are
commonly deployed. If the service is directly reachable this header is
spoofable; pass an explicit zero TrustedProxyConfig to disable it (see
WithTrustedProxies).

# Thread Safety

An LTIMiddleware is immutable after New and safe for concurrent use.
The nonce store inside the validator is the only shared mutable state
and synchronizes internally, so concurrent duplicates of the same
launch resolve to exactly one success.
*/
package ltimiddleware
