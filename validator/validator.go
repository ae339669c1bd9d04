// Package validator implements LTI v1 launch-request validation: it
// authenticates OAuth 1.0 HMAC-SHA1 signed launch POSTs against a
// registry of consumer credentials and rejects forged, stale, or
// replayed requests. The signature mechanics live in the oauth1
// package; this package orchestrates the end-to-end check.
package validator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/edutools/go-lti-middleware/oauth1"
)

// DefaultClockSkew is the accepted difference between the consumer's
// clock and ours, matching the 30 seconds most LTI tool providers
// allow.
const DefaultClockSkew = 30 * time.Second

// Logger is an optional printf-style logging interface. It matches the
// middleware package's Logger so one implementation serves both.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Validator authenticates launch requests against a read-only consumer
// registry. It is immutable after New and safe for concurrent use; the
// nonce store is the only mutable state and synchronizes internally.
type Validator struct {
	consumers map[string]string
	nonces    NonceStore
	clockSkew time.Duration
	epoch     int64
	logger    Logger
	now       func() time.Time
}

// New builds a Validator. At least one consumer is required (use
// WithConsumers). The process epoch defaults to construction time: any
// launch stamped before it is rejected, closing the replay window a
// restart opens while the nonce store is still empty.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		consumers: make(map[string]string),
		clockSkew: DefaultClockSkew,
		now:       time.Now,
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if len(v.consumers) == 0 {
		return nil, ErrNoConsumers
	}
	if v.nonces == nil {
		v.nonces = NewMemoryNonceStore(v.clockSkew * 3)
	}
	if v.epoch == 0 {
		v.epoch = v.now().Unix()
	}

	return v, nil
}

// ValidateLaunch authenticates a single launch request and returns its
// validated parameter set. launchURL is the full externally visible URL
// the launch was POSTed to, headers the inbound request headers, and
// params the decoded form body (repeated keys keep their order).
//
// Checks run in order and short-circuit at the first failure; every
// returned error matches one sentinel of the rejection taxonomy.
func (v *Validator) ValidateLaunch(ctx context.Context, launchURL string, headers http.Header, params url.Values) (*LaunchClaims, error) {
	_ = ctx

	consumerKey := params.Get(ParamConsumerKey)
	if consumerKey == "" {
		return nil, missingField(ParamConsumerKey)
	}
	secret, registered := v.consumers[consumerKey]
	if !registered {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConsumer, consumerKey)
	}

	signature := params.Get(ParamSignature)
	if signature == "" {
		return nil, missingField(ParamSignature)
	}

	rawTimestamp := params.Get(ParamTimestamp)
	if rawTimestamp == "" {
		return nil, missingField(ParamTimestamp)
	}
	timestamp, err := parseTimestamp(rawTimestamp)
	if err != nil {
		return nil, err
	}
	now := v.now().Unix()
	skew := int64(v.clockSkew / time.Second)
	switch {
	case now-timestamp > skew:
		return nil, fmt.Errorf("%w: %ds in the past", ErrStaleTimestamp, now-timestamp)
	case timestamp-now > skew:
		return nil, fmt.Errorf("%w: %ds in the future", ErrStaleTimestamp, timestamp-now)
	case timestamp < v.epoch:
		return nil, fmt.Errorf("%w: predates process start", ErrStaleTimestamp)
	}

	nonce := params.Get(ParamNonce)
	if nonce == "" {
		return nil, missingField(ParamNonce)
	}
	// Recorded before signature verification so a concurrent duplicate
	// cannot reuse the pair while this request is still being checked.
	if !v.nonces.Remember(timestamp, nonce) {
		return nil, ErrReplayedNonce
	}

	collected := oauth1.CollectParameters(headers.Get("Authorization"), flattenParams(params))
	baseString := oauth1.SignatureBaseString(http.MethodPost, launchURL, collected)
	expected := oauth1.SignHMACSHA1(baseString, secret)
	if !oauth1.SafeCompare(expected, signature) {
		v.debugf("launch rejected: signature mismatch for consumer %q", consumerKey)
		return nil, ErrInvalidSignature
	}

	v.debugf("launch accepted for consumer %q", consumerKey)
	return &LaunchClaims{params: cloneValues(params)}, nil
}

// parseTimestamp accepts integer or fractional second values; anything
// non-numeric is rejected as stale rather than malformed, since either
// way the freshness check cannot pass.
func parseTimestamp(raw string) (int64, error) {
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not numeric", ErrStaleTimestamp, raw)
	}
	return int64(seconds), nil
}

// flattenParams expands the form values into ordered pairs; list-valued
// parameters become one pair per element, preserving relative order.
func flattenParams(params url.Values) []oauth1.Param {
	pairs := make([]oauth1.Param, 0, len(params))
	for key, values := range params {
		for _, value := range values {
			pairs = append(pairs, oauth1.Param{Key: key, Value: value})
		}
	}
	return pairs
}

func (v *Validator) debugf(format string, args ...interface{}) {
	if v.logger != nil {
		v.logger.Debugf(format, args...)
	}
}
