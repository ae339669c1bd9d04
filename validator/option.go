package validator

import (
	"errors"
	"time"
)

// Option configures a Validator during New. Options return errors so
// misconfiguration surfaces at construction rather than at request
// time.
type Option func(*Validator) error

// Sentinel errors for configuration validation.
var (
	ErrNoConsumers   = errors.New("at least one consumer is required (use WithConsumers)")
	ErrEmptyConsumer = errors.New("consumer key and secret cannot be empty")
	ErrNonceStoreNil = errors.New("nonce store cannot be nil")
	ErrLoggerNil     = errors.New("logger cannot be nil")
)

// WithConsumers registers a consumer key → shared secret mapping. The
// map is copied; the registry is read-only for the validator's
// lifetime. May be combined with WithConsumer.
func WithConsumers(consumers map[string]string) Option {
	return func(v *Validator) error {
		for key, secret := range consumers {
			if key == "" || secret == "" {
				return ErrEmptyConsumer
			}
			v.consumers[key] = secret
		}
		return nil
	}
}

// WithConsumer registers a single consumer key and shared secret.
func WithConsumer(key, secret string) Option {
	return func(v *Validator) error {
		if key == "" || secret == "" {
			return ErrEmptyConsumer
		}
		v.consumers[key] = secret
		return nil
	}
}

// WithClockSkew sets the accepted clock difference between the LTI
// consumer and this process.
//
// Default: DefaultClockSkew (30 seconds).
func WithClockSkew(skew time.Duration) Option {
	return func(v *Validator) error {
		if skew <= 0 {
			return errors.New("clock skew must be positive")
		}
		v.clockSkew = skew
		return nil
	}
}

// WithNonceStore replaces the in-memory nonce store, for deployments
// that want to share replay state or tune retention.
func WithNonceStore(store NonceStore) Option {
	return func(v *Validator) error {
		if store == nil {
			return ErrNonceStoreNil
		}
		v.nonces = store
		return nil
	}
}

// WithProcessEpoch overrides the timestamp floor normally captured at
// construction. Launches stamped before the epoch are rejected as
// stale.
func WithProcessEpoch(epoch time.Time) Option {
	return func(v *Validator) error {
		if epoch.IsZero() {
			return errors.New("process epoch cannot be zero")
		}
		v.epoch = epoch.Unix()
		return nil
	}
}

// WithLogger sets an optional logger. Launch parameters, secrets, and
// signatures are never logged.
func WithLogger(logger Logger) Option {
	return func(v *Validator) error {
		if logger == nil {
			return ErrLoggerNil
		}
		v.logger = logger
		return nil
	}
}
