// Package config loads LTI middleware settings from a YAML file and
// LTI_* environment variables using viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	ltimiddleware "github.com/edutools/go-lti-middleware"
	"github.com/edutools/go-lti-middleware/validator"
)

// Config carries everything needed to stand up a launch endpoint.
type Config struct {
	// Consumers maps oauth_consumer_key to its shared secret. Secrets
	// are opaque; they are never logged.
	Consumers map[string]string `mapstructure:"consumers"`

	// ClockSkew is the allowed difference between the consumer's clock
	// and ours.
	ClockSkew time.Duration `mapstructure:"clock_skew"`

	// NonceRetention controls how long seen nonces are kept. Zero
	// means three times the clock skew.
	NonceRetention time.Duration `mapstructure:"nonce_retention"`

	// DefaultNextURL is where launches without a custom_next parameter
	// are redirected.
	DefaultNextURL string `mapstructure:"default_next_url"`

	// TrustForwardedProto and TrustForwardedHost control which reverse
	// proxy headers are trusted when reconstructing the launch URL.
	TrustForwardedProto bool `mapstructure:"trust_forwarded_proto"`
	TrustForwardedHost  bool `mapstructure:"trust_forwarded_host"`
}

// ErrNoConsumers is returned when the loaded configuration registers no
// consumer keys.
var ErrNoConsumers = errors.New("config: at least one consumer must be configured")

// Load reads the configuration file at path (YAML) and merges LTI_*
// environment variables over it, e.g. LTI_CLOCK_SKEW=45s or
// LTI_DEFAULT_NEXT_URL=/home. An empty path skips the file and uses
// environment variables and defaults alone.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("clock_skew", validator.DefaultClockSkew)
	v.SetDefault("default_next_url", "/")
	v.SetDefault("trust_forwarded_proto", true)

	v.SetEnvPrefix("LTI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the validator would
// reject.
func (c *Config) Validate() error {
	if len(c.Consumers) == 0 {
		return ErrNoConsumers
	}
	for key, secret := range c.Consumers {
		if key == "" || secret == "" {
			return fmt.Errorf("config: consumer %q has an empty key or secret", key)
		}
	}
	if c.ClockSkew < 0 {
		return fmt.Errorf("config: clock_skew must not be negative, got %s", c.ClockSkew)
	}
	if c.NonceRetention < 0 {
		return fmt.Errorf("config: nonce_retention must not be negative, got %s", c.NonceRetention)
	}
	return nil
}

// ValidatorOptions translates the configuration into validator options.
func (c *Config) ValidatorOptions() []validator.Option {
	opts := []validator.Option{
		validator.WithConsumers(c.Consumers),
	}
	if c.ClockSkew > 0 {
		opts = append(opts, validator.WithClockSkew(c.ClockSkew))
	}
	if c.NonceRetention > 0 {
		opts = append(opts, validator.WithNonceStore(validator.NewMemoryNonceStore(c.NonceRetention)))
	}
	return opts
}

// ProxyConfig translates the configuration into the middleware's proxy
// trust settings.
func (c *Config) ProxyConfig() *ltimiddleware.TrustedProxyConfig {
	return &ltimiddleware.TrustedProxyConfig{
		TrustXForwardedProto: c.TrustForwardedProto,
		TrustXForwardedHost:  c.TrustForwardedHost,
	}
}
