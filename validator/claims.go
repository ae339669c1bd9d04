package validator

import (
	"net/url"
	"strings"
)

// Well-known launch parameter names.
const (
	ParamConsumerKey  = "oauth_consumer_key"
	ParamSignature    = "oauth_signature"
	ParamTimestamp    = "oauth_timestamp"
	ParamNonce        = "oauth_nonce"
	ParamPrimaryEmail = "lis_person_contact_email_primary"
)

const oauthParamPrefix = "oauth_"

// LaunchClaims is the validated parameter set of an accepted launch
// request. It is immutable once returned by ValidateLaunch.
type LaunchClaims struct {
	params url.Values
}

// Get returns the first value of the named launch parameter, or "" when
// it is absent.
func (c *LaunchClaims) Get(name string) string {
	return c.params.Get(name)
}

// Values returns all values of the named launch parameter.
func (c *LaunchClaims) Values(name string) []string {
	return c.params[name]
}

// Params returns a copy of the full validated parameter set, including
// the oauth_* protocol parameters.
func (c *LaunchClaims) Params() url.Values {
	return cloneValues(c.params)
}

// LoginName derives the login name from the launch: the local part
// (before "@") of lis_person_contact_email_primary. A launch without
// that parameter fails the overall authentication attempt and returns
// ErrMissingField.
func (c *LaunchClaims) LoginName() (string, error) {
	email := c.Get(ParamPrimaryEmail)
	if email == "" {
		return "", missingField(ParamPrimaryEmail)
	}
	local, _, _ := strings.Cut(email, "@")
	return local, nil
}

// AuthState returns the launch parameters with all oauth_* protocol
// parameters stripped, the form an application should persist as
// session or auth state.
func (c *LaunchClaims) AuthState() url.Values {
	state := make(url.Values, len(c.params))
	for key, values := range c.params {
		if strings.HasPrefix(key, oauthParamPrefix) {
			continue
		}
		state[key] = append([]string(nil), values...)
	}
	return state
}

func cloneValues(values url.Values) url.Values {
	cloned := make(url.Values, len(values))
	for key, vals := range values {
		cloned[key] = append([]string(nil), vals...)
	}
	return cloned
}
