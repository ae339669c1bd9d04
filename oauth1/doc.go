// Package oauth1 implements the parts of RFC 5849 needed to verify
// single-legged OAuth 1.0 signed requests: signature base-string
// construction, parameter collection and normalization, percent
// encoding, and HMAC-SHA1 signing with constant-time comparison.
//
// All functions are pure and safe for concurrent use. The package holds
// no state; replay protection and credential lookup belong to the caller
// (see the validator package).
package oauth1
