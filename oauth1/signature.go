package oauth1

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Param is a single request parameter. Repeated keys are represented by
// multiple Params, preserving their relative order.
type Param struct {
	Key   string
	Value string
}

// ParamSignature is excluded from the signature base string per
// RFC 5849 §3.4.1.3.1.
const ParamSignature = "oauth_signature"

var headerParamExp = regexp.MustCompile(`(\w+)="([^"]*)"`)

// CollectParameters merges the decoded body parameters with any OAuth
// parameters carried in an Authorization header (RFC 5849 §3.4.1.3.1).
// The realm header parameter and oauth_signature are excluded from both
// sources. Body parameters are expected in decoded form; header
// parameter values are percent-decoded here since they are encoded on
// the wire.
func CollectParameters(authorization string, body []Param) []Param {
	collected := make([]Param, 0, len(body)+4)
	for _, p := range body {
		if p.Key == ParamSignature {
			continue
		}
		collected = append(collected, p)
	}

	scheme, rest, _ := strings.Cut(strings.TrimSpace(authorization), " ")
	if !strings.EqualFold(scheme, "OAuth") {
		return collected
	}
	for _, match := range headerParamExp.FindAllStringSubmatch(rest, -1) {
		key, value := match[1], match[2]
		if key == "realm" || key == ParamSignature {
			continue
		}
		collected = append(collected, Param{Key: key, Value: percentDecode(value)})
	}
	return collected
}

// SignatureBaseString assembles the RFC 5849 §3.4.1.1 base string:
//
//	METHOD&enc(base-string-URI)&enc(normalized-parameters)
//
// Parameters must already be collected (see CollectParameters) and in
// decoded form.
func SignatureBaseString(method, rawURL string, params []Param) string {
	return PercentEncode(strings.ToUpper(method)) +
		"&" + PercentEncode(BaseStringURI(rawURL)) +
		"&" + PercentEncode(NormalizeParameters(params))
}

// BaseStringURI reduces a request URL to the base string URI of
// RFC 5849 §3.4.1.2: query and fragment stripped, scheme and host
// lowercased, default ports removed, empty path replaced by "/".
func BaseStringURI(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Unparseable input is kept as-is minus the query; signature
		// verification against it will simply fail.
		base, _, _ := strings.Cut(rawURL, "?")
		return base
	}

	scheme := strings.ToLower(u.Scheme)
	host := stripDefaultPort(strings.ToLower(u.Host), scheme)
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path
}

func stripDefaultPort(host, scheme string) string {
	idx := strings.LastIndex(host, ":")
	if idx < 0 || strings.HasSuffix(host, "]") {
		return host
	}
	port := host[idx+1:]
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		return host[:idx]
	}
	return host
}

// NormalizeParameters encodes, sorts, and joins parameters per
// RFC 5849 §3.4.1.3.2. Ordering compares the encoded key bytes, then
// the encoded value bytes for equal keys.
func NormalizeParameters(params []Param) string {
	encoded := make([]Param, len(params))
	for i, p := range params {
		encoded[i] = Param{Key: PercentEncode(p.Key), Value: PercentEncode(p.Value)}
	}
	sort.Slice(encoded, func(i, j int) bool {
		if encoded[i].Key != encoded[j].Key {
			return encoded[i].Key < encoded[j].Key
		}
		return encoded[i].Value < encoded[j].Value
	})

	pairs := make([]string, len(encoded))
	for i, p := range encoded {
		pairs[i] = p.Key + "=" + p.Value
	}
	return strings.Join(pairs, "&")
}

// SignHMACSHA1 computes the RFC 5849 §3.4.2 signature of the base
// string. The key is the encoded consumer secret followed by "&" with no
// token secret, the single-legged form LTI uses.
func SignHMACSHA1(baseString, consumerSecret string) string {
	mac := hmac.New(sha1.New, []byte(PercentEncode(consumerSecret)+"&"))
	mac.Write([]byte(baseString))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SafeCompare reports whether two signatures are equal without leaking
// the position of the first differing byte.
func SafeCompare(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}

// PercentEncode escapes a string per RFC 5849 §3.6: everything outside
// the RFC 3986 unreserved set is encoded, with uppercase hex digits and
// spaces as %20.
func PercentEncode(src string) string {
	var out strings.Builder
	out.Grow(len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		if isUnreserved(c) {
			out.WriteByte(c)
			continue
		}
		out.WriteByte('%')
		out.WriteByte(upperhex[c>>4])
		out.WriteByte(upperhex[c&0xf])
	}
	return out.String()
}

const upperhex = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

// percentDecode reverses percent encoding. Malformed escape sequences
// are kept as literal bytes rather than rejected.
func percentDecode(src string) string {
	decoded, err := url.PathUnescape(src)
	if err != nil {
		return src
	}
	return decoded
}
