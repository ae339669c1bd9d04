package oauth1

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Request elements from the RFC 5849 §3.4.1.1 example.
var rfcBodyParams = []Param{
	{Key: "b5", Value: "=%3D"},
	{Key: "a3", Value: "a"},
	{Key: "c@", Value: ""},
	{Key: "a2", Value: "r b"},
	{Key: "c2", Value: ""},
	{Key: "a3", Value: "2 q"},
}

const rfcAuthorizationHeader = `OAuth realm="Example", ` +
	`oauth_consumer_key="9djdj82h48djs9d2", ` +
	`oauth_token="kkk9d7dh3k39sjv7", ` +
	`oauth_signature_method="HMAC-SHA1", ` +
	`oauth_timestamp="137131201", ` +
	`oauth_nonce="7d8f3e4a", ` +
	`oauth_signature="bYT5CMsGcbgUdFHObYMEfcx6bsw%3D"`

const rfcBaseString = "POST&http%3A%2F%2Fexample.com%2Frequest&" +
	"a2%3Dr%2520b%26a3%3D2%2520q%26a3%3Da%26b5%3D%253D%25253D%26" +
	"c%2540%3D%26c2%3D%26oauth_consumer_key%3D9djdj82h48djs9d2%26" +
	"oauth_nonce%3D7d8f3e4a%26oauth_signature_method%3DHMAC-SHA1%26" +
	"oauth_timestamp%3D137131201%26oauth_token%3Dkkk9d7dh3k39sjv7"

func TestSignatureBaseString_RFCExample(t *testing.T) {
	params := CollectParameters(rfcAuthorizationHeader, rfcBodyParams)

	got := SignatureBaseString("post", "http://EXAMPLE.COM/request", params)

	require.Equal(t, rfcBaseString, got)
}

func TestCollectParameters(t *testing.T) {
	testCases := []struct {
		name          string
		authorization string
		body          []Param
		want          []Param
	}{
		{
			name: "it keeps body parameters and drops oauth_signature",
			body: []Param{
				{Key: "a", Value: "1"},
				{Key: ParamSignature, Value: "sig"},
				{Key: "a", Value: "2"},
			},
			want: []Param{{Key: "a", Value: "1"}, {Key: "a", Value: "2"}},
		},
		{
			name:          "it collects decoded oauth header parameters without realm",
			authorization: `OAuth realm="Example", oauth_nonce="7d8f3e4a", oauth_callback="http%3A%2F%2Fclient.example.net%2Fcb"`,
			want: []Param{
				{Key: "oauth_nonce", Value: "7d8f3e4a"},
				{Key: "oauth_callback", Value: "http://client.example.net/cb"},
			},
		},
		{
			name:          "it ignores non-oauth authorization schemes",
			authorization: `Bearer abc.def.ghi`,
			body:          []Param{{Key: "a", Value: "1"}},
			want:          []Param{{Key: "a", Value: "1"}},
		},
		{
			name:          "it excludes oauth_signature from the header",
			authorization: `OAuth oauth_signature="bYT5%3D", oauth_timestamp="137131201"`,
			want:          []Param{{Key: "oauth_timestamp", Value: "137131201"}},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := CollectParameters(testCase.authorization, testCase.body)
			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("collected parameters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBaseStringURI(t *testing.T) {
	testCases := []struct {
		name   string
		rawURL string
		want   string
	}{
		{
			name:   "it strips the query and lowercases scheme and host",
			rawURL: "HTTP://Example.com/request?b5=%3D%253D&a3=a",
			want:   "http://example.com/request",
		},
		{
			name:   "it removes the default http port",
			rawURL: "http://example.com:80/r%20v/X",
			want:   "http://example.com/r%20v/X",
		},
		{
			name:   "it removes the default https port",
			rawURL: "https://example.com:443/launch",
			want:   "https://example.com/launch",
		},
		{
			name:   "it keeps non-default ports",
			rawURL: "https://www.example.net:8080/",
			want:   "https://www.example.net:8080/",
		},
		{
			name:   "it defaults an empty path to slash",
			rawURL: "https://example.com?q=1",
			want:   "https://example.com/",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, BaseStringURI(testCase.rawURL))
		})
	}
}

func TestNormalizeParameters(t *testing.T) {
	got := NormalizeParameters([]Param{
		{Key: "b", Value: "2"},
		{Key: "a", Value: "z"},
		{Key: "a", Value: "b c"},
	})

	assert.Equal(t, "a=b%20c&a=z&b=2", got)
}

func TestPercentEncode(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "abcABC123", want: "abcABC123"},
		{in: "-._~", want: "-._~"},
		{in: "r b", want: "r%20b"},
		{in: "a+b", want: "a%2Bb"},
		{in: "=%3D", want: "%3D%253D"},
		{in: "ñ", want: "%C3%B1"},
		{in: "http://example.com/cb", want: "http%3A%2F%2Fexample.com%2Fcb"},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.want, PercentEncode(testCase.in), "input %q", testCase.in)
	}
}

func TestSignHMACSHA1(t *testing.T) {
	signature := SignHMACSHA1(rfcBaseString, "j49sk3j29djd")

	assert.Equal(t, signature, SignHMACSHA1(rfcBaseString, "j49sk3j29djd"),
		"signing is deterministic")
	assert.NotEqual(t, signature, SignHMACSHA1(rfcBaseString, "another-secret"),
		"a different secret yields a different signature")
	assert.NotEqual(t, signature, SignHMACSHA1(rfcBaseString+"x", "j49sk3j29djd"),
		"a different base string yields a different signature")
}

func TestSafeCompare(t *testing.T) {
	assert.True(t, SafeCompare("bYT5CMsGcbgUdFHObYMEfcx6bsw=", "bYT5CMsGcbgUdFHObYMEfcx6bsw="))
	assert.False(t, SafeCompare("bYT5CMsGcbgUdFHObYMEfcx6bsw=", "xYT5CMsGcbgUdFHObYMEfcx6bsw="))
	assert.False(t, SafeCompare("short", "longer-value"))
}
