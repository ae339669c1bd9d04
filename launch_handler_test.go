package ltimiddleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchHandler(t *testing.T) {
	t.Run("it establishes a session and redirects to custom_next", func(t *testing.T) {
		m := newTestMiddleware(t)

		var gotLogin string
		var gotState url.Values
		handler := m.LaunchHandler(func(w http.ResponseWriter, r *http.Request, loginName string, authState url.Values) error {
			gotLogin = loginName
			gotState = authState
			http.SetCookie(w, &http.Cookie{Name: "session", Value: loginName})
			return nil
		}, "/home")

		params := launchParams()
		params.Set("custom_next", "/course/101")
		body := sign(params, testLaunchURL, testSecret).Encode()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, launchRequest(body))

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/course/101", w.Header().Get("Location"))
		assert.Equal(t, "alice", gotLogin)
		assert.Equal(t, "link-1", gotState.Get("resource_link_id"))
		assert.Empty(t, gotState.Get("oauth_consumer_key"))
		assert.Contains(t, w.Header().Get("Set-Cookie"), "session=alice")
	})

	t.Run("it falls back to the default redirect", func(t *testing.T) {
		m := newTestMiddleware(t)
		handler := m.LaunchHandler(nil, "/home")

		body := sign(launchParams(), testLaunchURL, testSecret).Encode()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, launchRequest(body))

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/home", w.Header().Get("Location"))
	})

	t.Run("it rejects launches without an email", func(t *testing.T) {
		m := newTestMiddleware(t)
		handler := m.LaunchHandler(nil, "/home")

		params := launchParams()
		params.Del("lis_person_contact_email_primary")
		body := sign(params, testLaunchURL, testSecret).Encode()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, launchRequest(body))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("it reports session establishment failures", func(t *testing.T) {
		m := newTestMiddleware(t)
		handler := m.LaunchHandler(func(w http.ResponseWriter, r *http.Request, loginName string, authState url.Values) error {
			return errors.New("session store unavailable")
		}, "/home")

		body := sign(launchParams(), testLaunchURL, testSecret).Encode()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, launchRequest(body))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
