package ltimiddleware

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/edutools/go-lti-middleware/validator"
)

// SessionFunc establishes an application session for an authenticated
// launch, for example by setting a session cookie. loginName is derived
// from the launch email, and authState carries the non-OAuth launch
// parameters (context, roles, resource link and so on).
type SessionFunc func(w http.ResponseWriter, r *http.Request, loginName string, authState url.Values) error

// LaunchHandler returns a complete http.Handler for an LTI launch
// endpoint. It validates the launch, calls session to establish the
// user's session, and redirects the browser to the URL named by the
// launch's custom_next parameter, falling back to defaultNext.
//
// Launches without a lis_person_contact_email_primary parameter are
// rejected, since no login name can be derived for them.
func (m *LTIMiddleware) LaunchHandler(session SessionFunc, defaultNext string) http.Handler {
	return m.CheckLaunch(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := GetLaunchClaims(r.Context())
		if err != nil {
			m.logger.Errorf("launch claims missing after validation: %v", err)
			m.errorHandler(w, r, err)
			return
		}

		loginName, err := claims.LoginName()
		if err != nil {
			m.logger.Warnf("launch carries no usable email: %v", err)
			m.metrics.IncCounter("lti_launch_rejections_total", map[string]string{"code": validator.Code(err)})
			m.errorHandler(w, r, &rejectionError{details: err})
			return
		}

		if session != nil {
			if err := session(w, r, loginName, claims.AuthState()); err != nil {
				m.logger.Errorf("failed to establish session for %q: %v", loginName, err)
				m.errorHandler(w, r, fmt.Errorf("establishing session: %w", err))
				return
			}
		}

		next := claims.Get("custom_next")
		if next == "" {
			next = defaultNext
		}
		if next == "" {
			next = "/"
		}
		http.Redirect(w, r, next, http.StatusFound)
	}))
}
