package middleware

import (
	"net/http"

	"github.com/mssola/useragent"

	"passportal/pkg/requestcontext"
)

// Device parses the User-Agent into a short "browser os" description and
// stores it in the context. Audit events attach it so back-office reviewers
// can see which device submitted an application.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := useragent.New(r.UserAgent())
		name, version := ua.Browser()
		device := name + " " + version + " / " + ua.OS()
		if ua.Mobile() {
			device += " (mobile)"
		}
		ctx := requestcontext.WithDevice(r.Context(), device)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
