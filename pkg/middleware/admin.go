package middleware

import (
	"net/http"
)

// AdminHeader is the header carrying the admin API key.
const AdminHeader = "x-admin-key"

// AdminOnly rejects requests that do not carry the configured admin key in the
// x-admin-key header. An empty configured key leaves the routes open;
// single-operator deployments often run without one.
func AdminOnly(adminKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey != "" && r.Header.Get(AdminHeader) != adminKey {
				http.Error(w, "admin api key required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
