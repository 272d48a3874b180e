package middleware

import "net/http"

// MaxBodyBytes caps request bodies accepted by the API.
const MaxBodyBytes = 1 << 20

// BodyLimit makes reads past limit bytes fail with *http.MaxBytesError.
func BodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
