package logscope

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/logkit/pkg/attrs"
)

// Header is the request header consulted for an incoming request id.
const Header = "X-Request-ID"

// Middleware attaches a fresh Scope to every request context, guaranteeing
// per-request isolation even when the server reuses goroutines, and opens
// a root attribute scope tagging the request id. The id is taken from the
// X-Request-ID header when present, otherwise generated.
//
// Handlers downstream inherit the scope through the request context and
// may nest further attribute or level scopes inside it.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(Header, requestID)

		scope := New()
		ctx := WithContext(r.Context(), scope)
		_ = scope.WithAttrs(attrs.Map{"request_id": requestID}, func() error {
			next.ServeHTTP(w, r.WithContext(ctx))
			return nil
		})
	})
}
