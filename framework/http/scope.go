package http

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/km-arc/go-lifetime/framework/container"
)

type scopeKey struct{}

// ScopeHeader carries the correlation id of the request scope.
const ScopeHeader = "X-Scope-ID"

// ScopeMiddleware opens a container.Scope for every request, stores it in the
// request context and disposes it once the handler returns. Teardown errors
// are logged, never sent to the client.
//
//	router.Middleware(gohttp.ScopeMiddleware(host, logger))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    user := container.MustResolve[*User](gohttp.MustScope(r), "user")
//	}
func ScopeMiddleware(host *container.Host, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, err := host.CreateScope(r.Context())
			if err != nil {
				logger.Error("creating request scope", "path", r.URL.Path, "error", err)
				NewResponse(w).ResolveError(errors.Wrap(err, "creating request scope"))
				return
			}

			id := uuid.NewString()
			w.Header().Set(ScopeHeader, id)

			defer func() {
				// The request context may already be cancelled.
				if err := scope.Dispose(context.WithoutCancel(r.Context())); err != nil {
					logger.Error("disposing request scope", "scope_id", id, "error", err)
				}
			}()

			next.ServeHTTP(w, r.WithContext(WithScope(r.Context(), scope)))
		})
	}
}

// WithScope returns a copy of ctx carrying scope.
func WithScope(ctx context.Context, scope *container.Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFrom returns the request scope stored in ctx.
func ScopeFrom(ctx context.Context) (*container.Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*container.Scope)
	return s, ok
}

// MustScope returns the request scope or panics if ScopeMiddleware is not
// installed.
func MustScope(r *http.Request) *container.Scope {
	s, ok := ScopeFrom(r.Context())
	if !ok {
		panic("http: no request scope; install ScopeMiddleware")
	}
	return s
}
