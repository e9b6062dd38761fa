package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chamberhub/bizportal/internal/access"
)

// APIKeyHeader carries the caller's API key.
const APIKeyHeader = "X-API-KEY"

type roleKey struct{}

// RoleFrom returns the role stored by Authorize, or anonymous.
func RoleFrom(ctx context.Context) access.Role {
	if role, ok := ctx.Value(roleKey{}).(access.Role); ok {
		return role
	}
	return access.RoleAnonymous
}

// Authorize resolves the caller's role from the X-API-KEY header and checks
// it against the route policies. Anonymous callers that are refused get 401,
// known callers get 403.
func Authorize(resolver access.Resolver, enforcer *access.Enforcer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := resolver.Resolve(r.Header.Get(APIKeyHeader))
			if err != nil {
				WriteError(w, r, fmt.Errorf("%w: %w", ErrUnauthorized, err), logger)
				return
			}

			allowed, err := enforcer.Allowed(role, canonicalPath(r.URL.Path), r.Method)
			if err != nil {
				WriteError(w, r, fmt.Errorf("check access: %w", err), logger)
				return
			}
			if !allowed {
				if role == access.RoleAnonymous {
					WriteError(w, r, fmt.Errorf("%w: %s header is required", ErrUnauthorized, APIKeyHeader), logger)
					return
				}
				WriteError(w, r, fmt.Errorf("%w: role %s may not %s %s", ErrForbidden, role, r.Method, r.URL.Path), logger)
				return
			}

			ctx := context.WithValue(r.Context(), roleKey{}, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// canonicalPath drops trailing slashes so "/api/services/" is checked as
// "/api/services", the path the router serves it under.
func canonicalPath(path string) string {
	if len(path) > 1 {
		if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
			return trimmed
		}
		return "/"
	}
	return path
}
