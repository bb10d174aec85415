package httpx

import (
	"context"
	"net/http"
	"strings"
)

// RequireAnyRole the caller must hold at least one of the provided roles.
func RequireAnyRole(required ...string) Middleware {
	return requireAny(rolesFromCtx, "insufficient_role", required)
}

// RequireAnyPermission the caller must hold at least one of the provided permissions.
func RequireAnyPermission(required ...string) Middleware {
	return requireAny(permissionsFromCtx, "insufficient_permission", required)
}

func requireAny(from func(context.Context) []string, code string, required []string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, s := range required {
		want[s] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, s := range from(r.Context()) {
				if _, ok := want[s]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeForbidden(w, code, required)
		})
	}
}

func writeForbidden(w http.ResponseWriter, code string, required []string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
	WriteError(w, http.StatusForbidden, code, "requires one of: "+strings.Join(required, ", "))
}
