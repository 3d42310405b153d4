package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profile-platform/internal/http/response"
)

// RequireRoleMiddleware создает middleware, пропускающий только пользователей
// с указанной ролью. Остальным возвращается HTTP 403 Forbidden.
func RequireRoleMiddleware(log *slog.Logger, requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				log.Error("role not found in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			if role != requiredRole {
				log.Error("access denied",
					slog.String("role", role), slog.String("required", requiredRole))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
