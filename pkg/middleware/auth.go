package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"washq/pkg/logger"
)

const AdminSubjectKey contextKey = "admin_subject"

// AdminVerifier checks a bearer token and returns the authenticated
// admin identity. Token issuance and verification live in the admin
// service; this middleware only consumes the capability check.
type AdminVerifier interface {
	VerifyToken(token string) (string, error)
}

// AdminSubject returns the authenticated admin identity, or "" for
// unauthenticated requests.
func AdminSubject(ctx context.Context) string {
	if sub, ok := ctx.Value(AdminSubjectKey).(string); ok {
		return sub
	}
	return ""
}

// RequireAdmin wraps a single route with the admin capability check.
// Admin-only routes are a subset of the router, so this is a per-route
// wrapper rather than a whole-router middleware.
func RequireAdmin(verifier AdminVerifier, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			token := extractBearerToken(r)
			if token == "" {
				log.Warn("Admin route called without token",
					"request_id", RequestID(r.Context()),
					"path", r.URL.Path,
				)
				writeUnauthorized(w, "No token, authorization denied")
				return
			}

			subject, err := verifier.VerifyToken(token)
			if err != nil {
				log.Warn("Admin token rejected",
					"request_id", RequestID(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				writeUnauthorized(w, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), AdminSubjectKey, subject)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"` + message + `"}`))
}
