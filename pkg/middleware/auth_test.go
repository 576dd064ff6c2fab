package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"washq/pkg/logger"
)

type stubVerifier struct {
	subject string
	err     error
}

func (s *stubVerifier) VerifyToken(token string) (string, error) {
	return s.subject, s.err
}

func authTestLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name        string
		authHeader  string
		verifier    *stubVerifier
		wantStatus  int
		wantMessage string
		wantSubject string
	}{
		{
			name:        "no header",
			verifier:    &stubVerifier{subject: "admin"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "No token, authorization denied",
		},
		{
			name:        "not a bearer scheme",
			authHeader:  "Basic YWRtaW46cGFzcw==",
			verifier:    &stubVerifier{subject: "admin"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "No token, authorization denied",
		},
		{
			name:        "rejected token",
			authHeader:  "Bearer bad-token",
			verifier:    &stubVerifier{err: errors.New("signature mismatch")},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Token is not valid",
		},
		{
			name:        "valid token",
			authHeader:  "Bearer good-token",
			verifier:    &stubVerifier{subject: "admin"},
			wantStatus:  http.StatusOK,
			wantSubject: "admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSubject string
			handle := RequireAdmin(tt.verifier, authTestLogger())(
				func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
					gotSubject = AdminSubject(r.Context())
					w.WriteHeader(http.StatusOK)
				},
			)

			req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handle(rec, req, nil)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantMessage != "" {
				var resp struct {
					Message string `json:"message"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if resp.Message != tt.wantMessage {
					t.Errorf("expected message %q, got %q", tt.wantMessage, resp.Message)
				}
			}
			if tt.wantSubject != "" && gotSubject != tt.wantSubject {
				t.Errorf("expected subject %q in context, got %q", tt.wantSubject, gotSubject)
			}
		})
	}
}
