package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/service"
)

func TestUserIdMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		parseErr  error
		wantCode  int
		wantError string
	}{
		{
			name:      "missing header",
			header:    "",
			wantCode:  http.StatusUnauthorized,
			wantError: "missing Authorization header",
		},
		{
			name:      "not bearer",
			header:    "Basic dXNlcjpwYXNz",
			wantCode:  http.StatusUnauthorized,
			wantError: "invalid Authorization header format",
		},
		{
			name:      "no token part",
			header:    "Bearer",
			wantCode:  http.StatusUnauthorized,
			wantError: "invalid Authorization header format",
		},
		{
			name:      "bad token",
			header:    "Bearer expired",
			parseErr:  errors.New("token is expired"),
			wantCode:  http.StatusUnauthorized,
			wantError: "invalid or expired token",
		},
		{
			name:     "valid token",
			header:   "Bearer valid",
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuth{parseID: 42, parseErr: tt.parseErr}
			s := &service.Service{Authorization: auth, Sampler: &mockSampler{}}
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/logger/status", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status=%d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantError != "" {
				var resp map[string]string
				_ = json.Unmarshal(w.Body.Bytes(), &resp)
				if resp["error"] != tt.wantError {
					t.Fatalf("error=%q, want %q", resp["error"], tt.wantError)
				}
			}
			if tt.wantCode == http.StatusOK && auth.lastParseToken != "valid" {
				t.Fatalf("token not forwarded: %q", auth.lastParseToken)
			}
		})
	}
}
