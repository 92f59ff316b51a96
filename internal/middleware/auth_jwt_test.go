package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAuthJWT(t *testing.T) {
	const secret = "test-secret"
	valid, err := SignJWT(secret, 42, time.Hour)
	if err != nil {
		t.Fatalf("SignJWT error: %v", err)
	}
	expired, _ := SignJWT(secret, 42, -time.Minute)
	foreign, _ := SignJWT("other-secret", 42, time.Hour)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid", header: "Bearer " + valid, status: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, status: http.StatusOK},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized},
		{name: "foreign signature", header: "Bearer " + foreign, status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not.a.token", status: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen int64
			handler := AuthJWT(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			if tc.status == http.StatusOK && seen != 42 {
				t.Fatalf("user id = %d, want 42", seen)
			}
		})
	}
}

func TestVerifyJWTRejectsNonNumericSubject(t *testing.T) {
	token, err := SignJWT("s", 0, time.Hour)
	if err != nil {
		t.Fatalf("SignJWT error: %v", err)
	}
	if _, err := VerifyJWT("s", token); err == nil {
		t.Fatalf("expected error for zero subject")
	}
}
