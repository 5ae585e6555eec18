package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS bool
	}{
		{
			name:     "production mode enables all headers",
			isDev:    false,
			wantHSTS: true,
		},
		{
			name:     "development mode disables HSTS",
			isDev:    true,
			wantHSTS: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSecurityHeadersConfig(tt.isDev)
			handler := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			hsts := rec.Header().Get("Strict-Transport-Security")
			if tt.wantHSTS && hsts == "" {
				t.Error("expected HSTS header but got none")
			}
			if !tt.wantHSTS && hsts != "" {
				t.Errorf("expected no HSTS header but got: %s", hsts)
			}

			csp := rec.Header().Get("Content-Security-Policy")
			if csp == "" {
				t.Error("expected CSP header but got none")
			}
			if !strings.Contains(csp, "default-src 'self'") {
				t.Error("CSP should contain default-src directive")
			}

			if frame := rec.Header().Get("X-Frame-Options"); frame != "SAMEORIGIN" {
				t.Errorf("expected X-Frame-Options: SAMEORIGIN, got: %s", frame)
			}

			if nosniff := rec.Header().Get("X-Content-Type-Options"); nosniff != "nosniff" {
				t.Errorf("expected X-Content-Type-Options: nosniff, got: %s", nosniff)
			}

			if referrer := rec.Header().Get("Referrer-Policy"); referrer != "strict-origin-when-cross-origin" {
				t.Errorf("unexpected Referrer-Policy: %s", referrer)
			}
		})
	}
}

func TestSecurityHeadersCustomCSP(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.ContentSecurityPolicy = "default-src 'none'"

	handler := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if csp := rec.Header().Get("Content-Security-Policy"); csp != "default-src 'none'" {
		t.Errorf("CSP = %q, want the custom policy", csp)
	}
}

func TestBuildCSPOrdering(t *testing.T) {
	csp := buildCSP(map[string]string{
		"form-action": "'self'",
		"default-src": "'self'",
		"img-src":     "'self' data:",
	})

	want := "default-src 'self'; img-src 'self' data:; form-action 'self'"
	if csp != want {
		t.Errorf("buildCSP = %q, want %q", csp, want)
	}
}
