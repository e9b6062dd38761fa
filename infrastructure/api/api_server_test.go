package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chamberhub/bizportal/infrastructure/api"
)

func serve(handler http.Handler, method, path, key, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if key != "" {
		req.Header.Set("X-API-KEY", key)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAPIServer_RoleAccess(t *testing.T) {
	handler := newHandler(t, api.Access{
		StaffKeys:  []string{"staff-key"},
		MemberKeys: []string{"member-key"},
	})

	tests := []struct {
		name   string
		method string
		path   string
		key    string
		want   int
	}{
		{"public directory", http.MethodGet, "/api/services", "", http.StatusOK},
		{"trailing slash", http.MethodGet, "/api/services/", "", http.StatusOK},
		{"trailing slash on a missing service", http.MethodGet, "/api/services/no-such-service/", "", http.StatusNotFound},
		{"trailing slash on an application", http.MethodGet, "/api/applications/e5f4a3b2-c1d0-4e9f-8a7b-6c5d4e3f2a55/", "", http.StatusOK},
		{"certificate verification", http.MethodGet, "/api/certificates/XX-0000-00000", "", http.StatusNotFound},
		{"hubs need a key", http.MethodGet, "/api/member/deals", "", http.StatusUnauthorized},
		{"member reads hubs", http.MethodGet, "/api/member/deals", "member-key", http.StatusOK},
		{"member cannot open the console", http.MethodGet, "/api/staff/applications", "member-key", http.StatusForbidden},
		{"staff opens the console", http.MethodGet, "/api/staff/applications", "staff-key", http.StatusOK},
		{"staff reads hubs", http.MethodGet, "/api/member/reports", "staff-key", http.StatusOK},
		{"unknown key", http.MethodGet, "/api/services", "stolen", http.StatusUnauthorized},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(handler, tt.method, tt.path, tt.key, "")
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d; body: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestAPIServer_OpenPortalGrantsStaff(t *testing.T) {
	handler := newHandler(t, api.Access{})

	w := serve(handler, http.MethodGet, "/api/staff/applications/stats", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool             `json:"success"`
		Total   int64            `json:"total"`
		Counts  map[string]int64 `json:"counts"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Total != 5 {
		t.Errorf("unexpected stats %+v", resp)
	}
	if resp.Counts["APPROVED"] != 1 {
		t.Errorf("APPROVED = %d, want 1", resp.Counts["APPROVED"])
	}
}

func TestAPIServer_ErrorEnvelopeCarriesCorrelationID(t *testing.T) {
	handler := newHandler(t, api.Access{StaffKeys: []string{"staff-key"}})

	req := httptest.NewRequest(http.MethodGet, "/api/staff/applications", nil)
	req.Header.Set("X-Correlation-ID", "corr-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := w.Header().Get("X-Correlation-ID"); got != "corr-123" {
		t.Errorf("correlation header = %q", got)
	}

	var resp struct {
		Success       bool   `json:"success"`
		Error         string `json:"error"`
		CorrelationID string `json:"correlationId"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error == "" || resp.CorrelationID != "corr-123" {
		t.Errorf("unexpected envelope %+v", resp)
	}
}

func TestAPIServer_Health(t *testing.T) {
	handler := newHandler(t, api.Access{})

	w := serve(handler, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"status":"healthy"`) || !strings.Contains(body, `"ai":false`) {
		t.Errorf("unexpected body %s", body)
	}
}

func TestAPIServer_CORSPreflight(t *testing.T) {
	handler := newHandler(t, api.Access{
		StaffKeys:      []string{"staff-key"},
		AllowedOrigins: []string{"https://portal.example"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/staff/applications", nil)
	req.Header.Set("Origin", "https://portal.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "X-API-KEY")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code >= 300 {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://portal.example" {
		t.Errorf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/services", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow origin %q for foreign origin", got)
	}
}

func TestAPIServer_Docs(t *testing.T) {
	handler := newHandler(t, api.Access{StaffKeys: []string{"staff-key"}})

	w := serve(handler, http.MethodGet, "/docs/", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("docs status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Business Portal API") {
		t.Error("swagger page title missing")
	}

	req := httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil)
	req.Host = "portal.example:9000"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("openapi status = %d", w.Code)
	}

	proxied := httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	proxied.Header.Set("X-Forwarded-Host", "portal.chamber.example")
	pw := httptest.NewRecorder()
	handler.ServeHTTP(pw, proxied)
	if !strings.Contains(pw.Body.String(), `"url":"https://portal.chamber.example/api"`) {
		t.Errorf("proxied server url missing from %.200s", pw.Body.String())
	}

	var doc struct {
		Info struct {
			Version string `json:"version"`
		} `json:"info"`
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
		Paths map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(w.Body).Decode(&doc); err != nil {
		t.Fatalf("decode openapi: %v", err)
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "http://portal.example:9000/api" {
		t.Errorf("servers = %+v", doc.Servers)
	}
	if doc.Info.Version != "1.0.0" {
		t.Errorf("info.version = %q", doc.Info.Version)
	}
	if _, ok := doc.Paths["/applications/{id}/status"]; !ok {
		t.Error("status route missing from openapi document")
	}
}
