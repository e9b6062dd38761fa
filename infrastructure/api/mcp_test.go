package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chamberhub/bizportal"
	"github.com/chamberhub/bizportal/infrastructure/api"
)

func newTestClient(t *testing.T) *bizportal.Client {
	t.Helper()
	tmpDir := t.TempDir()
	client, err := bizportal.New(
		bizportal.WithSQLite(filepath.Join(tmpDir, "test.db")),
		bizportal.WithDataDir(tmpDir),
		bizportal.WithSeed(true),
	)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newHandler(t *testing.T, acc api.Access) http.Handler {
	t.Helper()
	apiServer, err := api.NewAPIServer(newTestClient(t), acc, "1.0.0")
	if err != nil {
		t.Fatalf("create api server: %v", err)
	}
	return apiServer.Handler()
}

func mcpRequest(t *testing.T, method string, id int, params map[string]any) []byte {
	t.Helper()
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return b
}

func postMCP(t *testing.T, handler http.Handler, body []byte, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("Mcp-Session-Id", sessionID)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// initMCPSession sends an initialize request and returns the session ID.
func initMCPSession(t *testing.T, handler http.Handler) string {
	t.Helper()
	body := mcpRequest(t, "initialize", 1, map[string]any{
		"protocolVersion": "2025-06-18",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "0.0.1"},
	})
	w := postMCP(t, handler, body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("initialize: status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	sessionID := w.Header().Get("Mcp-Session-Id")
	if sessionID == "" {
		t.Fatal("initialize did not return a session ID")
	}
	return sessionID
}

// toolResultText decodes the JSON-RPC response from a tools/call and returns
// the text content and whether the tool reported an error.
func toolResultText(t *testing.T, w *httptest.ResponseRecorder) (string, bool) {
	t.Helper()
	var resp struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode tool result: %v", err)
	}
	if len(resp.Result.Content) == 0 {
		return "", resp.Result.IsError
	}
	return resp.Result.Content[0].Text, resp.Result.IsError
}

func TestMCPEndpoint_Initialize(t *testing.T) {
	handler := newHandler(t, api.Access{})

	body := mcpRequest(t, "initialize", 1, map[string]any{
		"protocolVersion": "2025-06-18",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "0.0.1"},
	})
	w := postMCP(t, handler, body, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Result struct {
			ServerInfo struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.ServerInfo.Name != "bizportal" {
		t.Errorf("server name = %q, want bizportal", resp.Result.ServerInfo.Name)
	}
	if resp.Result.ServerInfo.Version != "1.0.0" {
		t.Errorf("server version = %q, want 1.0.0", resp.Result.ServerInfo.Version)
	}
}

func TestMCPEndpoint_ListTools(t *testing.T) {
	handler := newHandler(t, api.Access{})
	sessionID := initMCPSession(t, handler)

	w := postMCP(t, handler, mcpRequest(t, "tools/list", 2, nil), sessionID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	names := map[string]bool{}
	for _, tool := range resp.Result.Tools {
		names[tool.Name] = true
	}
	for _, name := range []string{"search_services", "get_service", "match_services"} {
		if !names[name] {
			t.Errorf("missing %s tool", name)
		}
	}
}

func TestMCPEndpoint_SearchSeededDirectory(t *testing.T) {
	handler := newHandler(t, api.Access{})
	sessionID := initMCPSession(t, handler)

	body := mcpRequest(t, "tools/call", 2, map[string]any{
		"name":      "search_services",
		"arguments": map[string]any{"department": "Membership"},
	})
	w := postMCP(t, handler, body, sessionID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	text, isError := toolResultText(t, w)
	if isError {
		t.Fatalf("tool returned error: %s", text)
	}
	if !strings.Contains(text, "membership-registration") || !strings.Contains(text, "membership-renewal") {
		t.Errorf("expected both membership services, got %s", text)
	}
}

func TestMCPEndpoint_OpenWithKeysConfigured(t *testing.T) {
	handler := newHandler(t, api.Access{StaffKeys: []string{"staff-key"}})
	initMCPSession(t, handler)
}

func TestMCPEndpoint_RejectsInvalidContentType(t *testing.T) {
	handler := newHandler(t, api.Access{})

	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
