// Package api assembles the portal HTTP server: middleware, v1 routes, the
// MCP endpoint and the API documentation.
package api

import (
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chamberhub/bizportal/infrastructure/api/middleware"
)

//go:embed openapi.json
var openapiDocument []byte

var swaggerPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en" dir="ltr">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
    <style>body { margin: 0; background: #fafafa; }</style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" charset="UTF-8"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: {{.SpecURL}},
                dom_id: "#swagger-ui",
                deepLinking: true,
                persistAuthorization: true,
                presets: [SwaggerUIBundle.presets.apis]
            });
        };
    </script>
</body>
</html>`))

// DocsRouter serves Swagger UI and the embedded OpenAPI document.
type DocsRouter struct {
	specURL string
	version string
}

// NewDocsRouter creates a documentation router. A non-empty version replaces
// info.version in the served document.
func NewDocsRouter(specURL, version string) *DocsRouter {
	return &DocsRouter{specURL: specURL, version: version}
}

// Routes returns the chi router for documentation endpoints.
func (d *DocsRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", d.page)
	router.Get("/openapi.json", d.document)
	return router
}

func (d *DocsRouter) page(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = swaggerPage.Execute(w, struct {
		Title   string
		SpecURL string
	}{Title: "Business Portal API", SpecURL: d.specURL})
}

// document points the servers list at the requesting host so "Try it out"
// works behind proxies.
func (d *DocsRouter) document(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.Unmarshal(openapiDocument, &doc); err != nil {
		middleware.WriteError(w, r, err, nil)
		return
	}
	doc["servers"] = []map[string]string{{"url": baseURL(r) + "/api"}}
	if info, ok := doc["info"].(map[string]any); ok && d.version != "" {
		info["version"] = d.version
	}
	middleware.WriteJSON(w, http.StatusOK, doc)
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	host := r.Host
	if forwarded := r.Header.Get("X-Forwarded-Host"); forwarded != "" {
		host = forwarded
	}
	return scheme + "://" + host
}
