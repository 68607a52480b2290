package handler

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

const specPath = "/apispec.json"

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
window.onload = function () {
  window.ui = SwaggerUIBundle({ url: {{.SpecURL}}, dom_id: "#swagger-ui" });
};
</script>
</body>
</html>
`))

// DocsHandler serves the OpenAPI document and a Swagger UI page for it.
type DocsHandler struct {
	spec  []byte
	title string
}

// NewDocsHandler renders doc once; the result is served as-is.
func NewDocsHandler(doc *openapi3.T) (*DocsHandler, error) {
	spec, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal api spec: %w", err)
	}
	return &DocsHandler{spec: spec, title: doc.Info.Title}, nil
}

// HandleSpec handles GET /apispec.json requests.
func (h *DocsHandler) HandleSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(h.spec)
}

// HandleDocs handles GET /docs requests.
func (h *DocsHandler) HandleDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	docsPage.Execute(w, struct {
		Title   string
		SpecURL string
	}{Title: h.title, SpecURL: specPath})
}
