package docs

import (
	"html/template"
	"net/http"

	"github.com/angelmondragon/spicy-pepper-shop/api/responses"
)

var swaggerPage = template.Must(template.New("api-docs").Parse(`<!doctype html>
<html>
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>{{.Title}} Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: {{.DocumentURL}},
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>
`))

// DocumentHandler serves the OpenAPI document as JSON.
func DocumentHandler(doc Document) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, doc)
	}
}

// UIHandler serves a Swagger UI page that loads documentURL.
func UIHandler(doc Document, documentURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = swaggerPage.Execute(w, struct {
			Title       string
			DocumentURL string
		}{Title: doc.Info.Title, DocumentURL: documentURL})
	}
}
