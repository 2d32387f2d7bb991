// Package http provides the page handlers of the web front end.
package http

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} | Receipts and Insights</title></head>
<body>
<nav>
  <a href="/">Receipts and Insights</a>
  <form method="post" action="/logout"><button type="submit">Logout</button></form>
</nav>
<main>
  <h1>{{.Title}}</h1>
  <p>{{.Body}}</p>
</main>
</body>
</html>
`))

type page struct {
	Title string
	Body  string
}

// PageHandler renders the front end's pages.
type PageHandler struct {
	// Logger receives rendering failures.
	Logger *zap.Logger
}

// Home serves the public home page.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, page{
		Title: "Receipts and Insights",
		Body:  "Keep track of your receipts. Sign in to see your landing page.",
	})
}

// Landing serves the protected landing page. It is only reached through the
// session gate; profile details are rendered by the client from its own
// session, the cookie carries none.
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, page{
		Title: "Landing",
		Body:  "this is the landing page",
	})
}

// Health reports that the front end is up.
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *PageHandler) render(w http.ResponseWriter, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, p); err != nil && h.Logger != nil {
		h.Logger.Error("failed to render page", zap.String("title", p.Title), zap.Error(err))
	}
}
