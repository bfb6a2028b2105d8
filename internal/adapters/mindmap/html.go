package mindmap

import (
	"html/template"
	"io"
)

var pageTmpl = template.Must(template.New("mindmap").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  html, body { margin: 0; height: 100%; font-family: Inter, system-ui, Arial, sans-serif; }
  .markmap { width: 100%; height: 100%; }
  .markmap > svg { width: 100%; height: 100%; }
  noscript pre { padding: 18px; }
</style>
<script src="https://cdn.jsdelivr.net/npm/markmap-autoloader@0.16"></script>
</head>
<body>
<div class="markmap">
{{.Outline}}
</div>
<noscript><pre>{{.Fallback}}</pre></noscript>
</body>
</html>
`))

// WriteHTML writes a standalone page that draws the outline with markmap.
// The outline is the text content of the markmap element; browsers without
// scripts get the textual fallback.
func WriteHTML(w io.Writer, title, outline string) error {
	return pageTmpl.Execute(w, struct {
		Title    string
		Outline  string
		Fallback string
	}{
		Title:    title,
		Outline:  outline,
		Fallback: Fallback(outline),
	})
}
