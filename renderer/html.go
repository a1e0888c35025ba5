package renderer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"

	"github.com/etnz/stockkeeper"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="zh-Hant">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 56rem; margin: 1rem auto; padding: 0 1rem; color: #1e293b; background: #f8fafc; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; background: #fff; }
th, td { border: 1px solid #e2e8f0; padding: .35rem .5rem; text-align: right; }
th:nth-child(-n+2), td:nth-child(-n+2) { text-align: left; }
.status-danger { color: #e11d48; } .status-warning { color: #f59e0b; } .status-safe { color: #059669; } .status-none { color: #94a3b8; }
img.chart { display: block; margin: 1rem auto; max-width: 100%; }
</style>
</head>
<body class="status-{{.Status}}">
{{.Body}}
{{if .Chart}}<img class="chart" alt="allocation" src="{{.Chart}}">{{end}}
</body>
</html>
`))

// DashboardHTML writes the dashboard of s as a single HTML page to w.
// chart is an optional PNG image (see AllocationChart) embedded in the page.
func DashboardHTML(w io.Writer, s *stockkeeper.Summary, opts Options, chart []byte) error {
	var body bytes.Buffer
	gm := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := gm.Convert([]byte(DashboardMarkdown(s, opts)), &body); err != nil {
		return fmt.Errorf("cannot convert dashboard to html: %w", err)
	}

	data := struct {
		Title  string
		Status string
		Body   template.HTML
		Chart  template.URL
	}{
		Title:  opts.title(),
		Status: s.Maintenance.String(),
		// goldmark escapes raw html by default
		Body: template.HTML(body.String()),
	}
	if len(chart) > 0 {
		data.Chart = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(chart))
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("cannot write dashboard page: %w", err)
	}
	return nil
}
