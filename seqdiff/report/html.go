package report

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"

	"znkr.io/ext/seqdiff/highlight"
	"znkr.io/ext/seqdiff/input"
	"znkr.io/ext/seqdiff/report/callouts"
)

// HTML renders r as a minified, self contained HTML page.
func (r *Report) HTML() ([]byte, error) {
	md, err := r.markdown(r.htmlFlavor())
	if err != nil {
		return nil, err
	}
	body, nav, err := render([]byte(md))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = page.Execute(&buf, struct {
		Title string
		CSS   template.CSS
		TOC   template.HTML
		Body  template.HTML
	}{
		Title: fmt.Sprintf("%s → %s", r.From, r.To),
		CSS:   template.CSS(pageCSS),
		TOC:   template.HTML(nav),
		Body:  template.HTML(body),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %v", err)
	}
	return Minify("text/html", buf.Bytes())
}

// render converts markdown to HTML and returns the body and a table of contents.
func render(data []byte) (body, nav []byte, err error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			callouts.Extension,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	root := md.Parser().Parse(text.NewReader(data))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, data, root); err != nil {
		return nil, nil, fmt.Errorf("rendering markdown: %v", err)
	}

	tree, err := toc.Inspect(root, data, toc.MinDepth(2))
	if err != nil {
		return nil, nil, fmt.Errorf("building table of contents: %v", err)
	}
	var tocBuf bytes.Buffer
	if list := toc.RenderList(tree); list != nil {
		if err := md.Renderer().Render(&tocBuf, data, list); err != nil {
			return nil, nil, fmt.Errorf("rendering table of contents: %v", err)
		}
	}
	return buf.Bytes(), tocBuf.Bytes(), nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"~", `\~`,
	"|", "&#124;",
)

func (r *Report) htmlFlavor() flavor {
	var opts []highlight.Option
	if r.Input == input.JSON {
		opts = append(opts, highlight.Lang("json"))
	}
	return flavor{
		code: func(s string) string {
			h, err := highlight.HTML(s, opts...)
			if err != nil {
				h = template.HTML(stdhtml.EscapeString(s))
			}
			return "<code>" + markdownEscaper.Replace(string(h)) + "</code>"
		},
		block: func(s string) string {
			s = strings.TrimRight(s, "\n")
			h, err := highlight.HTML(s, highlight.Lang("diff"))
			if err != nil {
				h = template.HTML(stdhtml.EscapeString(s))
			}
			return `<pre class="explain">` + string(h) + "</pre>\n"
		},
	}
}

var page = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="alternate" type="application/atom+xml" href="feed.atom">
<style>{{.CSS}}</style>
</head>
<body>
{{if .TOC}}<nav>{{.TOC}}</nav>{{end}}
<main>{{.Body}}</main>
</body>
</html>
`))

const pageCSS = `
body { font-family: system-ui, sans-serif; margin: 0 auto; max-width: 72rem; padding: 1rem; }
nav { float: right; margin-left: 2rem; font-size: 0.9rem; }
table { border-collapse: collapse; margin-bottom: 1rem; }
th, td { border-bottom: 1px solid #ddd; padding: 0.2rem 0.6rem; text-align: left; }
code, pre { font-family: ui-monospace, monospace; }
pre.explain { background: #f6f6f6; padding: 0.5rem; overflow-x: auto; }
.callout { border-left: 4px solid #888; padding: 0.2rem 1rem; margin: 1rem 0; }
.callout.changed { border-color: #a0a; }
.callout-title { font-weight: bold; margin: 0.2rem 0; }
.hl-b { font-weight: bold; }
.hl-i { color: #067d17; }
.hl-ii { color: #888; font-style: italic; }
.hl-bl { color: #0033b3; }
.hl-n { color: #1750eb; }
.hl-del { color: #c00; }
.hl-ins { color: #070; }
`
