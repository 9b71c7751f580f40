package corpus

import (
	"html"
	"strings"
)

const (
	htmlOpen  = "<html><body><div>"
	htmlClose = "</div></body></html>"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\n", "<br/>",
)

// wrapHTML renders a plain body as a minimal HTML document
func wrapHTML(body string) string {
	return htmlOpen + htmlEscaper.Replace(body) + htmlClose
}

// PlainText undoes wrapHTML; bodies that were never wrapped come back unchanged
func PlainText(body string) string {
	inner, ok := strings.CutPrefix(body, htmlOpen)
	if !ok {
		return body
	}
	inner, ok = strings.CutSuffix(inner, htmlClose)
	if !ok {
		return body
	}
	return html.UnescapeString(strings.ReplaceAll(inner, "<br/>", "\n"))
}
