package listing

import (
	"bytes"
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

// ExcerptLength bounds card excerpts, in runes.
const ExcerptLength = 110

var (
	markdown  = goldmark.New()
	sanitizer = bluemonday.UGCPolicy()
)

// DescriptionHTML renders a Markdown description to sanitized HTML.
func DescriptionHTML(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// Excerpt returns the plain text of a Markdown description shortened to max runes on a
// word boundary. Shortened text ends with an ellipsis.
func Excerpt(src string, max int) string {
	text := plainText(string(DescriptionHTML(src)))
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := max
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = max
	}
	return strings.TrimRightFunc(string(runes[:cut]), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "…"
}

func plainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the text so far is the result
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken:
			// block boundaries become spaces so paragraphs do not run together
			b.WriteByte(' ')
		}
	}
}
