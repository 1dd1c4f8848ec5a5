// Package htmltomarkdown provides a Normalizer that converts documentation
// pages to Markdown instead of plain text. Markdown keeps heading markers in
// the output, which the heading detectors can read directly.
package htmltomarkdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/mkowal/docmap"
	"golang.org/x/net/html"
)

// noiseTags are removed before conversion, matching the plain-text
// normalizer's strip list.
const noiseTags = "script, style, meta, link, header, footer, nav, aside, noscript"

const noiseRoles = `[role="navigation"], [role="banner"], [role="contentinfo"]`

var noiseClassRe = regexp.MustCompile(`(?i)(sidebar|nav|menu|breadcrumb|cookie|popup|ad)`)

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Ensure Normalizer implements docmap.Normalizer at compile time.
var _ docmap.Normalizer = (*Normalizer)(nil)

// Normalizer converts a parsed document to Markdown.
type Normalizer struct {
	conv *converter.Converter
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Normalizer{conv: conv}
}

// Normalize strips non-content chrome from root and converts the remainder
// to Markdown. The input node is not mutated.
func (n *Normalizer) Normalize(root *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", docmap.Errorf(docmap.EINTERNAL, "render document: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return "", docmap.Errorf(docmap.EINVALID, "parse document: %v", err)
	}

	doc.Find(noiseTags).Remove()
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		if class, ok := s.Attr("class"); ok && noiseClassRe.MatchString(class) {
			s.Remove()
		}
	})
	doc.Find(noiseRoles).Remove()

	cleaned, err := doc.Html()
	if err != nil {
		return "", docmap.Errorf(docmap.EINTERNAL, "render cleaned document: %v", err)
	}

	markdown, err := n.conv.ConvertString(cleaned)
	if err != nil {
		return "", docmap.Errorf(docmap.EUNPROCESSABLE, "convert to markdown: %v", err)
	}

	markdown = blankRunRe.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown), nil
}
