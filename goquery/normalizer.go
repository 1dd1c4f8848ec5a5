// Package goquery provides goquery-based implementations of the docmap
// content normalizer and link extractor.
package goquery

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowal/docmap"
	"golang.org/x/net/html"
)

// noiseTags are removed wholesale before text extraction.
const noiseTags = "script, style, meta, link, header, footer, nav, aside, noscript"

// noiseClassRe matches class attributes of chrome elements (sidebars,
// menus, cookie banners, ads).
var noiseClassRe = regexp.MustCompile(`(?i)(sidebar|nav|menu|breadcrumb|cookie|popup|ad)`)

// noiseRoles are ARIA roles of non-content landmarks.
const noiseRoles = `[role="navigation"], [role="banner"], [role="contentinfo"]`

// boilerplateRe matches lines of footer boilerplate by prefix.
var boilerplateRe = regexp.MustCompile(`(?i)^(copyright|©|privacy|terms|cookie|advertisement|ads|share|follow|subscribe)`)

// blankRunRe collapses runs of three or more newlines.
var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Ensure Normalizer implements docmap.Normalizer at compile time.
var _ docmap.Normalizer = (*Normalizer)(nil)

// Normalizer converts a parsed document into clean, structure-preserving
// plain text. Tables and lists are rewritten to textual markers before the
// generic flatten so the structure survives.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize strips non-content chrome from doc and flattens it to text.
// The input node is not mutated: the tree is re-parsed from its rendered
// form before any rewriting.
func (n *Normalizer) Normalize(root *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", docmap.Errorf(docmap.EINTERNAL, "render document: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return "", docmap.Errorf(docmap.EINVALID, "parse document: %v", err)
	}

	// Strip chrome.
	doc.Find(noiseTags).Remove()
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		if class, ok := s.Attr("class"); ok && noiseClassRe.MatchString(class) {
			s.Remove()
		}
	})
	doc.Find(noiseRoles).Remove()

	// Rewrite tables and lists to text while they are still elements.
	// Order matters: a table cell may hold a list, so tables go first and
	// detached elements are skipped on later passes.
	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		if detached(s) {
			return
		}
		replaceWithText(s, tableText(s))
	})
	doc.Find("ul").Each(func(_ int, s *goquery.Selection) {
		if detached(s) {
			return
		}
		replaceWithText(s, listText(s, func(int) string { return "• " }))
	})
	doc.Find("ol").Each(func(_ int, s *goquery.Selection) {
		if detached(s) {
			return
		}
		replaceWithText(s, listText(s, func(i int) string { return fmt.Sprintf("%d. ", i+1) }))
	})

	text := flatten(doc.Selection)
	return tidy(text), nil
}

// tableText renders a table as a "Table:" block with one pipe-joined line
// per row. Rows without cells are skipped; an empty table yields "".
func tableText(table *goquery.Selection) string {
	var rows []string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " | "))
		}
	})
	if len(rows) == 0 {
		return ""
	}
	return "\nTable:\n" + strings.Join(rows, "\n") + "\n"
}

// listText renders a list as one line per direct li child. Nested lists are
// absorbed into their parent item's text.
func listText(list *goquery.Selection, prefix func(i int) string) string {
	var items []string
	list.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		items = append(items, prefix(i)+strings.TrimSpace(li.Text()))
	})
	if len(items) == 0 {
		return ""
	}
	return "\n" + strings.Join(items, "\n") + "\n"
}

// replaceWithText swaps an element for a plain text node.
func replaceWithText(s *goquery.Selection, text string) {
	if text == "" {
		s.Remove()
		return
	}
	for _, node := range s.Nodes {
		if node.Parent == nil {
			continue
		}
		node.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, node)
	}
	s.Remove()
}

// detached reports whether the selection was removed from the document by
// an earlier rewrite pass.
func detached(s *goquery.Selection) bool {
	for _, node := range s.Nodes {
		if node.Parent == nil {
			return true
		}
	}
	return false
}

// flatten walks the tree and joins every text segment with a newline,
// mirroring text extraction with a newline separator.
func flatten(s *goquery.Selection) string {
	var segments []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			segments = append(segments, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, node := range s.Nodes {
		walk(node)
	}
	return strings.Join(segments, "\n")
}

// tidy trims lines, drops boilerplate, and collapses blank-line runs.
func tidy(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && boilerplateRe.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	out := strings.Join(kept, "\n")
	out = blankRunRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
