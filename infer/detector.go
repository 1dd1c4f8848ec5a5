// Package infer provides the heuristic structural inferencer: the
// deterministic fallback that derives a module outline from heading and
// list structure alone, with no hosted model involved.
//
// Headings are harvested from four heterogeneous sources (HTML tags,
// markdown syntax, ARIA labels, role attributes) by independent detectors
// whose results are unioned and deduplicated centrally.
package infer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mkowal/docmap"
)

// minTitleLen rejects one- and two-character titles as noise.
const minTitleLen = 3

var (
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	markdownRe    = regexp.MustCompile(`(?m)^(#{1,6})\s*(.+)$`)
	ariaLabelRe   = regexp.MustCompile(`(?i)aria-label=["']([^"']{4,100})["']`)
	roleHeadingRe = regexp.MustCompile(`(?is)<div[^>]*role=["']heading["'][^>]*>(.*?)</div>`)

	// One pattern per heading level; RE2 has no backreferences.
	htmlHeadingRes = buildHTMLHeadingRes()
)

func buildHTMLHeadingRes() [6]*regexp.Regexp {
	var res [6]*regexp.Regexp
	for i := 0; i < 6; i++ {
		res[i] = regexp.MustCompile(fmt.Sprintf(`(?is)<h%d[^>]*>(.*?)</h%d>`, i+1, i+1))
	}
	return res
}

// Compile-time interface verification.
var (
	_ docmap.HeadingDetector = HTMLDetector{}
	_ docmap.HeadingDetector = MarkdownDetector{}
	_ docmap.HeadingDetector = AriaLabelDetector{}
	_ docmap.HeadingDetector = RoleHeadingDetector{}
)

// HTMLDetector finds <h1> through <h6> headings.
type HTMLDetector struct{}

func (HTMLDetector) Scan(text string) []docmap.Heading {
	var headings []docmap.Heading
	for level, re := range htmlHeadingRes {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			title := cleanTitle(text[m[2]:m[3]])
			if len(title) < minTitleLen {
				continue
			}
			headings = append(headings, docmap.Heading{
				Offset: m[0],
				Level:  level + 1,
				Title:  title,
			})
		}
	}
	return headings
}

// MarkdownDetector finds ATX headings (# through ######) at line start.
type MarkdownDetector struct{}

func (MarkdownDetector) Scan(text string) []docmap.Heading {
	var headings []docmap.Heading
	for _, m := range markdownRe.FindAllStringSubmatchIndex(text, -1) {
		title := strings.TrimSpace(text[m[4]:m[5]])
		if len(title) < minTitleLen {
			continue
		}
		headings = append(headings, docmap.Heading{
			Offset: m[0],
			Level:  m[3] - m[2], // hash count
			Title:  title,
		})
	}
	return headings
}

// AriaLabelDetector finds aria-label attribute values, common heading
// stand-ins in SPA-rendered documentation. Labels are assigned a synthetic
// level 3.
type AriaLabelDetector struct{}

func (AriaLabelDetector) Scan(text string) []docmap.Heading {
	var headings []docmap.Heading
	for _, m := range ariaLabelRe.FindAllStringSubmatchIndex(text, -1) {
		title := strings.TrimSpace(text[m[2]:m[3]])
		if title == "" {
			continue
		}
		headings = append(headings, docmap.Heading{
			Offset: m[0],
			Level:  3,
			Title:  title,
		})
	}
	return headings
}

// RoleHeadingDetector finds div elements declaring role="heading",
// assigned a synthetic level 2.
type RoleHeadingDetector struct{}

func (RoleHeadingDetector) Scan(text string) []docmap.Heading {
	var headings []docmap.Heading
	for _, m := range roleHeadingRe.FindAllStringSubmatchIndex(text, -1) {
		title := cleanTitle(text[m[2]:m[3]])
		if len(title) < minTitleLen {
			continue
		}
		headings = append(headings, docmap.Heading{
			Offset: m[0],
			Level:  2,
			Title:  title,
		})
	}
	return headings
}

// Harvest runs all four detectors over text, merges their results sorted by
// offset, and deduplicates by title (first occurrence wins).
//
// ARIA labels are the weakest signal, so a label whose exact title was
// already found by the HTML or markdown detectors is dropped regardless of
// offset order.
func Harvest(text string) []docmap.Heading {
	headings := HTMLDetector{}.Scan(text)
	headings = append(headings, MarkdownDetector{}.Scan(text)...)

	known := make(map[string]struct{}, len(headings))
	for _, h := range headings {
		known[h.Title] = struct{}{}
	}
	for _, h := range (AriaLabelDetector{}).Scan(text) {
		if _, ok := known[h.Title]; ok {
			continue
		}
		headings = append(headings, h)
	}
	headings = append(headings, RoleHeadingDetector{}.Scan(text)...)

	sort.SliceStable(headings, func(i, j int) bool {
		return headings[i].Offset < headings[j].Offset
	})

	seen := make(map[string]struct{}, len(headings))
	unique := headings[:0]
	for _, h := range headings {
		if _, ok := seen[h.Title]; ok {
			continue
		}
		seen[h.Title] = struct{}{}
		unique = append(unique, h)
	}
	return unique
}

// cleanTitle strips inner markup and surrounding whitespace from a heading
// body.
func cleanTitle(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}
