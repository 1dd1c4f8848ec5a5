package infer

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/mkowal/docmap"
)

var (
	listItemRe  = regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`)
	blankLineRe = regexp.MustCompile(`\n\s*\n`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// TierPolicy decides which heading level represents modules.
//
// The defaults encode a common documentation shape: a single page title
// (h1) followed by several h2 sections means the h2s are the modules.
type TierPolicy struct {
	// SoloTitleCount is how many level-1 headings read as a page title
	// rather than a module tier.
	SoloTitleCount int

	// SectionMinimum is the number of level-2 headings that must be
	// exceeded before level 2 is promoted to the module tier.
	SectionMinimum int
}

// DefaultTierPolicy returns the policy used when none is configured.
func DefaultTierPolicy() TierPolicy {
	return TierPolicy{SoloTitleCount: 1, SectionMinimum: 2}
}

// TopLevel selects the module tier for the given headings.
func (p TierPolicy) TopLevel(headings []docmap.Heading) int {
	var h1s, h2s int
	minLevel := 7
	for _, h := range headings {
		switch h.Level {
		case 1:
			h1s++
		case 2:
			h2s++
		}
		if h.Level < minLevel {
			minLevel = h.Level
		}
	}

	switch {
	case h1s == p.SoloTitleCount && h2s > p.SectionMinimum:
		return 2
	case h1s > 0:
		return 1
	case h2s > 0:
		return 2
	default:
		return minLevel
	}
}

// Ensure Heuristic implements docmap.Inferencer at compile time.
var _ docmap.Inferencer = (*Heuristic)(nil)

// Heuristic is the deterministic structural inferencer. It is pure: the
// same input always produces the same outline, offsets are computed over
// the exact text passed in, and it never fails on non-empty input.
type Heuristic struct {
	Tier TierPolicy
}

// NewHeuristic creates a Heuristic with the default tier policy.
func NewHeuristic() *Heuristic {
	return &Heuristic{Tier: DefaultTierPolicy()}
}

// Name identifies the provider for logging.
func (h *Heuristic) Name() string { return "heuristic" }

// Infer derives at most maxModules modules from text.
func (h *Heuristic) Infer(_ context.Context, text string, maxModules int) ([]docmap.Module, error) {
	headings := Harvest(text)
	if len(headings) == 0 {
		return chunkModules(text, maxModules), nil
	}

	top := h.Tier.TopLevel(headings)

	// Top-level headings anchor the modules; their sections span to the
	// next top-level heading or end of text.
	var modules []docmap.Module
	var topOffsets []int
	for i, hd := range headings {
		if hd.Level != top {
			continue
		}
		end := len(text)
		for _, next := range headings[i+1:] {
			if next.Level == top {
				end = next.Offset
				break
			}
		}
		modules = append(modules, docmap.Module{
			Name:        hd.Title,
			Description: describe(text[hd.Offset:end], hd.Title, maxDescriptionLen),
			Submodules:  map[string]string{},
		})
		topOffsets = append(topOffsets, hd.Offset)
	}

	// Deeper headings become submodules of the enclosing module. A
	// sub-heading's own span only reaches the next heading of any level.
	for i, hd := range headings {
		if hd.Level <= top {
			continue
		}
		idx := sort.SearchInts(topOffsets, hd.Offset+1) - 1
		if idx < 0 || idx >= len(modules) {
			continue
		}
		end := len(text)
		if i+1 < len(headings) {
			end = headings[i+1].Offset
		}
		snippet := text[hd.Offset:end]

		if items := listItems(snippet); len(items) > 0 {
			for _, item := range items {
				modules[idx].Submodules[item] = ""
			}
			continue
		}
		modules[idx].Submodules[hd.Title] = subDescription(snippet)
	}

	// Modules that ended with no submodules get a second chance: a flat
	// list without sub-headings anywhere in their full section.
	for i := range modules {
		if len(modules[i].Submodules) > 0 {
			continue
		}
		end := len(text)
		if i+1 < len(topOffsets) {
			end = topOffsets[i+1]
		}
		for _, item := range listItems(text[topOffsets[i]:end]) {
			modules[i].Submodules[item] = ""
		}
	}

	if len(modules) > maxModules {
		modules = modules[:maxModules]
	}
	return modules, nil
}

// chunkModules is the degenerate path for text with no detectable
// structure: blank-line separated chunks become modules.
func chunkModules(text string, maxModules int) []docmap.Module {
	var modules []docmap.Module
	for _, chunk := range blankLineRe.Split(text, -1) {
		if len(modules) >= maxModules {
			break
		}
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		lines := strings.Split(chunk, "\n")
		desc := truncate(chunk, 200)
		if len(lines) > 1 {
			desc = strings.TrimSpace(strings.Join(lines[1:min(3, len(lines))], " "))
		}
		modules = append(modules, docmap.Module{
			Name:        truncate(lines[0], 80),
			Description: desc,
			Submodules:  map[string]string{},
		})
	}
	return modules
}

// listItems extracts cleaned <li> texts from a snippet.
func listItems(snippet string) []string {
	var items []string
	for _, m := range listItemRe.FindAllStringSubmatch(snippet, -1) {
		item := cleanTitle(m[1])
		if len(item) >= minTitleLen {
			items = append(items, item)
		}
	}
	return items
}

// subDescription describes a sub-heading by the first paragraph after it,
// falling back to the section's first 300 characters when no blank-line
// break exists.
func subDescription(snippet string) string {
	stripped := tagRe.ReplaceAllString(snippet, "")
	parts := blankLineRe.Split(stripped, -1)
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		return collapse(parts[1])
	}
	return truncate(collapse(stripped), 300)
}

// collapse normalizes all whitespace runs to single spaces.
func collapse(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
