package htmltomarkdown_test

import (
	"strings"
	"testing"

	"github.com/mkowal/docmap/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("converts headings to markdown markers", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><h1>API Reference</h1><h2>Accounts</h2><p>Manage users.</p></body></html>`)
		got, err := htmltomarkdown.NewNormalizer().Normalize(doc)
		require.NoError(t, err)
		assert.Contains(t, got, "# API Reference")
		assert.Contains(t, got, "## Accounts")
		assert.Contains(t, got, "Manage users.")
	})

	t.Run("strips navigation chrome before conversion", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body>
			<nav>Home | Docs</nav>
			<div class="sidebar">On this page</div>
			<div role="contentinfo">Footer links</div>
			<h1>Widgets</h1><p>Widget docs.</p>
		</body></html>`)
		got, err := htmltomarkdown.NewNormalizer().Normalize(doc)
		require.NoError(t, err)
		assert.NotContains(t, got, "Home | Docs")
		assert.NotContains(t, got, "On this page")
		assert.NotContains(t, got, "Footer links")
		assert.Contains(t, got, "# Widgets")
	})

	t.Run("keeps lists as markdown bullets", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><h2>Features</h2><ul><li>Fast</li><li>Typed</li></ul></body></html>`)
		got, err := htmltomarkdown.NewNormalizer().Normalize(doc)
		require.NoError(t, err)
		assert.Contains(t, got, "- Fast")
		assert.Contains(t, got, "- Typed")
	})

	t.Run("does not mutate the input document", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><nav>menu</nav><h1>Title</h1></body></html>`)
		_, err := htmltomarkdown.NewNormalizer().Normalize(doc)
		require.NoError(t, err)

		var hasNav func(*html.Node) bool
		hasNav = func(n *html.Node) bool {
			if n.Type == html.ElementNode && n.Data == "nav" {
				return true
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if hasNav(c) {
					return true
				}
			}
			return false
		}
		assert.True(t, hasNav(doc))
	})

	t.Run("collapses long blank runs", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><p>a</p><p></p><p></p><p></p><p>b</p></body></html>`)
		got, err := htmltomarkdown.NewNormalizer().Normalize(doc)
		require.NoError(t, err)
		assert.NotContains(t, got, "\n\n\n")
	})
}
