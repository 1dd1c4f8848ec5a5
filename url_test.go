package docmap_test

import (
	"testing"

	"github.com/mkowal/docmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURLs(t *testing.T) {
	t.Parallel()

	t.Run("passes valid URLs through", func(t *testing.T) {
		t.Parallel()

		got, err := docmap.NormalizeURLs([]string{"https://example.com/docs", "http://docs.example.org"})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/docs", "http://docs.example.org"}, got)
	})

	t.Run("prepends https to bare domains", func(t *testing.T) {
		t.Parallel()

		got, err := docmap.NormalizeURLs([]string{"example.com/docs"})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/docs"}, got)
	})

	t.Run("accepts ftp", func(t *testing.T) {
		t.Parallel()

		got, err := docmap.NormalizeURLs([]string{"ftp://files.example.com/readme"})
		require.NoError(t, err)
		assert.Equal(t, []string{"ftp://files.example.com/readme"}, got)
	})

	t.Run("preserves order and drops duplicates", func(t *testing.T) {
		t.Parallel()

		got, err := docmap.NormalizeURLs([]string{
			"https://b.example.com",
			"https://a.example.com",
			"https://b.example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://b.example.com", "https://a.example.com"}, got)
	})

	t.Run("skips blank entries", func(t *testing.T) {
		t.Parallel()

		got, err := docmap.NormalizeURLs([]string{"  ", "https://example.com", ""})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com"}, got)
	})

	t.Run("drops invalid entries when valid ones remain", func(t *testing.T) {
		t.Parallel()

		got, err := docmap.NormalizeURLs([]string{"nodomainhere", "https://example.com"})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com"}, got)
	})

	t.Run("errors listing every problem when nothing survives", func(t *testing.T) {
		t.Parallel()

		_, err := docmap.NormalizeURLs([]string{"nodomainhere", "gopher://example.com"})
		require.Error(t, err)
		assert.Equal(t, docmap.EINVALID, docmap.ErrorCode(err))
		msg := docmap.ErrorMessage(err)
		assert.Contains(t, msg, "nodomainhere")
		assert.Contains(t, msg, "gopher")
	})

	t.Run("errors on empty input", func(t *testing.T) {
		t.Parallel()

		_, err := docmap.NormalizeURLs(nil)
		require.Error(t, err)
		assert.Equal(t, docmap.EINVALID, docmap.ErrorCode(err))
	})

	t.Run("rejects malformed hosts", func(t *testing.T) {
		t.Parallel()

		_, err := docmap.NormalizeURLs([]string{"https://exa mple.com"})
		require.Error(t, err)
		assert.Equal(t, docmap.EINVALID, docmap.ErrorCode(err))
	})
}
