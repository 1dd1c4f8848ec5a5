package bloom_test

import (
	"fmt"
	"testing"

	"github.com/mkowal/docmap/bloom"
	"github.com/stretchr/testify/assert"
)

func TestVisited(t *testing.T) {
	t.Parallel()

	t.Run("added URLs are always found", func(t *testing.T) {
		t.Parallel()

		v := bloom.NewVisited(1000, 0.01)
		urls := []string{
			"https://example.com/docs",
			"https://example.com/docs/api",
			"https://example.com/docs/guide",
		}
		for _, u := range urls {
			v.Add(u)
		}
		for _, u := range urls {
			assert.True(t, v.Has(u), u)
		}
	})

	t.Run("unseen URLs are mostly not found", func(t *testing.T) {
		t.Parallel()

		v := bloom.NewVisited(10000, 0.01)
		for i := 0; i < 1000; i++ {
			v.Add(fmt.Sprintf("https://example.com/page/%d", i))
		}

		falsePositives := 0
		for i := 1000; i < 2000; i++ {
			if v.Has(fmt.Sprintf("https://example.com/page/%d", i)) {
				falsePositives++
			}
		}
		// 1% target rate; allow generous slack
		assert.Less(t, falsePositives, 50)
	})

	t.Run("estimated count approximates additions", func(t *testing.T) {
		t.Parallel()

		v := bloom.NewVisited(1000, 0.01)
		for i := 0; i < 100; i++ {
			v.Add(fmt.Sprintf("https://example.com/%d", i))
		}
		count := v.EstimatedCount()
		assert.InDelta(t, 100, count, 10)
	})
}
