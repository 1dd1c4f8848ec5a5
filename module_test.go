package docmap_test

import (
	"encoding/json"
	"testing"

	"github.com/mkowal/docmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()
		m := &docmap.Module{Description: "something"}
		err := m.Validate()
		require.Error(t, err)
		assert.Equal(t, docmap.EINVALID, docmap.ErrorCode(err))
	})

	t.Run("accepts a named module", func(t *testing.T) {
		t.Parallel()
		m := &docmap.Module{Name: "Accounts"}
		require.NoError(t, m.Validate())
	})
}

func TestModule_JSON(t *testing.T) {
	t.Parallel()

	t.Run("uses the wire field names", func(t *testing.T) {
		t.Parallel()

		m := docmap.Module{
			Name:        "Accounts",
			Description: "User identity.",
			Submodules:  map[string]string{"tokens": "Token lifecycle."},
			Confidence:  0.9,
		}
		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"module": "Accounts",
			"Description": "User identity.",
			"Submodules": {"tokens": "Token lifecycle."},
			"confidence": 0.9
		}`, string(data))
	})

	t.Run("omits zero confidence", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(docmap.Module{Name: "A", Submodules: map[string]string{}})
		require.NoError(t, err)
		assert.NotContains(t, string(data), "confidence")
	})
}

func TestDisplayConfidence(t *testing.T) {
	t.Parallel()

	t.Run("passes fractions through", func(t *testing.T) {
		t.Parallel()
		m := &docmap.Module{Confidence: 0.85}
		assert.InDelta(t, 0.85, m.DisplayConfidence(), 0.001)
	})

	t.Run("normalizes percentages", func(t *testing.T) {
		t.Parallel()
		m := &docmap.Module{Confidence: 85}
		assert.InDelta(t, 0.85, m.DisplayConfidence(), 0.001)
	})
}

func TestBackfillConfidence(t *testing.T) {
	t.Parallel()

	t.Run("leaves existing scores untouched", func(t *testing.T) {
		t.Parallel()

		modules := []docmap.Module{{Name: "A", Confidence: 0.42}}
		docmap.BackfillConfidence(modules)
		assert.Equal(t, 0.42, modules[0].Confidence)
	})

	t.Run("bare module gets the base score", func(t *testing.T) {
		t.Parallel()

		modules := []docmap.Module{{Name: "A"}}
		docmap.BackfillConfidence(modules)
		assert.InDelta(t, 0.5, modules[0].Confidence, 0.001)
	})

	t.Run("rewards descriptions and submodules up to the cap", func(t *testing.T) {
		t.Parallel()

		long := make([]byte, 300)
		for i := range long {
			long[i] = 'x'
		}
		modules := []docmap.Module{{
			Name:        "A",
			Description: string(long),
			Submodules: map[string]string{
				"a": "", "b": "", "c": "", "d": "", "e": "", "f": "", "g": "",
			},
		}}
		docmap.BackfillConfidence(modules)
		assert.InDelta(t, 0.9, modules[0].Confidence, 0.001)
	})

	t.Run("never exceeds the cap", func(t *testing.T) {
		t.Parallel()

		modules := []docmap.Module{{Name: "A"}}
		docmap.BackfillConfidence(modules)
		assert.LessOrEqual(t, modules[0].Confidence, 0.98)
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		t.Parallel()

		modules := []docmap.Module{{Name: "A", Description: "A short description here."}}
		docmap.BackfillConfidence(modules)
		rounded := float64(int(modules[0].Confidence*100+0.5)) / 100
		assert.Equal(t, rounded, modules[0].Confidence)
	})
}

func TestParseModules(t *testing.T) {
	t.Parallel()

	t.Run("parses a clean array", func(t *testing.T) {
		t.Parallel()

		raw := `[{"module":"Accounts","Description":"Users.","Submodules":{"tokens":"Tokens."}}]`
		modules := docmap.ParseModules(raw)
		require.Len(t, modules, 1)
		assert.Equal(t, "Accounts", modules[0].Name)
		assert.Equal(t, "Tokens.", modules[0].Submodules["tokens"])
	})

	t.Run("extracts the array from surrounding prose", func(t *testing.T) {
		t.Parallel()

		raw := "Here is the outline you asked for:\n```json\n" +
			`[{"module":"Billing","Description":"Invoices.","Submodules":{}}]` +
			"\n```\nLet me know if you need more."
		modules := docmap.ParseModules(raw)
		require.Len(t, modules, 1)
		assert.Equal(t, "Billing", modules[0].Name)
	})

	t.Run("handles brackets inside strings", func(t *testing.T) {
		t.Parallel()

		raw := `[{"module":"Arrays [advanced]","Description":"Covers [] syntax.","Submodules":{}}]`
		modules := docmap.ParseModules(raw)
		require.Len(t, modules, 1)
		assert.Equal(t, "Arrays [advanced]", modules[0].Name)
	})

	t.Run("nil submodules become an empty map", func(t *testing.T) {
		t.Parallel()

		modules := docmap.ParseModules(`[{"module":"A","Description":"d"}]`)
		require.Len(t, modules, 1)
		require.NotNil(t, modules[0].Submodules)
		assert.Empty(t, modules[0].Submodules)
	})

	t.Run("unparseable input yields the sentinel module", func(t *testing.T) {
		t.Parallel()

		modules := docmap.ParseModules("I could not find any modules, sorry.")
		require.Len(t, modules, 1)
		assert.Equal(t, "Parsing Failed", modules[0].Name)
		assert.Contains(t, modules[0].Description, "sorry")
	})

	t.Run("unbalanced array yields the sentinel module", func(t *testing.T) {
		t.Parallel()

		modules := docmap.ParseModules(`[{"module":"A"`)
		require.Len(t, modules, 1)
		assert.Equal(t, "Parsing Failed", modules[0].Name)
	})

	t.Run("sentinel description is truncated", func(t *testing.T) {
		t.Parallel()

		long := make([]byte, 1000)
		for i := range long {
			long[i] = 'z'
		}
		modules := docmap.ParseModules(string(long))
		require.Len(t, modules, 1)
		assert.LessOrEqual(t, len(modules[0].Description), len("Could not parse model response: ")+200)
	})
}
