// Package gemini provides a hosted inference provider backed by Google
// Gemini. It is an optional first attempt in the provider chain: any
// transport, auth, or model failure is returned to the caller so the chain
// can fall back to the heuristic inferencer.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkowal/docmap"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// promptBudget caps how much documentation text is sent to the model.
const promptBudget = 8000

// Ensure Inferencer implements docmap.Inferencer at compile time.
var _ docmap.Inferencer = (*Inferencer)(nil)

// Inferencer implements docmap.Inferencer using Google Gemini.
type Inferencer struct {
	client *genai.Client
	model  string
}

// NewInferencer creates a new Inferencer. An empty model selects
// DefaultModel.
func NewInferencer(client *genai.Client, model string) *Inferencer {
	if model == "" {
		model = DefaultModel
	}
	return &Inferencer{client: client, model: model}
}

// Name identifies the provider for logging.
func (i *Inferencer) Name() string { return "gemini" }

// Infer asks the model for a module outline of text.
//
// The response is parsed tolerantly: surrounding prose is stripped before
// JSON parsing, and an unparseable response yields a sentinel module rather
// than an error. Only transport-level failures are returned.
func (i *Inferencer) Infer(ctx context.Context, text string, maxModules int) ([]docmap.Module, error) {
	if strings.TrimSpace(text) == "" {
		return nil, docmap.Errorf(docmap.EINVALID, "text required")
	}

	prompt := BuildPrompt(text)
	config := BuildConfig()

	result, err := i.client.Models.GenerateContent(ctx, i.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, docmap.Errorf(docmap.EUNAVAILABLE, "gemini: %v", err)
	}
	if result == nil {
		return nil, docmap.Errorf(docmap.EINTERNAL, "gemini returned nil result")
	}

	modules := docmap.ParseModules(result.Text())
	if len(modules) > maxModules {
		modules = modules[:maxModules]
	}
	return modules, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a technical documentation analyzer. Extract modules, classes, and features from documentation text and return only valid JSON.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildPrompt builds the user prompt containing the documentation text,
// capped to the prompt budget.
func BuildPrompt(text string) string {
	if len(text) > promptBudget {
		text = text[:promptBudget]
	}

	var sb strings.Builder
	sb.WriteString(`Extract ALL modules, classes, and features from the documentation text.

For each module found, provide:
1. Module name (clear and concise)
2. Detailed description (2-3 sentences)
3. All submodules/classes/features within that module

Return ONLY a valid JSON ARRAY. Include AS MANY modules as you find. Minimum 5 modules.

Format:
[
  {
    "module": "Module name",
    "Description": "Detailed description of what this module does",
    "Submodules": {
      "submodule_1": "What submodule_1 does",
      "submodule_2": "What submodule_2 does"
    }
  }
]

DOCUMENTATION TEXT:
`)
	fmt.Fprintf(&sb, "%s\n", text)
	return sb.String()
}
