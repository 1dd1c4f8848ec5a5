package docmap

import (
	"encoding/json"
	"math"
	"strings"
)

// Module is a top-level structural unit inferred from documentation.
// The JSON field names are the wire shape shared with hosted inference
// providers and must not change.
type Module struct {
	Name        string            `json:"module"`
	Description string            `json:"Description"`
	Submodules  map[string]string `json:"Submodules"`
	Confidence  float64           `json:"confidence,omitempty"`
}

// Validate returns an error if the module contains invalid fields.
func (m *Module) Validate() error {
	if m.Name == "" {
		return Errorf(EINVALID, "module name required")
	}
	return nil
}

// DisplayConfidence returns the confidence normalized to the [0,1] range.
// Providers occasionally report percentages; values above 1 are divided
// by 100.
func (m *Module) DisplayConfidence() float64 {
	if m.Confidence > 1 {
		return m.Confidence / 100
	}
	return m.Confidence
}

// BackfillConfidence assigns a heuristic confidence score to every module
// that does not carry one. The score rewards longer descriptions and richer
// submodule sets, capped at 0.98 and rounded to two decimals.
func BackfillConfidence(modules []Module) {
	for i := range modules {
		if modules[i].Confidence != 0 {
			continue
		}
		base := 0.5
		descBonus := math.Min(float64(len(modules[i].Description))/200*0.2, 0.2)
		subsBonus := math.Min(float64(len(modules[i].Submodules))/5*0.2, 0.2)
		conf := math.Min(base+descBonus+subsBonus, 0.98)
		modules[i].Confidence = math.Round(conf*100) / 100
	}
}

// ParseModules parses a module array from raw provider output.
// Models routinely wrap the JSON in prose, so the first top-level bracketed
// array substring is extracted before parsing. Parsing never fails: if no
// valid array can be recovered, a single sentinel module is returned that
// carries the (truncated) raw response as its description.
func ParseModules(raw string) []Module {
	candidate := extractJSONArray(raw)
	if candidate != "" {
		var modules []Module
		if err := json.Unmarshal([]byte(candidate), &modules); err == nil {
			for i := range modules {
				if modules[i].Submodules == nil {
					modules[i].Submodules = map[string]string{}
				}
			}
			return modules
		}
	}

	desc := strings.TrimSpace(raw)
	if len(desc) > 200 {
		desc = desc[:200]
	}
	return []Module{{
		Name:        "Parsing Failed",
		Description: "Could not parse model response: " + desc,
		Submodules:  map[string]string{},
	}}
}

// extractJSONArray returns the first top-level bracketed array substring,
// or "" if the input contains no balanced array.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
