package infer

import "strings"

// maxDescriptionLen caps generated module descriptions.
const maxDescriptionLen = 400

// fallbackWords is how many words to take when no sentence qualifies.
const fallbackWords = 20

// describe synthesizes a module description from its section text: up to
// two sentences that are neither trivial fragments nor a restatement of
// the title, within the maxLen budget. When nothing qualifies it falls
// back to the section's first words.
func describe(section, title string, maxLen int) string {
	clean := collapse(tagRe.ReplaceAllString(section, ""))
	if clean == "" {
		return ""
	}

	var parts []string
	total := 0
	for _, sentence := range splitSentences(clean) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < 10 || strings.EqualFold(sentence, title) {
			continue
		}
		if total+len(sentence)+1 > maxLen {
			continue
		}
		parts = append(parts, sentence)
		total += len(sentence) + 1
		if len(parts) >= 2 {
			break
		}
	}

	if len(parts) == 0 {
		words := strings.Fields(clean)
		if len(words) > fallbackWords {
			words = words[:fallbackWords]
		}
		fallback := strings.Join(words, " ")
		if strings.EqualFold(fallback, title) {
			return ""
		}
		return fallback
	}
	return strings.Join(parts, " ")
}

// splitSentences splits on sentence-ending punctuation followed by
// whitespace, keeping the punctuation with the preceding sentence.
func splitSentences(s string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(s)-1; i++ {
		if (s[i] == '.' || s[i] == '!' || s[i] == '?') && isSpace(s[i+1]) {
			sentences = append(sentences, s[start:i+1])
			start = i + 2
			for start < len(s) && isSpace(s[start]) {
				start++
			}
			i = start - 1
		}
	}
	if start < len(s) {
		sentences = append(sentences, s[start:])
	}
	return sentences
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
