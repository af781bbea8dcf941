package rll

import "strings"

// BaseTag extracts the base tag name from an operand-value string: the
// substring up to the first '.' or '[', trimmed. "Motor[1].Status"
// yields "Motor"; "Counts[Index]" yields "Counts".
func BaseTag(text string) string {
	text = strings.TrimSpace(text)
	end := len(text)
	for i, c := range text {
		if c == '.' || c == '[' {
			end = i
			break
		}
	}
	return strings.TrimSpace(text[:end])
}

// TagRefs mines every tag reference out of an operand-value string: the
// base tag itself, plus any tag references found recursively inside
// bracketed array indices (an index can itself be a tag, e.g.
// "Array[Index].Field" references both Array and Index).
func TagRefs(text string) []string {
	var refs []string
	base := BaseTag(text)
	if base != "" {
		refs = append(refs, base)
	}
	refs = append(refs, indexTagRefs(text)...)
	return refs
}

// indexTagRefs walks every top-level bracketed segment in text and mines
// tag references from its contents, recursing into nested brackets.
func indexTagRefs(text string) []string {
	var refs []string
	depth := 0
	start := -1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '[':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ']':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					inner := text[start:i]
					refs = append(refs, TagRefs(inner)...)
					start = -1
				}
			}
		}
	}
	return refs
}
