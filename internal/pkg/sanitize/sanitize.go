// Package sanitize recovers a bare command string from raw model output.
package sanitize

import "strings"

// Command strips formatting artifacts from model output: surrounding
// whitespace, a wrapping code fence, wrapping backticks and wrapping
// quotes. Unwrapping repeats until a fixed point so the transform is
// idempotent for every input. Interior content is never altered.
func Command(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		next := unwrapOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func unwrapOnce(s string) string {
	s = strings.TrimSpace(s)
	if inner, ok := unwrapFence(s); ok {
		return strings.TrimSpace(inner)
	}
	if inner, ok := unwrapPair(s, '`'); ok {
		return strings.TrimSpace(inner)
	}
	if inner, ok := unwrapPair(s, '"'); ok {
		return strings.TrimSpace(inner)
	}
	if inner, ok := unwrapPair(s, '\''); ok {
		return strings.TrimSpace(inner)
	}
	return s
}

// unwrapFence removes a matching pair of triple-backtick markers when the
// entire text is wrapped, dropping a language tag on the opening fence.
func unwrapFence(s string) (string, bool) {
	if len(s) < 7 || !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") {
		return "", false
	}
	inner := s[3 : len(s)-3]
	if i := strings.IndexByte(inner, '\n'); i >= 0 && isLanguageTag(inner[:i]) {
		inner = inner[i+1:]
	}
	return inner, true
}

// unwrapPair removes one matching pair of wrapping marker characters.
func unwrapPair(s string, marker byte) (string, bool) {
	if len(s) < 2 || s[0] != marker || s[len(s)-1] != marker {
		return "", false
	}
	return s[1 : len(s)-1], true
}

func isLanguageTag(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	for _, r := range line {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
