package process

import "strings"

// docketDigits is the length of a normalized docket number. The registry
// assigns a fixed 23-digit radicación; callers may write it with hyphens.
const docketDigits = 23

// NormalizeDocket strips separators from a docket number and validates it.
func NormalizeDocket(docket string) (string, error) {
	var b strings.Builder
	for _, r := range docket {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == ' ':
			// separator, ignored
		default:
			return "", ErrInvalidDocket
		}
	}
	normalized := b.String()
	if len(normalized) != docketDigits {
		return "", ErrInvalidDocket
	}
	return normalized, nil
}
