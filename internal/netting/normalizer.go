package netting

import "strings"

// Normalizer maps raw instrument symbols to their base ticker.
type Normalizer struct {
	suffixes []string
}

// NewNormalizer returns a Normalizer stripping the first matching suffix of suffixes.
func NewNormalizer(suffixes []string) *Normalizer {
	return &Normalizer{suffixes: append([]string(nil), suffixes...)}
}

// Normalize trims the symbol and removes at most one recognized suffix.
// A symbol made only of a suffix, such as "D", normalizes to "".
func (n *Normalizer) Normalize(symbol string) string {
	s := strings.TrimSpace(symbol)
	for _, suffix := range n.suffixes {
		if strings.HasSuffix(s, suffix) {
			return strings.TrimSuffix(s, suffix)
		}
	}
	return s
}
