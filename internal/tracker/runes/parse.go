package runes

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MaxParsedQuantity bounds the count accepted in a single parsed token.
const MaxParsedQuantity = 99

// Rejection records an input that could not be applied.
type Rejection struct {
	Input  string
	Reason string
}

// ParseQuantities parses tokens of the form "ber", "ber2" or "Ber x2" into
// rune quantities, merging repeats. Tokens that fail to parse are returned
// as rejections; the remaining tokens are still applied.
func ParseQuantities(t *Table, tokens []string) ([]Quantity, []Rejection) {
	merged := NewMultiset()
	var rejected []Rejection

	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		name, qty, err := splitQuantity(tok)
		if err != nil {
			rejected = append(rejected, Rejection{Input: raw, Reason: err.Error()})
			continue
		}
		r, err := t.Lookup(name)
		if err != nil {
			rejected = append(rejected, Rejection{Input: raw, Reason: err.Error()})
			continue
		}
		// qty is validated positive above.
		_ = merged.Add(r, qty)
	}
	return merged.Quantities(), rejected
}

// splitQuantity separates the trailing digits from a token.
func splitQuantity(tok string) (string, int, error) {
	idx := strings.IndexFunc(tok, unicode.IsDigit)
	if idx < 0 {
		return tok, 1, nil
	}
	name := strings.TrimSpace(tok[:idx])
	// Accept "ber*2" and "ber x2"; a bare trailing x belongs to the name (Vex).
	switch lower := strings.ToLower(name); {
	case strings.HasSuffix(lower, "*"):
		name = strings.TrimSpace(name[:len(name)-1])
	case strings.HasSuffix(lower, " x"):
		name = strings.TrimSpace(name[:len(name)-2])
	}
	if name == "" {
		return "", 0, fmt.Errorf("missing rune name in %q", tok)
	}
	n, err := strconv.Atoi(tok[idx:])
	if err != nil || n < 1 || n > MaxParsedQuantity {
		return "", 0, fmt.Errorf("rune quantity of %q must be between [1, %d]", tok[idx:], MaxParsedQuantity)
	}
	return name, n, nil
}
