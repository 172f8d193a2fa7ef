package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParsePrice normalises user input such as "$1,200.50" into a plain
// non-negative number. Currency symbols, thousands separators and
// surrounding whitespace are stripped before parsing. Anything that still
// does not parse, or parses to a negative or non-finite value, returns an
// error wrapping ErrInvalidPrice.
func ParsePrice(s string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(s)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidPrice)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if err := CheckPrice(v); err != nil {
		return 0, err
	}
	if v == 0 {
		// Drops the sign of -0.
		v = 0
	}
	return v, nil
}

// CheckPrice reports whether v is an acceptable stored price.
func CheckPrice(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: not a finite number", ErrInvalidPrice)
	}
	if v < 0 {
		return fmt.Errorf("%w: must not be negative", ErrInvalidPrice)
	}
	return nil
}

// FormatPrice renders a price with a dollar sign and two decimals.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
