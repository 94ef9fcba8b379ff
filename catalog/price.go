package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice parses catalog price text such as "$6.50" or "6.50".
func ParsePrice(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is empty", ErrInvalidPrice, text)
	}

	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", ErrInvalidPrice, text)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is negative", ErrInvalidPrice, text)
	}

	return price, nil
}
