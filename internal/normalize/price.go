package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/stylematch/internal/domain/catalog"
)

// Price bucket labels.
const (
	PriceVeryAffordable = "priceveryaffordable"
	PriceAffordable     = "priceaffordable"
	PriceModerate       = "pricemoderate"
	PriceExpensive      = "priceexpensive"
	PriceVeryExpensive  = "priceveryexpensive"
)

// Price returns the single bucket label for a valid price, or nothing.
func Price(p catalog.Price) []string {
	v, ok, err := ParsePrice(p)
	if err != nil || !ok {
		return nil
	}
	return []string{PriceBucket(v)}
}

// PriceBucket maps a price onto half-open ranges closed on the upper end.
// Zero and negative prices fall into the lowest bucket.
func PriceBucket(v float64) string {
	switch {
	case v <= 1000:
		return PriceVeryAffordable
	case v <= 3000:
		return PriceAffordable
	case v <= 6000:
		return PriceModerate
	case v <= 9000:
		return PriceExpensive
	default:
		return PriceVeryExpensive
	}
}

// ParsePrice resolves a price. ok is false for missing prices and NaN.
// Non-numeric text returns ErrMalformedField.
func ParsePrice(p catalog.Price) (v float64, ok bool, err error) {
	switch p.Kind() {
	case catalog.PriceNumeric:
		v = p.Value()
	case catalog.PriceRaw:
		v, err = strconv.ParseFloat(strings.TrimSpace(p.Raw()), 64)
		if err != nil {
			return 0, false, fmt.Errorf("%w: price %q", ErrMalformedField, p.Raw())
		}
	default:
		return 0, false, nil
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	return v, true, nil
}
