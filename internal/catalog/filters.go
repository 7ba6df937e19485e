package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/autoplaza/autoplaza/internal/models"
)

// Filters describes a catalog search. Every field is optional; the zero value
// of a field means "no constraint on this dimension". Pointer fields
// distinguish "absent" from a legitimate zero bound.
type Filters struct {
	Keyword      string
	Brand        string
	FuelType     models.FuelType
	Transmission models.Transmission
	MinPrice     *float64
	MaxPrice     *float64
	MinYear      *int
	MaxYear      *int
}

// HasPriceBound reports whether any price constraint was supplied.
func (f Filters) HasPriceBound() bool {
	return f.MinPrice != nil || f.MaxPrice != nil
}

// ParseFilters reads search parameters from a query string. Numeric fields
// arrive as text; empty or unparseable values are treated as "no constraint",
// never as an error.
func ParseFilters(values url.Values) Filters {
	return Filters{
		Keyword:      strings.TrimSpace(values.Get("keyword")),
		Brand:        strings.TrimSpace(values.Get("brand")),
		FuelType:     models.FuelType(strings.ToUpper(strings.TrimSpace(values.Get("fuel_type")))),
		Transmission: models.Transmission(strings.ToUpper(strings.TrimSpace(values.Get("transmission")))),
		MinPrice:     parsePrice(values.Get("min_price")),
		MaxPrice:     parsePrice(values.Get("max_price")),
		MinYear:      parseYear(values.Get("min_year")),
		MaxYear:      parseYear(values.Get("max_year")),
	}
}

func parsePrice(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseYear(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}
