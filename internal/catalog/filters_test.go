package catalog

import (
	"net/url"
	"testing"

	"github.com/autoplaza/autoplaza/internal/models"
)

func TestParseFilters_AllFieldsSupplied(t *testing.T) {
	values := url.Values{
		"keyword":      {" corolla "},
		"brand":        {"Toyota"},
		"fuel_type":    {"diesel"},
		"transmission": {"manual"},
		"min_price":    {"15000"},
		"max_price":    {"30000.50"},
		"min_year":     {"2015"},
		"max_year":     {"2022"},
	}

	f := ParseFilters(values)

	if f.Keyword != "corolla" {
		t.Errorf("keyword not trimmed: %q", f.Keyword)
	}
	if f.Brand != "Toyota" {
		t.Errorf("brand = %q", f.Brand)
	}
	if f.FuelType != models.FuelDiesel {
		t.Errorf("fuel type should be upper-cased, got %q", f.FuelType)
	}
	if f.Transmission != models.TransmissionManual {
		t.Errorf("transmission should be upper-cased, got %q", f.Transmission)
	}
	if f.MinPrice == nil || *f.MinPrice != 15000 {
		t.Errorf("min price = %v", f.MinPrice)
	}
	if f.MaxPrice == nil || *f.MaxPrice != 30000.50 {
		t.Errorf("max price = %v", f.MaxPrice)
	}
	if f.MinYear == nil || *f.MinYear != 2015 {
		t.Errorf("min year = %v", f.MinYear)
	}
	if f.MaxYear == nil || *f.MaxYear != 2022 {
		t.Errorf("max year = %v", f.MaxYear)
	}
}

func TestParseFilters_JunkNumericsMeanNoConstraint(t *testing.T) {
	values := url.Values{
		"min_price": {"cheap"},
		"max_price": {""},
		"min_year":  {"two thousand"},
		"max_year":  {"20.22"},
	}

	f := ParseFilters(values)

	if f.MinPrice != nil || f.MaxPrice != nil {
		t.Errorf("unparseable prices must mean no constraint: %v, %v", f.MinPrice, f.MaxPrice)
	}
	if f.MinYear != nil || f.MaxYear != nil {
		t.Errorf("unparseable years must mean no constraint: %v, %v", f.MinYear, f.MaxYear)
	}
	if f.HasPriceBound() {
		t.Error("no price bound should be reported")
	}
}

func TestParseFilters_Empty(t *testing.T) {
	f := ParseFilters(url.Values{})

	if f.Keyword != "" || f.Brand != "" || f.FuelType != "" || f.Transmission != "" {
		t.Error("empty query must produce zero-value string filters")
	}
	if f.MinPrice != nil || f.MaxPrice != nil || f.MinYear != nil || f.MaxYear != nil {
		t.Error("empty query must produce nil numeric filters")
	}
}

func TestParseFilters_ZeroIsAValidBound(t *testing.T) {
	f := ParseFilters(url.Values{"min_price": {"0"}})

	if f.MinPrice == nil || *f.MinPrice != 0 {
		t.Fatalf("a literal 0 is a real bound, got %v", f.MinPrice)
	}
	if !f.HasPriceBound() {
		t.Error("zero bound still counts as a price filter")
	}
}
