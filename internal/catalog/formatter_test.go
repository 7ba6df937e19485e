package catalog

import (
	"testing"

	"github.com/autoplaza/autoplaza/internal/models"
)

func TestPresent_NoOffersAtAll(t *testing.T) {
	ranger := newCar("Ford", "Ranger", 2019, "blue")

	view := Present(DisplayCar{Car: ranger})

	if view.Price != NoPrice {
		t.Errorf("expected sentinel price %q, got %q", NoPrice, view.Price)
	}
	if view.Badge != BadgeNoOffers {
		t.Errorf("expected badge %q, got %q", BadgeNoOffers, view.Badge)
	}
}

func TestPresent_OnlyUnavailableOffers(t *testing.T) {
	ranger := newCar("Ford", "Ranger", 2019, "blue")
	withdrawn := newOffer(ranger.ID, 18000, false)

	view := Present(DisplayCar{Car: ranger, Offers: []models.Offer{withdrawn}})

	if view.Price != NoPrice {
		t.Errorf("unavailable offers must not price the car, got %q", view.Price)
	}
	if view.Badge != BadgeOffersUnavailable {
		t.Errorf("expected badge %q, got %q", BadgeOffersUnavailable, view.Badge)
	}
}

func TestPresent_SinglePriceShowsFrom(t *testing.T) {
	corolla := newCar("Toyota", "Corolla", 2020, "white")
	offers := []models.Offer{
		newOffer(corolla.ID, 20000, true),
		newOffer(corolla.ID, 20000, true),
	}

	view := Present(DisplayCar{Car: corolla, Offers: offers})

	if view.Price != "from $20,000" {
		t.Errorf("expected %q, got %q", "from $20,000", view.Price)
	}
	if view.Badge != "" {
		t.Errorf("priced car should carry no badge, got %q", view.Badge)
	}
}

func TestPresent_DifferingPricesShowRange(t *testing.T) {
	corolla := newCar("Toyota", "Corolla", 2020, "white")
	offers := []models.Offer{
		newOffer(corolla.ID, 22000, true),
		newOffer(corolla.ID, 20000, true),
	}

	view := Present(DisplayCar{Car: corolla, Offers: offers})

	if view.Price != "$20,000 - $22,000" {
		t.Errorf("expected %q, got %q", "$20,000 - $22,000", view.Price)
	}
}

func TestPresent_UnavailableOffersExcludedFromRange(t *testing.T) {
	corolla := newCar("Toyota", "Corolla", 2020, "white")
	offers := []models.Offer{
		newOffer(corolla.ID, 5000, false),
		newOffer(corolla.ID, 20000, true),
		newOffer(corolla.ID, 22000, true),
		newOffer(corolla.ID, 90000, false),
	}

	view := Present(DisplayCar{Car: corolla, Offers: offers})

	if view.Price != "$20,000 - $22,000" {
		t.Errorf("unavailable prices leaked into the range: %q", view.Price)
	}
}

func TestPresent_NotesTakePrecedenceOverDescription(t *testing.T) {
	corolla := newCar("Toyota", "Corolla", 2020, "white")
	corolla.Description = "factory description"

	cheap := newOffer(corolla.ID, 20000, true)
	cheap.Notes = "single owner, full service history"
	pricier := newOffer(corolla.ID, 22000, true)
	pricier.Notes = "certified pre-owned"

	view := Present(DisplayCar{Car: corolla, Offers: []models.Offer{pricier, cheap}})
	if view.Summary != "single owner, full service history" {
		t.Errorf("cheapest offer's notes should win, got %q", view.Summary)
	}

	// Notes only on the pricier offer: still preferred over the description.
	cheap.Notes = ""
	view = Present(DisplayCar{Car: corolla, Offers: []models.Offer{pricier, cheap}})
	if view.Summary != "certified pre-owned" {
		t.Errorf("any offer notes beat the description, got %q", view.Summary)
	}

	// No notes anywhere: the description is the fallback.
	pricier.Notes = ""
	view = Present(DisplayCar{Car: corolla, Offers: []models.Offer{pricier, cheap}})
	if view.Summary != "factory description" {
		t.Errorf("expected description fallback, got %q", view.Summary)
	}

	// Notes on an unavailable offer never surface.
	withdrawn := newOffer(corolla.ID, 1000, false)
	withdrawn.Notes = "old listing"
	view = Present(DisplayCar{Car: corolla, Offers: []models.Offer{withdrawn}})
	if view.Summary != "factory description" {
		t.Errorf("withdrawn offer notes must not surface, got %q", view.Summary)
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{20000, "$20,000"},
		{999, "$999"},
		{1250000, "$1,250,000"},
		{19999.5, "$19,999.50"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.price); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestPresentAll_PreservesOrder(t *testing.T) {
	corolla := newCar("Toyota", "Corolla", 2020, "white")
	civic := newCar("Honda", "Civic", 2021, "black")

	views := PresentAll(Group([]models.Car{corolla, civic}, nil))

	if len(views) != 2 || views[0].Model != "Corolla" || views[1].Model != "Civic" {
		t.Fatalf("presentation must preserve grouping order")
	}
}
