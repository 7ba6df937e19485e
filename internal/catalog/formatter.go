package catalog

import (
	"math"
	"sort"
	"time"

	"github.com/autoplaza/autoplaza/internal/models"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoPrice is the sentinel shown when no available offer can price the car.
const NoPrice = "-"

// Badge wording depends on whether the car never had offers or had offers
// that were all withdrawn. The distinction matters to buyers and must not be
// collapsed.
const (
	BadgeNoOffers          = "no current offers for this car"
	BadgeOffersUnavailable = "offers no longer available"
)

// CarView is the display-ready record for a catalog entry.
type CarView struct {
	ID           uuid.UUID           `json:"id"`
	Brand        string              `json:"brand"`
	Model        string              `json:"model"`
	Year         int                 `json:"year"`
	Color        string              `json:"color"`
	FuelType     models.FuelType     `json:"fuel_type"`
	Transmission models.Transmission `json:"transmission"`
	Price        string              `json:"price"`
	Badge        string              `json:"badge,omitempty"`
	Summary      string              `json:"summary,omitempty"`
	Images       []string            `json:"images"`
	Offers       []OfferView         `json:"offers"`
	PublishedAt  time.Time           `json:"published_at"`
}

type OfferView struct {
	ID             uuid.UUID `json:"id"`
	DealershipID   uuid.UUID `json:"dealership_id"`
	DealershipName string    `json:"dealership_name,omitempty"`
	Price          float64   `json:"price"`
	Available      bool      `json:"available"`
	Notes          string    `json:"notes,omitempty"`
	OfferedAt      time.Time `json:"offered_at"`
}

var pricePrinter = message.NewPrinter(language.English)

// Present derives the display price, badge and summary for one grouped car.
// Only available offers contribute to the price.
func Present(dc DisplayCar) CarView {
	view := CarView{
		ID:           dc.Car.ID,
		Brand:        dc.Car.Brand,
		Model:        dc.Car.Model,
		Year:         dc.Car.Year,
		Color:        dc.Car.Color,
		FuelType:     dc.Car.FuelType,
		Transmission: dc.Car.Transmission,
		Images:       dc.Car.ImageURLs(),
		Offers:       presentOffers(dc.Offers),
		PublishedAt:  dc.Car.CreatedAt,
	}

	available := availableOffers(dc.Offers)

	switch {
	case len(available) == 0 && len(dc.Offers) == 0:
		view.Price = NoPrice
		view.Badge = BadgeNoOffers
	case len(available) == 0:
		view.Price = NoPrice
		view.Badge = BadgeOffersUnavailable
	default:
		min, max := priceBounds(available)
		if min == max {
			view.Price = "from " + FormatPrice(min)
		} else {
			view.Price = FormatPrice(min) + " - " + FormatPrice(max)
		}
	}

	view.Summary = summary(dc.Car, available)
	return view
}

// PresentAll formats every grouped car, preserving order.
func PresentAll(grouped []DisplayCar) []CarView {
	views := make([]CarView, 0, len(grouped))
	for _, dc := range grouped {
		views = append(views, Present(dc))
	}
	return views
}

// FormatPrice renders a price with thousands separators, e.g. "$20,000".
func FormatPrice(price float64) string {
	if price == math.Trunc(price) {
		return pricePrinter.Sprintf("$%d", int64(price))
	}
	return pricePrinter.Sprintf("$%.2f", price)
}

func availableOffers(offers []models.Offer) []models.Offer {
	kept := make([]models.Offer, 0, len(offers))
	for _, offer := range offers {
		if offer.Available {
			kept = append(kept, offer)
		}
	}
	return kept
}

func priceBounds(offers []models.Offer) (min, max float64) {
	min, max = offers[0].Price, offers[0].Price
	for _, offer := range offers[1:] {
		if offer.Price < min {
			min = offer.Price
		}
		if offer.Price > max {
			max = offer.Price
		}
	}
	return min, max
}

// summary prefers dealership notes over the car's own description: first the
// cheapest available offer with notes, then any other available offer with
// notes, and the description only as a last resort.
func summary(car models.Car, available []models.Offer) string {
	byPrice := make([]models.Offer, len(available))
	copy(byPrice, available)
	sort.SliceStable(byPrice, func(i, j int) bool {
		return byPrice[i].Price < byPrice[j].Price
	})

	for _, offer := range byPrice {
		if offer.Notes != "" {
			return offer.Notes
		}
	}
	return car.Description
}

func presentOffers(offers []models.Offer) []OfferView {
	views := make([]OfferView, 0, len(offers))
	for _, offer := range offers {
		view := OfferView{
			ID:           offer.ID,
			DealershipID: offer.DealershipID,
			Price:        offer.Price,
			Available:    offer.Available,
			Notes:        offer.Notes,
			OfferedAt:    offer.CreatedAt,
		}
		if offer.Dealership != nil {
			view.DealershipName = offer.Dealership.BusinessName
		}
		views = append(views, view)
	}
	return views
}
