package catalog

import (
	"strconv"
	"strings"

	"github.com/autoplaza/autoplaza/internal/models"
	"github.com/google/uuid"
)

// DisplayCar is a car grouped with every offer referencing it, used for
// catalog display. All offers in Offers share Car.ID. It is computed fresh
// per request and never cached.
type DisplayCar struct {
	Car    models.Car
	Offers []models.Offer
}

// Group joins offers to cars in a single pass over the offer list. Every car
// appears exactly once, in input order, even when it has no offers.
func Group(cars []models.Car, offers []models.Offer) []DisplayCar {
	byCar := make(map[uuid.UUID][]models.Offer, len(cars))
	for _, offer := range offers {
		byCar[offer.CarID] = append(byCar[offer.CarID], offer)
	}

	grouped := make([]DisplayCar, 0, len(cars))
	for _, car := range cars {
		grouped = append(grouped, DisplayCar{
			Car:    car,
			Offers: byCar[car.ID],
		})
	}
	return grouped
}

// Search groups and then keeps only the cars matching ALL supplied filters.
// Input order is preserved, so identical inputs always produce identical
// output.
func Search(cars []models.Car, offers []models.Offer, filters Filters) []DisplayCar {
	grouped := Group(cars, offers)
	result := make([]DisplayCar, 0, len(grouped))
	for _, dc := range grouped {
		if matches(dc, filters) {
			result = append(result, dc)
		}
	}
	return result
}

// GroupByID returns the display view of a single car, or false when the id is
// unknown.
func GroupByID(cars []models.Car, offers []models.Offer, carID uuid.UUID) (DisplayCar, bool) {
	for _, dc := range Group(cars, offers) {
		if dc.Car.ID == carID {
			return dc, true
		}
	}
	return DisplayCar{}, false
}

func matches(dc DisplayCar, f Filters) bool {
	car := dc.Car

	if f.Keyword != "" && !matchesKeyword(car, f.Keyword) {
		return false
	}
	if f.Brand != "" && !containsFold(car.Brand, f.Brand) {
		return false
	}
	if f.FuelType != "" && car.FuelType != f.FuelType {
		return false
	}
	if f.Transmission != "" && car.Transmission != f.Transmission {
		return false
	}
	if f.MinYear != nil && car.Year < *f.MinYear {
		return false
	}
	if f.MaxYear != nil && car.Year > *f.MaxYear {
		return false
	}
	if f.HasPriceBound() && !anyOfferInRange(dc.Offers, f.MinPrice, f.MaxPrice) {
		return false
	}
	return true
}

// matchesKeyword checks a case-insensitive substring against brand, model,
// color and the year rendered as text.
func matchesKeyword(car models.Car, keyword string) bool {
	return containsFold(car.Brand, keyword) ||
		containsFold(car.Model, keyword) ||
		containsFold(car.Color, keyword) ||
		strings.Contains(strconv.Itoa(car.Year), keyword)
}

// anyOfferInRange reports whether at least one available offer has a price
// within the inclusive [min, max] bounds. A car whose offers are all
// unavailable (or that has none) can never satisfy a price bound.
func anyOfferInRange(offers []models.Offer, min, max *float64) bool {
	for _, offer := range offers {
		if !offer.Available {
			continue
		}
		if min != nil && offer.Price < *min {
			continue
		}
		if max != nil && offer.Price > *max {
			continue
		}
		return true
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
