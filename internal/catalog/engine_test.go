package catalog

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/autoplaza/autoplaza/internal/models"
	"github.com/google/uuid"
)

func newCar(brand, model string, year int, color string) models.Car {
	return models.Car{
		ID:           uuid.New(),
		Brand:        brand,
		Model:        model,
		Year:         year,
		Color:        color,
		FuelType:     models.FuelGasoline,
		Transmission: models.TransmissionManual,
	}
}

func newOffer(carID uuid.UUID, price float64, available bool) models.Offer {
	return models.Offer{
		ID:           uuid.New(),
		CarID:        carID,
		DealershipID: uuid.New(),
		Price:        price,
		Available:    available,
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestGroup_CarWithoutOffersKeepsEmptyList(t *testing.T) {
	corolla := newCar("Toyota", "Corolla", 2020, "white")
	ranger := newCar("Ford", "Ranger", 2019, "blue")
	offers := []models.Offer{newOffer(corolla.ID, 20000, true)}

	grouped := Group([]models.Car{corolla, ranger}, offers)

	if len(grouped) != 2 {
		t.Fatalf("expected 2 display cars, got %d", len(grouped))
	}
	if len(grouped[0].Offers) != 1 {
		t.Errorf("expected corolla to have 1 offer, got %d", len(grouped[0].Offers))
	}
	if len(grouped[1].Offers) != 0 {
		t.Errorf("expected ranger to have no offers, got %d", len(grouped[1].Offers))
	}
}

func TestGroup_OffersAttachToOwningCar(t *testing.T) {
	corolla := newCar("Toyota", "Corolla", 2020, "white")
	civic := newCar("Honda", "Civic", 2021, "black")
	offers := []models.Offer{
		newOffer(civic.ID, 25000, true),
		newOffer(corolla.ID, 20000, true),
		newOffer(corolla.ID, 22000, true),
	}

	grouped := Group([]models.Car{corolla, civic}, offers)

	for _, dc := range grouped {
		for _, offer := range dc.Offers {
			if offer.CarID != dc.Car.ID {
				t.Errorf("offer %s attached to wrong car %s", offer.ID, dc.Car.ID)
			}
		}
	}
	if len(grouped[0].Offers) != 2 || len(grouped[1].Offers) != 1 {
		t.Errorf("unexpected offer distribution: %d, %d", len(grouped[0].Offers), len(grouped[1].Offers))
	}
}

func TestSearch_KeywordMatchesBrandModelColorYear(t *testing.T) {
	corolla := newCar("Toyota", "Corolla", 2020, "white")
	civic := newCar("Honda", "Civic", 2021, "black")
	cars := []models.Car{corolla, civic}
	offers := []models.Offer{
		newOffer(corolla.ID, 20000, true),
		newOffer(civic.ID, 25000, true),
	}

	tests := []struct {
		keyword string
		want    []string
	}{
		{"Toyota", []string{"Corolla"}},
		{"toyota", []string{"Corolla"}},
		{"civ", []string{"Civic"}},
		{"black", []string{"Civic"}},
		{"2020", []string{"Corolla"}},
		{"nothing", []string{}},
	}

	for _, tt := range tests {
		result := Search(cars, offers, Filters{Keyword: tt.keyword})
		got := make([]string, 0, len(result))
		for _, dc := range result {
			got = append(got, dc.Car.Model)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("keyword %q: got %v, want %v", tt.keyword, got, tt.want)
		}
	}
}

func TestSearch_AllFiltersMustMatch(t *testing.T) {
	corolla := newCar("Toyota", "Corolla", 2020, "white")
	hilux := newCar("Toyota", "Hilux", 2018, "red")
	civic := newCar("Honda", "Civic", 2021, "black")
	cars := []models.Car{corolla, hilux, civic}
	offers := []models.Offer{
		newOffer(corolla.ID, 25000, true),
		newOffer(hilux.ID, 15000, true),
		newOffer(civic.ID, 30000, true),
	}

	result := Search(cars, offers, Filters{
		Brand:    "toyota",
		MinPrice: floatPtr(20000),
	})

	if len(result) != 1 || result[0].Car.Model != "Corolla" {
		t.Fatalf("expected only Corolla (Toyota with offer >= 20000), got %d results", len(result))
	}
}

func TestSearch_PriceBoundsAreInclusive(t *testing.T) {
	corolla := newCar("Toyota", "Corolla", 2020, "white")
	offers := []models.Offer{newOffer(corolla.ID, 20000, true)}

	result := Search([]models.Car{corolla}, offers, Filters{
		MinPrice: floatPtr(20000),
		MaxPrice: floatPtr(20000),
	})
	if len(result) != 1 {
		t.Errorf("offer priced exactly at the bound should match, got %d results", len(result))
	}

	result = Search([]models.Car{corolla}, offers, Filters{MinPrice: floatPtr(20001)})
	if len(result) != 0 {
		t.Errorf("offer below min bound should not match, got %d results", len(result))
	}
}

func TestSearch_PriceFilterExcludesCarsWithoutAvailableOffers(t *testing.T) {
	noOffers := newCar("Ford", "Ranger", 2019, "blue")
	withdrawn := newCar("Fiat", "Cronos", 2022, "gray")
	priced := newCar("Toyota", "Corolla", 2020, "white")
	cars := []models.Car{noOffers, withdrawn, priced}
	offers := []models.Offer{
		newOffer(withdrawn.ID, 18000, false),
		newOffer(priced.ID, 20000, true),
	}

	unfiltered := Search(cars, offers, Filters{})
	if len(unfiltered) != 3 {
		t.Fatalf("without a price filter every car is kept, got %d", len(unfiltered))
	}

	filtered := Search(cars, offers, Filters{MinPrice: floatPtr(1)})
	if len(filtered) != 1 || filtered[0].Car.ID != priced.ID {
		t.Fatalf("a price bound must drop cars with no available offers, got %d results", len(filtered))
	}
}

func TestSearch_YearBoundsInclusiveOnCarYear(t *testing.T) {
	older := newCar("Toyota", "Hilux", 2015, "red")
	newer := newCar("Toyota", "Corolla", 2020, "white")
	cars := []models.Car{older, newer}

	result := Search(cars, nil, Filters{MinYear: intPtr(2015), MaxYear: intPtr(2015)})
	if len(result) != 1 || result[0].Car.Year != 2015 {
		t.Fatalf("expected only the 2015 car, got %d results", len(result))
	}
}

func TestSearch_EnumFiltersAreExact(t *testing.T) {
	diesel := newCar("Toyota", "Hilux", 2018, "red")
	diesel.FuelType = models.FuelDiesel
	diesel.Transmission = models.TransmissionAutomatic
	gasoline := newCar("Toyota", "Corolla", 2020, "white")
	cars := []models.Car{diesel, gasoline}

	result := Search(cars, nil, Filters{FuelType: models.FuelDiesel})
	if len(result) != 1 || result[0].Car.Model != "Hilux" {
		t.Fatalf("fuel type filter should match exactly, got %d results", len(result))
	}

	result = Search(cars, nil, Filters{Transmission: models.TransmissionSemiAutomatic})
	if len(result) != 0 {
		t.Fatalf("no car has a semi-automatic transmission, got %d results", len(result))
	}
}

func TestSearch_OrderIsDeterministic(t *testing.T) {
	cars := []models.Car{
		newCar("Toyota", "Corolla", 2020, "white"),
		newCar("Toyota", "Hilux", 2018, "red"),
		newCar("Toyota", "Yaris", 2021, "blue"),
	}

	first := Search(cars, nil, Filters{Brand: "toyota"})
	second := Search(cars, nil, Filters{Brand: "toyota"})

	if len(first) != 3 {
		t.Fatalf("expected all 3 cars, got %d", len(first))
	}
	for i := range first {
		if first[i].Car.ID != cars[i].ID || first[i].Car.ID != second[i].Car.ID {
			t.Fatalf("result order must follow input order on every run")
		}
	}
}

func TestGroupByID(t *testing.T) {
	corolla := newCar("Toyota", "Corolla", 2020, "white")
	cars := []models.Car{corolla}
	offers := []models.Offer{newOffer(corolla.ID, 20000, true)}

	dc, ok := GroupByID(cars, offers, corolla.ID)
	if !ok {
		t.Fatal("expected to find the car")
	}
	if len(dc.Offers) != 1 {
		t.Errorf("expected 1 offer, got %d", len(dc.Offers))
	}

	if _, ok := GroupByID(cars, offers, uuid.New()); ok {
		t.Error("unknown id should not be found")
	}
}

func TestScenario_KeywordToyotaReturnsCorollaFromPrice(t *testing.T) {
	corolla := newCar("Toyota", "Corolla", 2020, "white")
	civic := newCar("Honda", "Civic", 2021, "black")
	cars := []models.Car{corolla, civic}
	offers := []models.Offer{
		newOffer(corolla.ID, 20000, true),
		newOffer(civic.ID, 25000, true),
	}

	result := Search(cars, offers, ParseFilters(url.Values{"keyword": {"Toyota"}}))
	if len(result) != 1 || result[0].Car.Model != "Corolla" {
		t.Fatalf("expected exactly the Corolla, got %d results", len(result))
	}

	view := Present(result[0])
	if view.Price != "from $20,000" {
		t.Errorf("expected price %q, got %q", "from $20,000", view.Price)
	}
}
