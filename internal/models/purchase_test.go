package models

import "testing"

func TestPurchaseStatusTransitions(t *testing.T) {
	statuses := []PurchaseStatus{StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled}

	allowed := map[[2]PurchaseStatus]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusDelivered}: true,
		{StatusConfirmed, StatusCancelled}: true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			got := from.CanTransitionTo(to)
			want := allowed[[2]PurchaseStatus{from, to}]
			if got != want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestSetStatus_LegalTransitionMutates(t *testing.T) {
	purchase := &Purchase{Status: StatusPending}

	if err := purchase.SetStatus(StatusConfirmed); err != nil {
		t.Fatalf("PENDING -> CONFIRMED should succeed: %v", err)
	}
	if purchase.Status != StatusConfirmed {
		t.Errorf("status not updated, got %s", purchase.Status)
	}

	if err := purchase.SetStatus(StatusDelivered); err != nil {
		t.Fatalf("CONFIRMED -> DELIVERED should succeed: %v", err)
	}
}

func TestSetStatus_IllegalTransitionRejected(t *testing.T) {
	purchase := &Purchase{Status: StatusDelivered}

	if err := purchase.SetStatus(StatusPending); err == nil {
		t.Fatal("DELIVERED -> PENDING must be rejected")
	}
	if purchase.Status != StatusDelivered {
		t.Errorf("rejected transition must not mutate, got %s", purchase.Status)
	}

	cancelled := &Purchase{Status: StatusCancelled}
	for _, to := range []PurchaseStatus{StatusPending, StatusConfirmed, StatusDelivered} {
		if err := cancelled.SetStatus(to); err == nil {
			t.Errorf("CANCELLED -> %s must be rejected", to)
		}
	}
}

func TestMarkUnavailable_Idempotent(t *testing.T) {
	offer := &Offer{Available: true}

	offer.MarkUnavailable()
	if offer.Available {
		t.Fatal("offer should be unavailable after first call")
	}

	// Second call is a no-op, not an error.
	offer.MarkUnavailable()
	if offer.Available {
		t.Fatal("offer must stay unavailable after second call")
	}
}

func TestEnumValidity(t *testing.T) {
	if !FuelGNC.Valid() || FuelType("PETROL").Valid() {
		t.Error("fuel type validity check broken")
	}
	if !TransmissionSemiAutomatic.Valid() || Transmission("CVT").Valid() {
		t.Error("transmission validity check broken")
	}
	if !PaymentCheck.Valid() || PaymentMethod("BITCOIN").Valid() {
		t.Error("payment method validity check broken")
	}
	if !StatusDelivered.Valid() || PurchaseStatus("SHIPPED").Valid() {
		t.Error("purchase status validity check broken")
	}
}
