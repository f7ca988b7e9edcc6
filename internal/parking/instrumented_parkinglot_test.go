package parking

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInstrumentedParkingLotIntegration(t *testing.T) {
	telemetry, err := NewTelemetryProvider("parking-lot-manager-test", "http://localhost:4318")
	if err != nil {
		t.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		telemetry.Shutdown(ctx)
	}()

	now := time.Now()
	lot := NewParkingLot(3, nil)
	lot.now = func() time.Time { return now }

	ipl, err := NewInstrumentedParkingLot(lot, telemetry)
	if err != nil {
		t.Fatalf("Failed to create instrumented parking lot: %v", err)
	}

	ctx := context.Background()

	if err := ipl.Park(ctx, RestoredVehicle(CategoryCar, "KA01HH1234", now.Add(-time.Hour))); err != nil {
		t.Errorf("Unexpected error: %s", err.Error())
	}

	status := ipl.GetStatus(ctx)
	if len(status) != 1 {
		t.Errorf("Expected 1 parked vehicle, got %d", len(status))
	}

	found, err := ipl.FindByPlate(ctx, "KA01HH1234")
	if err != nil {
		t.Errorf("Unexpected error: %s", err.Error())
	} else if found.Category != CategoryCar {
		t.Errorf("Expected Car, got %s", found.Category)
	}

	receipt, err := ipl.Unpark(ctx, "KA01HH1234")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if receipt.Fee != 20.0 {
		t.Errorf("Expected fee 20.0, got %f", receipt.Fee)
	}
	if ipl.GetTotalRevenue() != 20.0 {
		t.Errorf("Expected revenue 20.0, got %f", ipl.GetTotalRevenue())
	}

	if _, err := ipl.Unpark(ctx, "KA01HH1234"); err == nil {
		t.Error("Expected error unparking an already released vehicle")
	}

	for _, plate := range []string{"A", "B", "C"} {
		if err := ipl.Park(ctx, NewVehicle(CategoryMotorbike, plate)); err != nil {
			t.Errorf("Unexpected error: %s", err.Error())
		}
	}
	if err := ipl.Park(ctx, NewVehicle(CategoryMotorbike, "D")); !errors.Is(err, ErrLotFull) {
		t.Errorf("Expected ErrLotFull, got %v", err)
	}
}
