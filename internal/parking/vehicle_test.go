package parking

import (
	"strings"
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	for _, name := range []string{"Car", "Truck", "Motorbike"} {
		category, ok := ParseCategory(name)
		if !ok {
			t.Errorf("Expected %q to parse", name)
		}
		if category.String() != name {
			t.Errorf("Expected category name %q, got %q", name, category.String())
		}
	}

	if _, ok := ParseCategory("Bicycle"); ok {
		t.Error("Expected unknown category name to be rejected")
	}
}

func TestHourlyRates(t *testing.T) {
	if rate := CategoryCar.HourlyRate(); rate != 20.0 {
		t.Errorf("Expected car rate 20.0, got %f", rate)
	}
	if rate := CategoryTruck.HourlyRate(); rate != 50.0 {
		t.Errorf("Expected truck rate 50.0, got %f", rate)
	}
	if rate := CategoryMotorbike.HourlyRate(); rate != 10.0 {
		t.Errorf("Expected motorbike rate 10.0, got %f", rate)
	}
}

func TestFeeMinimumOneHour(t *testing.T) {
	now := time.Now()

	for _, category := range []Category{CategoryCar, CategoryTruck, CategoryMotorbike} {
		v := RestoredVehicle(category, "KA01HH1234", now.Add(-10*time.Minute))
		fee := v.Fee(now)
		if fee != category.HourlyRate() {
			t.Errorf("Expected minimum fee %f for %s, got %f", category.HourlyRate(), category, fee)
		}
	}
}

func TestFeeExactlyOneHour(t *testing.T) {
	now := time.Now()
	v := RestoredVehicle(CategoryCar, "KA01HH1234", now.Add(-time.Hour))

	if fee := v.Fee(now); fee != 20.0 {
		t.Errorf("Expected fee 20.0 after one hour, got %f", fee)
	}
}

func TestFeeGrowsWithDuration(t *testing.T) {
	now := time.Now()

	v := RestoredVehicle(CategoryTruck, "KA01HH1234", now.Add(-3*time.Hour))
	if fee := v.Fee(now); fee != 150.0 {
		t.Errorf("Expected fee 150.0 after three hours, got %f", fee)
	}

	previous := 0.0
	for d := time.Duration(0); d <= 6*time.Hour; d += 30 * time.Minute {
		v := RestoredVehicle(CategoryMotorbike, "KA01HH1234", now.Add(-d))
		fee := v.Fee(now)
		if fee < previous {
			t.Errorf("Expected fee to be non-decreasing, got %f after %f at duration %v", fee, previous, d)
		}
		previous = fee
	}
}

func TestDisplayInfo(t *testing.T) {
	entry := time.Date(2025, time.December, 1, 14, 30, 0, 0, time.Local)
	v := RestoredVehicle(CategoryCar, "KA01HH1234", entry)

	info := v.DisplayInfo()
	if !strings.Contains(info, "Car") {
		t.Errorf("Expected display info to contain category, got %q", info)
	}
	if !strings.Contains(info, "KA01HH1234") {
		t.Errorf("Expected display info to contain plate, got %q", info)
	}
	if !strings.Contains(info, entry.Format(time.ANSIC)) {
		t.Errorf("Expected display info to contain entry time, got %q", info)
	}
}
