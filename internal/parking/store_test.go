package parking

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "parking_data.txt"))

	parked := []*Vehicle{
		RestoredVehicle(CategoryCar, "KA01HH1234", time.Unix(1700000000, 0)),
		RestoredVehicle(CategoryTruck, "KA01HH9999", time.Unix(1700003600, 0)),
		RestoredVehicle(CategoryMotorbike, "KA01BB0001", time.Unix(1700007200, 0)),
	}

	if err := store.Save(parked); err != nil {
		t.Fatalf("Unexpected save error: %s", err.Error())
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Unexpected load error: %s", err.Error())
	}

	if len(loaded) != len(parked) {
		t.Fatalf("Expected %d vehicles, got %d", len(parked), len(loaded))
	}
	for i, v := range loaded {
		if v.Category != parked[i].Category {
			t.Errorf("Expected category %s at position %d, got %s", parked[i].Category, i, v.Category)
		}
		if v.Plate != parked[i].Plate {
			t.Errorf("Expected plate %s at position %d, got %s", parked[i].Plate, i, v.Plate)
		}
		if !v.EntryTime.Equal(parked[i].EntryTime) {
			t.Errorf("Expected entry time %v at position %d, got %v", parked[i].EntryTime, i, v.EntryTime)
		}
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does_not_exist.txt"))

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Expected missing file to be treated as empty, got error: %s", err.Error())
	}
	if len(loaded) != 0 {
		t.Errorf("Expected no vehicles, got %d", len(loaded))
	}
}

func TestStoreLoadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parking_data.txt")
	contents := "Car KA01HH1234 1700000000\n" +
		"Truck KA01HH9999\n" + // missing timestamp
		"Spaceship KA01BB0001 1700000000\n" + // unknown category
		"Motorbike KA01BB0002 notanumber\n" +
		"Motorbike KA01BB0003 1700007200\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Unexpected load error: %s", err.Error())
	}

	if len(loaded) != 2 {
		t.Fatalf("Expected 2 well-formed vehicles, got %d", len(loaded))
	}
	if loaded[0].Plate != "KA01HH1234" || loaded[1].Plate != "KA01BB0003" {
		t.Errorf("Expected well-formed lines around malformed ones to load, got %s and %s",
			loaded[0].Plate, loaded[1].Plate)
	}
}

func TestStoreSaveUnwritableDestination(t *testing.T) {
	// A directory path cannot be opened for writing.
	store := NewStore(t.TempDir())

	err := store.Save([]*Vehicle{NewVehicle(CategoryCar, "KA01HH1234")})
	if err == nil {
		t.Error("Expected error saving to an unwritable destination")
	}
}

func TestNewParkingLotRestoresFromStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parking_data.txt")
	store := NewStore(path)

	saved := []*Vehicle{
		RestoredVehicle(CategoryCar, "AAA", time.Unix(1700000000, 0)),
		RestoredVehicle(CategoryTruck, "BBB", time.Unix(1700003600, 0)),
	}
	if err := store.Save(saved); err != nil {
		t.Fatal(err)
	}

	pl := NewParkingLot(7, store)
	if pl.GetOccupancy() != 2 {
		t.Fatalf("Expected 2 restored vehicles, got %d", pl.GetOccupancy())
	}
	status := pl.GetStatus()
	if status[0].Plate != "AAA" || status[1].Plate != "BBB" {
		t.Error("Expected restored vehicles to keep admission order")
	}
	if pl.GetTotalRevenue() != 0.0 {
		t.Errorf("Expected revenue not to be restored, got %f", pl.GetTotalRevenue())
	}
}

func TestNewParkingLotCapsRestoreAtCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parking_data.txt")
	store := NewStore(path)

	var saved []*Vehicle
	for i := 0; i < 9; i++ {
		saved = append(saved, RestoredVehicle(CategoryCar, string(rune('A'+i)), time.Unix(1700000000, 0)))
	}
	if err := store.Save(saved); err != nil {
		t.Fatal(err)
	}

	pl := NewParkingLot(7, store)
	if pl.GetOccupancy() != 7 {
		t.Errorf("Expected restore to stop at capacity 7, got %d", pl.GetOccupancy())
	}
}

func TestSaveThenRestartKeepsParkedSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parking_data.txt")

	first := NewParkingLot(7, NewStore(path))
	first.Park(NewVehicle(CategoryCar, "AAA"))
	first.Park(NewVehicle(CategoryMotorbike, "BBB"))
	if err := first.Save(); err != nil {
		t.Fatalf("Unexpected save error: %s", err.Error())
	}

	second := NewParkingLot(7, NewStore(path))
	if second.GetOccupancy() != 2 {
		t.Fatalf("Expected 2 vehicles after restart, got %d", second.GetOccupancy())
	}
	status := second.GetStatus()
	if status[0].Plate != "AAA" || status[0].Category != CategoryCar {
		t.Error("Expected first vehicle to survive restart intact")
	}
	if status[1].Plate != "BBB" || status[1].Category != CategoryMotorbike {
		t.Error("Expected second vehicle to survive restart intact")
	}
}
