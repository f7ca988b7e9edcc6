package parking

import (
	"errors"
	"fmt"
	"time"
)

// ErrLotFull is returned by Park when every slot is taken.
var ErrLotFull = errors.New("parking lot is full")

// NotFoundError is returned by Unpark and FindByPlate when no parked
// vehicle carries the requested plate.
type NotFoundError struct {
	Plate string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("vehicle with plate %s not found", e.Plate)
}

// Receipt summarizes a completed stay.
type Receipt struct {
	Plate    string
	Category Category
	Fee      float64
}

// ParkingLot owns the set of currently parked vehicles, in admission order,
// and the revenue collected so far. It is not safe for concurrent use;
// callers that share one across goroutines must serialize access.
type ParkingLot struct {
	capacity     int
	vehicles     []*Vehicle
	totalRevenue float64
	store        *Store
	now          func() time.Time
}

// NewParkingLot creates a lot with the given capacity and restores any
// previously parked vehicles from the store. A nil store gives a purely
// in-memory lot. An unreadable store is treated as an empty one.
func NewParkingLot(capacity int, store *Store) *ParkingLot {
	pl := &ParkingLot{
		capacity: capacity,
		store:    store,
		now:      time.Now,
	}
	if store != nil {
		restored, _ := store.Load()
		for _, v := range restored {
			if len(pl.vehicles) == pl.capacity {
				break
			}
			pl.vehicles = append(pl.vehicles, v)
		}
	}
	return pl
}

// Park admits a vehicle. At capacity the vehicle is rejected and not stored.
func (pl *ParkingLot) Park(v *Vehicle) error {
	if len(pl.vehicles) >= pl.capacity {
		return ErrLotFull
	}
	pl.vehicles = append(pl.vehicles, v)
	return nil
}

// Unpark releases the earliest-admitted vehicle with the given plate,
// charges its fee and returns the receipt. Occupancy and revenue are
// untouched when the plate is not found.
func (pl *ParkingLot) Unpark(plate string) (*Receipt, error) {
	for i, v := range pl.vehicles {
		if v.Plate == plate {
			fee := v.Fee(pl.now())
			pl.totalRevenue += fee
			pl.vehicles = append(pl.vehicles[:i], pl.vehicles[i+1:]...)
			return &Receipt{
				Plate:    v.Plate,
				Category: v.Category,
				Fee:      fee,
			}, nil
		}
	}
	return nil, &NotFoundError{Plate: plate}
}

// GetStatus returns the parked vehicles in admission order.
func (pl *ParkingLot) GetStatus() []*Vehicle {
	vehicles := make([]*Vehicle, len(pl.vehicles))
	copy(vehicles, pl.vehicles)
	return vehicles
}

// FindByPlate returns the earliest-admitted vehicle with the given plate.
func (pl *ParkingLot) FindByPlate(plate string) (*Vehicle, error) {
	for _, v := range pl.vehicles {
		if v.Plate == plate {
			return v, nil
		}
	}
	return nil, &NotFoundError{Plate: plate}
}

func (pl *ParkingLot) GetCapacity() int {
	return pl.capacity
}

func (pl *ParkingLot) GetOccupancy() int {
	return len(pl.vehicles)
}

func (pl *ParkingLot) GetTotalRevenue() float64 {
	return pl.totalRevenue
}

// Save writes the current parked set to the store. In-memory state is
// never touched, so a failed save loses nothing.
func (pl *ParkingLot) Save() error {
	if pl.store == nil {
		return nil
	}
	return pl.store.Save(pl.vehicles)
}
