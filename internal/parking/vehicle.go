package parking

import (
	"fmt"
	"time"
)

// Category identifies the fee class of a vehicle. The set is closed; the
// names double as the record tags in the data file.
type Category string

const (
	CategoryCar       Category = "Car"
	CategoryTruck     Category = "Truck"
	CategoryMotorbike Category = "Motorbike"
)

var hourlyRates = map[Category]float64{
	CategoryCar:       20.0,
	CategoryTruck:     50.0,
	CategoryMotorbike: 10.0,
}

// ParseCategory maps a stored category name back to its Category.
func ParseCategory(name string) (Category, bool) {
	c := Category(name)
	_, ok := hourlyRates[c]
	return c, ok
}

func (c Category) HourlyRate() float64 {
	return hourlyRates[c]
}

func (c Category) String() string {
	return string(c)
}

type Vehicle struct {
	Plate     string
	Category  Category
	EntryTime time.Time
}

// NewVehicle creates a vehicle entering the lot now.
func NewVehicle(category Category, plate string) *Vehicle {
	return &Vehicle{
		Plate:     plate,
		Category:  category,
		EntryTime: time.Now(),
	}
}

// RestoredVehicle recreates a vehicle from persisted state, keeping its
// original entry time.
func RestoredVehicle(category Category, plate string, entryTime time.Time) *Vehicle {
	return &Vehicle{
		Plate:     plate,
		Category:  category,
		EntryTime: entryTime,
	}
}

// Fee returns the parking fee owed at the given instant. Billing is hourly
// with a one hour minimum.
func (v *Vehicle) Fee(now time.Time) float64 {
	hours := now.Sub(v.EntryTime).Hours()
	if hours < 1.0 {
		hours = 1.0
	}
	return hours * v.Category.HourlyRate()
}

// DisplayInfo renders the vehicle as a status line: category, plate and
// formatted entry time.
func (v *Vehicle) DisplayInfo() string {
	return fmt.Sprintf("%-15s%-15sEntry: %s", v.Category, v.Plate, v.EntryTime.Format(time.ANSIC))
}
