package parking

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultDataFile is the store location used when none is configured.
const DefaultDataFile = "parking_data.txt"

// Store persists the parked set as flat text, one vehicle per line:
//
//	<Category> <Plate> <EpochSeconds>
//
// The file is opened and closed within each call; no handle is held.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the stored parked set. A missing file is an empty lot, not an
// error. Malformed lines and unknown category names are skipped so one bad
// record cannot take down the rest of the file.
func (s *Store) Load() ([]*Vehicle, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	var vehicles []*Vehicle
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 {
			continue
		}
		category, ok := ParseCategory(fields[0])
		if !ok {
			continue
		}
		epoch, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			continue
		}
		vehicles = append(vehicles, RestoredVehicle(category, fields[1], time.Unix(epoch, 0)))
	}
	if err := scanner.Err(); err != nil {
		return vehicles, fmt.Errorf("read store: %w", err)
	}
	return vehicles, nil
}

// Save overwrites the store with the given vehicles, in order.
func (s *Store) Save(vehicles []*Vehicle) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("open store for writing: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, v := range vehicles {
		fmt.Fprintf(w, "%s %s %d\n", v.Category, v.Plate, v.EntryTime.Unix())
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
