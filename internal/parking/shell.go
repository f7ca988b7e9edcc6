package parking

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Shell is the interactive menu driver for a parking lot. Input and output
// are plain streams so a session can be scripted in tests.
type Shell struct {
	parkingLot *ParkingLot
	scanner    *bufio.Scanner
	out        io.Writer
}

func NewShell(parkingLot *ParkingLot) *Shell {
	return NewShellWithIO(parkingLot, os.Stdin, os.Stdout)
}

func NewShellWithIO(parkingLot *ParkingLot, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		parkingLot: parkingLot,
		scanner:    bufio.NewScanner(in),
		out:        out,
	}
}

// Run reads menu selections until the operator exits or input ends. Every
// error is reported at the prompt; none terminates the loop.
func (s *Shell) Run() {
	fmt.Fprintln(s.out, "===========================================")
	fmt.Fprintln(s.out, "   Parking Lot Management System")
	fmt.Fprintln(s.out, "===========================================")

	for {
		s.printMenu()

		line, ok := s.readLine()
		if !ok {
			return
		}
		if line == "" {
			continue
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid input. Please enter a number.")
			continue
		}

		if choice == 0 {
			fmt.Fprintln(s.out, "System shutting down. Goodbye!")
			return
		}

		switch choice {
		case 1:
			s.handlePark(CategoryCar)
		case 2:
			s.handlePark(CategoryTruck)
		case 3:
			s.handlePark(CategoryMotorbike)
		case 4:
			s.handleUnpark()
		case 5:
			s.handleStatus()
		default:
			fmt.Fprintln(s.out, "Invalid selection! Please try again.")
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "1. Park Car")
	fmt.Fprintln(s.out, "2. Park Truck")
	fmt.Fprintln(s.out, "3. Park Motorbike")
	fmt.Fprintln(s.out, "4. Unpark Vehicle (Pay & Exit)")
	fmt.Fprintln(s.out, "5. Display Status")
	fmt.Fprintln(s.out, "0. Exit & Save")
	fmt.Fprint(s.out, "Select an option: ")
}

// readLine returns the next trimmed input line, or false at end of input.
func (s *Shell) readLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

// readPlate prompts for a license plate and returns its first token.
func (s *Shell) readPlate() (string, bool) {
	fmt.Fprint(s.out, "Enter License Plate: ")
	line, ok := s.readLine()
	if !ok {
		return "", false
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		fmt.Fprintln(s.out, "License plate must not be empty.")
		return "", false
	}
	return fields[0], true
}

func (s *Shell) handlePark(category Category) {
	plate, ok := s.readPlate()
	if !ok {
		return
	}

	vehicle := NewVehicle(category, plate)
	if err := s.parkingLot.Park(vehicle); err != nil {
		if errors.Is(err, ErrLotFull) {
			fmt.Fprintf(s.out, "Parking Lot is Full! %s cannot enter.\n", plate)
			return
		}
		fmt.Fprintf(s.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintf(s.out, "%s (%s) parked successfully.\n", category, plate)
}

func (s *Shell) handleUnpark() {
	plate, ok := s.readPlate()
	if !ok {
		return
	}

	receipt, err := s.parkingLot.Unpark(plate)
	if err != nil {
		fmt.Fprintf(s.out, ">> ERROR: %s\n", err.Error())
		return
	}

	fmt.Fprintln(s.out, "\n---------------------------------")
	fmt.Fprintf(s.out, "[EXIT] %s is leaving.\n", receipt.Plate)
	fmt.Fprintf(s.out, "Vehicle Type: %s\n", receipt.Category)
	fmt.Fprintf(s.out, "Total Fee: $%.2f\n", receipt.Fee)
	fmt.Fprintln(s.out, "---------------------------------")
	fmt.Fprintln(s.out)
}

func (s *Shell) handleStatus() {
	vehicles := s.parkingLot.GetStatus()

	fmt.Fprintf(s.out, "\n=== PARKING LOT STATUS (%d/%d) ===\n", len(vehicles), s.parkingLot.GetCapacity())
	fmt.Fprintf(s.out, "Total Revenue: $%.2f\n", s.parkingLot.GetTotalRevenue())
	fmt.Fprintln(s.out, "--------------------------------------------------------")

	if len(vehicles) == 0 {
		fmt.Fprintln(s.out, "Parking lot is currently empty.")
	} else {
		for _, v := range vehicles {
			fmt.Fprintln(s.out, v.DisplayInfo())
		}
	}
	fmt.Fprintln(s.out, "--------------------------------------------------------")
	fmt.Fprintln(s.out)
}
