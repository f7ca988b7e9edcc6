package parking

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedShell is the menu driver used in cli mode: the same surface
// as Shell, with a span per command and the instrumented lot underneath.
type InstrumentedShell struct {
	parkingLot *InstrumentedParkingLot
	scanner    *bufio.Scanner
	telemetry  *TelemetryProvider
}

func NewInstrumentedShell(parkingLot *InstrumentedParkingLot, telemetry *TelemetryProvider) *InstrumentedShell {
	return &InstrumentedShell{
		parkingLot: parkingLot,
		scanner:    bufio.NewScanner(os.Stdin),
		telemetry:  telemetry,
	}
}

func (s *InstrumentedShell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	fmt.Println("===========================================")
	fmt.Println("   Parking Lot Management System")
	fmt.Println("===========================================")

	for {
		s.printMenu()

		if !s.scanner.Scan() {
			break
		}
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}

		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", line)))

		done := s.processChoice(cmdCtx, cmdSpan, line)
		cmdSpan.End()
		if done {
			break
		}
	}

	span.AddEvent("shell_ended")
}

// processChoice handles one menu selection and reports whether the
// operator asked to exit.
func (s *InstrumentedShell) processChoice(ctx context.Context, span trace.Span, line string) bool {
	choice, err := strconv.Atoi(line)
	if err != nil {
		span.AddEvent("invalid_input")
		fmt.Println("Invalid input. Please enter a number.")
		return false
	}

	span.SetAttributes(attribute.Int("command.choice", choice))

	switch choice {
	case 0:
		span.AddEvent("exit_requested")
		fmt.Println("System shutting down. Goodbye!")
		return true
	case 1:
		s.handlePark(ctx, CategoryCar)
	case 2:
		s.handlePark(ctx, CategoryTruck)
	case 3:
		s.handlePark(ctx, CategoryMotorbike)
	case 4:
		s.handleUnpark(ctx)
	case 5:
		s.handleStatus(ctx)
	default:
		span.AddEvent("invalid_selection")
		fmt.Println("Invalid selection! Please try again.")
	}
	return false
}

func (s *InstrumentedShell) printMenu() {
	fmt.Println("1. Park Car")
	fmt.Println("2. Park Truck")
	fmt.Println("3. Park Motorbike")
	fmt.Println("4. Unpark Vehicle (Pay & Exit)")
	fmt.Println("5. Display Status")
	fmt.Println("0. Exit & Save")
	fmt.Print("Select an option: ")
}

func (s *InstrumentedShell) readPlate() (string, bool) {
	fmt.Print("Enter License Plate: ")
	if !s.scanner.Scan() {
		return "", false
	}
	fields := strings.Fields(s.scanner.Text())
	if len(fields) == 0 {
		fmt.Println("License plate must not be empty.")
		return "", false
	}
	return fields[0], true
}

func (s *InstrumentedShell) handlePark(ctx context.Context, category Category) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.park_command",
		trace.WithAttributes(attribute.String("vehicle.category", category.String())))
	defer span.End()

	plate, ok := s.readPlate()
	if !ok {
		span.AddEvent("invalid_plate")
		return
	}

	span.SetAttributes(attribute.String("vehicle.plate", plate))

	vehicle := NewVehicle(category, plate)
	if err := s.parkingLot.Park(ctx, vehicle); err != nil {
		span.AddEvent("parking_failed")
		if errors.Is(err, ErrLotFull) {
			fmt.Printf("Parking Lot is Full! %s cannot enter.\n", plate)
			return
		}
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	span.AddEvent("parking_successful")
	fmt.Printf("%s (%s) parked successfully.\n", category, plate)
}

func (s *InstrumentedShell) handleUnpark(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.unpark_command")
	defer span.End()

	plate, ok := s.readPlate()
	if !ok {
		span.AddEvent("invalid_plate")
		return
	}

	span.SetAttributes(attribute.String("vehicle.plate", plate))

	receipt, err := s.parkingLot.Unpark(ctx, plate)
	if err != nil {
		span.AddEvent("unpark_failed")
		fmt.Printf(">> ERROR: %s\n", err.Error())
		return
	}

	span.AddEvent("unpark_successful", trace.WithAttributes(
		attribute.Float64("receipt.fee", receipt.Fee),
	))

	fmt.Println("\n---------------------------------")
	fmt.Printf("[EXIT] %s is leaving.\n", receipt.Plate)
	fmt.Printf("Vehicle Type: %s\n", receipt.Category)
	fmt.Printf("Total Fee: $%.2f\n", receipt.Fee)
	fmt.Println("---------------------------------")
	fmt.Println()
}

func (s *InstrumentedShell) handleStatus(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.status_command")
	defer span.End()

	vehicles := s.parkingLot.GetStatus(ctx)
	span.SetAttributes(attribute.Int("parked_vehicles_count", len(vehicles)))

	fmt.Printf("\n=== PARKING LOT STATUS (%d/%d) ===\n", len(vehicles), s.parkingLot.GetCapacity())
	fmt.Printf("Total Revenue: $%.2f\n", s.parkingLot.GetTotalRevenue())
	fmt.Println("--------------------------------------------------------")

	if len(vehicles) == 0 {
		fmt.Println("Parking lot is currently empty.")
	} else {
		for _, v := range vehicles {
			fmt.Println(v.DisplayInfo())
		}
	}
	fmt.Println("--------------------------------------------------------")
	fmt.Println()
}
