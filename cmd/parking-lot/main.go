package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking-lot-manager/internal/config"
	"parking-lot-manager/internal/parking"
	"parking-lot-manager/internal/server"
)

var (
	mode = flag.String("mode", "cli", "Mode to run: cli, server, or both")
	port = flag.String("port", "", "Port for HTTP server (overrides APP_PORT)")
)

func main() {
	flag.Parse()

	cfg := config.Load()
	if *port == "" {
		*port = cfg.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryProvider, err := parking.NewTelemetryProvider(cfg.OTelServiceName, cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	store := parking.NewStore(cfg.DataFile)
	lot := parking.NewParkingLot(cfg.Capacity, store)
	if occupancy := lot.GetOccupancy(); occupancy > 0 {
		log.Printf("Previous data loaded: %d vehicle(s)", occupancy)
	}

	instrumentedLot, err := parking.NewInstrumentedParkingLot(lot, telemetryProvider)
	if err != nil {
		log.Fatalf("Failed to instrument parking lot: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	switch *mode {
	case "cli":
		runCLI(ctx, cancel, instrumentedLot, telemetryProvider, sigChan)
	case "server":
		runServer(ctx, cancel, cfg, instrumentedLot, telemetryProvider, sigChan)
	case "both":
		runBoth(ctx, cancel, cfg, instrumentedLot, telemetryProvider, sigChan)
	default:
		log.Fatalf("Invalid mode: %s. Must be cli, server, or both", *mode)
	}
}

func runCLI(ctx context.Context, cancel context.CancelFunc, lot *parking.InstrumentedParkingLot, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	shell := parking.NewInstrumentedShell(lot, telemetryProvider)
	shell.Run(ctx)

	saveState(ctx, lot)
	shutdownTelemetry(telemetryProvider)
}

func runServer(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, lot *parking.InstrumentedParkingLot, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	srv := server.NewServer(*port, server.NewHandler(cfg.OTelServiceName, lot))

	go func() {
		<-sigChan
		log.Println("Received shutdown signal...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		cancel()
	}()

	log.Printf("Starting server mode on port %s", *port)
	if err := srv.Start(); err != nil && err != context.Canceled {
		log.Printf("Server error: %v", err)
	}

	saveState(ctx, lot)
	shutdownTelemetry(telemetryProvider)
}

func runBoth(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, lot *parking.InstrumentedParkingLot, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	srv := server.NewServer(*port, server.NewHandler(cfg.OTelServiceName, lot))

	serverDone := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", *port)
		serverDone <- srv.Start()
	}()

	cliDone := make(chan bool, 1)
	go func() {
		shell := parking.NewInstrumentedShell(lot, telemetryProvider)
		shell.Run(ctx)
		cliDone <- true
	}()

	go func() {
		<-sigChan
		log.Println("Received shutdown signal...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		cancel()
	}()

	select {
	case err := <-serverDone:
		if err != nil && err != context.Canceled {
			log.Printf("Server error: %v", err)
		}
	case <-cliDone:
		log.Println("CLI exited")
	case <-ctx.Done():
		log.Println("Context cancelled")
	}

	saveState(ctx, lot)
	shutdownTelemetry(telemetryProvider)
}

// saveState flushes the parked set to disk. In-memory state survives a
// failed save, so the error is only logged.
func saveState(ctx context.Context, lot *parking.InstrumentedParkingLot) {
	if err := lot.Save(ctx); err != nil {
		log.Printf("Error: Could not save parking data: %v", err)
		return
	}
	log.Println("Data saved successfully.")
}

func shutdownTelemetry(telemetryProvider *parking.TelemetryProvider) {
	log.Println("Shutting down telemetry...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down telemetry: %v", err)
	}
}
