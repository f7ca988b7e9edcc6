package parking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedParkingLot decorates a ParkingLot with spans and metrics.
// The underlying lot stays free of telemetry concerns.
type InstrumentedParkingLot struct {
	*ParkingLot
	telemetry *TelemetryProvider

	parkOperations    metric.Int64Counter
	unparkOperations  metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	revenueCounter    metric.Float64Counter
	operationDuration metric.Float64Histogram
	capacityGauge     metric.Int64UpDownCounter
}

func NewInstrumentedParkingLot(lot *ParkingLot, telemetry *TelemetryProvider) (*InstrumentedParkingLot, error) {
	meter := telemetry.Meter()

	parkOperations, err := meter.Int64Counter("park_operations_total",
		metric.WithDescription("Total number of park operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	unparkOperations, err := meter.Int64Counter("unpark_operations_total",
		metric.WithDescription("Total number of unpark operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("parking_lot_occupancy",
		metric.WithDescription("Current number of parked vehicles"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	revenueCounter, err := meter.Float64Counter("parking_lot_revenue_total",
		metric.WithDescription("Cumulative revenue collected on exits"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of parking lot operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	capacityGauge, err := meter.Int64UpDownCounter("parking_lot_capacity_slots",
		metric.WithDescription("Configured number of parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	ipl := &InstrumentedParkingLot{
		ParkingLot:        lot,
		telemetry:         telemetry,
		parkOperations:    parkOperations,
		unparkOperations:  unparkOperations,
		occupancyGauge:    occupancyGauge,
		revenueCounter:    revenueCounter,
		operationDuration: operationDuration,
		capacityGauge:     capacityGauge,
	}

	// Account for capacity and any vehicles restored from the store.
	capacityGauge.Add(context.Background(), int64(lot.GetCapacity()))
	occupancyGauge.Add(context.Background(), int64(lot.GetOccupancy()))

	return ipl, nil
}

func (ipl *InstrumentedParkingLot) Park(ctx context.Context, vehicle *Vehicle) error {
	tracer := ipl.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.park",
		trace.WithAttributes(
			attribute.String("vehicle.plate", vehicle.Plate),
			attribute.String("vehicle.category", vehicle.Category.String()),
		))
	defer span.End()

	start := time.Now()

	err := ipl.ParkingLot.Park(vehicle)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "park"),
		attribute.String("vehicle_category", vehicle.Category.String()),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "rejected"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.AddEvent("vehicle_admitted")
		ipl.occupancyGauge.Add(ctx, 1)
	}

	ipl.parkOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ipl.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return err
}

func (ipl *InstrumentedParkingLot) Unpark(ctx context.Context, plate string) (*Receipt, error) {
	tracer := ipl.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.unpark",
		trace.WithAttributes(
			attribute.String("vehicle.plate", plate),
		))
	defer span.End()

	start := time.Now()

	receipt, err := ipl.ParkingLot.Unpark(plate)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "unpark"),
	}

	if err != nil {
		span.AddEvent("vehicle_not_found")
		labels = append(labels, attribute.String("status", "not_found"))
	} else {
		labels = append(labels,
			attribute.String("status", "success"),
			attribute.String("vehicle_category", receipt.Category.String()),
		)
		span.SetAttributes(
			attribute.String("vehicle.category", receipt.Category.String()),
			attribute.Float64("receipt.fee", receipt.Fee),
		)
		span.AddEvent("vehicle_released")
		ipl.occupancyGauge.Add(ctx, -1)
		ipl.revenueCounter.Add(ctx, receipt.Fee)
	}

	ipl.unparkOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ipl.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return receipt, err
}

func (ipl *InstrumentedParkingLot) GetStatus(ctx context.Context) []*Vehicle {
	tracer := ipl.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.get_status")
	defer span.End()

	start := time.Now()

	vehicles := ipl.ParkingLot.GetStatus()

	duration := time.Since(start).Seconds()

	span.SetAttributes(
		attribute.Int("parked_vehicles_count", len(vehicles)),
		attribute.Int("total_capacity", ipl.GetCapacity()),
	)

	ipl.operationDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("operation", "get_status"),
		attribute.String("status", "success"),
	))

	return vehicles
}

func (ipl *InstrumentedParkingLot) FindByPlate(ctx context.Context, plate string) (*Vehicle, error) {
	tracer := ipl.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.find_by_plate",
		trace.WithAttributes(
			attribute.String("vehicle.plate", plate),
		))
	defer span.End()

	start := time.Now()

	vehicle, err := ipl.ParkingLot.FindByPlate(plate)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "find_by_plate"),
	}

	if err != nil {
		span.AddEvent("vehicle_not_found")
		labels = append(labels, attribute.String("status", "not_found"))
	} else {
		span.SetAttributes(attribute.String("vehicle.category", vehicle.Category.String()))
		span.AddEvent("vehicle_found")
		labels = append(labels, attribute.String("status", "found"))
	}

	ipl.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return vehicle, err
}

// Save flushes the parked set to the store, recording the outcome.
func (ipl *InstrumentedParkingLot) Save(ctx context.Context) error {
	tracer := ipl.telemetry.Tracer()
	_, span := tracer.Start(ctx, "parking_lot.save")
	defer span.End()

	err := ipl.ParkingLot.Save()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.AddEvent("state_saved", trace.WithAttributes(
			attribute.Int("parked_vehicles_count", ipl.GetOccupancy()),
		))
	}
	return err
}
