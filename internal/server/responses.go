package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type ParkVehicleRequest struct {
	Category string `json:"category"`
	Plate    string `json:"plate"`
}

type LeaveRequest struct {
	Plate string `json:"plate"`
}

type ReceiptResponse struct {
	Plate    string  `json:"plate"`
	Category string  `json:"category"`
	Fee      float64 `json:"fee"`
}

type VehicleStatus struct {
	Category  string    `json:"category"`
	Plate     string    `json:"plate"`
	EntryTime time.Time `json:"entry_time"`
}

type StatusResponse struct {
	Capacity  int             `json:"capacity"`
	Occupied  int             `json:"occupied"`
	Available int             `json:"available"`
	Revenue   float64         `json:"revenue"`
	Vehicles  []VehicleStatus `json:"vehicles"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    extractMeta(ctx),
	})
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Meta:    extractMeta(ctx),
	})
}
