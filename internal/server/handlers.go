package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"parking-lot-manager/internal/parking"
)

// Handler exposes one parking lot over HTTP. The lot itself is
// single-threaded, so a mutex serializes every operation on it.
type Handler struct {
	serviceName string
	parkingLot  *parking.InstrumentedParkingLot
	mu          sync.Mutex
}

func NewHandler(serviceName string, parkingLot *parking.InstrumentedParkingLot) *Handler {
	return &Handler{
		serviceName: serviceName,
		parkingLot:  parkingLot,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": h.serviceName,
		"meta":    extractMeta(r.Context()),
	})
}

func (h *Handler) ParkVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ParkVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Plate == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Plate is required")
		return
	}

	category, ok := parking.ParseCategory(req.Category)
	if !ok {
		WriteError(ctx, w, http.StatusBadRequest, "Category must be Car, Truck or Motorbike")
		return
	}

	vehicle := parking.NewVehicle(category, req.Plate)

	h.mu.Lock()
	err := h.parkingLot.Park(ctx, vehicle)
	h.mu.Unlock()

	if err != nil {
		if errors.Is(err, parking.ErrLotFull) {
			WriteError(ctx, w, http.StatusConflict, "Parking lot is full")
			return
		}
		WriteError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteSuccess(ctx, w, "Vehicle parked successfully", VehicleStatus{
		Category:  vehicle.Category.String(),
		Plate:     vehicle.Plate,
		EntryTime: vehicle.EntryTime,
	})
}

func (h *Handler) LeaveVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Plate == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Plate is required")
		return
	}

	h.mu.Lock()
	receipt, err := h.parkingLot.Unpark(ctx, req.Plate)
	h.mu.Unlock()

	if err != nil {
		var notFound *parking.NotFoundError
		if errors.As(err, &notFound) {
			WriteError(ctx, w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteSuccess(ctx, w, "Vehicle released", ReceiptResponse{
		Plate:    receipt.Plate,
		Category: receipt.Category.String(),
		Fee:      receipt.Fee,
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	vehicles := h.parkingLot.GetStatus(ctx)
	capacity := h.parkingLot.GetCapacity()
	revenue := h.parkingLot.GetTotalRevenue()
	h.mu.Unlock()

	statuses := make([]VehicleStatus, 0, len(vehicles))
	for _, v := range vehicles {
		statuses = append(statuses, VehicleStatus{
			Category:  v.Category.String(),
			Plate:     v.Plate,
			EntryTime: v.EntryTime,
		})
	}

	WriteSuccess(ctx, w, "Status retrieved successfully", StatusResponse{
		Capacity:  capacity,
		Occupied:  len(vehicles),
		Available: capacity - len(vehicles),
		Revenue:   revenue,
		Vehicles:  statuses,
	})
}

func (h *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	revenue := h.parkingLot.GetTotalRevenue()
	h.mu.Unlock()

	WriteSuccess(ctx, w, "Revenue retrieved successfully", map[string]any{
		"revenue": revenue,
	})
}

func (h *Handler) FindVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	plate := chi.URLParam(r, "plate")
	if plate == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Plate is required")
		return
	}

	h.mu.Lock()
	vehicle, err := h.parkingLot.FindByPlate(ctx, plate)
	h.mu.Unlock()

	if err != nil {
		WriteError(ctx, w, http.StatusNotFound, "Vehicle not found")
		return
	}

	WriteSuccess(ctx, w, "Vehicle found", VehicleStatus{
		Category:  vehicle.Category.String(),
		Plate:     vehicle.Plate,
		EntryTime: vehicle.EntryTime,
	})
}

// SaveState flushes the parked set to disk on demand. A failed save is
// reported but leaves the in-memory lot untouched.
func (h *Handler) SaveState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	err := h.parkingLot.Save(ctx)
	occupancy := h.parkingLot.GetOccupancy()
	h.mu.Unlock()

	if err != nil {
		WriteError(ctx, w, http.StatusInternalServerError, "Could not save parking data: "+err.Error())
		return
	}

	WriteSuccess(ctx, w, "Parking data saved", map[string]any{
		"vehicles_saved": occupancy,
	})
}
