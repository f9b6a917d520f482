package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/coordinator-service/application"
	"github.com/ticketflow/booking-system/coordinator-service/domain"
)

// BookingHandlers contains booking HTTP handlers
type BookingHandlers struct {
	createBooking     *application.CreateBooking
	getBookingStatus  *application.GetBookingStatus
	getBookingHistory *application.GetBookingHistory
	listBookings      *application.ListBookings
	cancelBooking     *application.CancelBooking
}

// NewBookingHandlers creates new booking handlers
func NewBookingHandlers(
	createBooking *application.CreateBooking,
	getBookingStatus *application.GetBookingStatus,
	getBookingHistory *application.GetBookingHistory,
	listBookings *application.ListBookings,
	cancelBooking *application.CancelBooking,
) *BookingHandlers {
	return &BookingHandlers{
		createBooking:     createBooking,
		getBookingStatus:  getBookingStatus,
		getBookingHistory: getBookingHistory,
		listBookings:      listBookings,
		cancelBooking:     cancelBooking,
	}
}

// CreateBooking handles booking creation requests
func (h *BookingHandlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateBookingCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.createBooking.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(response)
}

// GetBookingStatus handles booking status requests
func (h *BookingHandlers) GetBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		http.Error(w, "Booking ID is required", http.StatusBadRequest)
		return
	}

	query := &application.GetBookingStatusQuery{
		BookingID: bookingID,
	}

	response, err := h.getBookingStatus.Execute(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetBookingHistory handles booking audit trail requests
func (h *BookingHandlers) GetBookingHistory(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		http.Error(w, "Booking ID is required", http.StatusBadRequest)
		return
	}

	query := &application.GetBookingHistoryQuery{
		BookingID: bookingID,
	}

	response, err := h.getBookingHistory.Execute(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ListBookings handles listing the bookings of a user
func (h *BookingHandlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id query parameter is required", http.StatusBadRequest)
		return
	}

	query := &application.ListBookingsQuery{
		UserID: userID,
	}

	response, err := h.listBookings.Execute(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// CancelBooking handles booking cancellation requests
func (h *BookingHandlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		http.Error(w, "Booking ID is required", http.StatusBadRequest)
		return
	}

	cmd := &application.CancelBookingCommand{
		BookingID: bookingID,
	}

	response, err := h.cancelBooking.Execute(r.Context(), cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// RegisterRoutes registers booking routes
func (h *BookingHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.CreateBooking)
		r.Get("/", h.ListBookings)
		r.Get("/{id}", h.GetBookingStatus)
		r.Get("/{id}/history", h.GetBookingHistory)
		r.Post("/{id}/cancel", h.CancelBooking)
	})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidationError(err):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrBookingNotFound), errors.Is(err, domain.ErrSagaNotFound):
		http.Error(w, "booking not found", http.StatusNotFound)
	case domain.IsUnexpectedTransitionError(err):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrVersionConflict):
		http.Error(w, "conflicting concurrent update, retry", http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
