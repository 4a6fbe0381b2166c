package handlers

import (
	"context"
	"net/http"
	"time"

	"carwash-backend/internal/errs"
	"carwash-backend/internal/metrics"
	"carwash-backend/internal/models"
	"carwash-backend/internal/notify"
	"carwash-backend/internal/queue"
	"carwash-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	List(ctx context.Context, email string) ([]models.Booking, error)
}

type BookingHandler struct {
	bookings  BookingStore
	notifier  notify.Notifier
	publisher queue.Publisher
	admins    map[string]struct{}
	now       func() time.Time
}

func NewBookingHandler(bookings BookingStore, notifier notify.Notifier, publisher queue.Publisher, admins []string) *BookingHandler {
	set := make(map[string]struct{}, len(admins))
	for _, a := range admins {
		set[a] = struct{}{}
	}
	return &BookingHandler{
		bookings:  bookings,
		notifier:  notifier,
		publisher: publisher,
		admins:    set,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

var errBookingNotFound = errs.NewNotFoundError("Booking not found")

// CreateBookingRequest accepts whatever JSON type the client sends for most
// fields. A status sent by the client is ignored.
type CreateBookingRequest struct {
	Title         any    `json:"title" validate:"present"`
	Duration      any    `json:"duration" validate:"present"`
	Price         any    `json:"price" validate:"present"`
	Date          any    `json:"date" validate:"present"`
	Time          any    `json:"time" validate:"present"`
	Address1      any    `json:"address1" validate:"present"`
	Address2      any    `json:"address2"`
	City          any    `json:"city" validate:"present"`
	State         any    `json:"state" validate:"present"`
	PinCode       any    `json:"pinCode" validate:"present"`
	FullName      any    `json:"fullName" validate:"present"`
	Email         string `json:"email" validate:"required"`
	ContactNumber any    `json:"contactNumber" validate:"present"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// --- POST /book-car-wash ---

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	if err := validation.Required(&req, "Please fill all required fields."); err != nil {
		writeError(w, r, err, "booking validation")
		return
	}

	address2 := req.Address2
	if address2 == nil {
		address2 = ""
	}

	booking := &models.Booking{
		Title:         req.Title,
		Duration:      req.Duration,
		Price:         req.Price,
		Date:          req.Date,
		Time:          req.Time,
		Address1:      req.Address1,
		Address2:      address2,
		City:          req.City,
		State:         req.State,
		PinCode:       req.PinCode,
		FullName:      req.FullName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Status:        models.StatusPending,
		CreatedAt:     h.now(),
	}
	if err := h.bookings.Create(r.Context(), booking); err != nil {
		writeError(w, r, err, "booking insert failed")
		return
	}

	metrics.IncBookingCreated()

	logger := zerolog.Ctx(r.Context())
	go func() {
		ctx := context.Background()
		if err := h.publisher.Publish(ctx, queue.NewBookingEvent(queue.EventBookingCreated, booking)); err != nil {
			logger.Warn().Err(err).Str("booking_id", booking.ID.Hex()).Msg("booking event publish failed")
		}
		if err := h.notifier.Publish(ctx, notify.BookingMessage(booking)); err != nil {
			logger.Warn().Err(err).Str("booking_id", booking.ID.Hex()).Msg("booking notification failed")
		}
	}()

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Booking confirmed",
		"bookingId": booking.ID.Hex(),
	})
}

// --- PUT /bookings/{id}/status ---

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	if err := validation.Required(&req, "Status is required"); err != nil {
		writeError(w, r, err, "status validation")
		return
	}

	existing, err := h.bookings.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "booking lookup failed")
		return
	}
	if existing == nil {
		writeError(w, r, errBookingNotFound, "")
		return
	}

	matched, err := h.bookings.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err, "booking status update failed")
		return
	}
	if !matched {
		writeError(w, r, errBookingNotFound, "")
		return
	}

	updated, err := h.bookings.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "booking reload failed")
		return
	}
	if updated == nil {
		writeError(w, r, errBookingNotFound, "")
		return
	}

	metrics.IncStatusUpdated()

	logger := zerolog.Ctx(r.Context())
	logger.Info().
		Str("booking_id", id).
		Str("from", existing.Status).
		Str("to", updated.Status).
		Msg("booking status updated")

	go func() {
		ev := queue.NewBookingEvent(queue.EventBookingStatusUpdated, updated)
		if err := h.publisher.Publish(context.Background(), ev); err != nil {
			logger.Warn().Err(err).Str("booking_id", id).Msg("booking event publish failed")
		}
	}()

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Status updated",
		"booking": updated,
	})
}

// --- GET /bookings?email= ---

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, r, errs.NewValidationError("Email is required", []errs.FieldError{
			{Field: "email", Error: "is required"},
		}), "")
		return
	}

	filter := email
	if h.isAdmin(email) {
		filter = ""
	}

	bookings, err := h.bookings.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, "list bookings failed")
		return
	}

	if len(bookings) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":  "No bookings found",
			"bookings": []models.Booking{},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bookings": bookings,
	})
}

func (h *BookingHandler) isAdmin(email string) bool {
	_, ok := h.admins[email]
	return ok
}
