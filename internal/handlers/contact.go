package handlers

import (
	"context"
	"net/http"

	"carwash-backend/internal/metrics"
	"carwash-backend/internal/models"
	"carwash-backend/internal/notify"
	"carwash-backend/internal/validation"

	"github.com/rs/zerolog"
)

type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
}

type ContactHandler struct {
	contacts ContactStore
	notifier notify.Notifier
}

func NewContactHandler(contacts ContactStore, notifier notify.Notifier) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		notifier: notifier,
	}
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// --- POST /contact-us ---

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	if err := validation.Required(&req, "All fields are required."); err != nil {
		writeError(w, r, err, "contact validation")
		return
	}

	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := h.contacts.Create(r.Context(), contact); err != nil {
		writeError(w, r, err, "contact insert failed")
		return
	}

	metrics.IncContact()

	logger := zerolog.Ctx(r.Context())
	go func() {
		if err := h.notifier.Publish(context.Background(), notify.ContactMessage(contact)); err != nil {
			logger.Warn().Err(err).Str("contact_id", contact.ID.Hex()).Msg("contact notification failed")
		}
	}()

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Message received",
		"id":      contact.ID.Hex(),
	})
}
