// Package queue publishes booking lifecycle events to a message broker so
// downstream consumers can react without querying the store.
package queue

import (
	"time"

	"carwash-backend/internal/models"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusUpdated = "booking.status_updated"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	Title      any       `json:"title,omitempty"`
	Date       any       `json:"date,omitempty"`
	Time       any       `json:"time,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *models.Booking) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  b.ID.Hex(),
		Email:      b.Email,
		Status:     b.Status,
		Title:      b.Title,
		Date:       b.Date,
		Time:       b.Time,
		OccurredAt: time.Now().UTC(),
	}
}
