// Package notify delivers best-effort notifications about new contact
// messages and bookings to the business owner.
package notify

import (
	"context"
	"fmt"
	"strings"

	"carwash-backend/internal/models"
)

type Message struct {
	Subject string
	Body    string
}

// Notifier publishes a message to a notification channel. Callers treat
// failures as non-fatal.
type Notifier interface {
	Publish(ctx context.Context, msg Message) error
}

func ContactMessage(c *models.Contact) Message {
	return Message{
		Subject: "New contact message from " + c.Name,
		Body: fmt.Sprintf("Name: %s\nEmail: %s\n\n%s",
			c.Name, c.Email, c.Message),
	}
}

func BookingMessage(b *models.Booking) Message {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking: %s\n", b.ID.Hex())
	fmt.Fprintf(&sb, "Service: %v (%v min, %v)\n", b.Title, b.Duration, b.Price)
	fmt.Fprintf(&sb, "When: %v %v\n", b.Date, b.Time)
	fmt.Fprintf(&sb, "Where: %v", b.Address1)
	if b.Address2 != nil && b.Address2 != "" {
		fmt.Fprintf(&sb, ", %v", b.Address2)
	}
	fmt.Fprintf(&sb, ", %v, %v %v\n", b.City, b.State, b.PinCode)
	fmt.Fprintf(&sb, "Customer: %v <%s> %v", b.FullName, b.Email, b.ContactNumber)

	return Message{
		Subject: fmt.Sprintf("New booking: %v on %v", b.Title, b.Date),
		Body:    sb.String(),
	}
}
