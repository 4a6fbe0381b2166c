package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestContactSubmit(t *testing.T) {
	contacts := &memContacts{}
	notifier := newChanNotifier()
	h := newTestRouter(nil, NewContactHandler(contacts, notifier), nil)

	rec := doJSON(t, h, http.MethodPost, "/contact-us", map[string]any{
		"name": "Ann", "email": "ann@b.com", "message": "Do you wash vans?",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Message received" {
		t.Fatalf("unexpected message %v", resp["message"])
	}
	if len(contacts.contacts) != 1 || resp["id"] != contacts.contacts[0].ID.Hex() {
		t.Fatalf("expected returned id to match stored contact, got %v", resp["id"])
	}

	select {
	case msg := <-notifier.msgs:
		if !strings.Contains(msg.Body, "Do you wash vans?") {
			t.Fatalf("unexpected notification body %q", msg.Body)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a notification to be published")
	}
}

func TestContactRequiresAllFields(t *testing.T) {
	contacts := &memContacts{}
	h := newTestRouter(nil, NewContactHandler(contacts, newChanNotifier()), nil)

	rec := doJSON(t, h, http.MethodPost, "/contact-us", map[string]any{"name": "Ann", "email": "ann@b.com"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(contacts.contacts) != 0 {
		t.Fatal("expected no contact to be stored")
	}
}

func TestContactStoreFailure(t *testing.T) {
	h := newTestRouter(nil, NewContactHandler(&memContacts{err: errors.New("timeout")}, newChanNotifier()), nil)

	rec := doJSON(t, h, http.MethodPost, "/contact-us", map[string]any{
		"name": "Ann", "email": "ann@b.com", "message": "hi",
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
