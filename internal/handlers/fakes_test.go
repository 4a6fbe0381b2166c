package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"carwash-backend/internal/models"
	"carwash-backend/internal/notify"
	"carwash-backend/internal/queue"
	"carwash-backend/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type memUsers struct {
	mu    sync.Mutex
	users []models.User
	err   error
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m *memUsers) FindByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email && u.Password == password })
}

func (m *memUsers) find(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = bson.NewObjectID()
	m.users = append(m.users, *user)
	return nil
}

func (m *memUsers) countByEmail(email string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

type memContacts struct {
	mu       sync.Mutex
	contacts []models.Contact
	err      error
}

func (m *memContacts) Create(ctx context.Context, contact *models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	contact.ID = bson.NewObjectID()
	m.contacts = append(m.contacts, *contact)
	return nil
}

type memBookings struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	err      error
}

func newMemBookings() *memBookings {
	return &memBookings{bookings: map[string]models.Booking{}}
}

func (m *memBookings) Create(ctx context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	booking.ID = bson.NewObjectID()
	m.bookings[booking.ID.Hex()] = *booking
	return nil
}

func (m *memBookings) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *memBookings) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	b, ok := m.bookings[id]
	if !ok {
		return false, nil
	}
	b.Status = status
	m.bookings[id] = b
	return true, nil
}

func (m *memBookings) List(ctx context.Context, email string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Booking{}
	for _, b := range m.bookings {
		if email == "" || b.Email == email {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type chanNotifier struct {
	msgs chan notify.Message
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{msgs: make(chan notify.Message, 8)}
}

func (n *chanNotifier) Publish(ctx context.Context, msg notify.Message) error {
	n.msgs <- msg
	return nil
}

type chanPublisher struct {
	events chan queue.BookingEvent
}

func newChanPublisher() *chanPublisher {
	return &chanPublisher{events: make(chan queue.BookingEvent, 8)}
}

func (p *chanPublisher) Publish(ctx context.Context, ev queue.BookingEvent) error {
	p.events <- ev
	return nil
}

func (p *chanPublisher) Close() error { return nil }

func newTestRouter(auth *AuthHandler, contact *ContactHandler, booking *BookingHandler) http.Handler {
	r := chi.NewRouter()
	if auth != nil {
		r.Post("/add-user", auth.Signup)
		r.Post("/login", auth.Login)
	}
	if contact != nil {
		r.Post("/contact-us", contact.Submit)
	}
	if booking != nil {
		r.Post("/book-car-wash", booking.Create)
		r.Put("/bookings/{id}/status", booking.UpdateStatus)
		r.Get("/bookings", booking.List)
	}
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %q: %v", rec.Body.String(), err)
	}
	return out
}
