package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type memStore struct {
	emails  map[string]bool
	nextID  int64
	inserts []Customer
}

func (m *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	return m.emails[email], nil
}

func (m *memStore) Insert(_ context.Context, c Customer) (int64, error) {
	m.nextID++
	m.inserts = append(m.inserts, c)
	m.emails[c.Email] = true
	return m.nextID, nil
}

type recordedEvent struct {
	action, description string
}

type captureRecorder struct{ events []recordedEvent }

func (c *captureRecorder) Record(_ context.Context, action, description string, _ int64) {
	c.events = append(c.events, recordedEvent{action, description})
}

func newService() (*Service, *memStore, *captureRecorder) {
	store := &memStore{emails: map[string]bool{}}
	rec := &captureRecorder{}
	return &Service{Store: store, Recorder: rec}, store, rec
}

func TestRegister_Success(t *testing.T) {
	svc, store, rec := newService()

	c, err := svc.Register(context.Background(), Request{
		FirstName: "  Ada ",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "(555) 123-4567",
		ZipCode:   "12345-6789",
	}, 1)

	require.NoError(t, err)
	require.Equal(t, int64(1), c.ID)
	require.Equal(t, "Ada", c.FirstName)
	require.Len(t, store.inserts, 1)
	require.Equal(t, "customer_added", rec.events[0].action)
	require.Contains(t, rec.events[0].description, "Ada Lovelace (ada@example.com)")
}

func TestRegister_CollectsAllErrors(t *testing.T) {
	svc, store, _ := newService()

	_, err := svc.Register(context.Background(), Request{
		FirstName: "A",
		Email:     "not-an-email",
		Phone:     "call me maybe",
		ZipCode:   "1234",
	}, 0)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, []string{
		"First name must be at least 2 characters long",
		"Last name is required",
		"Please enter a valid email address",
		"Please enter a valid phone number",
		"Please enter a valid ZIP code",
	}, vErr.Errors)
	require.Empty(t, store.inserts)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, store, rec := newService()
	store.emails["ada@example.com"] = true

	_, err := svc.Register(context.Background(), Request{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}, 0)

	require.ErrorIs(t, err, ErrDuplicateEmail)
	require.Empty(t, store.inserts)
	require.Equal(t, "customer_add_failed", rec.events[0].action)
}

func TestRegister_OptionalFieldsMayBeEmpty(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Register(context.Background(), Request{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}, 0)
	require.NoError(t, err)
}
