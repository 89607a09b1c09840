package customers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/CharloYT/Timetable/internal/activity"
)

type Customer struct {
	ID        int64  `json:"customer_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	ZipCode   string `json:"zip_code,omitempty"`
}

type Request struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

// ValidationError carries every rule the submission broke, not just the first.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

var ErrDuplicateEmail = errors.New("a customer with this email address already exists")

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	zipRe   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

type Store interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, c Customer) (int64, error)
}

type Service struct {
	Store    Store
	Recorder activity.Recorder
}

// Register validates and stores a new customer record.
func (s *Service) Register(ctx context.Context, req Request, actorID int64) (*Customer, error) {
	c := Customer{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		City:      strings.TrimSpace(req.City),
		State:     strings.TrimSpace(req.State),
		ZipCode:   strings.TrimSpace(req.ZipCode),
	}

	if err := validate(c); err != nil {
		s.Recorder.Record(ctx, activity.ActionCustomerAddFailed,
			"Failed to add customer: "+c.Email, actorID)
		return nil, err
	}

	exists, err := s.Store.EmailExists(ctx, c.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		s.Recorder.Record(ctx, activity.ActionCustomerAddFailed,
			"Failed to add customer: "+c.Email, actorID)
		return nil, ErrDuplicateEmail
	}

	id, err := s.Store.Insert(ctx, c)
	if err != nil {
		s.Recorder.Record(ctx, activity.ActionCustomerAddFailed,
			"Failed to add customer: "+c.Email, actorID)
		return nil, err
	}
	c.ID = id
	s.Recorder.Record(ctx, activity.ActionCustomerAdded,
		fmt.Sprintf("New customer added: %s %s (%s)", c.FirstName, c.LastName, c.Email), actorID)
	return &c, nil
}

func validate(c Customer) error {
	var errs []string
	switch {
	case c.FirstName == "":
		errs = append(errs, "First name is required")
	case len(c.FirstName) < 2:
		errs = append(errs, "First name must be at least 2 characters long")
	}
	switch {
	case c.LastName == "":
		errs = append(errs, "Last name is required")
	case len(c.LastName) < 2:
		errs = append(errs, "Last name must be at least 2 characters long")
	}
	switch {
	case c.Email == "":
		errs = append(errs, "Email address is required")
	case !emailRe.MatchString(c.Email):
		errs = append(errs, "Please enter a valid email address")
	}
	if c.Phone != "" && !phoneRe.MatchString(c.Phone) {
		errs = append(errs, "Please enter a valid phone number")
	}
	if c.ZipCode != "" && !zipRe.MatchString(c.ZipCode) {
		errs = append(errs, "Please enter a valid ZIP code")
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
