// Package odrequest is the on-duty request a coordinator submits: who asked, the
// event window, and the classes whose lectures it overlaps.
package odrequest

import (
	"errors"
	"fmt"
	"time"

	"github.com/Pjt727/odautofill/draft"
	"github.com/Pjt727/odautofill/internal/validation"
	"github.com/Pjt727/odautofill/timetable"
	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("od request not found")
	// only rejected requests can be deleted
	ErrNotRejected    = errors.New("od request is not rejected")
	ErrInvalidStatus  = errors.New("invalid od request status")
	ErrNoClasses      = errors.New("od request has no classes")
	ErrInvalidRequest = errors.New("invalid od request")
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

var Statuses = []Status{StatusPending, StatusAccepted, StatusRejected}

func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

type Event struct {
	Date string            `json:"date" validate:"required,datetime=2006-01-02"`
	Day  timetable.Weekday `json:"day"`
	timetable.Interval
}

// Time parses the event date, it is only meaningful after validation
func (e Event) Time() (time.Time, error) {
	return time.Parse(time.DateOnly, e.Date)
}

type Request struct {
	ID               string             `json:"id"`
	CoordinatorName  string             `json:"coordinatorName" validate:"required"`
	CoordinatorEmail string             `json:"coordinatorEmail" validate:"required,email"`
	EventName        string             `json:"eventName" validate:"required"`
	Event            Event              `json:"event"`
	Classes          []draft.ClassDraft `json:"classes"`
	Status           Status             `json:"status"`
	CreatedAt        time.Time          `json:"createdAt"`
}

type Submission struct {
	CoordinatorName  string
	CoordinatorEmail string
	EventName        string
	Date             string
	Window           timetable.Interval
	Classes          []draft.ClassDraft
}

// New builds a pending request and checks it can be stored. Every class must
// pass its own commit checks.
func New(sub Submission) (Request, error) {
	r := Request{
		ID:               uuid.NewString(),
		CoordinatorName:  sub.CoordinatorName,
		CoordinatorEmail: sub.CoordinatorEmail,
		EventName:        sub.EventName,
		Event:            Event{Date: sub.Date, Interval: sub.Window},
		Classes:          sub.Classes,
		Status:           StatusPending,
		CreatedAt:        time.Now().UTC(),
	}
	if err := r.Validate(); err != nil {
		return Request{}, err
	}
	date, _ := r.Event.Time()
	r.Event.Day = timetable.WeekdayOf(date)
	return r, nil
}

func (r *Request) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if !r.Event.From.Valid() || !r.Event.To.Valid() {
		return fmt.Errorf("%w: event times must be HH:MM", ErrInvalidRequest)
	}
	if r.Event.To.Minutes() <= r.Event.From.Minutes() {
		return fmt.Errorf("%w: event must end after it starts", ErrInvalidRequest)
	}
	if len(r.Classes) == 0 {
		return ErrNoClasses
	}
	var errs []error
	for i := range r.Classes {
		if err := r.Classes[i].Commit(); err != nil {
			errs = append(errs, fmt.Errorf("class %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

// Decide moves the request to Accepted or Rejected. A decision can be changed
// but a request cannot go back to Pending.
func (r *Request) Decide(status Status) error {
	if status != StatusAccepted && status != StatusRejected {
		return fmt.Errorf("%w: cannot move to %s", ErrInvalidStatus, status)
	}
	r.Status = status
	return nil
}

func (r *Request) Deletable() error {
	if r.Status != StatusRejected {
		return fmt.Errorf("%w: %s is %s", ErrNotRejected, r.ID, r.Status)
	}
	return nil
}

type Summary map[Status]int

func Summarize(requests []Request) Summary {
	summary := Summary{StatusPending: 0, StatusAccepted: 0, StatusRejected: 0}
	for _, r := range requests {
		summary[r.Status]++
	}
	return summary
}
