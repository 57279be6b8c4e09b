package models

import "fmt"

// Status represents the workflow status shared by orders and return requests
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ErrInvalidTransition is returned when a status change is not allowed
// by the workflow (e.g. confirming an already cancelled order).
type ErrInvalidTransition struct {
	From Status
	To   Status
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// ParseStatus validates a raw status value
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status: %s", s)
}

// IsTerminal reports whether no further transitions are allowed from s.
// Confirmed and cancelled are both terminal.
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Transition validates a status change. The only legal transitions are
// pending -> confirmed and pending -> cancelled. Attempts out of a terminal
// state fail with ErrInvalidTransition, they never silently no-op.
func Transition(from, to Status) error {
	if from == StatusPending && (to == StatusConfirmed || to == StatusCancelled) {
		return nil
	}
	return &ErrInvalidTransition{From: from, To: to}
}
