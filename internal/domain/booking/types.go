package booking

import "strings"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
)

var AllStatuses = []Status{StatusPending, StatusConfirmed, StatusCancelled}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// NewStatus accepts only the exact wire names.
func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ParseStatusName is the lenient variant used for query filters.
func ParseStatusName(s string) (Status, error) {
	trimmed := strings.TrimSpace(s)
	for _, st := range AllStatuses {
		if strings.EqualFold(trimmed, string(st)) {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// Cancelled is terminal, and nothing moves back to Pending.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	default:
		return false
	}
}
