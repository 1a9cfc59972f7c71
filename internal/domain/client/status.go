package client

import "fmt"

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusInactive, StatusSuspended:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s Status) String() string {
	return string(s)
}

// CanSubscribe reports whether a client in this status may receive a new subscription.
func (s Status) CanSubscribe() bool {
	return s == StatusActive
}
