package model

// Status is the booking lifecycle state. The set is closed: anything
// outside it is rejected at the service boundary. Transitions are
// unguarded, last write wins.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// Statuses lists every valid status value.
func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusRejected}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus returns the Status for raw, or false if raw is not one
// of the enumerated values.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.Valid()
}
