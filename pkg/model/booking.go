package model

import (
	"time"
)

// Booking is a single appointment for one wash slot. A slot is the
// (date, time-label) pair; date is normalized to midnight UTC before
// storage so range queries and the slot index behave predictably.
type Booking struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=1,max=120"`
	Phone        string    `json:"phone" bson:"phone" validate:"required,min=3,max=32"`
	CarModel     string    `json:"carModel" bson:"car_model" validate:"required,min=1,max=120"`
	LicensePlate string    `json:"licensePlate" bson:"license_plate" validate:"required,min=1,max=32"`
	Date         time.Time `json:"date" bson:"date" validate:"required"`
	Time         string    `json:"time" bson:"time" validate:"required"`
	Status       Status    `json:"status" bson:"status" validate:"omitempty,oneof=pending confirmed rejected"`
	CreatedAt    time.Time `json:"createdAt,omitempty" bson:"created_at" validate:"omitempty"`
}

// Slot returns the booking's (date, time) pair with the date part
// normalized to midnight UTC.
func (b *Booking) Slot() (time.Time, string) {
	return NormalizeDate(b.Date), b.Time
}

// NormalizeDate truncates a timestamp to midnight UTC. All slot
// comparisons and day-range queries operate on normalized dates.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StatusCount is one bucket of the status breakdown. The field names
// mirror the $group aggregation output the admin dashboard consumes.
type StatusCount struct {
	Status Status `json:"_id" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}

// BookingSummary is the admin dashboard summary payload.
type BookingSummary struct {
	TodayBookings   int64         `json:"todayBookings"`
	PendingBookings int64         `json:"pendingBookings"`
	StatusBreakdown []StatusCount `json:"statusBreakdown"`
}
