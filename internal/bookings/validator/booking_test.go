package validator

import (
	"strings"
	"testing"
	"time"

	"washq/pkg/logger"
	"washq/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json", Service: "test"})
}

func validBooking() *model.Booking {
	return &model.Booking{
		Name:         "Somchai",
		Phone:        "+66812345678",
		CarModel:     "Toyota Vios",
		LicensePlate: "ABC123",
		Date:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Time:         "10:00",
		Status:       model.StatusPending,
	}
}

func TestBookingValidator_Validate(t *testing.T) {
	v := NewBookingValidator([]string{"10:00", "11:00", "13:00"}, testLogger())

	tests := []struct {
		name    string
		mutate  func(*model.Booking)
		wantErr string
	}{
		{
			name:   "valid booking",
			mutate: func(b *model.Booking) {},
		},
		{
			name:    "missing name",
			mutate:  func(b *model.Booking) { b.Name = "" },
			wantErr: "Name is required",
		},
		{
			name:    "missing phone",
			mutate:  func(b *model.Booking) { b.Phone = "" },
			wantErr: "Phone is required",
		},
		{
			name:    "missing car model",
			mutate:  func(b *model.Booking) { b.CarModel = "" },
			wantErr: "CarModel is required",
		},
		{
			name:    "missing license plate",
			mutate:  func(b *model.Booking) { b.LicensePlate = "" },
			wantErr: "LicensePlate is required",
		},
		{
			name:    "zero date",
			mutate:  func(b *model.Booking) { b.Date = time.Time{} },
			wantErr: "date is required",
		},
		{
			name:    "time outside configured slots",
			mutate:  func(b *model.Booking) { b.Time = "09:00" },
			wantErr: "time must be one of",
		},
		{
			name:    "invalid status",
			mutate:  func(b *model.Booking) { b.Status = model.Status("done") },
			wantErr: "Status must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			tt.mutate(booking)

			err := v.Validate(booking)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestBookingValidator_FreeTextFieldsAccepted(t *testing.T) {
	v := NewBookingValidator([]string{"10:00"}, testLogger())

	booking := validBooking()
	booking.Phone = "call me maybe"
	booking.LicensePlate = "กก1234 กรุงเทพมหานคร"
	booking.Time = "10:00"

	if err := v.Validate(booking); err != nil {
		t.Fatalf("free-text phone and plate should pass validation, got %v", err)
	}
}
