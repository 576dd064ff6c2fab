package model

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	bangkok := time.FixedZone("ICT", 7*3600)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "already midnight UTC",
			in:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "afternoon truncated",
			in:   time.Date(2026, 9, 1, 14, 30, 45, 123, time.UTC),
			want: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "local zone converted before truncation",
			in:   time.Date(2026, 9, 1, 3, 0, 0, 0, bangkok),
			want: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDate(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("NormalizeDate(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("expected UTC location, got %v", got.Location())
			}
		})
	}
}

func TestBooking_Slot(t *testing.T) {
	b := &Booking{
		Date: time.Date(2026, 9, 1, 16, 45, 0, 0, time.UTC),
		Time: "13:00",
	}
	date, label := b.Slot()
	if !date.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected slot date: %v", date)
	}
	if label != "13:00" {
		t.Errorf("unexpected slot label: %q", label)
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "rejected"} {
		s, ok := ParseStatus(valid)
		if !ok || s.String() != valid {
			t.Errorf("ParseStatus(%q) = (%v, %v), want valid", valid, s, ok)
		}
	}

	for _, invalid := range []string{"", "done", "Pending", "CONFIRMED", "cancelled"} {
		if _, ok := ParseStatus(invalid); ok {
			t.Errorf("ParseStatus(%q) should be rejected", invalid)
		}
	}
}
