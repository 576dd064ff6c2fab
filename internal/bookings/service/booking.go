package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "washq/internal/bookings/errors"
	"washq/internal/bookings/events"
	"washq/internal/bookings/repository"
	"washq/internal/bookings/validator"
	"washq/pkg/config"
	apperrors "washq/pkg/errors"
	"washq/pkg/model"
	"washq/pkg/sanitizer"
)

const slotLockTTL = 10 * time.Second

type BookingService interface {
	Submit(ctx context.Context, booking *model.Booking) error
	GetAll(ctx context.Context) ([]*model.Booking, error)
	Summary(ctx context.Context) (*model.BookingSummary, error)
	UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	BookedTimes(ctx context.Context, date time.Time) ([]string, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Submit creates a new pending booking. A slot that already has a
// booking is rejected no matter what status that booking holds;
// freeing a slot requires deleting its booking.
func (s *bookingService) Submit(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	booking.Date = model.NormalizeDate(booking.Date)
	if err := s.validate(booking); err != nil {
		return err
	}

	// Acquire advisory lock to prevent race conditions
	lockID, err := s.acquireSlotLock(ctx, booking.Date, booking.Time)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifySlotFree(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrSlotTaken) {
				return s.slotTakenError(booking)
			}
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"date", booking.Date.Format("2006-01-02"),
		"time", booking.Time,
	)
	s.publisher.BookingCreated(ctx, booking)
	return nil
}

func (s *bookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

// Summary aggregates the dashboard counters. The three queries are
// independent and run concurrently.
func (s *bookingService) Summary(ctx context.Context) (*model.BookingSummary, error) {
	today := model.NormalizeDate(time.Now().UTC())
	tomorrow := today.AddDate(0, 0, 1)

	var todayCount, pendingCount int64
	var breakdown []model.StatusCount
	var errToday, errPending, errBreakdown error
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		todayCount, errToday = s.repo.CountByDateRange(ctx, today, tomorrow)
		if errToday != nil {
			s.cfg.Log.Error("Failed to count today's bookings", "error", errToday)
			errToday = apperrors.Internal("Failed to count today's bookings", errToday)
		}
	}()

	go func() {
		defer wg.Done()
		pendingCount, errPending = s.repo.CountByStatus(ctx, model.StatusPending)
		if errPending != nil {
			s.cfg.Log.Error("Failed to count pending bookings", "error", errPending)
			errPending = apperrors.Internal("Failed to count pending bookings", errPending)
		}
	}()

	go func() {
		defer wg.Done()
		breakdown, errBreakdown = s.repo.StatusBreakdown(ctx)
		if errBreakdown != nil {
			s.cfg.Log.Error("Failed to aggregate status breakdown", "error", errBreakdown)
			errBreakdown = apperrors.Internal("Failed to aggregate status breakdown", errBreakdown)
		}
	}()

	wg.Wait()
	if errToday != nil {
		return nil, errToday
	}
	if errPending != nil {
		return nil, errPending
	}
	if errBreakdown != nil {
		return nil, errBreakdown
	}

	if breakdown == nil {
		breakdown = []model.StatusCount{}
	}
	return &model.BookingSummary{
		TodayBookings:   todayCount,
		PendingBookings: pendingCount,
		StatusBreakdown: breakdown,
	}, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	parsed, ok := model.ParseStatus(status)
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Invalid status: %s", status))
	}

	booking, err := s.repo.UpdateStatus(ctx, id, parsed)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to update booking status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	s.cfg.Log.Info("Booking status updated", "id", id, "status", parsed)
	s.publisher.BookingStatusChanged(ctx, booking)
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	s.publisher.BookingDeleted(ctx, &model.Booking{ID: id})
	return nil
}

// BookedTimes returns the time labels already taken on the given date,
// in slot order. Rejected bookings still occupy their slot and are
// included.
func (s *bookingService) BookedTimes(ctx context.Context, date time.Time) ([]string, error) {
	if date.IsZero() {
		return nil, apperrors.InvalidInput("Date is required")
	}

	start := model.NormalizeDate(date)
	end := start.AddDate(0, 0, 1)

	bookings, err := s.repo.FindByDateRange(ctx, start, end)
	if err != nil {
		s.cfg.Log.Error("Failed to query booked times", "date", start.Format("2006-01-02"), "error", err)
		return nil, apperrors.Internal("Failed to retrieve booked times", err)
	}

	times := make([]string, 0, len(bookings))
	for _, b := range bookings {
		times = append(times, b.Time)
	}
	return times, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.StatusPending
	}
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.Name = sanitizer.NormalizeName(b.Name)
	b.Phone = sanitizer.NormalizePhone(b.Phone)
	b.CarModel = sanitizer.TrimAndNormalize(b.CarModel)
	b.LicensePlate = sanitizer.NormalizeLicensePlate(b.LicensePlate)
	b.Time = sanitizer.TrimAndNormalize(b.Time)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) verifySlotFree(ctx context.Context, booking *model.Booking) error {
	_, err := s.repo.FindBySlot(ctx, booking.Date, booking.Time)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil
		}
		return apperrors.Internal("Failed to check slot availability", err)
	}
	return s.slotTakenError(booking)
}

func (s *bookingService) slotTakenError(booking *model.Booking) *apperrors.AppError {
	return apperrors.SlotTaken(fmt.Sprintf(
		"Slot %s %s is already booked",
		booking.Date.Format("2006-01-02"),
		booking.Time,
	))
}

// acquireSlotLock creates an advisory lock to prevent concurrent booking creation
// Returns the lock ID if successful, or a slot-taken error if lock already exists
func (s *bookingService) acquireSlotLock(ctx context.Context, date time.Time, timeLabel string) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s", date.Format("2006-01-02"), timeLabel)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(slotLockTTL), // Auto-expire via TTL index
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.SlotTaken("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

// releaseSlotLock removes the advisory lock
func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
