package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	apperrors "washq/pkg/errors"
	"washq/pkg/logger"
	"washq/pkg/model"
)

// Mock service for testing
type mockBookingService struct {
	submitFunc       func(ctx context.Context, booking *model.Booking) error
	getAllFunc       func(ctx context.Context) ([]*model.Booking, error)
	summaryFunc      func(ctx context.Context) (*model.BookingSummary, error)
	updateStatusFunc func(ctx context.Context, id string, status string) (*model.Booking, error)
	deleteFunc       func(ctx context.Context, id string) error
	bookedTimesFunc  func(ctx context.Context, date time.Time) ([]string, error)
}

func (m *mockBookingService) Submit(ctx context.Context, booking *model.Booking) error {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, booking)
	}
	booking.ID = "new-id"
	booking.Status = model.StatusPending
	return nil
}

func (m *mockBookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingService) Summary(ctx context.Context) (*model.BookingSummary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx)
	}
	return &model.BookingSummary{StatusBreakdown: []model.StatusCount{}}, nil
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	parsed, _ := model.ParseStatus(status)
	return &model.Booking{ID: id, Status: parsed}, nil
}

func (m *mockBookingService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingService) BookedTimes(ctx context.Context, date time.Time) ([]string, error) {
	if m.bookedTimesFunc != nil {
		return m.bookedTimesFunc(ctx, date)
	}
	return []string{}, nil
}

type mockVerifier struct {
	subject string
	err     error
}

func (m *mockVerifier) VerifyToken(token string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.subject, nil
}

func newTestRouter(svc *mockBookingService, verifier *mockVerifier) *httprouter.Router {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	h := NewBookingHandler(svc, verifier, log)
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestCreate(t *testing.T) {
	var submitted *model.Booking
	svc := &mockBookingService{
		submitFunc: func(ctx context.Context, booking *model.Booking) error {
			submitted = booking
			booking.ID = "new-id"
			booking.Status = model.StatusPending
			return nil
		},
	}
	router := newTestRouter(svc, &mockVerifier{subject: "admin"})

	body := `{"name":"Somchai","phone":"0812345678","carModel":"Toyota Vios","licensePlate":"ABC123","date":"2026-09-01","time":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if submitted == nil {
		t.Fatal("service.Submit was not called")
	}
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !submitted.Date.Equal(want) {
		t.Errorf("expected parsed date %v, got %v", want, submitted.Date)
	}
	if submitted.Time != "10:00" {
		t.Errorf("expected time 10:00, got %q", submitted.Time)
	}

	var resp model.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.ID != "new-id" || resp.Status != model.StatusPending {
		t.Errorf("unexpected response booking: %+v", resp)
	}
}

func TestCreate_InvalidDate(t *testing.T) {
	svc := &mockBookingService{
		submitFunc: func(ctx context.Context, booking *model.Booking) error {
			t.Fatal("Submit should not be called for an invalid date")
			return nil
		},
	}
	router := newTestRouter(svc, &mockVerifier{})

	for _, body := range []string{
		`{"name":"A","phone":"1","carModel":"B","licensePlate":"C","date":"09/01/2026","time":"10:00"}`,
		`{"name":"A","phone":"1","carModel":"B","licensePlate":"C","time":"10:00"}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestCreate_SlotTaken(t *testing.T) {
	svc := &mockBookingService{
		submitFunc: func(ctx context.Context, booking *model.Booking) error {
			return apperrors.SlotTaken("Slot 2026-09-01 10:00 is already booked")
		},
	}
	router := newTestRouter(svc, &mockVerifier{})

	body := `{"name":"A","phone":"1","carModel":"B","licensePlate":"C","date":"2026-09-01","time":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Code != apperrors.CodeSlotTaken {
		t.Errorf("expected code %s, got %s", apperrors.CodeSlotTaken, resp.Code)
	}
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	router := newTestRouter(&mockBookingService{}, &mockVerifier{err: errors.New("bad token")})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/bookings"},
		{http.MethodGet, "/api/bookings/summary"},
		{http.MethodPatch, "/api/bookings/abc123"},
		{http.MethodDelete, "/api/bookings/abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{"status":"confirmed"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401 without token, got %d", rec.Code)
			}
		})
	}
}

func TestPublicRoutes_NoTokenNeeded(t *testing.T) {
	router := newTestRouter(&mockBookingService{}, &mockVerifier{err: errors.New("bad token")})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/booked-times?date=2026-09-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("booked-times must be public, got %d", rec.Code)
	}
}

func TestUpdateStatus_Route(t *testing.T) {
	var gotID, gotStatus string
	svc := &mockBookingService{
		updateStatusFunc: func(ctx context.Context, id string, status string) (*model.Booking, error) {
			gotID, gotStatus = id, status
			return &model.Booking{ID: id, Status: model.StatusConfirmed}, nil
		},
	}
	router := newTestRouter(svc, &mockVerifier{subject: "admin"})

	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/abc123", strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotID != "abc123" || gotStatus != "confirmed" {
		t.Errorf("expected (abc123, confirmed), got (%s, %s)", gotID, gotStatus)
	}
}

func TestDelete_Route(t *testing.T) {
	svc := &mockBookingService{
		deleteFunc: func(ctx context.Context, id string) error {
			return apperrors.NotFoundWithID("Booking", id)
		},
	}
	router := newTestRouter(svc, &mockVerifier{subject: "admin"})

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/missing", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestBookedTimes_Response(t *testing.T) {
	svc := &mockBookingService{
		bookedTimesFunc: func(ctx context.Context, date time.Time) ([]string, error) {
			return []string{"10:00", "13:00"}, nil
		},
	}
	router := newTestRouter(svc, &mockVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/booked-times?date=2026-09-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		BookedTimes []string `json:"bookedTimes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.BookedTimes) != 2 {
		t.Errorf("expected 2 booked times, got %v", resp.BookedTimes)
	}
}

func TestBookedTimes_MissingDate(t *testing.T) {
	router := newTestRouter(&mockBookingService{}, &mockVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/booked-times", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing date, got %d", rec.Code)
	}
}
