package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"washq/internal/bookings/service"
	apperrors "washq/pkg/errors"
	httputil "washq/pkg/http"
	"washq/pkg/logger"
	"washq/pkg/middleware"
	"washq/pkg/model"
)

const dateLayout = "2006-01-02"

type bookingRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	CarModel     string `json:"carModel"`
	LicensePlate string `json:"licensePlate"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type bookedTimesResponse struct {
	BookedTimes []string `json:"bookedTimes"`
}

type BookingHandler struct {
	service      service.BookingService
	requireAdmin func(httprouter.Handle) httprouter.Handle
	log          *logger.Logger
}

func NewBookingHandler(
	service service.BookingService,
	verifier middleware.AdminVerifier,
	log *logger.Logger,
) *BookingHandler {
	return &BookingHandler{
		service:      service,
		requireAdmin: middleware.RequireAdmin(verifier, log),
		log:          log,
	}
}

// Create handles the public booking form submission.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "Invalid request body",
			Code:    apperrors.CodeInvalidInput,
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking := model.Booking{
		Name:         req.Name,
		Phone:        req.Phone,
		CarModel:     req.CarModel,
		LicensePlate: req.LicensePlate,
		Date:         date,
		Time:         req.Time,
	}

	if err := h.service.Submit(r.Context(), &booking); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Summary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Summary", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, summary); err != nil {
		h.log.Error("failed to write success response", "handler", "Summary", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "Invalid request body",
			Code:    apperrors.CodeInvalidInput,
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateStatus", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "Booking deleted"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

// BookedTimes serves the public availability check for the booking form.
func (h *BookingHandler) BookedTimes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BookedTimes", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	times, err := h.service.BookedTimes(r.Context(), date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BookedTimes", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookedTimesResponse{BookedTimes: times}); err != nil {
		h.log.Error("failed to write success response", "handler", "BookedTimes", "operation", "WriteSuccess", "error", err)
	}
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, apperrors.InvalidInput("Date is required")
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("Invalid date format, expected YYYY-MM-DD")
	}
	return date, nil
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", h.Create)
	router.GET("/api/bookings", h.requireAdmin(h.GetAll))
	router.GET("/api/bookings/summary", h.requireAdmin(h.Summary))
	router.GET("/api/bookings/booked-times", h.BookedTimes)
	router.PATCH("/api/bookings/:id", h.requireAdmin(h.UpdateStatus))
	router.DELETE("/api/bookings/:id", h.requireAdmin(h.Delete))
}
