package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"washq/pkg/logger"
	"washq/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// BookingValidator checks structural validity plus the slot-label
// membership rule. Slot labels are opaque strings; the only semantic
// rule is that they come from the configured set.
type BookingValidator struct {
	validate *validator.Validate
	slots    []string
	logger   *logger.Logger
}

func NewBookingValidator(slots []string, log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		slots:    slots,
		logger:   log,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if booking.Date.IsZero() {
		return ValidationErrors{
			ValidationError{
				Field:   "Date",
				Message: "date is required",
			},
		}
	}

	if !v.isBookableSlot(booking.Time) {
		return ValidationErrors{
			ValidationError{
				Field:   "Time",
				Message: fmt.Sprintf("time must be one of: %s", strings.Join(v.slots, ", ")),
			},
		}
	}

	return nil
}

func (v *BookingValidator) isBookableSlot(label string) bool {
	for _, slot := range v.slots {
		if slot == label {
			return true
		}
	}
	return false
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
