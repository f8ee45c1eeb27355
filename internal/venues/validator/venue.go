package validator

import (
	"errors"
	"fmt"
	"strings"

	"courtside/pkg/logger"
	"courtside/pkg/model"
	"courtside/pkg/timeutil"

	"github.com/go-playground/validator/v10"
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

type VenueValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewVenueValidator(log *logger.Logger) *VenueValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock_time", validateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator", "error", err)
	}

	return &VenueValidator{
		validate: v,
		logger:   log,
	}
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, err := timeutil.ToMinutes(fl.Field().String())
	return err == nil
}

func (v *VenueValidator) Validate(venue *model.Venue) error {
	if err := v.validate.Struct(venue); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	open, err := timeutil.ToMinutes(venue.OpeningTime)
	if err != nil {
		return ValidationErrors{{Field: "OpeningTime", Message: "must be in HH:MM 24-hour format"}}
	}
	closing, err := timeutil.ToMinutes(venue.ClosingTime)
	if err != nil {
		return ValidationErrors{{Field: "ClosingTime", Message: "must be in HH:MM 24-hour format"}}
	}
	if open >= closing {
		return ValidationErrors{{Field: "ClosingTime", Message: "closing_time must be after opening_time"}}
	}
	return nil
}

// ValidateSection checks the section itself and that its sport is one the
// venue offers.
func (v *VenueValidator) ValidateSection(section *model.Section, venue *model.Venue) error {
	if err := v.validate.Struct(section); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	for _, sport := range venue.Sports {
		if strings.EqualFold(sport, section.Sport) {
			return nil
		}
	}
	return ValidationErrors{{
		Field:   "Sport",
		Message: fmt.Sprintf("sport %q is not offered by the venue", section.Sport),
	}}
}

func (v *VenueValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", err.Field())
		case "clock_time":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
