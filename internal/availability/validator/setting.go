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

// SettingValidator validates slot settings and blocked settings. Beyond the
// struct tags it checks that every timing band is a forward range, since
// tag-level validation cannot compare fields inside a slice element.
type SettingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewSettingValidator(log *logger.Logger) *SettingValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock_time", ValidateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator", "error", err)
	}
	if err := v.RegisterValidation("day_prices", validateDayPrices); err != nil {
		log.Fatal("Failed to register 'day_prices' validator", "error", err)
	}

	return &SettingValidator{
		validate: v,
		logger:   log,
	}
}

// ValidateClockTime accepts strict "HH:MM" 24-hour strings. Shared with the
// other verticals that carry clock_time tags.
func ValidateClockTime(fl validator.FieldLevel) bool {
	_, err := timeutil.ToMinutes(fl.Field().String())
	return err == nil
}

func validateDayPrices(fl validator.FieldLevel) bool {
	prices, ok := fl.Field().Interface().(map[string]float64)
	if !ok {
		return false
	}
	valid := make(map[string]struct{}, len(model.Weekdays))
	for _, d := range model.Weekdays {
		valid[d] = struct{}{}
	}
	for day, price := range prices {
		if _, known := valid[day]; !known {
			return false
		}
		if price <= 0 {
			return false
		}
	}
	return true
}

func (v *SettingValidator) Validate(setting *model.SlotSetting) error {
	if err := v.validate.Struct(setting); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return validateBands(setting.Timings, true)
}

func (v *SettingValidator) ValidateBlocked(blocked *model.BlockedSetting) error {
	if err := v.validate.Struct(blocked); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return validateBands(blocked.Timings, false)
}

// validateBands checks that every range runs forward. Fit is left to the
// generator: a band shorter than the slot duration simply yields no slots.
func validateBands(bands []model.TimeRange, required bool) error {
	if required && len(bands) == 0 {
		return ValidationErrors{{Field: "Timings", Message: "at least one time range is required"}}
	}

	var errs ValidationErrors
	for i, band := range bands {
		start, err := timeutil.ToMinutes(band.StartTime)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("Timings[%d].StartTime", i),
				Message: "must be in HH:MM 24-hour format",
			})
			continue
		}
		end, err := timeutil.ToMinutes(band.EndTime)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("Timings[%d].EndTime", i),
				Message: "must be in HH:MM 24-hour format",
			})
			continue
		}
		if start >= end {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("Timings[%d]", i),
				Message: "end_time must be after start_time",
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *SettingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", err.Field())
		case "clock_time":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
		case "day_prices":
			message = "day_prices keys must be weekday labels (SUN-SAT) with positive prices"
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
