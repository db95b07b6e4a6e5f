package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/go-playground/validator/v10"
)

// BusinessValidator handles rules that go beyond field shape
type BusinessValidator struct {
	validate *validator.Validate
}

func newBusinessValidator(validate *validator.Validate) *BusinessValidator {
	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()
	return bv
}

// ValidateSchedule checks that a dated range does not run backwards
func (bv *BusinessValidator) ValidateSchedule(start, end time.Time) ValidationErrors {
	var errors ValidationErrors
	if end.Before(start) {
		errors = append(errors, ValidationError{
			Field:   "endDate",
			Message: "End date cannot be before start date",
			Value:   utils.FormatDate(end),
			Rule:    "date_range",
		})
	}
	return errors
}

// ValidateCapacity checks seat counts and fees. Nil values are skipped so
// partial updates can reuse it.
func (bv *BusinessValidator) ValidateCapacity(seats *int, fees *float64) ValidationErrors {
	var errors ValidationErrors
	if seats != nil && *seats < 0 {
		errors = append(errors, ValidationError{
			Field:   "availableSeats",
			Message: "Available seats cannot be negative",
			Value:   *seats,
			Rule:    "non_negative",
		})
	}
	if fees != nil && *fees < 0 {
		errors = append(errors, ValidationError{
			Field:   "fees",
			Message: "Fees cannot be negative",
			Value:   *fees,
			Rule:    "non_negative",
		})
	}
	return errors
}

// ValidateRooms accepts the decoded rooms payload and returns it as a list of
// trimmed names.
func (bv *BusinessValidator) ValidateRooms(value interface{}) ([]string, ValidationErrors) {
	if err := utils.ValidateArrayInput(value, 0, "Rooms must be an array"); err != nil {
		return nil, ValidationErrors{{Field: "rooms", Message: "Rooms must be an array", Rule: "array"}}
	}

	var rooms []string
	switch v := value.(type) {
	case []string:
		rooms = append(rooms, v...)
	case []interface{}:
		for i, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, ValidationErrors{{
					Field:   fmt.Sprintf("rooms[%d]", i),
					Message: "Room names must be strings",
					Value:   item,
					Rule:    "array",
				}}
			}
			rooms = append(rooms, name)
		}
	default:
		return nil, ValidationErrors{{Field: "rooms", Message: "Rooms must be an array", Rule: "array"}}
	}

	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// registerBusinessRules registers custom tags used by the request DTOs
func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseDate(fl.Field().String(), fl.FieldName())
		return err == nil
	})

	bv.validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseTime(fl.Field().String(), fl.FieldName())
		return err == nil
	})

	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		_, err := models.ParseAssignableRole(fl.Field().String())
		return err == nil
	})

	bv.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	bv.validate.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return utils.IsValidEmail(fl.Field().String())
	})
}
