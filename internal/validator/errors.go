package validator

import (
	"errors"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single field failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

// ValidationErrors is returned by Validate and the business checks
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	messages := make([]string, 0, len(ve))
	for _, e := range ve {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "; ")
}

// Summary is the message shown to clients: the single failure when there is
// one, a generic line otherwise.
func (ve ValidationErrors) Summary() string {
	if len(ve) == 1 {
		return ve[0].Message
	}
	return "Validation failed"
}

// ToValidationErrors converts validator field errors, translating messages
// when a translator is available.
func ToValidationErrors(err error, trans ut.Translator) ValidationErrors {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "", Message: err.Error(), Rule: "invalid"}}
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fe.Error()
		if trans != nil {
			msg = fe.Translate(trans)
		}
		if custom, ok := customMessages[fe.Tag()]; ok {
			msg = fe.Field() + " " + custom
		}
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: msg,
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

var customMessages = map[string]string{
	"ddmmyyyy":    "must be a date in dd-MM-yyyy format",
	"hhmm":        "must be a time in HH:mm format",
	"user_role":   "must be a valid user role",
	"notblank":    "cannot be blank",
	"basic_email": "must be a valid email address",
}
