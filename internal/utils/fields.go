package utils

import (
	"reflect"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRequiredFields fails with every missing field name, prefixed by
// context when one is given. Empty strings, nil pointers and empty slices
// count as missing.
func ValidateRequiredFields(record map[string]interface{}, fields []string, context string) error {
	var missing []string
	for _, field := range fields {
		if isBlank(record[field]) {
			missing = append(missing, field)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	prefix := ""
	if context != "" {
		prefix = context + ": "
	}
	return BadInput("%sRequired fields are missing: %s", prefix, strings.Join(missing, ", "))
}

// ValidateArrayInput fails with message unless value is a slice or array
// holding at least minLength elements.
func ValidateArrayInput(value interface{}, minLength int, message string) error {
	if message == "" {
		message = "Invalid data format"
	}
	if value == nil {
		return BadInput("%s", message)
	}

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return BadInput("%s", message)
	}
	if v.Len() < minLength {
		return BadInput("%s", message)
	}
	return nil
}

// IsValidEmail reports whether s has a basic local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isBlank(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return true
		}
		return isBlank(v.Elem().Interface())
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	}
	return false
}
