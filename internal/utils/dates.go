package utils

import (
	"regexp"
	"strconv"
	"time"
)

const (
	DateLayout = "02-01-2006"
	TimeLayout = "15:04"
)

var (
	datePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ParseDate parses a dd-MM-yyyy string into a UTC calendar date.
func ParseDate(value, field string) (time.Time, error) {
	if !datePattern.MatchString(value) {
		return time.Time{}, BadInput("Invalid date format for %s. Use dd-MM-yyyy.", field)
	}

	// time.Parse rejects out-of-range days and months such as 45-13-2025
	date, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, BadInput("Invalid date value for %s.", field)
	}
	return date, nil
}

// FormatDate renders the calendar date of t as dd-MM-yyyy.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTime parses an HH:mm string and returns the offset from midnight.
func ParseTime(value, field string) (time.Duration, error) {
	if !timePattern.MatchString(value) {
		return 0, BadInput("Invalid time format for %s. Use HH:mm.", field)
	}

	hours, _ := strconv.Atoi(value[:2])
	minutes, _ := strconv.Atoi(value[3:])
	if hours > 23 || minutes > 59 {
		return 0, BadInput("Invalid time value for %s.", field)
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}

// CalculateAge returns the number of whole years between dob and today.
func CalculateAge(dob time.Time) int {
	return calculateAgeAt(dob, time.Now())
}

func calculateAgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
