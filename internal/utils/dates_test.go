package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantMsg string
	}{
		{name: "valid", input: "15-03-1990", want: time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "leap day", input: "29-02-2024", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "iso layout", input: "1990-03-15", wantMsg: "Invalid date format for dob. Use dd-MM-yyyy."},
		{name: "single digit day", input: "1-03-1990", wantMsg: "Invalid date format for dob. Use dd-MM-yyyy."},
		{name: "empty", input: "", wantMsg: "Invalid date format for dob. Use dd-MM-yyyy."},
		{name: "day out of range", input: "45-01-2025", wantMsg: "Invalid date value for dob."},
		{name: "month out of range", input: "10-13-2025", wantMsg: "Invalid date value for dob."},
		{name: "non leap year", input: "29-02-2023", wantMsg: "Invalid date value for dob."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, "dob")
			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantMsg, err.Error())
				assert.Equal(t, KindBadInput, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestParseDateFormatDateRoundTrip(t *testing.T) {
	start := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() < 2101; d = d.AddDate(0, 0, 37) {
		got, err := ParseDate(FormatDate(d), "date")
		require.NoError(t, err)
		assert.True(t, d.Equal(got), "round trip of %s gave %s", d, got)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantMsg string
	}{
		{input: "09:30", want: 9*time.Hour + 30*time.Minute},
		{input: "00:00", want: 0},
		{input: "23:59", want: 23*time.Hour + 59*time.Minute},
		{input: "9:30", wantMsg: "Invalid time format for startTime. Use HH:mm."},
		{input: "09:30:00", wantMsg: "Invalid time format for startTime. Use HH:mm."},
		{input: "24:00", wantMsg: "Invalid time value for startTime."},
		{input: "12:60", wantMsg: "Invalid time value for startTime."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTime(tt.input, "startTime")
			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantMsg, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateAgeAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{name: "birthday today", dob: time.Date(2007, 6, 15, 0, 0, 0, 0, time.UTC), want: 18},
		{name: "birthday tomorrow", dob: time.Date(2007, 6, 16, 0, 0, 0, 0, time.UTC), want: 17},
		{name: "birthday next month", dob: time.Date(2007, 7, 1, 0, 0, 0, 0, time.UTC), want: 17},
		{name: "birthday last month", dob: time.Date(2007, 5, 30, 0, 0, 0, 0, time.UTC), want: 18},
		{name: "child", dob: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateAgeAt(tt.dob, now))
		})
	}
}
