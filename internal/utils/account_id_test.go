package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextAccountID(t *testing.T) {
	tests := []struct {
		last string
		want string
	}{
		{last: "", want: "APS001"},
		{last: "APS001", want: "APS002"},
		{last: "APS099", want: "APS100"},
		{last: "APS998", want: "APS999"},
		{last: "APS999", want: "APS1000"},
		{last: "APS1000", want: "APS1001"},
		{last: "APS123456", want: "APS123457"},
	}

	for _, tt := range tests {
		t.Run(tt.last, func(t *testing.T) {
			got, err := NextAccountID(tt.last)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextAccountIDRejectsUnparsableSuffix(t *testing.T) {
	for _, last := range []string{"APSabc", "APS", "XYZ001", "APS-5", "APS+7", "APS 12"} {
		_, err := NextAccountID(last)
		require.Error(t, err, last)
		assert.Equal(t, KindInternal, KindOf(err))

		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Invalid userId format in database", appErr.Message)
	}
}

func TestFormatAccountID(t *testing.T) {
	assert.Equal(t, "APS007", FormatAccountID(7))
	assert.Equal(t, "APS10000", FormatAccountID(10000))
}
