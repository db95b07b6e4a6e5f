package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiredFields(t *testing.T) {
	seats := 0

	t.Run("lists every missing field with context", func(t *testing.T) {
		record := map[string]interface{}{
			"firstName": "Ava",
			"lastName":  "",
			"password":  "   ",
			"dob":       nil,
		}
		err := ValidateRequiredFields(record, []string{"firstName", "lastName", "password", "dob"}, "Child 2")
		require.Error(t, err)
		assert.Equal(t, "Child 2: Required fields are missing: lastName, password, dob", err.Error())
		assert.Equal(t, KindBadInput, KindOf(err))
	})

	t.Run("no prefix without context", func(t *testing.T) {
		err := ValidateRequiredFields(map[string]interface{}{}, []string{"title"}, "")
		require.Error(t, err)
		assert.Equal(t, "Required fields are missing: title", err.Error())
	})

	t.Run("zero values behind pointers are present", func(t *testing.T) {
		var missing *int
		record := map[string]interface{}{
			"availableSeats": &seats,
			"fees":           missing,
		}
		err := ValidateRequiredFields(record, []string{"availableSeats", "fees"}, "")
		require.Error(t, err)
		assert.Equal(t, "Required fields are missing: fees", err.Error())
	})

	t.Run("all present", func(t *testing.T) {
		record := map[string]interface{}{"name": "Main Hall", "rooms": []string{"A"}}
		assert.NoError(t, ValidateRequiredFields(record, []string{"name", "rooms"}, "Location"))
	})
}

func TestValidateArrayInput(t *testing.T) {
	assert.NoError(t, ValidateArrayInput([]string{"a"}, 1, "need one"))
	assert.NoError(t, ValidateArrayInput([]int{}, 0, "need none"))

	err := ValidateArrayInput([]string{}, 1, "need one")
	require.Error(t, err)
	assert.Equal(t, "need one", err.Error())

	assert.Error(t, ValidateArrayInput("not a slice", 1, "need one"))
	assert.Error(t, ValidateArrayInput(nil, 0, ""))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"sam@x.com", "first.last@school.edu.au", "a+b@c.io"}
	invalid := []string{"", "sam", "sam@x", "sam @x.com", "@x.com", "sam@.com "}

	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}
