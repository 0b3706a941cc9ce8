package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotInput struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
	Age  int    `json:"age" validate:"gte=0,lte=150"`
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&slotInput{Date: "10-04-2024", Age: 200})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "date must match the format 2006-01-02", errs["date"])
	assert.Equal(t, "time is required", errs["time"])
	assert.Equal(t, "age must be less than or equal to 150", errs["age"])
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&slotInput{Date: "2024-04-10", Time: "09:00", Age: 30}))
}
