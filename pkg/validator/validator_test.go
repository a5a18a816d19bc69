package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	DNI   string `json:"dni" validate:"omitempty,dni"`
	Phone string `json:"phone" validate:"omitempty,phone9"`
	CMP   string `json:"cmp" validate:"omitempty,code12"`
	Email string `json:"email" validate:"required,email"`
}

func TestCustomTags_Valid(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&testPayload{
		DNI:   "12345678",
		Phone: "987654321",
		CMP:   "CMP123456",
		Email: "a@test.com",
	})
	assert.NoError(t, err)
}

func TestDNITag(t *testing.T) {
	v := NewValidator()

	for _, dni := range []string{"1234567", "123456789", "1234567a", "12.45678"} {
		err := v.Validate(&testPayload{DNI: dni, Email: "a@test.com"})
		require.Error(t, err, dni)
		assert.Contains(t, v.FormatValidationErrors(err), "dni", dni)
	}
}

func TestPhone9Tag(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&testPayload{Phone: "12345678", Email: "a@test.com"})
	require.Error(t, err)
	assert.Equal(t, "phone must have 9 digits", v.FormatValidationErrors(err)["phone"])
}

func TestCode12Tag(t *testing.T) {
	v := NewValidator()

	// 13 characters exceeds the business limit even though the column fits.
	err := v.Validate(&testPayload{CMP: "A123456789012", Email: "a@test.com"})
	require.Error(t, err)
	assert.Contains(t, v.FormatValidationErrors(err), "cmp")

	err = v.Validate(&testPayload{CMP: "CMP-1234", Email: "a@test.com"})
	assert.Error(t, err, "non-alphanumeric characters are rejected")
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&testPayload{})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "email is required", errs["email"])
	assert.NotContains(t, errs, "Email")
}

func TestFormatValidationErrors_CollectsAllFields(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&testPayload{DNI: "bad", Phone: "bad", Email: "not-an-email"})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Len(t, errs, 3)
}
