package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	Init()
}

type sample struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpwd"`
	Theme    string `json:"color_theme" binding:"required,oneof=light dark"`
}

func validate(v any) error {
	return binding.Validator.ValidateStruct(v)
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	err := validate(sample{})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["email"])
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "color_theme")
	assert.NotContains(t, details, "Email", "struct field names must not leak")
}

func TestStrongPasswordAlias(t *testing.T) {
	valid := []string{"ye5s(D!S", "TE94U@2T", "Abcdef1!"}
	invalid := []string{
		"short1!",      // too short
		"alllowercase", // no upper, digit or special
		"NOLOWER123!",  // no lowercase
		"NoSpecials123",
		"NoDigits!!ab",
	}

	for _, pw := range valid {
		err := validate(sample{Email: "a@example.com", Password: pw, Theme: "light"})
		assert.NoError(t, err, "password %q should pass", pw)
	}
	for _, pw := range invalid {
		err := validate(sample{Email: "a@example.com", Password: pw, Theme: "light"})
		assert.Error(t, err, "password %q should fail", pw)
	}
}

func TestToDetailsOneOf(t *testing.T) {
	err := validate(sample{Email: "a@example.com", Password: "ye5s(D!S", Theme: "solarized"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be one of: light, dark", details["color_theme"])
}

func TestToDetailsNonValidationError(t *testing.T) {
	details := ToDetails(assert.AnError)
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, details)
}

func TestFormatFieldErrorFallsBack(t *testing.T) {
	type withLen struct {
		Code string `json:"code" binding:"len=4"`
	}
	err := validate(withLen{Code: "12345"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	details := ToDetails(err)
	assert.Contains(t, details["code"], "len")
}
