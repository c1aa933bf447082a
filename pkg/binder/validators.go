package binder

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/critiqhq/critiq/pkg/errcodes"
)

var slugRE = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// yearValidator ensures an integer year is not in the future. The current
// calendar year is re-evaluated on every call. Zero passes so the tag can be
// combined with omitempty on optional fields; pair it with required when the
// value must be present.
func yearValidator(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	if year == 0 {
		return true
	}
	return year <= int64(time.Now().Year())
}

// slugValidator ensures the value is a URL-safe identifier (letters, digits,
// hyphens, underscores).
func slugValidator(fl validator.FieldLevel) bool {
	return slugRE.MatchString(fl.Field().String())
}

// ValidateYear is the standalone form of the year rule for callers outside
// request binding.
func ValidateYear(year int) error {
	if year > time.Now().Year() {
		return errcodes.ValidationError("\"year\" can't be in the future")
	}
	return nil
}
