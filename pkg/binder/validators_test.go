package binder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateYear(t *testing.T) {
	t.Parallel()

	current := time.Now().Year()

	assert.NoError(t, ValidateYear(current))
	assert.NoError(t, ValidateYear(current-1))
	assert.NoError(t, ValidateYear(1850))
	assert.Error(t, ValidateYear(current+1))
	assert.Error(t, ValidateYear(current+100))
}

func TestYearValidation(t *testing.T) {
	t.Parallel()

	b, err := New()
	require.NoError(t, err)

	type payload struct {
		Year int `json:"year" validate:"omitempty,year"`
	}

	assert.NoError(t, b.validate.Struct(payload{Year: time.Now().Year()}))
	assert.NoError(t, b.validate.Struct(payload{Year: 0}))
	assert.Error(t, b.validate.Struct(payload{Year: time.Now().Year() + 1}))
}

func TestSlugValidation(t *testing.T) {
	t.Parallel()

	b, err := New()
	require.NoError(t, err)

	type payload struct {
		Slug string `json:"slug" validate:"required,slug"`
	}

	assert.NoError(t, b.validate.Struct(payload{Slug: "sci-fi"}))
	assert.NoError(t, b.validate.Struct(payload{Slug: "drama_2"}))
	assert.Error(t, b.validate.Struct(payload{Slug: "no spaces"}))
	assert.Error(t, b.validate.Struct(payload{Slug: "nope!"}))
	assert.Error(t, b.validate.Struct(payload{Slug: ""}))
}
