// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleweave/taleweave/internal/platform/apperr"
	"github.com/taleweave/taleweave/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Taleweave", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Slug checks the URL slug format rule.
*/
func TestValidator_Slug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		isValid bool
	}{
		{"valid_slug", "the-long-night", true},
		{"single_word", "prologue", true},
		{"with_digits", "part-2-of-3", true},
		{"uppercase", "The-Long-Night", false},
		{"leading_hyphen", "-prologue", false},
		{"trailing_hyphen", "prologue-", false},
		{"double_hyphen", "the--night", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Slug("slug", tt.slug)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Date checks the calendar date format rule.
*/
func TestValidator_Date(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		isValid bool
	}{
		{"valid_date", "2024-03-01", true},
		{"timestamp_suffix", "2024-03-01T20:15:00", false},
		{"prose_date", "March 1st, 2024", false},
		{"short_year", "24-03-01", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Date("date", tt.date)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_NonNegative checks the integer sign rule.
*/
func TestValidator_NonNegative(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		isValid bool
	}{
		{"zero", 0, true},
		{"positive", 42, true},
		{"negative", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.NonNegative("number", tt.value)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_ChainCollectsAllErrors verifies that a chain reports every
failing field, not just the first.
*/
func TestValidator_ChainCollectsAllErrors(t *testing.T) {
	v := &validate.Validator{}
	v.Required("title", "").
		NonNegative("number", -5).
		Slug("slug", "Not A Slug")

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_MaxLen checks the length ceiling in Unicode characters.
*/
func TestValidator_MaxLen(t *testing.T) {
	v := &validate.Validator{}
	v.MaxLen("title", "abcdef", 5)
	assert.True(t, v.HasErrors())

	v = &validate.Validator{}
	v.MaxLen("title", "abcde", 5)
	assert.False(t, v.HasErrors())
}
