// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvban/vidora/internal/platform/apperr"
	"github.com/minhvban/vidora/internal/platform/validate"
)

func TestValidator_AccumulatesAllFailures(t *testing.T) {
	validator := &validate.Validator{}
	validator.Required("title", "").
		MaxLen("nick", "a-very-long-nickname-indeed", 10).
		Email("email", "not-an-email")

	err := validator.Err()
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Len(t, appError.Details, 3)
}

func TestValidator_PassesCleanInput(t *testing.T) {
	validator := &validate.Validator{}
	validator.Required("title", "Hello").
		MaxLen("title", "Hello", 10).
		Email("email", "someone@example.com").
		UUID("id", "01929b10-0000-7000-8000-000000000001").
		Slug("handle", "late-night-synthwave")

	assert.NoError(t, validator.Err())
	assert.False(t, validator.HasErrors())
}

func TestValidator_Password(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"strong mix", "s3cureP4ss", false},
		{"too short", "a1b2c3", true},
		{"letters only", "passwordpass", true},
		{"digits only", "1234567890", true},
		{"unicode letters with digit", "mậtkhẩu123", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			validator := &validate.Validator{}
			validator.Password("password", c.password)
			if c.wantErr {
				assert.Error(t, validator.Err())
			} else {
				assert.NoError(t, validator.Err())
			}
		})
	}
}

func TestValidator_Phone(t *testing.T) {
	assert.True(t, validate.IsPhone("+84901234567"))
	assert.True(t, validate.IsPhone("0901234567"))
	assert.False(t, validate.IsPhone("phone-number"))
	assert.False(t, validate.IsPhone("+123"))
	assert.False(t, validate.IsPhone("someone@example.com"))
}

func TestValidator_Slug(t *testing.T) {
	valid := []string{"a", "abc-def", "a1-b2-c3"}
	for _, s := range valid {
		validator := &validate.Validator{}
		assert.NoError(t, validator.Slug("slug", s).Err(), s)
	}

	invalid := []string{"", "-abc", "abc-", "UPPER", "a--b", "with space"}
	for _, s := range invalid {
		validator := &validate.Validator{}
		assert.Error(t, validator.Slug("slug", s).Err(), s)
	}
}

func TestValidator_UUID(t *testing.T) {
	validator := &validate.Validator{}
	assert.NoError(t, validator.UUID("id", "01929B10-0000-7000-8000-000000000001").Err())

	validator = &validate.Validator{}
	assert.Error(t, validator.UUID("id", "not-a-uuid").Err())
}

func TestValidator_OneOf(t *testing.T) {
	validator := &validate.Validator{}
	assert.NoError(t, validator.OneOf("visibility", "public", "public", "unlisted", "private").Err())

	validator = &validate.Validator{}
	assert.Error(t, validator.OneOf("visibility", "secret", "public", "unlisted", "private").Err())
}
