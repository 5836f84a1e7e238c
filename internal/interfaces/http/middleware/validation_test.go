package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishPayload struct {
	Platforms []string `json:"platforms" binding:"required,min=1,dive,platform"`
}

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func TestPlatformTag(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name      string
		platforms []string
		wantErr   bool
	}{
		{"known platforms", []string{"ebay", "poshmark", "vintage_crib"}, false},
		{"unknown platform", []string{"etsy"}, true},
		{"empty list", []string{}, true},
		{"mixed valid and invalid", []string{"depop", "grailed"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(publishPayload{Platforms: tt.platforms})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError_UsesJSONFieldNames(t *testing.T) {
	v := newTestValidator(t)

	err := v.Struct(publishPayload{})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "platforms")
	assert.Contains(t, msg, "This field is required")
}

func TestFormatValidationError_PassthroughForOtherErrors(t *testing.T) {
	plain := errors.New("unexpected EOF")
	assert.Equal(t, "unexpected EOF", FormatValidationError(plain))
}
