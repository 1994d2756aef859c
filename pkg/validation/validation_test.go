package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OldStager01/resource-sentinel/pkg/validation"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  cpu_high  ", "cpu_high"},
		{"strips null bytes", "cpu\x00_high", "cpu_high"},
		{"strips control characters", "cpu\x07_high", "cpu_high"},
		{"keeps newlines and tabs", "line one\n\tline two", "line one\n\tline two"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.SanitizeString(tt.input))
		})
	}
}

func TestValidateAlertType(t *testing.T) {
	tests := []struct {
		name      string
		alertType string
		wantErr   bool
	}{
		{"typical type", "cpu_high", false},
		{"with digits", "disk2_full", false},
		{"minimum length", "cpu", false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"uppercase", "CPU_high", true},
		{"leading digit", "1cpu", true},
		{"leading underscore", "_cpu", true},
		{"spaces", "cpu high", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateAlertType(tt.alertType)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAlertMessage(t *testing.T) {
	assert.NoError(t, validation.ValidateAlertMessage("CPU usage at 92.1%"))
	assert.Error(t, validation.ValidateAlertMessage(""))
	assert.Error(t, validation.ValidateAlertMessage("   "))
	assert.Error(t, validation.ValidateAlertMessage(strings.Repeat("x", 501)))
	assert.NoError(t, validation.ValidateAlertMessage(strings.Repeat("x", 500)))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"strong password", "Sup3rSecret", ""},
		{"too short", "Ab1", "at least 8"},
		{"too long", strings.Repeat("Ab1", 43), "exceed 128"},
		{"no uppercase", "sup3rsecret", "uppercase"},
		{"no lowercase", "SUP3RSECRET", "lowercase"},
		{"no number", "SuperSecret", "number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateThresholds(t *testing.T) {
	assert.NoError(t, validation.ValidateThresholds(80, 95))
	assert.NoError(t, validation.ValidateThresholds(80, 0))
	assert.NoError(t, validation.ValidateThresholds(0, 0))
	assert.Error(t, validation.ValidateThresholds(-1, 95))
	assert.Error(t, validation.ValidateThresholds(95, 80))
}
