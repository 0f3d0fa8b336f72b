package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"Open", "In Progress", "Closed"} {
		st, err := ParseStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, Status(valid), st)
	}

	_, err := ParseStatus("open")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = ParseStatus("Done")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCanTransitionAllowsEverything(t *testing.T) {
	statuses := []Status{StatusOpen, StatusInProgress, StatusClosed}
	for _, from := range statuses {
		for _, to := range statuses {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestNormalizeVatID(t *testing.T) {
	assert.Equal(t, "DE123456789", NormalizeVatID(" de 123 456 789 "))
	assert.Equal(t, "ATU12345678", NormalizeVatID("atu12345678"))
}

func TestVatIDFormats(t *testing.T) {
	tests := []struct {
		vat   string
		valid bool
	}{
		{"DE123456789", true},
		{"ATU12345678", true},
		{"12-3456789", true},
		{"123456789", true},
		{"123456789012", true},
		{"12345678", false},
		{"D123456789", false},
		{"hello", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, vatIDPattern.MatchString(tt.vat), "vat %q", tt.vat)
	}
}
