package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{65, "01:05"},
		{599, "09:59"},
		{3600, "60:00"},
		{6125, "102:05"},
		{-3, "00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "01:05 / 03:20", FormatProgress(65, 200))
	assert.Equal(t, "00:00 / 00:00", FormatProgress(0, 0))
}
