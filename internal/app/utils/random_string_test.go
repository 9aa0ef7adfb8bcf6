package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomString_Alphabet(t *testing.T) {
	for i := 0; i < 1000; i++ {
		s := RandomString(6)
		assert.True(t, IsShortCode(s, 6), "unexpected code %q", s)
	}
}

func TestIsShortCode(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"abc123", true},
		{"zzzzzz", true},
		{"ABC123", false},
		{"abc12", false},
		{"abc-12", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsShortCode(tt.in, 6), tt.in)
	}
}
