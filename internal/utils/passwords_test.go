package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStrongPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"StrongPass1", true},
		{"Valid123", true},
		{"Aa1bcdef", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
		{"", false},
		{"12345678", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsStrongPassword(c.password), "password %q", c.password)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("bride@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.org"))

	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@domain@example.com"))
	assert.False(t, IsValidEmail("Display Name <bride@example.com>"))
	assert.False(t, IsValidEmail(" bride@example.com"))
}
