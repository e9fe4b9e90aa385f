package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID("p")
	assert.True(t, strings.HasPrefix(id, "p"))
	assert.Len(t, id, 13)

	assert.NotEqual(t, GenerateID("p"), GenerateID("p"))
}

func TestGenerateRandomDigitString(t *testing.T) {
	otp := GenerateRandomDigitString(6)
	assert.Len(t, otp, 6)
	for _, c := range otp {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.True(t, ValidEmail("first.last-1@sub.example.org"))

	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("plainaddress"))
	assert.False(t, ValidEmail("user@"))
	assert.False(t, ValidEmail("@example.com"))
	assert.False(t, ValidEmail("user@example"))
}

func TestValidMobile(t *testing.T) {
	assert.True(t, ValidMobile("9876543210"))

	assert.False(t, ValidMobile("987654321"))
	assert.False(t, ValidMobile("98765432101"))
	assert.False(t, ValidMobile("98765abcde"))
	assert.False(t, ValidMobile(""))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("Str0ng!pass"))
	assert.True(t, ValidPassword("aB3#efgh"))

	assert.False(t, ValidPassword("short1!A"[:7]))
	assert.False(t, ValidPassword("alllowercase1!"))
	assert.False(t, ValidPassword("ALLUPPERCASE1!"))
	assert.False(t, ValidPassword("NoDigits!!"))
	assert.False(t, ValidPassword("NoSymbols123"))
}
