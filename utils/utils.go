package utils

import (
	rndm "math/rand"
	"os"
	"regexp"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")
var digitRunes = []rune("0123456789")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateRandomDigitString creates a random numeric string of length n.
func GenerateRandomDigitString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = digitRunes[rndm.Intn(len(digitRunes))]
	}
	return string(b)
}

// GenerateID builds an entity id: prefix + 12 random chars.
func GenerateID(prefix string) string {
	return prefix + GenerateRandomString(12)
}

// --- Field Validation ---

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
	lowerPattern  = regexp.MustCompile(`[a-z]`)
	upperPattern  = regexp.MustCompile(`[A-Z]`)
	digitPattern  = regexp.MustCompile(`\d`)
	symbolPattern = regexp.MustCompile(`[@#$%^&+=!(){}\[\]:;"'<>,.?/~\\_-]`)
)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidMobile(mobile string) bool {
	return mobilePattern.MatchString(mobile)
}

// ValidPassword requires at least 8 chars with one lowercase, one uppercase,
// one digit and one special character.
func ValidPassword(pw string) bool {
	return len(pw) >= 8 &&
		lowerPattern.MatchString(pw) &&
		upperPattern.MatchString(pw) &&
		digitPattern.MatchString(pw) &&
		symbolPattern.MatchString(pw)
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
