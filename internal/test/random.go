package test

import (
	"math/rand/v2"
	"strings"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

const (
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	asciiLetters = lowerLetters + "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RandomASCIIString returns a pseudo-random alphanumeric string with a length
// in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	return randomFrom(asciiLetters, minLen, maxLen)
}

// RandomRegistration builds sign up data that passes registration rules:
// a 3..20 rune username, a valid email and a 6..40 rune password.
func RandomRegistration() model.Registration {
	username := randomFrom(lowerLetters, 3, 20)
	return model.Registration{
		Username: username,
		Email:    username + "@" + randomFrom(lowerLetters, 3, 10) + ".com",
		Password: RandomASCIIString(6, 40),
		Role:     model.RoleCustomer,
	}
}

func randomFrom(alphabet string, minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + rand.IntN(maxLen-minLen+1)
	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}
