package test

import (
	"math/rand/v2"
	"strings"
)

const loginAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomASCIIString returns a random alphanumeric string of minLen to maxLen
// bytes. Lengths below one are raised to one.
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)
	length := minLen + rand.IntN(maxLen-minLen+1)

	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(loginAlphabet[rand.IntN(len(loginAlphabet))])
	}
	return b.String()
}

// RandomPromoInput returns code with randomized letter case and surrounding
// whitespace, the way shoppers type promo codes.
func RandomPromoInput(code string) string {
	pads := []string{"", " ", "\t", "  "}
	var b strings.Builder
	b.WriteString(pads[rand.IntN(len(pads))])
	for _, r := range code {
		if rand.IntN(2) == 0 {
			b.WriteString(strings.ToLower(string(r)))
		} else {
			b.WriteString(strings.ToUpper(string(r)))
		}
	}
	b.WriteString(pads[rand.IntN(len(pads))])
	return b.String()
}
