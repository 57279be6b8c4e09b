package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatPrice formats an amount as a price string like "$12.500,50".
// Uses dot as thousands separator and comma for decimals (common in
// Argentina/Colombia). Decimals are only printed when non-zero.
func FormatPrice(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	// Round to currency precision first so 89.999999 prints as 90
	amount = math.Round(amount*100) / 100
	whole := int64(amount)
	cents := int64(math.Round((amount - float64(whole)) * 100))

	s := strconv.FormatInt(whole, 10)

	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 6)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}

	if cents > 0 {
		b.WriteByte(',')
		if cents < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.FormatInt(cents, 10))
	}

	return b.String()
}
