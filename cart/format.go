package cart

import (
	"math"
	"strconv"
	"strings"
)

// FormatPrice renders an amount as whole pesos with "." as the thousands
// separator and no decimals: 2500 -> "2.500", 1000000 -> "1.000.000".
func FormatPrice(amount float64) string {
	n := int64(math.Round(amount))
	negative := n < 0
	if negative {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
