package orders

import (
	"math"
	"strconv"
)

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func centsToFloat(cents int64) float64 {
	return float64(cents) / 100
}

// FormatCents renders an amount as "$1,234.56".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	dollars := strconv.FormatInt(cents/100, 10)
	var grouped []byte
	for i, d := range []byte(dollars) {
		if i > 0 && (len(dollars)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}
	rem := cents % 100
	return sign + "$" + string(grouped) + "." + twoDigits(rem)
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
