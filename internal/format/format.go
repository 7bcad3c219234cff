package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Money formats whole dollars with thousands separators.
// Example: Money(4250) => "$4,250"
func Money(dollars int) string {
	if dollars < 0 {
		return "-$" + thousandSep(uint64(-int64(dollars)))
	}
	return "$" + thousandSep(uint64(dollars))
}

// Rating renders a score with at most two decimals and no trailing zeros.
// Example: Rating(4.9) => "4.9", Rating(4.951) => "4.95"
func Rating(r float64) string {
	return strconv.FormatFloat(math.Round(r*100)/100, 'f', -1, 64)
}

// Plural picks singular for n == 1.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Count renders "n noun" with the noun pluralised.
// Example: Count(2, "bath", "baths") => "2 baths"
func Count(n int, singular, plural string) string {
	return fmt.Sprintf("%d %s", n, Plural(n, singular, plural))
}

// Date formats a time in the short form used on confirmations.
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// thousandSep groups the digits of an unsigned amount; Money owns the sign.
func thousandSep(n uint64) string {
	s := strconv.FormatUint(n, 10)
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
