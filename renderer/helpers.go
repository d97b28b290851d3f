package renderer

import "strconv"

// number formats v with a fixed number of decimals.
func number(v float64, digits int) string {
	return strconv.FormatFloat(v, 'f', max(digits, 0), 64)
}
