package payoff

import "fmt"

// Percent is a raw percentage as typed by users: 3 means 3%.
type Percent float64

// Fraction converts p to a decimal fraction: 3 becomes 0.03.
func (p Percent) Fraction() float64 { return float64(p) / 100 }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
