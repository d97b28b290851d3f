package payoff

import "fmt"

// CurveType is the quantity plotted against the underlying spot.
type CurveType int

const (
	// PayoffCurve is the value at maturity.
	PayoffCurve CurveType = iota
	// NetPayoffCurve is the value at maturity minus the premium paid.
	NetPayoffCurve
	// PnLCurve is the mark to market profit.
	PnLCurve
	// PVCurve is the present value.
	PVCurve
	// DeltaCurve is the first spot derivative of the PV.
	DeltaCurve
	// GammaCurve is the second spot derivative of the PV.
	GammaCurve
)

// CurveTypes lists every curve type in display order.
var CurveTypes = []CurveType{PayoffCurve, NetPayoffCurve, PnLCurve, PVCurve, DeltaCurve, GammaCurve}

func (c CurveType) String() string {
	switch c {
	case PayoffCurve:
		return "Payoff"
	case NetPayoffCurve:
		return "Net Payoff"
	case PnLCurve:
		return "PnL"
	case PVCurve:
		return "PV"
	case DeltaCurve:
		return "Delta"
	case GammaCurve:
		return "Gamma"
	default:
		return "unknown"
	}
}

// NeedsEngine reports whether the curve is computed with a pricing engine. Payoff and Net
// Payoff only need the market.
func (c CurveType) NeedsEngine() bool {
	return c == PnLCurve || c == PVCurve || c == DeltaCurve || c == GammaCurve
}

// ParseCurveType parses a curve type name, as returned by String.
func ParseCurveType(s string) (CurveType, error) {
	for _, c := range CurveTypes {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown curve type: %q", ErrInvalidParameter, s)
}
