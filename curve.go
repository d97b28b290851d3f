package payoff

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// CurveOptions controls the spot sweep of GenCurve.
type CurveOptions struct {
	// Margin is added beyond the strikes on both sides of the center.
	Margin float64
	// Step is the distance between two consecutive spots.
	Step float64
	// Components adds one row per component selected by SetShow.
	Components bool
}

// DefaultCurveOptions returns a margin of 20 and a step of 1, with the shown components.
func DefaultCurveOptions() CurveOptions {
	return CurveOptions{Margin: 20, Step: 1, Components: true}
}

// Curve is a quantity sampled over a range of underlying spots.
type Curve struct {
	Type CurveType
	// X holds the swept spots, increasing.
	X []float64
	// Y holds one row per series, each of len(X). Row 0 is the whole portfolio, then come the
	// shown components in insertion order.
	Y [][]float64
	// Labels names every row of Y.
	Labels []string
	// ReferenceX is the height of the horizontal guide line: the market spot for curves of
	// portfolios holding stocks, 0 otherwise and always 0 for PnL.
	ReferenceX float64
	// ReferenceY is the position of the vertical guide line, the center of the sweep.
	ReferenceY float64
}

// PortfolioLabel is the label of the aggregated row of a curve.
const PortfolioLabel = "Portfolio"

// MaxSweepPoints is the largest number of spots a curve is evaluated at.
const MaxSweepPoints = 1000000

// SweepRange returns the spots a curve is evaluated at: from max(center-dist-margin, 0) to
// center+dist+margin inclusive, by step, where dist is the largest distance from the center to
// a strike.
func (p *Portfolio) SweepRange(margin, step float64) ([]float64, error) {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: positive value is required for step, not %v", ErrInvalidParameter, step)
	}
	if margin < 0 || math.IsNaN(margin) || math.IsInf(margin, 0) {
		return nil, fmt.Errorf("%w: non-negative value is required for margin, not %v", ErrInvalidParameter, margin)
	}
	lo, hi, ok := p.strikes()
	if !ok {
		lo, hi = p.center, p.center
	}
	dist := max(p.center-lo, hi-p.center)
	from := max(p.center-dist-margin, 0)
	to := p.center + dist + margin

	// a tolerance keeps the upper bound when (to-from)/step is an integer lost to rounding
	count := math.Floor((to-from)/step+1e-9) + 1
	if math.IsNaN(count) || math.IsInf(count, 0) || count > MaxSweepPoints {
		return nil, fmt.Errorf("%w: margin %v and step %v sweep more than %d spots", ErrInvalidParameter, margin, step, MaxSweepPoints)
	}
	xs := make([]float64, int(count))
	for i := range xs {
		xs[i] = from + float64(i)*step
	}
	return xs, nil
}

// GenCurve evaluates the curve of type t over the sweep range.
//
// Spots are evaluated concurrently. The first failure stops the sweep and the error of the
// lowest failing spot is returned. Cancelling ctx stops the sweep with ctx.Err().
func (p *Portfolio) GenCurve(ctx context.Context, t CurveType, opts CurveOptions) (*Curve, error) {
	if t < PayoffCurve || t > GammaCurve {
		return nil, fmt.Errorf("%w: unknown curve type: %d", ErrInvalidParameter, int(t))
	}
	if p.market == nil {
		return nil, fmt.Errorf("%w: market data not specified", ErrMissingField)
	}
	if t.NeedsEngine() && p.engine == nil {
		return nil, fmt.Errorf("%w: pricing engine not specified", ErrMissingField)
	}
	xs, err := p.SweepRange(opts.Margin, opts.Step)
	if err != nil {
		return nil, err
	}

	c := &Curve{Type: t, X: xs, Labels: []string{PortfolioLabel}, ReferenceY: p.center}
	if t != PnLCurve && p.hasStock {
		c.ReferenceX = p.market.Spot
	}
	var rows []int
	if opts.Components {
		rows = p.show
	}
	for _, id := range rows {
		c.Labels = append(c.Labels, p.components[id].String())
	}
	c.Y = make([][]float64, 1+len(rows))
	for i := range c.Y {
		c.Y[i] = make([]float64, len(xs))
	}

	errs := make([]error, len(xs))
	var failed atomic.Int64 // lowest failing index so far
	failed.Store(int64(len(xs)))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, x := range xs {
		if ctx.Err() != nil || int64(i) > failed.Load() {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// a spot above a known failure cannot change the returned error
			if int64(i) > failed.Load() {
				return nil
			}
			values, err := p.values(ctx, t, p.market.WithSpot(x))
			if err != nil {
				errs[i] = err
				lower(&failed, int64(i))
				return nil
			}
			var total float64
			for _, v := range values {
				total += v
			}
			c.Y[0][i] = total
			for k, id := range rows {
				c.Y[k+1][i] = values[id]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if i := failed.Load(); i < int64(len(xs)) {
		return nil, fmt.Errorf("at spot %v: %w", xs[i], errs[i])
	}
	return c, nil
}

// values evaluates every component at m.
func (p *Portfolio) values(ctx context.Context, t CurveType, m Market) ([]float64, error) {
	values := make([]float64, len(p.components))
	for i, c := range p.components {
		var err error
		switch t {
		case PayoffCurve:
			values[i] = c.Payoff(m)
		case NetPayoffCurve:
			values[i] = NetPayoff(c, m)
		case PnLCurve:
			values[i], err = PnL(ctx, c, m, p.engine)
		case PVCurve:
			values[i], err = c.PV(ctx, m, p.engine)
		case DeltaCurve:
			values[i], err = c.Delta(ctx, m, p.engine)
		case GammaCurve:
			values[i], err = c.Gamma(ctx, m, p.engine)
		}
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

// lower stores v in a if it is lower than the current value.
func lower(a *atomic.Int64, v int64) {
	for {
		cur := a.Load()
		if v >= cur || a.CompareAndSwap(cur, v) {
			return
		}
	}
}
