// Package montecarlo simulates terminal spot prices of an underlying following a geometric
// Brownian motion under the risk neutral measure.
//
// Draws come from the global random source: results are not reproducible from one call to
// the next, compare them with a statistical tolerance.
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrIterations is returned for a non positive number of paths.
var ErrIterations = errors.New("iterations must be positive")

// chunk is the number of paths generated by a single goroutine.
const chunk = 1 << 15

// Params of the diffusion. Rates are continuously compounded fractions, maturity in years.
type Params struct {
	Spot       float64
	Rate       float64
	Dividend   float64
	Volatility float64
	Maturity   float64
}

// TerminalSpots draws n independent terminal spots
//
//	S_T = S_0 * exp((r - q - σ²/2) T + σ √T Z)
//
// with one standard normal Z per path. No variance reduction is applied.
func TerminalSpots(ctx context.Context, n int, p Params) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrIterations, n)
	}
	drift := (p.Rate - p.Dividend - p.Volatility*p.Volatility/2) * p.Maturity
	diffusion := p.Volatility * math.Sqrt(p.Maturity)

	spots := make([]float64, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			z := distuv.UnitNormal
			for i := lo; i < hi; i++ {
				spots[i] = p.Spot * math.Exp(drift+diffusion*z.Rand())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return spots, nil
}

// Mean returns the average of f over the simulated spots.
func Mean(spots []float64, f func(s float64) float64) float64 {
	if len(spots) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, s := range spots {
		sum += f(s)
	}
	return sum / float64(len(spots))
}
