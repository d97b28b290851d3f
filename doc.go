// Package payoff estimates the payoff and the valuation curves of a portfolio of vanilla
// options and stocks written on a single underlying.
//
// The core functionalities include:
//   - Market Environment: rates, volatility and dividend yield quoted as percentages, with the
//     Single or Compound rate convention, normalized once before pricing.
//   - Instruments: European calls and puts, and stocks, built from plain key/value records.
//   - Pricing Engines: Black-Scholes closed form, or Monte Carlo simulation of the terminal
//     spot with finite difference Greeks on common random numbers.
//   - Curves: Payoff, Net Payoff, PnL, PV, Delta and Gamma of the whole portfolio, and of
//     selected components, swept over a range of underlying spots.
//   - Portfolio Files: the JSON document holding instrument rows and the pricing environment.
//
// This package serves as the foundational logic for the `pcc` command-line tool and its
// HTTP server.
package payoff
