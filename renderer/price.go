package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/payoff"
	md "github.com/nao1215/markdown"
)

// PriceMarkdown renders the prices of the instruments of a portfolio, amounts in currency.
func PriceMarkdown(quotes []payoff.Quote, m payoff.Market, e payoff.Engine, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Instrument Prices")
	doc.PlainText(fmt.Sprintf("Priced with %s on %s.", engineName(e), marketSummary(m)))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Instrument", "Unit", "Cost", "PV (1 unit)", "Premium", "Position"},
	}
	total, paid := payoff.M(0, currency), payoff.M(0, currency)
	for _, q := range quotes {
		unit, cost := q.Instrument.Unit(), q.Instrument.Cost()
		position := payoff.M(q.PV, currency).Mul(unit)
		total = total.Add(position)
		paid = paid.Add(payoff.M(cost, currency).Mul(unit))
		table.Rows = append(table.Rows, []string{
			q.Instrument.String(),
			number(unit, 2),
			payoff.M(cost, currency).String(),
			number(q.PV, 6),
			number(q.Premium, m.CostRounding),
			position.String(),
		})
	}
	doc.Table(table)

	if len(quotes) > 0 {
		doc.H2("Total")
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{md.Bold("Portfolio PV"), md.Bold(total.String())},
			Rows: [][]string{
				{"Paid", paid.String()},
				{"PnL", total.Sub(paid).String()},
			},
		})
	}
	return doc.String()
}

// MarketMarkdown renders the pricing environment.
func MarketMarkdown(m payoff.Market, e payoff.Engine) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Pricing Environment")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Parameter", "Value"},
		Rows: [][]string{
			{"Risk free rate", m.RiskFreeRate.String()},
			{"Volatility", m.Volatility.String()},
			{"Dividend yield", m.DividendYield.String()},
			{"Spot", number(m.Spot, 2)},
			{"Maturity", fmt.Sprintf("%g years", m.Maturity)},
			{"Rate format", string(m.RateFormat)},
			{"Cost rounding", fmt.Sprintf("%d digits", m.CostRounding)},
			{"Engine", engineName(e)},
		},
	})
	return doc.String()
}

func engineName(e payoff.Engine) string {
	switch e := e.(type) {
	case nil:
		return "no engine"
	case payoff.MonteCarlo:
		return fmt.Sprintf("%s (%d iterations)", e.Name(), e.Iterations)
	default:
		return e.Name()
	}
}

func marketSummary(m payoff.Market) string {
	return fmt.Sprintf("spot %s, rate %s (%s), volatility %s, dividend %s",
		number(m.Spot, 2), m.RiskFreeRate, m.RateFormat, m.Volatility, m.DividendYield)
}
