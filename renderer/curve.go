package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/payoff"
	md "github.com/nao1215/markdown"
)

// CurveMarkdown renders c as a markdown report: the guide lines then one row per spot and one
// column per series. Values are printed with digits decimals.
func CurveMarkdown(c *payoff.Curve, digits int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Option Portfolio %s Curve", c.Type))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Guide Line"), md.Bold("Position")},
		Rows: [][]string{
			{"Center spot", number(c.ReferenceY, 2)},
			{fmt.Sprintf("%s level", c.Type), number(c.ReferenceX, 2)},
		},
	})

	doc.H2("Values")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight},
		Header:    []string{"Spot"},
	}
	for _, label := range c.Labels {
		table.Alignment = append(table.Alignment, md.AlignRight)
		table.Header = append(table.Header, label)
	}
	for i, x := range c.X {
		row := []string{number(x, 2)}
		for _, y := range c.Y {
			row = append(row, number(y[i], digits))
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	if lo, hi, ok := extent(c.Y); ok {
		doc.H2("Range")
		doc.BulletList(
			fmt.Sprintf("Spots from %s to %s", number(c.X[0], 2), number(c.X[len(c.X)-1], 2)),
			fmt.Sprintf("%s from %s to %s", c.Labels[0], number(lo, digits), number(hi, digits)),
		)
	}

	return doc.String()
}

// extent returns the lowest and highest values of the first series, ok is false without values.
func extent(series [][]float64) (lo, hi float64, ok bool) {
	if len(series) == 0 || len(series[0]) == 0 {
		return 0, 0, false
	}
	for i, y := range series[0] {
		if i == 0 {
			lo, hi = y, y
			continue
		}
		lo, hi = min(lo, y), max(hi, y)
	}
	return lo, hi, true
}
