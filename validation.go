package payoff

import (
	"errors"
	"fmt"
)

// Validate checks every part of f and returns an error joining all the failures, nil if f
// can be built.
func Validate(f File) error {
	var errs []error
	m, err := f.Market()
	if err != nil {
		errs = append(errs, fmt.Errorf("env: %w", err))
		m = DefaultMarket()
	}
	if _, err := f.Engine(); err != nil {
		errs = append(errs, fmt.Errorf("env: %w", err))
	}
	var instruments []Instrument
	for i, row := range f.Data {
		// reuse the maturity fallback of Instruments, one row at a time
		inst, _, err := File{Data: []Record{row}}.Instruments(m)
		if err != nil {
			errs = append(errs, fmt.Errorf("data[%d]: %w", i, errors.Unwrap(err)))
			continue
		}
		instruments = append(instruments, inst...)
	}
	if _, err := NewPortfolio(instruments); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
