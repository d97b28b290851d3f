package cmd

import (
	"github.com/etnz/payoff"
	"github.com/etnz/payoff/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line of pcc for shell completion.
func Completion() *complete.Command {
	curves := make([]string, len(payoff.CurveTypes))
	for i, t := range payoff.CurveTypes {
		curves[i] = t.String()
	}
	topics, _ := docs.GetAllTopics()
	topics = append(topics, "readme", "*")

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"portfolio-file": predict.Files("*.json"),
			"config":         predict.Files("*.yaml"),
			"currency":       predict.Something,
			"verbose":        predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"curve": {
				Flags: map[string]complete.Predictor{
					"type":       predict.Set(curves),
					"margin":     predict.Something,
					"step":       predict.Something,
					"components": predict.Nothing,
					"json":       predict.Nothing,
					"digits":     predict.Something,
				},
			},
			"price": {
				Flags: map[string]complete.Predictor{
					"json": predict.Nothing,
					"u":    predict.Nothing,
				},
			},
			"init": {
				Flags: map[string]complete.Predictor{"f": predict.Nothing},
			},
			"check": {},
			"serve": {
				Flags: map[string]complete.Predictor{"addr": predict.Something},
			},
			"topic": {
				Flags: map[string]complete.Predictor{"l": predict.Nothing},
				Args:  predict.Set(topics),
			},
		},
	}
}
