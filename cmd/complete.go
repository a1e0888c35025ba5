package cmd

import (
	"github.com/etnz/stockkeeper"
	"github.com/etnz/stockkeeper/reference"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the command line.
// Codes are predicted from the embedded listing.
func Completion() *complete.Command {
	codes := predict.Set(reference.Default().Listing.Codes())
	fields := make(predict.Set, 0, len(stockkeeper.Fields))
	for _, f := range stockkeeper.Fields {
		fields = append(fields, string(f))
	}
	xlsx := predict.Files("*.xlsx")

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
			"v":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"show": {Flags: map[string]complete.Predictor{"year": predict.Something, "json": predict.Nothing}},
			"html": {Flags: map[string]complete.Predictor{
				"o":     predict.Files("*.html"),
				"year":  predict.Something,
				"chart": predict.Nothing,
			}},
			"chart": {Flags: map[string]complete.Predictor{"o": predict.Files("*.png")}},
			"ls":    {},
			"add": {Flags: map[string]complete.Predictor{
				"code":     codes,
				"name":     predict.Something,
				"category": predict.Something,
				"q":        predict.Something,
				"cost":     predict.Something,
				"price":    predict.Something,
				"eps":      predict.Something,
				"month":    predict.Set{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"},
				"cash":     predict.Something,
				"stock":    predict.Something,
			}},
			"edit":    {Args: predict.Or(codes, fields)},
			"rm":      {Flags: map[string]complete.Predictor{"y": predict.Nothing}, Args: codes},
			"loan":    {Args: predict.Something},
			"refresh": {Flags: map[string]complete.Predictor{"show": predict.Nothing}},
			"import":  {Flags: map[string]complete.Predictor{"y": predict.Nothing}, Args: xlsx},
			"export":  {Flags: map[string]complete.Predictor{"o": xlsx}},
			"search":  {Args: codes},
		},
	}
}
