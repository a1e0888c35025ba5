package renderer

import (
	"errors"
	"fmt"
	"io"

	"github.com/etnz/stockkeeper"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoAllocation is returned when there is nothing to draw.
var ErrNoAllocation = errors.New("no market value to chart")

// palette of the allocation slices, reused in order.
var palette = []string{"3B82F6", "10B981", "F59E0B", "EF4444", "8B5CF6", "EC4899"}

// AllocationChart writes a PNG pie chart of the market value per position.
func AllocationChart(w io.Writer, s *stockkeeper.Summary) error {
	var values []chart.Value
	for _, a := range s.Allocation {
		if !a.Value.IsPositive() {
			continue
		}
		values = append(values, chart.Value{
			Label: a.Name,
			Value: a.Value.InexactFloat64(),
			Style: chart.Style{
				FillColor: drawing.ColorFromHex(palette[len(values)%len(palette)]),
			},
		})
	}
	if len(values) == 0 {
		return ErrNoAllocation
	}

	pie := chart.PieChart{
		Width:  512,
		Height: 512,
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("cannot render allocation chart: %w", err)
	}
	return nil
}
