package experiment

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/skylearn/imbalance/pkg/errors"
)

// SaveClassDistribution renders a bar chart of the class counts and writes
// it to path. The image format follows the file extension (.png, .svg, .pdf).
func SaveClassDistribution(counts map[int]int, title, path string) error {
	if len(counts) == 0 {
		return errors.NewValueError("SaveClassDistribution", "no class counts")
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "rows"
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(plotter.Values{
		float64(counts[0]),
		float64(counts[1]),
	}, vg.Points(40))
	if err != nil {
		return errors.Wrap(err, "failed to build bar chart")
	}
	p.Add(bars)
	p.NominalX("on time (0)", "delayed (1)")

	if err := p.Save(5*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "failed to save plot")
	}
	return nil
}
