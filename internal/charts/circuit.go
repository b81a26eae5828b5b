package charts

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pitwall-data/pitwall.report/internal/f1"
)

// CircuitPNG renders the circuit layout as a PNG trace of the position
// samples from one lap.
func CircuitPNG(circuit, event string, layout f1.CircuitLayout) ([]byte, error) {
	n := len(layout.X)
	if len(layout.Y) < n {
		n = len(layout.Y)
	}
	if n == 0 {
		return nil, fmt.Errorf("circuit chart: no position samples")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - %s", circuit, event)
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i] = plotter.XY{X: layout.X[i], Y: layout.Y[i]}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("circuit chart: build line: %w", err)
	}
	line.Width = vg.Points(2)
	p.Add(line)

	wt, err := p.WriterTo(8*vg.Inch, 8*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("circuit chart: render: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("circuit chart: write: %w", err)
	}
	return buf.Bytes(), nil
}
