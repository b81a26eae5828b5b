// Package charts builds the interactive chart pages served by the API.
// Charts render per request into the response; nothing is cached.
package charts

import (
	"fmt"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pitwall-data/pitwall.report/internal/compare"
	"github.com/pitwall-data/pitwall.report/internal/f1"
	"github.com/pitwall-data/pitwall.report/internal/units"
)

const (
	chartTheme  = "dark"
	chartWidth  = "1200px"
	chartHeight = "640px"
)

func initOpts(pageTitle string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: pageTitle,
		Theme:     chartTheme,
		Width:     chartWidth,
		Height:    chartHeight,
	})
}

// LapTimes builds a lap-time line chart for one driver. Safety-car laps
// and pit laps are overlaid as scatter series so interventions and stops
// are visible against the pace trace.
func LapTimes(driver string, lapsIn []f1.Lap, stops []f1.PitStop, periods []f1.SafetyCarPeriod) *charts.Line {
	neutralized := make(map[int]f1.PeriodType)
	for _, p := range periods {
		for lap := p.StartLap; lap <= p.EndLap; lap++ {
			neutralized[lap] = p.Type
		}
	}
	pitLaps := make(map[int]bool, len(stops))
	for _, stop := range stops {
		pitLaps[stop.Lap] = true
	}

	var xAxis []string
	var times []opts.LineData
	var scLaps, pitPoints []opts.ScatterData
	for _, lap := range lapsIn {
		if !lap.Timed() {
			continue
		}
		xAxis = append(xAxis, strconv.Itoa(lap.LapNumber))
		times = append(times, opts.LineData{Value: *lap.Time})

		idx := len(xAxis) - 1
		if _, ok := neutralized[lap.LapNumber]; ok {
			scLaps = append(scLaps, opts.ScatterData{Value: []interface{}{idx, *lap.Time}})
		}
		if pitLaps[lap.LapNumber] {
			pitPoints = append(pitPoints, opts.ScatterData{Value: []interface{}{idx, *lap.Time}})
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(fmt.Sprintf("Lap Times - %s", driver)),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Lap Times - %s", driver),
			Subtitle: fmt.Sprintf("laps=%d stops=%d", len(times), len(stops)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "lap"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "lap time (s)", Scale: opts.Bool(true)}),
	)
	line.SetXAxis(xAxis).AddSeries("lap time", times,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}))

	if len(scLaps) > 0 || len(pitPoints) > 0 {
		scatter := charts.NewScatter()
		scatter.AddSeries("safety car", scLaps,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ffd54f"}))
		scatter.AddSeries("pit lap", pitPoints,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}))
		line.Overlap(scatter)
	}
	return line
}

// PaceComparison builds paired lap-time lines for two drivers plus the
// per-lap delta over the laps both completed.
func PaceComparison(driver1, driver2 string, deltas []compare.LapDelta) *charts.Line {
	var xAxis []string
	var t1, t2, delta []opts.LineData
	for _, d := range deltas {
		xAxis = append(xAxis, strconv.Itoa(d.LapNumber))
		t1 = append(t1, opts.LineData{Value: d.Time1})
		t2 = append(t2, opts.LineData{Value: d.Time2})
		delta = append(delta, opts.LineData{Value: d.Delta})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(fmt.Sprintf("Pace - %s vs %s", driver1, driver2)),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Race Pace - %s vs %s", driver1, driver2),
			Subtitle: fmt.Sprintf("common laps=%d", len(deltas)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "lap"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "lap time (s)", Scale: opts.Bool(true)}),
	)
	line.SetXAxis(xAxis).
		AddSeries(driver1, t1).
		AddSeries(driver2, t2).
		AddSeries("delta", delta,
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))
	return line
}

// TelemetrySpeed builds the fastest-lap speed traces of two drivers over
// distance, plus the per-sample speed delta (index-aligned, truncated).
func TelemetrySpeed(driver1, driver2 string, aligned compare.AlignedSeries, targetUnits string) *charts.Line {
	var xAxis []string
	var s1, s2, delta []opts.LineData
	for i := 0; i < aligned.Len(); i++ {
		xAxis = append(xAxis, strconv.Itoa(int(aligned.Distance[i])))
		s1 = append(s1, opts.LineData{Value: units.ConvertSpeed(aligned.Speed1[i], targetUnits)})
		s2 = append(s2, opts.LineData{Value: units.ConvertSpeed(aligned.Speed2[i], targetUnits)})
		delta = append(delta, opts.LineData{Value: units.ConvertSpeed(aligned.SpeedDelta[i], targetUnits)})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(fmt.Sprintf("Telemetry - %s vs %s", driver1, driver2)),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Fastest Lap Speed - %s vs %s", driver1, driver2),
			Subtitle: fmt.Sprintf("samples=%d units=%s", aligned.Len(), targetUnits),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "distance (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("speed (%s)", targetUnits), Scale: opts.Bool(true)}),
	)
	line.SetXAxis(xAxis).
		AddSeries(driver1, s1).
		AddSeries(driver2, s2).
		AddSeries("delta", delta,
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))
	return line
}

// StintTimeline builds a bar chart of stint lengths per compound so tyre
// strategy reads at a glance.
func StintTimeline(driver string, stintsIn []f1.Stint) *charts.Bar {
	var xAxis []string
	var lengths []opts.BarData
	for i, stint := range stintsIn {
		xAxis = append(xAxis, fmt.Sprintf("S%d %s", i+1, stint.Compound))
		lengths = append(lengths, opts.BarData{Value: stint.EndLap - stint.StartLap + 1})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(fmt.Sprintf("Stints - %s", driver)),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Tyre Stints - %s", driver),
			Subtitle: fmt.Sprintf("stints=%d", len(stintsIn)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "laps"}),
	)
	bar.SetXAxis(xAxis).AddSeries("stint length", lengths,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	return bar
}
