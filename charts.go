package nca

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/openpkpd/go-nca/pkdataset"
)

// LineProfile generates an echart multi-line chart for some arbitrary
// time/concentration combination. Each series must have the same length as
// the input time slice. NaN samples render as gaps so every series stays
// aligned with the time axis.
func LineProfile(title string, seriesName []string, t []float64, c [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	lineData := make([][]opts.LineData, len(c))
	for i := 0; i < len(c); i++ {
		lineData[i] = make([]opts.LineData, 0, len(c[i]))
		for j := 0; j < len(c[i]); j++ {
			if math.IsNaN(c[i][j]) {
				// "-" is the echarts missing-value marker
				lineData[i] = append(lineData[i], opts.LineData{Value: "-"})
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: c[i][j]})
		}
	}

	line = line.SetXAxis(t)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}
	return line
}

// LineSemiLog generates a concentration-time chart with a log-scaled
// concentration axis. Non-positive samples cannot be drawn on a log axis
// and are skipped together with their time points.
func LineSemiLog(title string, t, c []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Type: "log",
			},
		),
	)

	filteredT := make([]float64, 0, len(t))
	lineData := make([]opts.LineData, 0, len(c))
	for i := 0; i < len(c); i++ {
		if math.IsNaN(c[i]) || c[i] <= 0 {
			continue
		}
		filteredT = append(filteredT, t[i])
		lineData = append(lineData, opts.LineData{Value: c[i]})
	}

	line.SetXAxis(filteredT).AddSeries("Concentration", lineData)
	return line
}

// LineTerminalFit overlays the observed profile with the terminal
// regression line evaluated at every observed time at or after the fit
// window start.
func LineTerminalFit(p *pkdataset.Profile, res *Results) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Terminal Phase Fit",
			},
		),
	)

	observed := make([]opts.LineData, 0, p.Len())
	fitted := make([]opts.LineData, 0, p.Len())
	for i := 0; i < p.Len(); i++ {
		observed = append(observed, opts.LineData{Value: p.C[i]})
		if res.Terminal != nil && i >= res.Terminal.Start {
			fitted = append(fitted, opts.LineData{Value: res.Terminal.Predict(p.T[i])})
			continue
		}
		// "-" is the echarts missing-value marker, leaving a gap before
		// the fit window
		fitted = append(fitted, opts.LineData{Value: "-"})
	}

	line.SetXAxis(p.T).
		AddSeries("Observed", observed).
		AddSeries("Lambda-z", fitted)
	return line
}

// PlotRun renders the most recent run to an html file: the profile on
// linear and semilog axes, the running area, and the terminal fit overlay.
func (a *Analyzer) PlotRun(path string) error {
	if a == nil || a.runResults == nil {
		return ErrEmptyRun
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return a.renderRun(file)
}

func (a *Analyzer) renderRun(w io.Writer) error {
	p := a.runData
	res := a.runResults

	page := components.NewPage()
	page.AddCharts(
		LineProfile(
			"Concentration-Time",
			[]string{"Concentration"},
			p.T,
			[][]float64{p.C},
		),
		LineSemiLog(
			fmt.Sprintf("Semilog (half-life %.2f h)", res.HalfLife),
			p.T,
			p.C,
		),
		LineProfile(
			"Cumulative AUC",
			[]string{"AUC"},
			p.T,
			[][]float64{res.CumulativeAUC},
		),
		LineTerminalFit(p, res),
	)
	return page.Render(w)
}
