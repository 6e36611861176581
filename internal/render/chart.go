package render

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/exthost-tools/cs-activity/internal/data/aggregator"
)

const (
	// DefaultDPI matches the classic 200 dpi figure export.
	DefaultDPI = 200
	// DefaultSkipLabels hides every 2nd bar label to keep the axis readable.
	DefaultSkipLabels = 2

	chartTitle = "Code-server activity to time"
	xAxisName  = "Time of log written"
	yAxisName  = "Log activity count"

	// Canvas is the classic 6.4in x 4.8in figure scaled by the dpi knob.
	figureWidthInches  = 6.4
	figureHeightInches = 4.8

	barLabelRotate  = 75
	lineLabelRotate = 45

	timeOfDayLayout = "15:04:05"
	dateTimeLayout  = "01/02 15:04:05"
)

// Renderer converts activity histograms into bar and line charts.
type Renderer struct {
	dpi  int
	skip int
	view bool
}

// NewRenderer creates a Renderer. dpi scales the chart canvas, skip thins the
// bar chart x-axis labels (every skip-th label shown), and view opens each
// written chart with the platform opener.
func NewRenderer(dpi, skip int, view bool) *Renderer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if skip <= 0 {
		skip = DefaultSkipLabels
	}
	return &Renderer{
		dpi:  dpi,
		skip: skip,
		view: view,
	}
}

// WriteBarChart renders the histogram as a bar chart over time-of-day labels
// and writes it to "<basePath>-bar.html". The written path is returned.
func (r *Renderer) WriteBarChart(hist *aggregator.Histogram, basePath string) (string, error) {
	outPath := basePath + "-bar.html"
	if err := r.writeChart(r.buildBarChart(hist), outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// WriteLineChart renders the histogram as a line chart over full date-time
// labels and writes it to "<basePath>-line.html". The written path is returned.
func (r *Renderer) WriteLineChart(hist *aggregator.Histogram, basePath string) (string, error) {
	outPath := basePath + "-line.html"
	if err := r.writeChart(r.buildLineChart(hist), outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

type renderable interface {
	Render(w io.Writer) error
}

func (r *Renderer) writeChart(chart renderable, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}

	renderErr := chart.Render(f)
	closeErr := f.Close()

	if renderErr != nil {
		return fmt.Errorf("render chart: %w", renderErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close chart file: %w", closeErr)
	}

	if r.view {
		if err := openInViewer(outPath); err != nil {
			return fmt.Errorf("open chart: %w", err)
		}
	}

	return nil
}

func (r *Renderer) buildBarChart(hist *aggregator.Histogram) *charts.Bar {
	buckets := hist.Buckets()
	labels := make([]string, len(buckets))
	data := make([]opts.BarData, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Start.Format(timeOfDayLayout)
		data[i] = opts.BarData{Value: b.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  r.canvasWidth(),
			Height: r.canvasHeight(),
		}),
		charts.WithTitleOpts(opts.Title{Title: chartTitle}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: xAxisName,
			AxisLabel: &opts.AxisLabel{
				Show:   opts.Bool(true),
				Rotate: barLabelRotate,
				// echarts interval N shows one label in every N+1.
				Interval: strconv.Itoa(r.skip - 1),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: yAxisName}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("Log activity", data)

	return bar
}

func (r *Renderer) buildLineChart(hist *aggregator.Histogram) *charts.Line {
	buckets := hist.Buckets()
	labels := make([]string, len(buckets))
	data := make([]opts.LineData, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Start.Format(dateTimeLayout)
		data[i] = opts.LineData{Value: b.Count}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  r.canvasWidth(),
			Height: r.canvasHeight(),
		}),
		charts.WithTitleOpts(opts.Title{Title: chartTitle}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: xAxisName,
			AxisLabel: &opts.AxisLabel{
				Show:   opts.Bool(true),
				Rotate: lineLabelRotate,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: yAxisName}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	line.SetXAxis(labels)
	line.AddSeries("Log activity", data)

	return line
}

func (r *Renderer) canvasWidth() string {
	return fmt.Sprintf("%dpx", int(figureWidthInches*float64(r.dpi)))
}

func (r *Renderer) canvasHeight() string {
	return fmt.Sprintf("%dpx", int(figureHeightInches*float64(r.dpi)))
}
