package export

import (
	"errors"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/swingsim/internal/dynamo"
)

// maxChartPoints bounds the samples per series; longer runs are decimated.
const maxChartPoints = 2000

// ChartHTML renders the selected columns of r against time as a
// standalone interactive HTML page.
func ChartHTML(w io.Writer, r *dynamo.Result, title string, labels ...string) error {
	if len(labels) == 0 {
		return errors.New("no series selected")
	}
	if len(r.Times) == 0 {
		return errors.New("empty result")
	}

	stride := 1
	if len(r.Times) > maxChartPoints {
		stride = (len(r.Times) + maxChartPoints - 1) / maxChartPoints
	}

	xAxis := make([]string, 0, len(r.Times)/stride+1)
	for i := 0; i < len(r.Times); i += stride {
		xAxis = append(xAxis, strconv.FormatFloat(r.Times[i], 'f', 3, 64))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(xAxis)

	for _, label := range labels {
		col, err := r.Column(label)
		if err != nil {
			return err
		}
		data := make([]opts.LineData, 0, len(xAxis))
		for i := 0; i < len(col); i += stride {
			data = append(data, opts.LineData{Value: col[i]})
		}
		line.AddSeries(label, data)
	}

	return line.Render(w)
}
