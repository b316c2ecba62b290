package tools

import (
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/parleyhq/parley/internal/attachment"
	"github.com/parleyhq/parley/internal/toolkit"
)

// VerticalBarChartInput describes one bar chart request.
type VerticalBarChartInput struct {
	Title string                `json:"title"`
	Data  []attachment.BarValue `json:"data"`
}

// LineChartInput describes one line chart request.
type LineChartInput struct {
	Title string                  `json:"title"`
	Data  []attachment.LineSeries `json:"data"`
}

// PieChartInput describes one pie chart request.
type PieChartInput struct {
	Title string                `json:"title"`
	Data  []attachment.PieSlice `json:"data"`
}

// Charts declares the three chart-generation tools. Each returns a chart
// attachment with a fresh ID; the harvester picks it up from the result, so
// the chart rides along with the reply without the model repeating it.
func Charts(g *genkit.Genkit) []*toolkit.Tool {
	return []*toolkit.Tool{
		toolkit.New(g, "VerticalBarChart",
			"Generate a vertical bar chart. The chart would be included automatically in the response.",
			createVerticalBarChart),
		toolkit.New(g, "LineChart",
			"Generate a stacked line chart. The chart would be included automatically in the response. "+
				"Each entry in data is a single line: a list of points with an x value (string or number) "+
				"and a numeric y value, plus an optional color and legend.",
			createLineChart),
		toolkit.New(g, "PieChart",
			"Generate a pie chart. The chart would be included automatically in the response.",
			createPieChart),
	}
}

func createVerticalBarChart(_ *ai.ToolContext, in VerticalBarChartInput) (attachment.VerticalBarChart, error) {
	return attachment.NewVerticalBarChart(in.Title, in.Data), nil
}

func createLineChart(_ *ai.ToolContext, in LineChartInput) (attachment.LineChart, error) {
	return attachment.NewLineChart(in.Title, in.Data), nil
}

func createPieChart(_ *ai.ToolContext, in PieChartInput) (attachment.PieChart, error) {
	return attachment.NewPieChart(in.Title, in.Data), nil
}
