// Package attachment defines the structured artifacts a tool may surface
// alongside a reply: citations, media references, and charts.
//
// The variant set is closed. Every variant implements the unexported marker
// method, so the harvester and renderer can match exhaustively; a new variant
// that is not handled shows up as a rendering error instead of being silently
// dropped.
package attachment

import (
	"github.com/google/uuid"
)

// Attachment is the closed union of artifact types a tool may return.
// Attachments are immutable value objects owned by the turn they are
// attached to.
type Attachment interface {
	isAttachment()
}

// Citation is an item retrieved from a knowledge source.
type Citation struct {
	Title    string         `json:"title"`
	URL      string         `json:"url"`
	Content  string         `json:"content,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (Citation) isAttachment() {}

// Media references an image, video, or other binary payload.
// Content is a URL or base64 encoded string. Label is an optional caption.
type Media struct {
	Content  string `json:"content"`
	MIMEType string `json:"mime_type"`
	Label    string `json:"label,omitempty"`
}

func (Media) isAttachment() {}

// Chart is the part shared by every chart variant.
// ID is generated at construction and unique per chart instance.
type Chart struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// BarValue is a single bar in a vertical bar chart.
// X can be a string category or a number.
type BarValue struct {
	X     any     `json:"x"`
	Y     float64 `json:"y"`
	Color Color   `json:"color,omitempty"`
}

// VerticalBarChart plots one BarValue per bar.
type VerticalBarChart struct {
	Chart
	Data []BarValue `json:"data"`
}

func (VerticalBarChart) isAttachment() {}

// LinePoint is a single point on a line. X can be a string or a number.
type LinePoint struct {
	X any     `json:"x"`
	Y float64 `json:"y"`
}

// LineSeries is one line in a line chart.
type LineSeries struct {
	Values []LinePoint `json:"values"`
	Color  Color       `json:"color,omitempty"`
	Legend string      `json:"legend,omitempty"`
}

// LineChart plots one or more series.
type LineChart struct {
	Chart
	Data []LineSeries `json:"data"`
}

func (LineChart) isAttachment() {}

// PieSlice is a single slice of a pie chart.
type PieSlice struct {
	Value  float64 `json:"value"`
	Color  Color   `json:"color,omitempty"`
	Legend string  `json:"legend,omitempty"`
}

// PieChart plots one PieSlice per slice.
type PieChart struct {
	Chart
	Data []PieSlice `json:"data"`
}

func (PieChart) isAttachment() {}

// NewVerticalBarChart creates a vertical bar chart with a fresh ID.
func NewVerticalBarChart(title string, data []BarValue) VerticalBarChart {
	return VerticalBarChart{Chart: newChart(title), Data: data}
}

// NewLineChart creates a line chart with a fresh ID.
func NewLineChart(title string, data []LineSeries) LineChart {
	return LineChart{Chart: newChart(title), Data: data}
}

// NewPieChart creates a pie chart with a fresh ID.
func NewPieChart(title string, data []PieSlice) PieChart {
	return PieChart{Chart: newChart(title), Data: data}
}

func newChart(title string) Chart {
	return Chart{ID: uuid.NewString(), Title: title}
}
