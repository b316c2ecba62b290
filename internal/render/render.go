// Package render turns an assistant turn into a channel-independent document:
// the reply text plus collapsible sections for citations, media, and charts.
// Rendering is pure; the adaptive-card serializer in this package is one
// consumer of the document model, other front-ends can walk it directly.
package render

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/parleyhq/parley/internal/attachment"
	"github.com/parleyhq/parley/internal/conversation"
)

// ErrUnsupportedChart is returned when a turn carries an attachment variant
// the renderer does not know. The closed attachment union makes this a
// programming error, not user input.
var ErrUnsupportedChart = errors.New("unsupported chart type")

// DefaultMediaLabel captions media attachments that carry no label.
const DefaultMediaLabel = "Media Attachment"

// Chart type discriminators used by the document model and the adaptive-card
// serializer.
const (
	ChartVerticalBar = "Chart.VerticalBar"
	ChartLine        = "Chart.Line"
	ChartPie         = "Chart.Pie"
)

// Section identifiers and titles for the three attachment buckets.
const (
	sectionCitations = "Citations"
	sectionMedia     = "Media"
	sectionCharts    = "Charts"

	titleCitations = "Citations"
	titleMedia     = "Media Attachments"
	titleCharts    = "Charts"
)

// Document is the rendered form of one turn: the reply text plus zero or
// more collapsible sections.
type Document struct {
	Text     string
	Sections []Section
}

// Section is a titled, collapsible group of elements. ID is unique within
// the document and stable across renders of the same turn.
type Section struct {
	ID       string
	Title    string
	Elements []Element
}

// Element is the closed union of renderable blocks.
type Element interface {
	isElement()
}

// TextBlock is a run of (possibly markdown) text.
type TextBlock struct {
	Text string
	Size string
	Wrap bool
}

func (TextBlock) isElement() {}

// CodeBlock is a syntax-highlighted snippet.
type CodeBlock struct {
	Code     string
	Language string
}

func (CodeBlock) isElement() {}

// MediaBlock references one playable or viewable media source.
type MediaBlock struct {
	URL      string
	MIMEType string
	Label    string
}

func (MediaBlock) isElement() {}

// ChartBlock is one chart with its type discriminator. Data holds the
// chart variant's typed data slice; it serializes through the attachment
// types' JSON tags.
type ChartBlock struct {
	ChartType string
	ID        string
	Title     string
	Data      any
}

func (ChartBlock) isElement() {}

// Container groups elements that render as one unit.
type Container struct {
	Items []Element
}

func (Container) isElement() {}

// Render builds the document for a turn. The text is carried through
// unchanged; attachments are bucketed into citation, media, and chart
// sections in that order, preserving arrival order within each bucket.
// Buckets with no attachments produce no section. Rendering never mutates
// the turn, so rendering the same turn twice yields the same document.
func Render(turn conversation.Turn) (Document, error) {
	var citations, media, charts []Element

	for _, att := range turn.Attachments {
		switch a := att.(type) {
		case attachment.Citation:
			citations = append(citations, citationElement(a))
		case attachment.Media:
			media = append(media, mediaElement(a))
		case attachment.VerticalBarChart:
			charts = append(charts, ChartBlock{ChartType: ChartVerticalBar, ID: a.ID, Title: a.Title, Data: a.Data})
		case attachment.LineChart:
			charts = append(charts, ChartBlock{ChartType: ChartLine, ID: a.ID, Title: a.Title, Data: a.Data})
		case attachment.PieChart:
			charts = append(charts, ChartBlock{ChartType: ChartPie, ID: a.ID, Title: a.Title, Data: a.Data})
		default:
			return Document{}, fmt.Errorf("%w: %T", ErrUnsupportedChart, att)
		}
	}

	doc := Document{Text: turn.Content}
	if len(citations) > 0 {
		doc.Sections = append(doc.Sections, Section{ID: sectionCitations, Title: titleCitations, Elements: citations})
	}
	if len(media) > 0 {
		doc.Sections = append(doc.Sections, Section{ID: sectionMedia, Title: titleMedia, Elements: media})
	}
	if len(charts) > 0 {
		doc.Sections = append(doc.Sections, Section{ID: sectionCharts, Title: titleCharts, Elements: charts})
	}
	return doc, nil
}

// citationElement renders a citation as a markdown link over its metadata.
// Metadata marshals with sorted keys, so the snippet is deterministic.
func citationElement(c attachment.Citation) Element {
	snippet := ""
	if len(c.Metadata) > 0 {
		if b, err := json.Marshal(c.Metadata); err == nil {
			snippet = string(b)
		}
	}
	return Container{Items: []Element{
		TextBlock{Text: fmt.Sprintf("[%s](%s)", c.Title, c.URL), Size: "Medium", Wrap: true},
		CodeBlock{Code: snippet, Language: "Json"},
	}}
}

func mediaElement(m attachment.Media) Element {
	label := m.Label
	if label == "" {
		label = DefaultMediaLabel
	}
	return MediaBlock{URL: m.Content, MIMEType: m.MIMEType, Label: label}
}
