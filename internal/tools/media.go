package tools

import (
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/parleyhq/parley/internal/attachment"
	"github.com/parleyhq/parley/internal/toolkit"
)

// MediaInput describes one media attachment request.
type MediaInput struct {
	URL      string `json:"url"`
	MIMEType string `json:"mime_type"`
	Label    string `json:"label,omitempty"`
}

// Media declares the media attachment tool.
func Media(g *genkit.Genkit) []*toolkit.Tool {
	return []*toolkit.Tool{
		toolkit.New(g, "CreateMediaAttachment",
			"Generate a media attachment. The media would be included automatically in the response.",
			createMediaAttachment),
	}
}

func createMediaAttachment(_ *ai.ToolContext, in MediaInput) (attachment.Media, error) {
	return attachment.Media{
		Content:  in.URL,
		MIMEType: in.MIMEType,
		Label:    in.Label,
	}, nil
}
