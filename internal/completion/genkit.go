package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/parleyhq/parley/internal/log"
)

// GenkitService drives completions through a Genkit instance. Genkit owns
// the auto-invoke loop: it calls the supplied tools as the model requests
// them, bounded by the request's MaxToolRounds.
type GenkitService struct {
	g      *genkit.Genkit
	logger log.Logger
}

// NewGenkitService wraps a Genkit instance.
func NewGenkitService(g *genkit.Genkit, logger log.Logger) (*GenkitService, error) {
	if g == nil {
		return nil, errors.New("genkit instance is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &GenkitService{g: g, logger: logger}, nil
}

// Complete generates one reply, letting the model call tools up to the
// configured number of rounds.
func (s *GenkitService) Complete(ctx context.Context, req Request) (*Response, error) {
	opts := []ai.GenerateOption{
		ai.WithMessages(req.Messages...),
	}
	if len(req.Tools) > 0 {
		opts = append(opts, ai.WithTools(req.Tools...))
	}
	if req.MaxToolRounds > 0 {
		opts = append(opts, ai.WithMaxTurns(req.MaxToolRounds))
	}
	if req.Model != "" {
		opts = append(opts, ai.WithModelName(req.Model))
	}

	s.logger.Debug("requesting completion",
		"messages", len(req.Messages),
		"tools", len(req.Tools),
		"max_tool_rounds", req.MaxToolRounds,
	)

	resp, err := genkit.Generate(ctx, s.g, opts...)
	if err != nil {
		return nil, fmt.Errorf("generating completion: %w", err)
	}

	return &Response{
		Text:         resp.Text(),
		ToolRequests: resp.ToolRequests(),
	}, nil
}
