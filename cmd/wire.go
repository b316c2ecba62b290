package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"

	"github.com/parleyhq/parley/internal/agent"
	"github.com/parleyhq/parley/internal/completion"
	"github.com/parleyhq/parley/internal/config"
	"github.com/parleyhq/parley/internal/log"
	"github.com/parleyhq/parley/internal/observability"
	"github.com/parleyhq/parley/internal/toolkit"
	"github.com/parleyhq/parley/internal/tools"
)

// app bundles everything a command needs after bootstrap.
type app struct {
	cfg      *config.Config
	logger   log.Logger
	agent    *agent.Agent
	shutdown func(context.Context) error
}

// bootstrap wires the full stack: configuration, logging, tracing, the
// Genkit provider, the tool set, and the agent. The returned shutdown
// flushes pending trace spans.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger := log.New(log.Config{Level: parseLevel(cfg.LogLevel), JSON: cfg.LogJSON})
	slog.SetDefault(logger)

	if err := checkRequiredEnv(cfg); err != nil {
		return nil, err
	}

	shutdown, err := observability.Setup(ctx, observability.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}

	g, err := provideGenkit(ctx, cfg)
	if err != nil {
		return nil, err
	}

	set, err := provideTools(g, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}

	svc, err := completion.NewGenkitService(g, logger)
	if err != nil {
		return nil, err
	}

	ag, err := agent.New(agent.Config{
		Completion:      svc,
		Logger:          logger,
		Tools:           set,
		Name:            cfg.ServiceName,
		Model:           cfg.Provider + "/" + cfg.ModelName,
		SystemPrompt:    cfg.SystemPrompt,
		MaxToolRounds:   cfg.MaxToolRounds,
		KeepSystemTurns: cfg.KeepSystemTurns,
	})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, agent: ag, shutdown: shutdown}, nil
}

// provideGenkit initializes Genkit with the configured AI provider.
func provideGenkit(ctx context.Context, cfg *config.Config) (*genkit.Genkit, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		plugin := &ollama.Ollama{ServerAddress: "http://localhost:11434"}
		g := genkit.Init(ctx, genkit.WithPlugins(plugin))
		if g == nil {
			return nil, errors.New("initializing genkit with ollama provider")
		}
		// Ollama requires explicit model registration (no auto-discovery).
		plugin.DefineModel(g, ollama.ModelDefinition{
			Name: cfg.ModelName,
			Type: "chat",
		}, nil)
		return g, nil

	default: // googleai
		g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with googleai provider")
		}
		return g, nil
	}
}

// provideTools declares every built-in toolset on g and collects them in
// registration order.
func provideTools(g *genkit.Genkit, cfg *config.Config, logger log.Logger) (*toolkit.Set, error) {
	set, err := toolkit.NewSet()
	if err != nil {
		return nil, err
	}

	research := tools.NewResearchToolset(tools.ResearchConfig{
		MaxLinks: cfg.ResearchMaxLinks,
		Timeout:  time.Duration(cfg.ResearchTimeoutMS) * time.Millisecond,
		Logger:   logger,
	})

	for _, group := range [][]*toolkit.Tool{
		tools.Math(g),
		tools.Charts(g),
		tools.Media(g),
		research.Tools(g),
	} {
		if err := tools.Register(set, group...); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// checkRequiredEnv verifies provider credentials before any model call.
func checkRequiredEnv(cfg *config.Config) error {
	if cfg.Provider != config.ProviderGoogleAI {
		return nil
	}
	if os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Fprintln(os.Stderr, "Error: GEMINI_API_KEY environment variable not set")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "To set your API key:")
		fmt.Fprintln(os.Stderr, "  export GEMINI_API_KEY=your-api-key")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Get your API key at: https://ai.google.dev/")
		return errors.New("GEMINI_API_KEY not set")
	}
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
