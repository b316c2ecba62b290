// Package agent implements the orchestrator for one conversational agent:
// it owns a set of instrumented tools, drives single request/response cycles
// against the completion service, and assembles the resulting turn from the
// reply text plus everything the invocation recorder accumulated.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/parleyhq/parley/internal/completion"
	"github.com/parleyhq/parley/internal/conversation"
	"github.com/parleyhq/parley/internal/invocation"
	"github.com/parleyhq/parley/internal/log"
	"github.com/parleyhq/parley/internal/toolkit"
)

// Sentinel errors for agent operations.
var (
	// ErrInitialization indicates the agent could not be constructed from
	// its configuration. The agent is unusable.
	ErrInitialization = errors.New("agent initialization failed")

	// ErrProcessing wraps any completion-service or tool failure during a
	// single Process call. The conversation history is left unmodified for
	// that turn.
	ErrProcessing = errors.New("agent processing failed")
)

// DefaultMaxToolRounds bounds the automatic tool-calling loop when the
// configuration does not set an explicit limit.
const DefaultMaxToolRounds = 5

const tracerName = "parley/agent"

// Config contains all required parameters for an Agent.
type Config struct {
	Completion completion.Service
	Logger     log.Logger

	// Tools the model may invoke. Optional; nil means no tools.
	Tools *toolkit.Set

	// Name identifies the agent in logs.
	Name string

	// Model is the provider-qualified model name passed to the completion
	// service (e.g. "googleai/gemini-2.5-flash"). Empty uses the service's
	// default.
	Model string

	// SystemPrompt is prepended to every translated history.
	SystemPrompt string

	// MaxToolRounds bounds the automatic tool-calling loop.
	// Zero uses DefaultMaxToolRounds; it is never unbounded.
	MaxToolRounds int

	// KeepSystemTurns passes system-role history turns through to the
	// completion service. When false they are omitted.
	KeepSystemTurns bool

	// Limiter optionally throttles completion requests.
	// Nil uses a default of 10 requests/sec with a burst of 30.
	Limiter *rate.Limiter
}

func (cfg Config) validate() error {
	if cfg.Completion == nil {
		return errors.New("completion service is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}

// Agent drives response generations for one conversational agent.
// Safe for concurrent Process calls; each call gets its own invocation
// recorder.
type Agent struct {
	completion completion.Service
	logger     log.Logger
	tools      *toolkit.Set

	name            string
	model           string
	systemPrompt    string
	maxToolRounds   int
	keepSystemTurns bool

	limiter *rate.Limiter
}

// New creates an Agent. Configuration failures are wrapped in
// ErrInitialization.
func New(cfg Config) (*Agent, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	tools := cfg.Tools
	if tools == nil {
		var err error
		tools, err = toolkit.NewSet()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
		}
	}

	maxToolRounds := cfg.MaxToolRounds
	if maxToolRounds <= 0 {
		maxToolRounds = DefaultMaxToolRounds
	}

	limiter := cfg.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(10, 30)
	}

	name := cfg.Name
	if name == "" {
		name = "agent"
	}

	a := &Agent{
		completion:      cfg.Completion,
		logger:          cfg.Logger,
		tools:           tools,
		name:            name,
		model:           cfg.Model,
		systemPrompt:    cfg.SystemPrompt,
		maxToolRounds:   maxToolRounds,
		keepSystemTurns: cfg.KeepSystemTurns,
		limiter:         limiter,
	}

	a.logger.Info("agent initialized",
		"agent", a.name,
		"tools", a.tools.Len(),
		"max_tool_rounds", a.maxToolRounds,
	)

	return a, nil
}

// Name returns the agent's identifier.
func (a *Agent) Name() string { return a.name }

// Tools returns the agent's tool set.
func (a *Agent) Tools() *toolkit.Set { return a.tools }

// AddTool registers an additional tool at runtime.
// Fails with toolkit.ErrDuplicateTool on a name collision; the existing
// tool set is unchanged.
func (a *Agent) AddTool(t *toolkit.Tool) error {
	if err := a.tools.Add(t); err != nil {
		return err
	}
	a.logger.Info("tool registered", "agent", a.name, "tool", t.Name())
	return nil
}

// Process runs one request/response cycle: it binds a fresh invocation
// recorder to the call context, hands the translated history and the
// instrumented tools to the completion service, and assembles the assistant
// turn from the reply plus the recorder's accumulated tool usage and
// attachments.
//
// Any completion or tool failure is returned wrapped in ErrProcessing and
// no turn is produced; the caller must not treat a failed call as having
// advanced the conversation. The recorder is scoped to this call on every
// exit path, so concurrent Process calls never share state.
func (a *Agent) Process(ctx context.Context, history *conversation.History, input string) (conversation.Turn, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "agent.process")
	span.SetAttributes(attribute.String("agent.name", a.name))
	defer span.End()

	rec := invocation.NewRecorder()
	ctx = invocation.NewContext(ctx, rec)

	msgs := a.translate(history)
	msgs = append(msgs, ai.NewUserMessage(ai.NewTextPart(input)))

	if err := a.limiter.Wait(ctx); err != nil {
		return conversation.Turn{}, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	resp, err := a.completion.Complete(ctx, completion.Request{
		Messages:      msgs,
		Tools:         a.tools.Refs(),
		MaxToolRounds: a.maxToolRounds,
		Model:         a.model,
	})
	if err != nil {
		a.logger.Error("processing turn failed", "agent", a.name, "error", err)
		return conversation.Turn{}, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	usage := rec.Usage()
	turn := conversation.Turn{
		Role:        conversation.RoleAssistant,
		Content:     resp.Text,
		CreatedAt:   time.Now(),
		Metadata:    map[string]any{conversation.MetadataToolUsage: usage},
		Attachments: rec.Attachments(),
	}

	a.logger.Debug("turn processed",
		"agent", a.name,
		"tool_calls", len(usage),
		"attachments", len(turn.Attachments),
	)

	return turn, nil
}

// translate maps the bounded history into the completion service's message
// sequence, prepending the configured system prompt and filtering system
// turns unless KeepSystemTurns is set.
func (a *Agent) translate(history *conversation.History) []*ai.Message {
	var msgs []*ai.Message
	if a.systemPrompt != "" {
		msgs = append(msgs, &ai.Message{
			Role:    ai.RoleSystem,
			Content: []*ai.Part{ai.NewTextPart(a.systemPrompt)},
		})
	}
	if history == nil {
		return msgs
	}
	for _, t := range history.Turns() {
		if t.Role == conversation.RoleSystem && !a.keepSystemTurns {
			continue
		}
		msgs = append(msgs, t.Message())
	}
	return msgs
}
