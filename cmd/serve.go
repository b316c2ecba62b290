package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/parleyhq/parley/internal/agent"
	"github.com/parleyhq/parley/internal/conversation"
	"github.com/parleyhq/parley/internal/log"
	"github.com/parleyhq/parley/internal/render"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP message endpoint",
	Long: `Serve exposes POST /api/messages for bot-channel integration. Each
request carries a thread ID and a message; replies include the agent's text
and, when tools produced attachments, an Adaptive Card.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// genericFailureNotice is sent to the channel when a turn fails. The real
// error stays in the logs.
const genericFailureNotice = "The bot encountered an error. Please try again."

type messageRequest struct {
	ThreadID string `json:"thread_id"`
	Text     string `json:"text"`
}

type messageResponse struct {
	Text        string         `json:"text"`
	Attachments map[string]any `json:"attachments,omitempty"`
}

// threadState serializes turns within one conversation thread. Distinct
// threads process concurrently.
type threadState struct {
	mu      sync.Mutex
	history *conversation.History
}

type server struct {
	agent    *agent.Agent
	logger   log.Logger
	maxTurns int

	mu      sync.Mutex
	threads map[string]*threadState
}

func newServer(a *agent.Agent, logger log.Logger, maxTurns int) *server {
	return &server{
		agent:    a,
		logger:   logger,
		maxTurns: maxTurns,
		threads:  make(map[string]*threadState),
	}
}

func (s *server) thread(id string) *threadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.threads[id]
	if !ok {
		st = &threadState{
			history: conversation.New(s.maxTurns, conversation.WithThreadID(id)),
		}
		s.threads[id] = st
	}
	return st
}

func (s *server) handleMessages(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ThreadID == "" || req.Text == "" {
		http.Error(w, "thread_id and text are required", http.StatusBadRequest)
		return
	}

	st := s.thread(req.ThreadID)
	st.mu.Lock()
	defer st.mu.Unlock()

	turn, err := s.agent.Process(r.Context(), st.history, req.Text)
	if err != nil {
		s.logger.Error("turn failed", "thread", req.ThreadID, "error", err)
		writeJSON(w, http.StatusOK, messageResponse{Text: genericFailureNotice})
		return
	}

	st.history.AddTurn(conversation.NewUserTurn(req.Text))
	st.history.AddTurn(turn)

	doc, err := render.Render(turn)
	if err != nil {
		s.logger.Error("rendering turn failed", "thread", req.ThreadID, "error", err)
		writeJSON(w, http.StatusOK, messageResponse{Text: turn.Content})
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Text:        doc.Text,
		Attachments: render.AdaptiveCard(doc),
	})
}

func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/messages", s.handleMessages)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.shutdown(context.Background()) }()

	srv := newServer(a.agent, a.logger, a.cfg.MaxHistoryTurns)
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Port),
		Handler:           srv.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", httpSrv.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
