package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parleyhq/parley/internal/conversation"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.shutdown(context.Background()) }()

	question := strings.Join(args, " ")
	if strings.TrimSpace(question) == "" {
		return errors.New("question cannot be empty")
	}

	turn, err := a.agent.Process(ctx, conversation.New(a.cfg.MaxHistoryTurns), question)
	if err != nil {
		return fmt.Errorf("asking %q: %w", question, err)
	}

	printTurn(turn)
	return nil
}
