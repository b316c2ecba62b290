package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parleyhq/parley/internal/agent"
	"github.com/parleyhq/parley/internal/conversation"
	"github.com/parleyhq/parley/internal/render"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.shutdown(context.Background()) }()

	history := conversation.New(a.cfg.MaxHistoryTurns)

	fmt.Println("Parley chat. Type /exit to quit, /clear to reset the conversation.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/clear":
			history = conversation.New(a.cfg.MaxHistoryTurns)
			fmt.Println("Conversation cleared.")
			continue
		}

		turn, err := a.agent.Process(ctx, history, input)
		if err != nil {
			if errors.Is(err, agent.ErrProcessing) {
				a.logger.Error("turn failed", "error", err)
				fmt.Println("Sorry, something went wrong processing that. Please try again.")
				continue
			}
			return err
		}

		history.AddTurn(conversation.NewUserTurn(input))
		history.AddTurn(turn)

		printTurn(turn)
	}
}

// printTurn writes the reply and a textual view of the rendered document.
func printTurn(turn conversation.Turn) {
	fmt.Println(turn.Content)

	doc, err := render.Render(turn)
	if err != nil {
		fmt.Printf("(some attachments could not be rendered: %v)\n", err)
		fmt.Println()
		return
	}

	for _, section := range doc.Sections {
		fmt.Printf("\n%s:\n", section.Title)
		for _, el := range section.Elements {
			printElement(el, "  ")
		}
	}
	fmt.Println()
}

func printElement(el render.Element, indent string) {
	switch e := el.(type) {
	case render.TextBlock:
		fmt.Printf("%s%s\n", indent, e.Text)
	case render.CodeBlock:
		if e.Code != "" {
			fmt.Printf("%s%s\n", indent, e.Code)
		}
	case render.MediaBlock:
		fmt.Printf("%s%s (%s): %s\n", indent, e.Label, e.MIMEType, e.URL)
	case render.ChartBlock:
		fmt.Printf("%s[%s] %s\n", indent, e.ChartType, e.Title)
	case render.Container:
		for _, item := range e.Items {
			printElement(item, indent)
		}
	}
}
