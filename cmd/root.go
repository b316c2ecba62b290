// Package cmd contains the parley CLI: an interactive chat mode, a one-shot
// ask command, and an HTTP serve mode for bot-channel integration.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Parley - a tool-using conversational agent",
	Long: `Parley is a conversational agent built on Genkit. The model can call
tools (arithmetic, charts, media, web research) and every tool call is
recorded on the turn, along with any attachments the tools produced.

Running parley with no arguments starts interactive chat mode.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, args)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
