package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "socialmem",
	Short: "Social memory engine for conversational agents",
	Long:  "Socialmem tracks per-user affection, relationship milestones, and typed memories, and compresses them into a context block for agent prompts.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(bondsCmd)
}
