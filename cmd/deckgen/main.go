// deckgen turns a free-text startup topic into a pitch deck artifact:
// pitch.json, logo.png and pitch.mp3 in the output directory.
//
// Usage:
//
//	deckgen generate "AI in healthcare" [-o output] [--upload]
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/coralpitch/pitchdeck/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "deckgen",
	Short: "Generate pitch deck artifacts from a topic",
}

func main() {
	rootCmd.AddCommand(generateCmd)
	if err := rootCmd.Execute(); err != nil {
		logger.New().WithError(err).Error("deckgen failed")
		os.Exit(1)
	}
}
