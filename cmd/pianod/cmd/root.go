package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pianod",
	Short: "Virtual piano keyboard with model-driven accompaniment",
	Long: `pianod runs a virtual piano keyboard whose scheduler periodically asks a
generative model for new notes and plays them against a shared musical clock.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
