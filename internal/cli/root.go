// Package cli implements the moodlog command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "moodlog",
	Short: "Mood journal backend",
	Long:  "Runs the mood journal API and its maintenance tasks: migrations, emotion seeding and upstream checks.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configFile != "" {
			_ = os.Setenv("CONFIG_FILE", configFile)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (default: $CONFIG_FILE)")
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
