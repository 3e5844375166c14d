// Command lutcheck validates calibration curve files and evaluates them
// on the host before they are baked into a device config.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:           "lutcheck",
		Short:         "Check and evaluate calibration lookup tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")

	cmd.AddCommand(validateCmd(&envFile))
	cmd.AddCommand(evalCmd(&envFile))
	cmd.AddCommand(sweepCmd(&envFile))
	cmd.AddCommand(versionCmd())

	return cmd
}
