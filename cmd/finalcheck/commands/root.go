package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "finalcheck",
	Short: "FinalCheck - document compliance verification",
	Long: `FinalCheck verifies product documents against labeling and safety
standards. It renders each page of a PDF (or a single image), asks a vision
model whether the page satisfies each requested standard, and folds the
answers into an overall compliance report.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
