package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run FILE [args...]",
	Short: "Run a Joy source file",
	Long: `Execute a Joy program from a file.

The filename becomes argv[0] within the program; any further
arguments are argv[1..].

Examples:
  # Run a script file
  joy run fib.joy

  # Pass arguments through to the program
  joy run sum.joy 1 2 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runFile(args[0], args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
