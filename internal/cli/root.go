package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `  _        _     _                 _
 | |_ __ _| |__ | | ___   __ _  __| |
 | __/ _` + "`" + ` | '_ \| |/ _ \ / _` + "`" + ` |/ _` + "`" + ` |
 | || (_| | |_) | | (_) | (_| | (_| |
  \__\__,_|_.__/|_|\___/ \__,_|\__,_|`

var rootCmd = &cobra.Command{
	Use:   "tabload",
	Short: "Load tabular files into PostgreSQL",
	Long: asciiLogo + `

tabload reads delimited text files and spreadsheet workbooks, infers a
PostgreSQL schema from the data, and loads each table inside a single
transaction. Large CSV files stream in bounded-memory chunks with the same
all-or-nothing guarantees as a single-shot load.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - User denied table replacement approval
  13 - Database write failed (transaction rolled back)
  14 - Unsupported source file format
  15 - Source data structurally unusable
  16 - Schema mismatch against existing table`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for tabload")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
