package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version = "0.1.0-dev"

	verbose bool
	logger  *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "narrowcheck",
	Short: "Run the IEC 61131-3 type-narrowing pass over a fixture program",
	Long: `narrowcheck loads a toy IEC 61131-3 program from a YAML fixture
(pre-annotated with the candidate datatypes a real candidate-collection
pass would compute), runs the type-narrowing pass over it, and reports
the result: either a diagnostics listing of anything left unresolved, or
a JSON dump of every node's resolved datatype via the explain subcommand.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable leveled debug logging")
	cobra.OnInitialize(initLogger)
}

func initLogger() {
	opts := log.Options{Prefix: "narrowcheck"}
	if verbose {
		opts.Level = log.DebugLevel
	} else {
		opts.Level = log.WarnLevel
	}
	logger = log.NewWithOptions(os.Stderr, opts)
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
