package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plctoolchain/narrow/internal/diagnostics"
	"github.com/plctoolchain/narrow/internal/fixture"
	"github.com/plctoolchain/narrow/internal/narrowing/passes"
)

var runCmd = &cobra.Command{
	Use:   "run <fixture.yaml>",
	Short: "Narrow a fixture program and report any unresolved datatypes",
	Args:  cobra.ExactArgs(1),
	RunE:  runFixture,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runFixture(_ *cobra.Command, args []string) error {
	path := args[0]
	logger.Debug("loading fixture", "path", path)

	program, err := fixture.Load(path)
	if err != nil {
		return fmt.Errorf("narrowcheck: %w", err)
	}

	ctx := passes.NewPassContext()
	pass := passes.NewNarrowingPass()
	logger.Debug("running narrowing pass", "units", len(program.Units))
	if err := pass.Run(program, ctx); err != nil {
		return fmt.Errorf("narrowcheck: internal error: %w", err)
	}

	findings := diagnostics.Collect(program)
	if len(findings) == 0 {
		fmt.Println("narrowing completed with no unresolved datatypes")
		return nil
	}

	source, _ := os.ReadFile(path)
	fmt.Fprint(os.Stderr, diagnostics.FormatAll(findings, string(source), path, false))
	fmt.Fprintln(os.Stderr)
	return fmt.Errorf("narrowing left %d node(s) unresolved", len(findings))
}
