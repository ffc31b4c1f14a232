package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/plctoolchain/narrow/internal/diagnostics"
	"github.com/plctoolchain/narrow/internal/fixture"
	"github.com/plctoolchain/narrow/internal/narrowing/passes"
)

var (
	explainQuery string
	explainSet   string
)

var explainCmd = &cobra.Command{
	Use:   "explain <fixture.yaml>",
	Short: "Dump every narrowed node's resolved datatype as JSON",
	Long: `explain runs the narrowing pass over a fixture and prints the full
annotation dump as a JSON array, one object per visited node. Use --query
with a gjson path to pluck a single field out of that array, or --set with
a "path=value" pair to preview an sjson-patched copy without writing it back
to the fixture.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringVar(&explainQuery, "query", "", "gjson path to read from the annotation dump")
	explainCmd.Flags().StringVar(&explainSet, "set", "", "\"path=value\" to preview an sjson patch of the dump")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(_ *cobra.Command, args []string) error {
	path := args[0]
	program, err := fixture.Load(path)
	if err != nil {
		return fmt.Errorf("narrowcheck: %w", err)
	}

	ctx := passes.NewPassContext()
	pass := passes.NewNarrowingPass()
	if err := pass.Run(program, ctx); err != nil {
		logger.Debug("narrowing pass returned an internal error", "err", err)
	}

	dump := diagnostics.Dump(program)
	raw, err := json.Marshal(dump)
	if err != nil {
		return fmt.Errorf("narrowcheck: marshal annotation dump: %w", err)
	}

	if explainQuery != "" {
		result := gjson.GetBytes(raw, explainQuery)
		fmt.Println(result.String())
		return nil
	}

	if explainSet != "" {
		keyValue := strings.SplitN(explainSet, "=", 2)
		if len(keyValue) != 2 {
			return fmt.Errorf("narrowcheck: --set wants \"path=value\", got %q", explainSet)
		}
		patched, err := sjson.SetBytes(raw, keyValue[0], keyValue[1])
		if err != nil {
			return fmt.Errorf("narrowcheck: sjson patch: %w", err)
		}
		fmt.Println(string(patched))
		return nil
	}

	fmt.Println(string(raw))
	return nil
}
