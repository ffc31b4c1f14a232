// Command narrowcheck runs the IEC 61131-3 type-narrowing pass over a
// fixture file and prints either its diagnostics or a JSON annotation dump.
package main

import (
	"fmt"
	"os"

	"github.com/plctoolchain/narrow/cmd/narrowcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
