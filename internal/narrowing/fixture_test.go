package narrowing_test

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/plctoolchain/narrow/internal/diagnostics"
	"github.com/plctoolchain/narrow/internal/fixture"
	"github.com/plctoolchain/narrow/internal/narrowing/passes"
)

// TestFixtures narrows every testdata/fixtures/*.yaml program and snapshots
// its resulting annotation dump, the way the teacher's
// internal/interp/fixture_test.go iterates testdata and snapshots each
// fixture's evaluated output.
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/fixtures/*.yaml")
	if err != nil {
		t.Fatalf("glob testdata/fixtures: %v", err)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		t.Fatal("expected at least one fixture under testdata/fixtures")
	}

	for _, path := range paths {
		name := filepath.Base(path)
		t.Run(name, func(t *testing.T) {
			program, err := fixture.Load(path)
			if err != nil {
				t.Fatalf("fixture.Load(%s): %v", path, err)
			}

			ctx := passes.NewPassContext()
			if err := passes.NewNarrowingPass().Run(program, ctx); err != nil {
				t.Fatalf("NarrowingPass.Run(%s): %v", path, err)
			}

			annotations := diagnostics.Dump(program)
			findings := diagnostics.Collect(program)

			snaps.MatchSnapshot(t, name+"_annotations", annotations)
			snaps.MatchSnapshot(t, name+"_findings", findings)
		})
	}
}
