package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stencila/sheet"
	"github.com/stencila/sheet/eval"
	"github.com/stencila/sheet/internal/docio"
)

// RunCalc loads a grid file, recalculates every cell and prints the
// results; with --out the computed values are written back as a grid.
func RunCalc(cmd *cobra.Command, args []string) error {
	cells, err := docio.Load(args[0])
	if err != nil {
		return err
	}

	s := sheet.New(eval.NewSpread())
	results := s.UpdateBatch(cells)

	out := cmd.OutOrStdout()
	show := cmd.Flags().Lookup("show").Value.(*cellList)
	if len(show.ids) > 0 {
		for _, id := range show.ids {
			r, computed := results[id]
			if !computed {
				fmt.Fprintf(out, "%s\t<empty>\n", id)
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", id, formatResult(r))
		}
	} else {
		for _, id := range sortedResultIDs(results) {
			fmt.Fprintf(out, "%s\t%s\n", id, formatResult(results[id]))
		}
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath != "" {
		values := make(map[string]string, len(results))
		for id, r := range results {
			values[id] = r.Value
		}
		if err := docio.Save(outPath, values); err != nil {
			return err
		}
	}
	return nil
}

// RunDeps loads a grid file and prints the direct dependencies and
// dependents of one cell.
func RunDeps(cmd *cobra.Command, args []string) error {
	cells, err := docio.Load(args[0])
	if err != nil {
		return err
	}

	s := sheet.New(eval.NewSpread())
	s.UpdateBatch(cells)

	id := canonical(args[1])
	preds, err := s.Predecessors(id)
	if err != nil {
		return err
	}
	succs, err := s.Successors(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s depends on: %s\n", id, orNone(preds))
	fmt.Fprintf(out, "%s feeds into: %s\n", id, orNone(succs))
	return nil
}

func formatResult(r sheet.CellValue) string {
	if r.Type == "" && r.Value == "" {
		return "<cleared>"
	}
	return strings.TrimSpace(r.Type + " " + r.Value)
}

func orNone(ids []string) string {
	if len(ids) == 0 {
		return "(nothing)"
	}
	return strings.Join(ids, ", ")
}
