// Package cli wires the sheet engine, the eval backend and the
// document I/O layer into the command tree behind the sheet binary.
package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stencila/sheet"
)

// NewRootCommand builds the full command tree
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheet",
		Short: "Reactive calculation over tab-separated cell grids",
		Long: `Sheet loads a tab-separated grid of cell expressions, tracks the
dependencies between cells and recalculates exactly the cells affected
by an edit, in dependency order. Cells reference each other by address
(A1, BD45), by range (A1:A3), by union (A1&B2) or by assigned name
(radius = 3).`,
		SilenceUsage: true,
	}

	calcCmd := &cobra.Command{
		Use:   "calc FILE",
		Short: "Recalculate a grid file and print the results",
		Args:  cobra.ExactArgs(1),
		RunE:  RunCalc,
	}
	calcCmd.Flags().String("out", "", "Write computed values back to this file")
	calcCmd.Flags().Var(&cellList{}, "show", "Only print these cells (comma-separated ids)")

	replCmd := &cobra.Command{
		Use:   "repl [FILE]",
		Short: "Interactive session, optionally seeded from a grid file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunRepl,
	}

	depsCmd := &cobra.Command{
		Use:   "deps FILE ID",
		Short: "Show what a cell depends on and what depends on it",
		Args:  cobra.ExactArgs(2),
		RunE:  RunDeps,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the sheet version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	rootCmd.AddCommand(calcCmd, replCmd, depsCmd, versionCmd)
	return rootCmd
}

// cellList is a pflag.Value accepting a comma-separated list of cell
// ids, canonicalized and validated as they are parsed.
type cellList struct {
	ids []string
}

var _ pflag.Value = (*cellList)(nil)

func (c *cellList) String() string {
	return strings.Join(c.ids, ",")
}

func (c *cellList) Set(value string) error {
	for _, tok := range strings.Split(value, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		row, col, err := sheet.Index(tok)
		if err != nil {
			return err
		}
		c.ids = append(c.ids, sheet.Identify(row, col))
	}
	return nil
}

func (c *cellList) Type() string {
	return "cells"
}

// sortedResultIDs orders a result map for stable output: cells by
// position, not lexically (A2 before AA1).
func sortedResultIDs(results map[string]sheet.CellValue) []string {
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ri, ci, erri := sheet.Index(ids[i])
		rj, cj, errj := sheet.Index(ids[j])
		if erri != nil || errj != nil {
			return ids[i] < ids[j]
		}
		if ri != rj {
			return ri < rj
		}
		return ci < cj
	})
	return ids
}
