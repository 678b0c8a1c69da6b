package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/stencila/sheet"
	"github.com/stencila/sheet/eval"
	"github.com/stencila/sheet/internal/docio"
)

// RunRepl starts an interactive session, optionally seeded from a
// grid file given as the first argument.
func RunRepl(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	s := sheet.New(eval.NewSpread())
	if len(args) == 1 {
		cells, err := docio.Load(args[0])
		if err != nil {
			return err
		}
		s.UpdateBatch(cells)
	}

	r := &repl{
		sheet:   s,
		out:     cmd.OutOrStdout(),
		history: cfg.historyFile(),
	}
	return r.run()
}

type repl struct {
	sheet   *sheet.Sheet
	out     io.Writer
	history string
	line    *liner.State
}

func (r *repl) run() error {
	r.line = liner.NewLiner()
	defer r.line.Close()

	r.line.SetCtrlCAborts(true)
	r.line.SetCompleter(r.complete)

	if f, err := os.Open(r.history); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintln(r.out, "sheet - reactive cell calculator")
	fmt.Fprintln(r.out, "Type 'help' for available commands.")

	for {
		input, err := r.line.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.line.AppendHistory(input)
		if input == "quit" || input == "exit" {
			break
		}
		r.dispatch(input)
	}

	if r.history != "" {
		if f, err := os.Create(r.history); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}

// canonical upper-cases cell ids; names pass through as written
func canonical(id string) string {
	if row, col, err := sheet.Index(id); err == nil {
		return sheet.Identify(row, col)
	}
	return id
}

func (r *repl) complete(line string) []string {
	var completions []string
	for _, cmd := range []string{"set ", "get ", "clear ", "deps ", "list", "order", "extent", "help", "quit"} {
		if strings.HasPrefix(cmd, strings.ToLower(line)) {
			completions = append(completions, cmd)
		}
	}
	return completions
}

func (r *repl) dispatch(input string) {
	fields := strings.SplitN(input, " ", 3)
	switch fields[0] {
	case "set":
		if len(fields) < 3 {
			fmt.Fprintln(r.out, "usage: set ID SOURCE")
			return
		}
		results := r.sheet.Update(fields[1], fields[2])
		for _, id := range sortedResultIDs(results) {
			fmt.Fprintf(r.out, "%s\t%s\n", id, formatResult(results[id]))
		}

	case "get":
		if len(fields) != 2 {
			fmt.Fprintln(r.out, "usage: get ID")
			return
		}
		id := canonical(fields[1])
		cell, exists := r.sheet.Cell(id)
		if !exists {
			fmt.Fprintf(r.out, "%s\t<empty>\n", id)
			return
		}
		fmt.Fprintf(r.out, "%s\t%s\n", cell.ID, strings.TrimSpace(cell.ValueType+" "+cell.Value))

	case "clear":
		if len(fields) != 2 {
			fmt.Fprintln(r.out, "usage: clear ID")
			return
		}
		if err := r.sheet.Clear(fields[1]); err != nil {
			fmt.Fprintln(r.out, err.Error())
		}

	case "deps":
		if len(fields) != 2 {
			fmt.Fprintln(r.out, "usage: deps ID")
			return
		}
		id := canonical(fields[1])
		preds, err := r.sheet.Predecessors(id)
		if err != nil {
			fmt.Fprintln(r.out, err.Error())
			return
		}
		succs, _ := r.sheet.Successors(id)
		fmt.Fprintf(r.out, "depends on: %s\n", orNone(preds))
		fmt.Fprintf(r.out, "feeds into: %s\n", orNone(succs))

	case "list":
		listing := r.sheet.List()
		keys := make([]string, 0, len(listing))
		for k := range listing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(r.out, "%s\t%s\n", k, listing[k])
		}

	case "order":
		fmt.Fprintln(r.out, strings.Join(r.sheet.Order(), " "))

	case "extent":
		rows, cols := r.sheet.Extent()
		fmt.Fprintf(r.out, "%d rows x %d cols\n", rows+1, cols+1)

	case "help":
		fmt.Fprintln(r.out, "commands:")
		fmt.Fprintln(r.out, "  set ID SOURCE   edit a cell and recalculate")
		fmt.Fprintln(r.out, "  get ID          show a cell's value")
		fmt.Fprintln(r.out, "  clear ID        remove a cell")
		fmt.Fprintln(r.out, "  deps ID         show dependencies and dependents")
		fmt.Fprintln(r.out, "  list            show all cells and names")
		fmt.Fprintln(r.out, "  order           show the calculation order")
		fmt.Fprintln(r.out, "  extent          show the grid extent")
		fmt.Fprintln(r.out, "  quit            leave")

	default:
		fmt.Fprintf(r.out, "unknown command %q, try 'help'\n", fields[0])
	}
}
