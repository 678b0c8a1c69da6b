// Package docio round-trips sheet documents as tab-separated grids:
// the cell at row r, column c of the file holds the raw source text of
// the cell the engine knows as Identify(r, c). the engine itself never
// touches files; this is the document I/O collaborator around it.
package docio

import (
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/stencila/sheet"
)

// Load reads a grid file into a map from cell id to source text.
// empty fields produce no entry.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cells := make(map[string]string)
	lines := strings.Split(string(data), "\n")
	for r, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		for c, field := range strings.Split(line, "\t") {
			if strings.TrimSpace(field) == "" {
				continue
			}
			cells[sheet.Identify(uint32(r), uint32(c))] = field
		}
	}
	return cells, nil
}

// Save writes a map from cell id to text as a tab-separated grid. the
// write is atomic so an interrupted save never truncates the document.
// tabs and newlines cannot be represented inside a field and are
// rejected.
func Save(path string, cells map[string]string) error {
	var maxRow, maxCol uint32
	byCoord := make(map[[2]uint32]string, len(cells))
	for id, text := range cells {
		row, col, err := sheet.Index(id)
		if err != nil {
			return err
		}
		if strings.ContainsAny(text, "\t\n") {
			return fmt.Errorf("cell %s: tabs and newlines are not representable", id)
		}
		byCoord[[2]uint32{row, col}] = text
		if row > maxRow {
			maxRow = row
		}
		if col > maxCol {
			maxCol = col
		}
	}

	var b strings.Builder
	for row := uint32(0); row <= maxRow; row++ {
		fields := make([]string, maxCol+1)
		for col := uint32(0); col <= maxCol; col++ {
			fields[col] = byCoord[[2]uint32{row, col}]
		}
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteString("\n")
	}

	return atomic.WriteFile(path, strings.NewReader(b.String()))
}
