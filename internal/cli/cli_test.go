package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencila/sheet"
)

func writeGrid(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestCellListSet(t *testing.T) {
	var c cellList
	require.NoError(t, c.Set("a1, B2"))
	require.NoError(t, c.Set("c3"))
	assert.Equal(t, []string{"A1", "B2", "C3"}, c.ids)
	assert.Equal(t, "A1,B2,C3", c.String())
	assert.Equal(t, "cells", c.Type())

	require.Error(t, c.Set("1A"))
}

func TestSortedResultIDs(t *testing.T) {
	results := map[string]sheet.CellValue{
		"A2":  {},
		"AA1": {},
		"B1":  {},
	}
	assert.Equal(t, []string{"B1", "AA1", "A2"}, sortedResultIDs(results))
}

func TestCalcCommand(t *testing.T) {
	path := writeGrid(t, "1\t= A1 + 1\n")
	out := runCommand(t, "calc", path)
	assert.Contains(t, out, "A1\tnumber 1\n")
	assert.Contains(t, out, "B1\tnumber 2\n")
}

func TestCalcCommandShow(t *testing.T) {
	path := writeGrid(t, "1\t= A1 + 1\n")
	out := runCommand(t, "calc", path, "--show", "b1")
	assert.Equal(t, "B1\tnumber 2\n", out)
}

func TestCalcCommandOut(t *testing.T) {
	path := writeGrid(t, "2\t= A1 * A1\n")
	outPath := filepath.Join(t.TempDir(), "values.tsv")
	runCommand(t, "calc", path, "--out", outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "2\t4\n", string(data))
}

func TestDepsCommand(t *testing.T) {
	path := writeGrid(t, "1\t= A1 + 1\t= B1 * 2\n")
	out := runCommand(t, "deps", path, "b1")
	assert.Contains(t, out, "B1 depends on: A1\n")
	assert.Contains(t, out, "B1 feeds into: C1\n")
}

func TestVersionCommand(t *testing.T) {
	out := runCommand(t, "version")
	assert.Equal(t, "test\n", out)
}
