package sheet

import (
	"regexp"
	"strconv"
	"strings"
)

// cellIDPattern validates canonical cell identifiers: one or more letters
// followed by one or more digits. letters are accepted case-insensitively
// on input but canonical ids are always upper case.
var cellIDPattern = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)

// IdentifyRow converts a zero-based row index to its display form.
// row 0 -> "1", row 44 -> "45"
func IdentifyRow(row uint32) string {
	return strconv.FormatUint(uint64(row)+1, 10)
}

// IdentifyCol converts a zero-based column index to the spreadsheet
// column letters. this is the bijective base-26 scheme where the digits
// run 1..26 ('A'..'Z') and no letter stands for zero:
// col 0 -> "A", col 25 -> "Z", col 26 -> "AA", col 701 -> "ZZ",
// col 702 -> "AAA". a plain base-26 conversion with a zero digit is
// wrong for every multi-letter column.
func IdentifyCol(col uint32) string {
	n := int64(col)
	var letters []byte
	for n >= 0 {
		letters = append(letters, byte('A'+n%26))
		n = n/26 - 1
	}

	// emitted least-significant first
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}

// Identify converts zero-based (row, col) coordinates to a canonical
// cell id. Identify(44, 55) -> "BD45"
func Identify(row, col uint32) string {
	return IdentifyCol(col) + IdentifyRow(row)
}

// IndexRow converts a row display string back to its zero-based index
func IndexRow(row string) (uint32, error) {
	n, err := strconv.ParseUint(row, 10, 32)
	if err != nil || n == 0 {
		return 0, newError(CodeMalformedAddress, "malformed row %q", row)
	}
	return uint32(n - 1), nil
}

// IndexCol converts column letters back to a zero-based column index
func IndexCol(col string) (uint32, error) {
	if col == "" {
		return 0, newError(CodeMalformedAddress, "malformed column %q", col)
	}
	var n uint64
	for _, c := range strings.ToUpper(col) {
		if c < 'A' || c > 'Z' {
			return 0, newError(CodeMalformedAddress, "malformed column %q", col)
		}
		n = n*26 + uint64(c-'A'+1)
		if n > 1<<32 {
			return 0, newError(CodeMalformedAddress, "column %q out of range", col)
		}
	}
	return uint32(n - 1), nil
}

// Index parses a cell id into zero-based (row, col) coordinates. it is
// the exact inverse of Identify. ids that do not match the
// letters-then-digits pattern are rejected.
func Index(id string) (row, col uint32, err error) {
	m := cellIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, 0, newError(CodeMalformedAddress, "malformed cell id %q", id)
	}
	col, err = IndexCol(m[1])
	if err != nil {
		return 0, 0, err
	}
	row, err = IndexRow(m[2])
	if err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

// IsCellID reports whether s is a canonical (upper case) cell id
func IsCellID(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(s) {
		return false
	}
	for j := i; j < len(s); j++ {
		if s[j] < '0' || s[j] > '9' {
			return false
		}
	}
	return true
}

// Interpolate enumerates every cell id in the closed rectangle spanned
// by (row1, col1) and (row2, col2), row-major. the corners may be given
// in any order.
func Interpolate(col1, row1, col2, row2 uint32) []string {
	if row2 < row1 {
		row1, row2 = row2, row1
	}
	if col2 < col1 {
		col1, col2 = col2, col1
	}

	ids := make([]string, 0, (row2-row1+1)*(col2-col1+1))
	for row := row1; row <= row2; row++ {
		for col := col1; col <= col2; col++ {
			ids = append(ids, Identify(row, col))
		}
	}
	return ids
}

// interpolateIDs expands the rectangle spanned by two cell ids.
// both ids must already be validated.
func interpolateIDs(from, to string) ([]string, error) {
	row1, col1, err := Index(from)
	if err != nil {
		return nil, err
	}
	row2, col2, err := Index(to)
	if err != nil {
		return nil, err
	}
	return Interpolate(col1, row1, col2, row2), nil
}
