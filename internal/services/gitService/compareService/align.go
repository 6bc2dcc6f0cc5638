package compareService

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type RowKind int

const (
	RowContext RowKind = iota
	RowChanged
	RowAdded
	RowRemoved
)

// Row is one aligned line pair in a side-by-side diff. A zero line number
// means that side has no line for this row.
type Row struct {
	Kind     RowKind
	LeftNum  int
	RightNum int
	Left     string
	Right    string
}

// AlignRows computes a line-level diff of the two contents and pairs the
// results into side-by-side rows. A deletion directly followed by an
// insertion is paired line-for-line as changed rows.
func AlignRows(previous, current string) []Row {
	dmp := diffmatchpatch.New()
	prevChars, currChars, lineIndex := dmp.DiffLinesToChars(previous, current)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(prevChars, currChars, false), lineIndex)

	var rows []Row
	leftNum, rightNum := 1, 1

	for i := 0; i < len(diffs); i++ {
		lines := splitLines(diffs[i].Text)

		switch diffs[i].Type {
		case diffmatchpatch.DiffEqual:
			for _, line := range lines {
				rows = append(rows, Row{Kind: RowContext, LeftNum: leftNum, RightNum: rightNum, Left: line, Right: line})
				leftNum++
				rightNum++
			}

		case diffmatchpatch.DiffDelete:
			// Pair with an immediately following insertion when present.
			var added []string
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				added = splitLines(diffs[i+1].Text)
				i++
			}

			paired := len(lines)
			if len(added) < paired {
				paired = len(added)
			}

			for j := 0; j < paired; j++ {
				rows = append(rows, Row{Kind: RowChanged, LeftNum: leftNum, RightNum: rightNum, Left: lines[j], Right: added[j]})
				leftNum++
				rightNum++
			}
			for _, line := range lines[paired:] {
				rows = append(rows, Row{Kind: RowRemoved, LeftNum: leftNum, Left: line})
				leftNum++
			}
			for _, line := range added[paired:] {
				rows = append(rows, Row{Kind: RowAdded, RightNum: rightNum, Right: line})
				rightNum++
			}

		case diffmatchpatch.DiffInsert:
			for _, line := range lines {
				rows = append(rows, Row{Kind: RowAdded, RightNum: rightNum, Right: line})
				rightNum++
			}
		}
	}

	return rows
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
