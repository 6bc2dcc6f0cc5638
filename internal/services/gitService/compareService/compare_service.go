package compareService

import (
	"fmt"
	"io"
	"os"
)

// Revision is one side of a comparison: a display name (file basename),
// a short revision label, and the file content at that revision.
type Revision struct {
	Name    string
	Rev     string
	Content string
}

// Label renders the revision as shown in diff titles, e.g. "main.go (1a2b3c4d)".
func (r Revision) Label() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.Rev)
}

// Title composes the two-pane diff title, previous side first.
func Title(previous, current Revision) string {
	return fmt.Sprintf("%s ↔ %s", previous.Label(), current.Label())
}

// ViewOptions controls how a diff is presented.
type ViewOptions struct {
	// Plain renders a non-interactive side-by-side listing instead of the TUI.
	Plain bool
	// Writer receives plain output. Defaults to stdout.
	Writer io.Writer
}

type pendingDiff struct {
	previous Revision
	current  Revision
	title    string
	opts     ViewOptions
	reveal   int
}

// Viewer presents two-pane diffs. ShowDiff and RevealLine stage the view;
// Run renders it, so a caller can finish deciding what to show before any
// output happens.
type Viewer struct {
	pending *pendingDiff
}

func NewViewer() *Viewer {
	return &Viewer{}
}

// ShowDiff stages a side-by-side comparison, previous revision on the left.
func (v *Viewer) ShowDiff(previous, current Revision, title string, opts ViewOptions) error {
	v.pending = &pendingDiff{
		previous: previous,
		current:  current,
		title:    title,
		opts:     opts,
	}
	return nil
}

// RevealLine moves the caret to the given 1-based line of the current/right
// pane. Best effort: the paired-viewport layout cannot focus the
// previous/left pane, so reveals always target the right side.
func (v *Viewer) RevealLine(line int) error {
	if v.pending == nil {
		return fmt.Errorf("no diff staged")
	}
	v.pending.reveal = line
	return nil
}

// Staged reports whether a diff is waiting to be rendered.
func (v *Viewer) Staged() bool {
	return v.pending != nil
}

// Run renders the staged diff and clears it. Calling Run with nothing
// staged is a no-op.
func (v *Viewer) Run() error {
	if v.pending == nil {
		return nil
	}
	d := *v.pending
	v.pending = nil

	rows := AlignRows(d.previous.Content, d.current.Content)

	if d.opts.Plain {
		w := d.opts.Writer
		if w == nil {
			w = os.Stdout
		}
		renderPlain(w, d, rows)
		return nil
	}

	return runDiffViewer(d, rows)
}

// renderPlain writes an aligned two-column listing. The reveal line, when
// set, is marked with a caret in the right column.
func renderPlain(w io.Writer, d pendingDiff, rows []Row) {
	fmt.Fprintln(w, d.title)
	fmt.Fprintln(w)

	leftWidth := 0
	for _, row := range rows {
		if len(row.Left) > leftWidth {
			leftWidth = len(row.Left)
		}
	}
	if leftWidth > 64 {
		leftWidth = 64
	}

	for _, row := range rows {
		caret := " "
		if d.reveal > 0 && row.RightNum == d.reveal {
			caret = "▶"
		}

		leftMark, rightMark := " ", " "
		switch row.Kind {
		case RowChanged:
			leftMark, rightMark = "-", "+"
		case RowRemoved:
			leftMark = "-"
		case RowAdded:
			rightMark = "+"
		}

		left := row.Left
		if len(left) > leftWidth {
			left = left[:leftWidth]
		}

		fmt.Fprintf(w, "%s%4s %s%-*s │ %4s %s%s\n",
			caret,
			lineNum(row.LeftNum), leftMark, leftWidth, left,
			lineNum(row.RightNum), rightMark, row.Right)
	}
}

func lineNum(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
