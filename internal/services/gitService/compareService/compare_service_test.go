package compareService

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	previous := Revision{Name: "main.go", Rev: "1a2b3c4d"}
	current := Revision{Name: "main.go", Rev: "5e6f7a8b"}

	assert.Equal(t, "main.go (1a2b3c4d)", previous.Label())
	assert.Equal(t, "main.go (1a2b3c4d) ↔ main.go (5e6f7a8b)", Title(previous, current))
}

func TestAlignRowsContextChangedAdded(t *testing.T) {
	rows := AlignRows("a\nb\nc\n", "a\nB\nc\nd\n")

	require.Len(t, rows, 4)

	assert.Equal(t, RowContext, rows[0].Kind)
	assert.Equal(t, "a", rows[0].Left)
	assert.Equal(t, 1, rows[0].LeftNum)
	assert.Equal(t, 1, rows[0].RightNum)

	assert.Equal(t, RowChanged, rows[1].Kind)
	assert.Equal(t, "b", rows[1].Left)
	assert.Equal(t, "B", rows[1].Right)
	assert.Equal(t, 2, rows[1].LeftNum)
	assert.Equal(t, 2, rows[1].RightNum)

	assert.Equal(t, RowContext, rows[2].Kind)
	assert.Equal(t, "c", rows[2].Left)

	assert.Equal(t, RowAdded, rows[3].Kind)
	assert.Equal(t, "d", rows[3].Right)
	assert.Equal(t, 0, rows[3].LeftNum)
	assert.Equal(t, 4, rows[3].RightNum)
}

func TestAlignRowsRemoved(t *testing.T) {
	rows := AlignRows("a\nb\nc\n", "a\nc\n")

	require.Len(t, rows, 3)
	assert.Equal(t, RowContext, rows[0].Kind)
	assert.Equal(t, RowRemoved, rows[1].Kind)
	assert.Equal(t, "b", rows[1].Left)
	assert.Equal(t, 2, rows[1].LeftNum)
	assert.Equal(t, 0, rows[1].RightNum)
	assert.Equal(t, RowContext, rows[2].Kind)
	assert.Equal(t, 2, rows[2].RightNum)
}

func TestAlignRowsUnbalancedReplacement(t *testing.T) {
	// Two removed lines replaced by one: the first pair is changed, the
	// surplus left line becomes a plain removal.
	rows := AlignRows("x\ny\n", "z\n")

	require.Len(t, rows, 2)
	assert.Equal(t, RowChanged, rows[0].Kind)
	assert.Equal(t, "x", rows[0].Left)
	assert.Equal(t, "z", rows[0].Right)
	assert.Equal(t, RowRemoved, rows[1].Kind)
	assert.Equal(t, "y", rows[1].Left)
}

func TestAlignRowsIdenticalContent(t *testing.T) {
	rows := AlignRows("a\nb\n", "a\nb\n")

	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, RowContext, row.Kind)
		assert.Equal(t, row.Left, row.Right)
	}
}

func TestViewerRunWithoutStagedDiffIsNoOp(t *testing.T) {
	viewer := NewViewer()

	assert.False(t, viewer.Staged())
	assert.NoError(t, viewer.Run())
}

func TestViewerRevealBeforeShowFails(t *testing.T) {
	viewer := NewViewer()

	assert.Error(t, viewer.RevealLine(3))
}

func TestViewerPlainRender(t *testing.T) {
	var buf bytes.Buffer
	viewer := NewViewer()

	previous := Revision{Name: "f.txt", Rev: "c1c1c1c1", Content: "one\ntwo\n"}
	current := Revision{Name: "f.txt", Rev: "c2c2c2c2", Content: "one\nTWO\nthree\n"}
	opts := ViewOptions{Plain: true, Writer: &buf}

	require.NoError(t, viewer.ShowDiff(previous, current, Title(previous, current), opts))
	require.NoError(t, viewer.RevealLine(2))
	assert.True(t, viewer.Staged())
	require.NoError(t, viewer.Run())

	out := buf.String()
	assert.Contains(t, out, "f.txt (c1c1c1c1) ↔ f.txt (c2c2c2c2)")
	assert.Contains(t, out, "-two")
	assert.Contains(t, out, "+TWO")
	assert.Contains(t, out, "+three")

	var caretLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "▶") {
			caretLine = line
		}
	}
	require.NotEmpty(t, caretLine, "expected a caret marker on the revealed line")
	assert.Contains(t, caretLine, "TWO")

	// Rendering consumes the staged diff.
	assert.False(t, viewer.Staged())
	buf.Reset()
	require.NoError(t, viewer.Run())
	assert.Empty(t, buf.String())
}
