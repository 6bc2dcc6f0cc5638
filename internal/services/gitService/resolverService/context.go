package resolverService

import (
	"os"
)

// ContextKind identifies where an invocation came from. The set is closed:
// dispatch switches on the kind, never on the shape of the payload.
type ContextKind int

const (
	// ContextDefault is an invocation with no explicit target; the active
	// editor's document is used when one exists.
	ContextDefault ContextKind = iota
	// ContextEditor carries an active editor document and caret position.
	ContextEditor
	// ContextNode targets a single file picked from a tree or list.
	ContextNode
	// ContextSelection targets the first file of a multi-file selection.
	ContextSelection
	// ContextGroup is a group-level selection with no single file to diff.
	ContextGroup
)

// Editor is the active document an invocation may have originated from.
type Editor struct {
	Path      string
	CaretLine int
}

// InvocationContext is a tagged variant over the places a comparison can be
// requested from.
type InvocationContext struct {
	Kind   ContextKind
	Editor *Editor
	Path   string
	Paths  []string
}

func DefaultContext() InvocationContext {
	return InvocationContext{Kind: ContextDefault}
}

func EditorContext(editor Editor, path string) InvocationContext {
	return InvocationContext{Kind: ContextEditor, Editor: &editor, Path: path}
}

func NodeContext(path string) InvocationContext {
	return InvocationContext{Kind: ContextNode, Path: path}
}

func SelectionContext(paths ...string) InvocationContext {
	return InvocationContext{Kind: ContextSelection, Paths: paths}
}

func GroupContext() InvocationContext {
	return InvocationContext{Kind: ContextGroup}
}

// ContextFromArgs maps CLI positional arguments onto an invocation context:
// no arguments is the default context, one file is a node, several files are
// a selection, and a directory is a group (which has no single file to diff).
func ContextFromArgs(args []string) InvocationContext {
	switch len(args) {
	case 0:
		return DefaultContext()
	case 1:
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			return GroupContext()
		}
		return NodeContext(args[0])
	default:
		return SelectionContext(args...)
	}
}
