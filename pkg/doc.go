// Package pkg provides the core libraries for Seqline sequence diagram
// editing.
//
// # Overview
//
// Seqline turns line-oriented sequence diagram source into a structural
// document, computes deterministic geometry for it, and supports undoable
// edits over it. The pkg directory is organized into five main areas:
//
//  1. [diagram] - The document model (node variants, ids, JSON encoding)
//  2. [parser] - Total line-oriented parsing with per-line error recovery
//  3. [layout] - Pure geometry computation over a document
//  4. [history] - Invertible edit commands and bounded undo/redo stacks
//  5. [writer] - Canonical source serialization (the parser's inverse)
//
// # Architecture
//
// The typical data flow through Seqline:
//
//	Diagram source text
//	         ↓
//	    [parser] package (source → document, errors become nodes)
//	         ↓
//	    [diagram] package (immutable document model)
//	     ↓        ↓
//	 [layout]  [history] (geometry / undoable edits)
//	         ↓
//	    [writer] package (document → canonical source)
//
// # Quick Start
//
// Parse a diagram, lay it out, and apply an undoable edit:
//
//	import (
//	    "github.com/matzehuels/seqline/pkg/history"
//	    "github.com/matzehuels/seqline/pkg/layout"
//	    "github.com/matzehuels/seqline/pkg/parser"
//	    "github.com/matzehuels/seqline/pkg/writer"
//	)
//
//	// 1. Parse (never fails; bad lines become error nodes)
//	doc := parser.Parse(src)
//
//	// 2. Compute geometry
//	result := layout.Compute(doc, layout.DefaultConfig())
//
//	// 3. Edit with undo support
//	h := history.NewHistory(0)
//	doc = h.Execute(history.NewSetLabel(msgID, "hello"), doc)
//	doc = h.Undo(doc)
//
//	// 4. Serialize back to canonical source
//	src = writer.Marshal(doc)
//
// # Main Packages
//
// [diagram] - The document model: one value type per node kind (participant,
// message, fragment, note, divider, directive, comment, blank, error) behind
// the [diagram.Node] interface, plus document traversal, equality, and the
// tagged JSON encoding.
//
// [parser] - Line-oriented parsing. Every input line produces at least one
// node; unrecognized lines become error nodes that carry the raw source, so
// a typo never loses the rest of the diagram. Fragments left open at end of
// input are closed best-effort and reported.
//
// [layout] - Deterministic geometry: a horizontal pass places lifelines with
// collision- and content-aware gaps, then a vertical pass advances a single
// cursor over messages, notes, dividers, fragments, and spacing directives.
// Spacing constants live in [layout.Config] and can be loaded from TOML.
//
// [history] - Edit commands over documents. Every command is invertible:
// applying a command and then its inverse restores the previous document
// exactly. The [history.History] type keeps bounded undo and redo stacks.
//
// [writer] - Serializes a document back to canonical source text. Together
// with the parser it forms a round trip: parsing the writer's output yields
// an equivalent document.
package pkg
