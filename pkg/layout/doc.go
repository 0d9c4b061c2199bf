// Package layout computes deterministic 2D geometry for a parsed diagram.
//
// # Overview
//
// [Compute] is a pure function from a [diagram.Document] (plus a [Config])
// to a [Result]: a map from node id to bounding box, the ordered
// participant placement, and the total diagram size. Calling it twice on
// the same document yields identical geometry.
//
// The engine makes one left-to-right pass to place participants, preceded
// by a scan that sizes each inter-participant gap to fit the widest note or
// adjacent-pair message label that must render inside it, then one
// top-to-bottom pass over the document in which a single vertical cursor
// advances by each node's height contribution.
//
// # Text measurement
//
// Widths are a character-cell heuristic, not font metrics: text is measured
// in display cells (mattn/go-runewidth) and scaled by [Config.CharWidth].
// That keeps layout deterministic and dependency-free of any
// rendering surface; pixel-accurate typography is a renderer concern.
//
// # Reference errors
//
// A message naming an undeclared participant still lays out: the unknown
// endpoint is centered on the diagram and the box is flagged UnknownFrom /
// UnknownTo so a renderer can present it distinctly. Nothing in this
// package fails on malformed documents.
package layout
