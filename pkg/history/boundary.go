package history

import (
	"fmt"

	"github.com/matzehuels/seqline/pkg/diagram"
)

// Edge names a fragment boundary.
type Edge int

const (
	// TopEdge is the boundary between a fragment and the siblings above it.
	TopEdge Edge = iota
	// BottomEdge is the boundary between a fragment and the siblings below
	// it. With else-clauses present, the bottom edge belongs to the last
	// clause.
	BottomEdge
)

func (e Edge) String() string {
	if e == TopEdge {
		return "top"
	}
	return "bottom"
}

// MoveFragmentBoundary moves up to Count adjacent sibling messages across a
// fragment's top or bottom edge. Expand pulls siblings into the fragment;
// otherwise entries are pushed out into the parent list. The count is
// clamped to the run of messages touching the edge — the first
// non-message node (a declaration, directive, nested fragment) stops the
// move — so the command never absorbs a participant into a fragment, never
// produces a negative-length list and never panics.
type MoveFragmentBoundary struct {
	Base
	FragmentID string
	Edge       Edge
	Count      int
	Expand     bool

	applied bool
	moved   int
}

// NewMoveFragmentBoundary creates a boundary move command.
func NewMoveFragmentBoundary(fragmentID string, edge Edge, count int, expand bool) *MoveFragmentBoundary {
	return &MoveFragmentBoundary{FragmentID: fragmentID, Edge: edge, Count: count, Expand: expand}
}

// Apply moves the clamped number of nodes across the edge. An unknown
// fragment id is a no-op.
func (c *MoveFragmentBoundary) Apply(d diagram.Document) diagram.Document {
	c.applied = false
	c.moved = 0

	slot, idx, ok := locate(d, c.FragmentID)
	if !ok {
		return d
	}
	list, ok := entriesAt(d, slot)
	if !ok {
		return d
	}
	frag, ok := list[idx].(diagram.Fragment)
	if !ok {
		return d
	}
	count := c.Count
	if count < 0 {
		count = 0
	}

	var newList diagram.Nodes
	switch {
	case c.Edge == TopEdge && c.Expand:
		count = min(count, trailingMessages(list[:idx]))
		moved := list[idx-count : idx]
		frag.Entries = prepend(moved, frag.Entries)
		newList = splice(list, idx-count, idx+1, frag)

	case c.Edge == TopEdge && !c.Expand:
		count = min(count, leadingMessages(frag.Entries))
		moved := frag.Entries[:count]
		frag.Entries = tailCopy(frag.Entries, count)
		newList = spliceMany(list, idx, idx+1, append(cloneNodes(moved), frag))

	case c.Edge == BottomEdge && c.Expand:
		count = min(count, leadingMessages(list[idx+1:]))
		moved := list[idx+1 : idx+1+count]
		frag = appendToBottom(frag, moved)
		newList = splice(list, idx, idx+1+count, frag)

	default: // bottom edge, pushing entries out
		bottom := bottomEntries(frag)
		count = min(count, trailingMessages(bottom))
		moved := bottom[len(bottom)-count:]
		frag = trimBottom(frag, count)
		newList = spliceMany(list, idx, idx+1, append(diagram.Nodes{frag}, moved...))
	}

	out, ok := withEntries(d, slot, newList)
	if !ok {
		return d
	}
	c.applied = true
	c.moved = count
	return out
}

// Invert moves the same number of nodes back across the edge.
func (c *MoveFragmentBoundary) Invert(d diagram.Document) diagram.Document {
	if !c.applied {
		return d
	}
	reverse := &MoveFragmentBoundary{
		FragmentID: c.FragmentID,
		Edge:       c.Edge,
		Count:      c.moved,
		Expand:     !c.Expand,
	}
	return reverse.Apply(d)
}

func (c *MoveFragmentBoundary) Description() string {
	verb := "shrink"
	if c.Expand {
		verb = "grow"
	}
	return fmt.Sprintf("%s fragment across %s edge by %d", verb, c.Edge, c.Count)
}

// TransferClauseEntries moves up to Count entries between a fragment's
// primary entry list and one of its else-clauses, always from the boundary
// end nearest the other clause: the tail of the primary list faces the head
// of every else-clause. The count is clamped to availability.
type TransferClauseEntries struct {
	Base
	FragmentID string
	Clause     int
	Count      int
	// ToClause moves primary entries into the clause; otherwise clause
	// entries move back into the primary list.
	ToClause bool

	applied bool
	moved   int
}

// NewTransferClauseEntries creates a clause transfer command.
func NewTransferClauseEntries(fragmentID string, clause, count int, toClause bool) *TransferClauseEntries {
	return &TransferClauseEntries{FragmentID: fragmentID, Clause: clause, Count: count, ToClause: toClause}
}

// Apply transfers the clamped number of entries. An unknown fragment or
// clause index is a no-op.
func (c *TransferClauseEntries) Apply(d diagram.Document) diagram.Document {
	c.applied = false
	c.moved = 0

	nodes, ok := replaceNodeIn(d.Nodes, c.FragmentID, func(n diagram.Node) (diagram.Node, bool) {
		f, isFrag := n.(diagram.Fragment)
		if !isFrag || c.Clause < 0 || c.Clause >= len(f.Else) {
			return n, false
		}
		count := c.Count
		if count < 0 {
			count = 0
		}
		cls := make([]diagram.ElseClause, len(f.Else))
		copy(cls, f.Else)

		if c.ToClause {
			count = min(count, len(f.Entries))
			moved := f.Entries[len(f.Entries)-count:]
			f.Entries = headCopy(f.Entries, len(f.Entries)-count)
			cls[c.Clause].Entries = prepend(moved, cls[c.Clause].Entries)
		} else {
			count = min(count, len(cls[c.Clause].Entries))
			moved := cls[c.Clause].Entries[:count]
			cls[c.Clause].Entries = tailCopy(cls[c.Clause].Entries, count)
			f.Entries = append(cloneNodes(f.Entries), moved...)
		}
		f.Else = cls
		c.moved = count
		return f, true
	})
	if !ok {
		return d
	}
	c.applied = true
	return diagram.Document{Nodes: nodes}
}

// Invert transfers the same entries back.
func (c *TransferClauseEntries) Invert(d diagram.Document) diagram.Document {
	if !c.applied {
		return d
	}
	reverse := &TransferClauseEntries{
		FragmentID: c.FragmentID,
		Clause:     c.Clause,
		Count:      c.moved,
		ToClause:   !c.ToClause,
	}
	return reverse.Apply(d)
}

func (c *TransferClauseEntries) Description() string {
	direction := "out of"
	if c.ToClause {
		direction = "into"
	}
	return fmt.Sprintf("move %d entries %s else-clause %d", c.Count, direction, c.Clause)
}

// =============================================================================
// List helpers
// =============================================================================

func prepend(head, tail diagram.Nodes) diagram.Nodes {
	out := make(diagram.Nodes, 0, len(head)+len(tail))
	out = append(out, head...)
	return append(out, tail...)
}

// headCopy copies the first n elements into a fresh list.
func headCopy(nodes diagram.Nodes, n int) diagram.Nodes {
	out := make(diagram.Nodes, n)
	copy(out, nodes[:n])
	return out
}

// tailCopy copies everything after the first n elements into a fresh list.
func tailCopy(nodes diagram.Nodes, n int) diagram.Nodes {
	out := make(diagram.Nodes, len(nodes)-n)
	copy(out, nodes[n:])
	return out
}

// splice replaces nodes[from:to] with a single node.
func splice(nodes diagram.Nodes, from, to int, n diagram.Node) diagram.Nodes {
	return spliceMany(nodes, from, to, diagram.Nodes{n})
}

// spliceMany replaces nodes[from:to] with a replacement run.
func spliceMany(nodes diagram.Nodes, from, to int, replacement diagram.Nodes) diagram.Nodes {
	out := make(diagram.Nodes, 0, len(nodes)-(to-from)+len(replacement))
	out = append(out, nodes[:from]...)
	out = append(out, replacement...)
	return append(out, nodes[to:]...)
}

// leadingMessages counts the messages at the head of the list, stopping at
// the first node of any other type.
func leadingMessages(nodes diagram.Nodes) int {
	n := 0
	for _, node := range nodes {
		if _, ok := node.(diagram.Message); !ok {
			break
		}
		n++
	}
	return n
}

// trailingMessages counts the messages at the tail of the list.
func trailingMessages(nodes diagram.Nodes) int {
	n := 0
	for i := len(nodes) - 1; i >= 0; i-- {
		if _, ok := nodes[i].(diagram.Message); !ok {
			break
		}
		n++
	}
	return n
}

// bottomEntries returns the entry list owning the fragment's bottom edge:
// the last else-clause, or the primary list without clauses.
func bottomEntries(f diagram.Fragment) diagram.Nodes {
	if len(f.Else) > 0 {
		return f.Else[len(f.Else)-1].Entries
	}
	return f.Entries
}

func appendToBottom(f diagram.Fragment, moved diagram.Nodes) diagram.Fragment {
	if len(f.Else) > 0 {
		cls := make([]diagram.ElseClause, len(f.Else))
		copy(cls, f.Else)
		last := len(cls) - 1
		cls[last].Entries = append(cloneNodes(cls[last].Entries), moved...)
		f.Else = cls
		return f
	}
	f.Entries = append(cloneNodes(f.Entries), moved...)
	return f
}

func trimBottom(f diagram.Fragment, count int) diagram.Fragment {
	if len(f.Else) > 0 {
		cls := make([]diagram.ElseClause, len(f.Else))
		copy(cls, f.Else)
		last := len(cls) - 1
		cls[last].Entries = headCopy(cls[last].Entries, len(cls[last].Entries)-count)
		f.Else = cls
		return f
	}
	f.Entries = headCopy(f.Entries, len(f.Entries)-count)
	return f
}
