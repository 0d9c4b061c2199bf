package history

import "github.com/matzehuels/seqline/pkg/diagram"

// Slot names a node list inside a document: the top level, a fragment's
// primary entries, or one of its else-clauses.
type Slot struct {
	// FragmentID selects a fragment; empty means the document top level.
	FragmentID string
	// Clause selects an else-clause by index; PrimaryEntries selects the
	// fragment's primary entry list. Ignored at top level.
	Clause int
}

// PrimaryEntries is the Clause value naming a fragment's primary entry list.
const PrimaryEntries = -1

// TopLevel is the slot for the document's own node list.
var TopLevel = Slot{Clause: PrimaryEntries}

// entriesAt returns the node list the slot names.
func entriesAt(d diagram.Document, slot Slot) (diagram.Nodes, bool) {
	if slot.FragmentID == "" {
		return d.Nodes, true
	}
	n, ok := d.FindNode(slot.FragmentID)
	if !ok {
		return nil, false
	}
	f, ok := n.(diagram.Fragment)
	if !ok {
		return nil, false
	}
	if slot.Clause == PrimaryEntries {
		return f.Entries, true
	}
	if slot.Clause < 0 || slot.Clause >= len(f.Else) {
		return nil, false
	}
	return f.Else[slot.Clause].Entries, true
}

// withEntries returns a new document with the list at slot replaced,
// rebuilding only the path from the root to the slot. Unrelated subtrees
// are shared with the input document.
func withEntries(d diagram.Document, slot Slot, entries diagram.Nodes) (diagram.Document, bool) {
	if slot.FragmentID == "" {
		return diagram.Document{Nodes: entries}, true
	}
	nodes, ok := replaceNodeIn(d.Nodes, slot.FragmentID, func(n diagram.Node) (diagram.Node, bool) {
		f, isFrag := n.(diagram.Fragment)
		if !isFrag {
			return n, false
		}
		if slot.Clause == PrimaryEntries {
			f.Entries = entries
			return f, true
		}
		if slot.Clause < 0 || slot.Clause >= len(f.Else) {
			return n, false
		}
		cls := make([]diagram.ElseClause, len(f.Else))
		copy(cls, f.Else)
		cls[slot.Clause].Entries = entries
		f.Else = cls
		return f, true
	})
	if !ok {
		return d, false
	}
	return diagram.Document{Nodes: nodes}, true
}

// replaceNodeIn rewrites the node with the given id anywhere in the tree,
// copying only the lists on the path to it. fn reports whether it actually
// changed the node.
func replaceNodeIn(nodes diagram.Nodes, id string, fn func(diagram.Node) (diagram.Node, bool)) (diagram.Nodes, bool) {
	for i, n := range nodes {
		if n.ID() == id {
			replacement, changed := fn(n)
			if !changed {
				return nodes, false
			}
			out := cloneNodes(nodes)
			out[i] = replacement
			return out, true
		}
		f, isFrag := n.(diagram.Fragment)
		if !isFrag {
			continue
		}
		if entries, ok := replaceNodeIn(f.Entries, id, fn); ok {
			f.Entries = entries
			out := cloneNodes(nodes)
			out[i] = f
			return out, true
		}
		for ci, c := range f.Else {
			entries, ok := replaceNodeIn(c.Entries, id, fn)
			if !ok {
				continue
			}
			cls := make([]diagram.ElseClause, len(f.Else))
			copy(cls, f.Else)
			cls[ci].Entries = entries
			f.Else = cls
			out := cloneNodes(nodes)
			out[i] = f
			return out, true
		}
	}
	return nodes, false
}

// locate finds the list containing the node with the given id and its index
// within that list.
func locate(d diagram.Document, id string) (Slot, int, bool) {
	for i, n := range d.Nodes {
		if n.ID() == id {
			return TopLevel, i, true
		}
	}
	var (
		slot  Slot
		index int
		found bool
	)
	d.Walk(func(n diagram.Node) bool {
		f, ok := n.(diagram.Fragment)
		if !ok {
			return true
		}
		for i, entry := range f.Entries {
			if entry.ID() == id {
				slot, index, found = Slot{FragmentID: f.ID(), Clause: PrimaryEntries}, i, true
				return false
			}
		}
		for ci, c := range f.Else {
			for i, entry := range c.Entries {
				if entry.ID() == id {
					slot, index, found = Slot{FragmentID: f.ID(), Clause: ci}, i, true
					return false
				}
			}
		}
		return true
	})
	return slot, index, found
}

func cloneNodes(nodes diagram.Nodes) diagram.Nodes {
	out := make(diagram.Nodes, len(nodes))
	copy(out, nodes)
	return out
}

// insertAt returns a new list with n inserted at index, clamped to the
// valid range.
func insertAt(nodes diagram.Nodes, index int, n diagram.Node) (diagram.Nodes, int) {
	if index < 0 {
		index = 0
	}
	if index > len(nodes) {
		index = len(nodes)
	}
	out := make(diagram.Nodes, 0, len(nodes)+1)
	out = append(out, nodes[:index]...)
	out = append(out, n)
	out = append(out, nodes[index:]...)
	return out, index
}

// removeAt returns a new list without the node at index.
func removeAt(nodes diagram.Nodes, index int) diagram.Nodes {
	out := make(diagram.Nodes, 0, len(nodes)-1)
	out = append(out, nodes[:index]...)
	out = append(out, nodes[index+1:]...)
	return out
}
