package history

import (
	"fmt"

	"github.com/matzehuels/seqline/pkg/diagram"
)

// InsertNode inserts a node into the list named by Slot at Index (clamped
// to the list bounds). Use [NewInsertNode].
type InsertNode struct {
	Base
	Slot  Slot
	Index int
	Node  diagram.Node

	applied bool
	at      int
}

// NewInsertNode creates an insert command.
func NewInsertNode(slot Slot, index int, n diagram.Node) *InsertNode {
	return &InsertNode{Slot: slot, Index: index, Node: n}
}

// Apply inserts the node. An unknown slot is a no-op.
func (c *InsertNode) Apply(d diagram.Document) diagram.Document {
	c.applied = false
	list, ok := entriesAt(d, c.Slot)
	if !ok {
		return d
	}
	list, at := insertAt(list, c.Index, c.Node)
	out, ok := withEntries(d, c.Slot, list)
	if !ok {
		return d
	}
	c.applied = true
	c.at = at
	return out
}

// Invert removes the inserted node again.
func (c *InsertNode) Invert(d diagram.Document) diagram.Document {
	if !c.applied {
		return d
	}
	list, ok := entriesAt(d, c.Slot)
	if !ok || c.at >= len(list) {
		return d
	}
	out, _ := withEntries(d, c.Slot, removeAt(list, c.at))
	return out
}

func (c *InsertNode) Description() string {
	return fmt.Sprintf("insert %s", c.Node.Type())
}

// RemoveNode removes the node with the given id wherever it sits, tracking
// its original slot and index for exact restoration.
type RemoveNode struct {
	Base
	ID string

	applied bool
	slot    Slot
	index   int
	removed diagram.Node
}

// NewRemoveNode creates a remove command.
func NewRemoveNode(id string) *RemoveNode {
	return &RemoveNode{ID: id}
}

// Apply removes the node. An unknown id is a no-op.
func (c *RemoveNode) Apply(d diagram.Document) diagram.Document {
	c.applied = false
	slot, index, ok := locate(d, c.ID)
	if !ok {
		return d
	}
	list, ok := entriesAt(d, slot)
	if !ok {
		return d
	}
	c.applied = true
	c.slot = slot
	c.index = index
	c.removed = list[index]
	out, _ := withEntries(d, slot, removeAt(list, index))
	return out
}

// Invert reinserts the removed node at its original position.
func (c *RemoveNode) Invert(d diagram.Document) diagram.Document {
	if !c.applied {
		return d
	}
	list, ok := entriesAt(d, c.slot)
	if !ok {
		return d
	}
	list, _ = insertAt(list, c.index, c.removed)
	out, _ := withEntries(d, c.slot, list)
	return out
}

func (c *RemoveNode) Description() string {
	return fmt.Sprintf("remove node %s", c.ID)
}

// MoveNode reorders a node within its containing list to Index (clamped).
type MoveNode struct {
	Base
	ID    string
	Index int

	applied bool
	slot    Slot
	from    int
	to      int
}

// NewMoveNode creates a reorder command.
func NewMoveNode(id string, index int) *MoveNode {
	return &MoveNode{ID: id, Index: index}
}

// Apply moves the node within its list. An unknown id is a no-op.
func (c *MoveNode) Apply(d diagram.Document) diagram.Document {
	c.applied = false
	slot, from, ok := locate(d, c.ID)
	if !ok {
		return d
	}
	list, ok := entriesAt(d, slot)
	if !ok {
		return d
	}
	node := list[from]
	list, to := insertAt(removeAt(list, from), c.Index, node)
	out, ok := withEntries(d, slot, list)
	if !ok {
		return d
	}
	c.applied = true
	c.slot = slot
	c.from = from
	c.to = to
	return out
}

// Invert moves the node back to its original index.
func (c *MoveNode) Invert(d diagram.Document) diagram.Document {
	if !c.applied {
		return d
	}
	list, ok := entriesAt(d, c.slot)
	if !ok || c.to >= len(list) {
		return d
	}
	node := list[c.to]
	list, _ = insertAt(removeAt(list, c.to), c.from, node)
	out, _ := withEntries(d, c.slot, list)
	return out
}

func (c *MoveNode) Description() string {
	return fmt.Sprintf("move node %s", c.ID)
}
