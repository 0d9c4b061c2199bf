package history

import "github.com/matzehuels/seqline/pkg/diagram"

// DefaultCapacity is the undo depth used when none is given.
const DefaultCapacity = 100

// History is the bounded undo/redo stack pair for one editing session.
// One History instance serves one synchronous control flow; it holds no
// locks because nothing executes concurrently.
type History struct {
	undo     []Command
	redo     []Command
	capacity int
}

// NewHistory returns a History. A capacity of zero or less means
// [DefaultCapacity].
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Execute applies cmd to d, records it for undo (evicting the oldest entry
// beyond capacity) and clears the redo stack.
func (h *History) Execute(cmd Command, d diagram.Document) diagram.Document {
	out := cmd.Apply(d)
	h.undo = append(h.undo, cmd)
	if len(h.undo) > h.capacity {
		h.undo = h.undo[len(h.undo)-h.capacity:]
	}
	h.redo = nil
	return out
}

// Undo reverts the most recent command. With nothing to undo it returns d
// unchanged.
func (h *History) Undo(d diagram.Document) diagram.Document {
	if len(h.undo) == 0 {
		return d
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	return cmd.Invert(d)
}

// Redo reapplies the most recently undone command. With nothing to redo it
// returns d unchanged.
func (h *History) Redo(d diagram.Document) diagram.Document {
	if len(h.redo) == 0 {
		return d
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return cmd.Apply(d)
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDepth returns the number of commands available to undo.
func (h *History) UndoDepth() int { return len(h.undo) }

// Clear drops both stacks, e.g. when a new document is loaded.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// PeekUndo returns the description of the next command to undo.
func (h *History) PeekUndo() (string, bool) {
	if len(h.undo) == 0 {
		return "", false
	}
	return h.undo[len(h.undo)-1].Description(), true
}

// PeekRedo returns the description of the next command to redo.
func (h *History) PeekRedo() (string, bool) {
	if len(h.redo) == 0 {
		return "", false
	}
	return h.redo[len(h.redo)-1].Description(), true
}
