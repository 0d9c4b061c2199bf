package history

import (
	"fmt"

	"github.com/matzehuels/seqline/pkg/diagram"
)

// SetLabel edits the text of a message, note, or divider.
type SetLabel struct {
	Base
	ID    string
	Label string

	applied bool
	old     string
}

// NewSetLabel creates a label edit command.
func NewSetLabel(id, label string) *SetLabel {
	return &SetLabel{ID: id, Label: label}
}

// Apply sets the new label, stashing the prior one. An unknown id or a
// node without a label is a no-op.
func (c *SetLabel) Apply(d diagram.Document) diagram.Document {
	c.applied = false
	nodes, ok := replaceNodeIn(d.Nodes, c.ID, func(n diagram.Node) (diagram.Node, bool) {
		switch x := n.(type) {
		case diagram.Message:
			c.old = x.Label
			x.Label = c.Label
			return x, true
		case diagram.Note:
			c.old = x.Text
			x.Text = c.Label
			return x, true
		case diagram.Divider:
			c.old = x.Text
			x.Text = c.Label
			return x, true
		}
		return n, false
	})
	if !ok {
		return d
	}
	c.applied = true
	return diagram.Document{Nodes: nodes}
}

// Invert restores the prior label.
func (c *SetLabel) Invert(d diagram.Document) diagram.Document {
	if !c.applied {
		return d
	}
	return (&SetLabel{ID: c.ID, Label: c.old}).Apply(d)
}

func (c *SetLabel) Description() string {
	return fmt.Sprintf("set label to %q", c.Label)
}

// SetCondition edits a fragment's condition text: the primary condition or
// the condition of one else-clause.
type SetCondition struct {
	Base
	FragmentID string
	// Clause is an else-clause index, or PrimaryEntries for the fragment's
	// own condition.
	Clause    int
	Condition string

	applied bool
	old     string
}

// NewSetCondition creates a condition edit command.
func NewSetCondition(fragmentID string, clause int, condition string) *SetCondition {
	return &SetCondition{FragmentID: fragmentID, Clause: clause, Condition: condition}
}

// Apply sets the condition. An unknown fragment or clause index is a no-op.
func (c *SetCondition) Apply(d diagram.Document) diagram.Document {
	c.applied = false
	nodes, ok := replaceNodeIn(d.Nodes, c.FragmentID, func(n diagram.Node) (diagram.Node, bool) {
		f, isFrag := n.(diagram.Fragment)
		if !isFrag {
			return n, false
		}
		if c.Clause == PrimaryEntries {
			c.old = f.Condition
			f.Condition = c.Condition
			return f, true
		}
		if c.Clause < 0 || c.Clause >= len(f.Else) {
			return n, false
		}
		cls := make([]diagram.ElseClause, len(f.Else))
		copy(cls, f.Else)
		c.old = cls[c.Clause].Condition
		cls[c.Clause].Condition = c.Condition
		f.Else = cls
		return f, true
	})
	if !ok {
		return d
	}
	c.applied = true
	return diagram.Document{Nodes: nodes}
}

// Invert restores the prior condition.
func (c *SetCondition) Invert(d diagram.Document) diagram.Document {
	if !c.applied {
		return d
	}
	return (&SetCondition{FragmentID: c.FragmentID, Clause: c.Clause, Condition: c.old}).Apply(d)
}

func (c *SetCondition) Description() string {
	return fmt.Sprintf("set condition to %q", c.Condition)
}

// RenameParticipant changes a participant's alias and display name. The
// alias edit cascades: every message endpoint and note reference equal to
// the old alias is rewritten to the new one, and undone symmetrically.
type RenameParticipant struct {
	Base
	ParticipantID string
	NewAlias      string
	NewDisplay    string

	applied    bool
	oldAlias   string
	oldDisplay string
}

// NewRenameParticipant creates a rename command.
func NewRenameParticipant(participantID, newAlias, newDisplay string) *RenameParticipant {
	return &RenameParticipant{ParticipantID: participantID, NewAlias: newAlias, NewDisplay: newDisplay}
}

// Apply renames the participant and rewrites every reference. An unknown
// id is a no-op.
func (c *RenameParticipant) Apply(d diagram.Document) diagram.Document {
	c.applied = false
	nodes, ok := replaceNodeIn(d.Nodes, c.ParticipantID, func(n diagram.Node) (diagram.Node, bool) {
		p, isPart := n.(diagram.Participant)
		if !isPart {
			return n, false
		}
		c.oldAlias = p.Alias
		c.oldDisplay = p.DisplayName
		p.Alias = c.NewAlias
		p.DisplayName = c.NewDisplay
		return p, true
	})
	if !ok {
		return d
	}
	c.applied = true
	nodes, _ = renameRefs(nodes, c.oldAlias, c.NewAlias)
	return diagram.Document{Nodes: nodes}
}

// Invert renames back and rewrites every reference to the old alias.
func (c *RenameParticipant) Invert(d diagram.Document) diagram.Document {
	if !c.applied {
		return d
	}
	nodes, ok := replaceNodeIn(d.Nodes, c.ParticipantID, func(n diagram.Node) (diagram.Node, bool) {
		p, isPart := n.(diagram.Participant)
		if !isPart {
			return n, false
		}
		p.Alias = c.oldAlias
		p.DisplayName = c.oldDisplay
		return p, true
	})
	if !ok {
		return d
	}
	nodes, _ = renameRefs(nodes, c.NewAlias, c.oldAlias)
	return diagram.Document{Nodes: nodes}
}

func (c *RenameParticipant) Description() string {
	return fmt.Sprintf("rename participant to %s", c.NewAlias)
}

// renameRefs rewrites every message endpoint and note reference equal to
// old, recursing through fragments. Lists without a change are shared, not
// copied.
func renameRefs(nodes diagram.Nodes, old, new string) (diagram.Nodes, bool) {
	var out diagram.Nodes
	changed := false
	mutate := func(i int, n diagram.Node) {
		if !changed {
			out = cloneNodes(nodes)
			changed = true
		}
		out[i] = n
	}

	for i, n := range nodes {
		switch x := n.(type) {
		case diagram.Message:
			if x.From == old || x.To == old {
				if x.From == old {
					x.From = new
				}
				if x.To == old {
					x.To = new
				}
				mutate(i, x)
			}
		case diagram.Note:
			hit := false
			for _, p := range x.Participants {
				if p == old {
					hit = true
					break
				}
			}
			if hit {
				refs := make([]string, len(x.Participants))
				for j, p := range x.Participants {
					if p == old {
						p = new
					}
					refs[j] = p
				}
				x.Participants = refs
				mutate(i, x)
			}
		case diagram.Fragment:
			fragChanged := false
			if entries, ok := renameRefs(x.Entries, old, new); ok {
				x.Entries = entries
				fragChanged = true
			}
			var cls []diagram.ElseClause
			for ci, clause := range x.Else {
				entries, ok := renameRefs(clause.Entries, old, new)
				if !ok {
					continue
				}
				if cls == nil {
					cls = make([]diagram.ElseClause, len(x.Else))
					copy(cls, x.Else)
				}
				cls[ci].Entries = entries
			}
			if cls != nil {
				x.Else = cls
				fragChanged = true
			}
			if fragChanged {
				mutate(i, x)
			}
		}
	}
	if !changed {
		return nodes, false
	}
	return out, true
}

// AddParticipant synthesizes a participant declaration and inserts it after
// the last existing top-level participant.
type AddParticipant struct {
	Base
	Kind        diagram.ParticipantKind
	Alias       string
	DisplayName string
	// IDs mints the new node's id; nil uses UUID-based ids. The id is
	// minted once, so redo recreates the node with identical fields.
	IDs diagram.IDSource

	applied bool
	id      string
	at      int
}

// NewAddParticipant creates an add-participant command.
func NewAddParticipant(kind diagram.ParticipantKind, alias, displayName string) *AddParticipant {
	return &AddParticipant{Kind: kind, Alias: alias, DisplayName: displayName}
}

// Apply inserts the synthesized participant node.
func (c *AddParticipant) Apply(d diagram.Document) diagram.Document {
	if c.id == "" {
		ids := c.IDs
		if ids == nil {
			ids = diagram.RandomIDs{}
		}
		c.id = ids.NewID(diagram.TypeParticipant)
	}
	node := diagram.Participant{
		Meta:        diagram.Meta{NodeID: c.id},
		Kind:        c.Kind,
		Alias:       c.Alias,
		DisplayName: c.DisplayName,
	}
	index := 0
	for i, n := range d.Nodes {
		if _, ok := n.(diagram.Participant); ok {
			index = i + 1
		}
	}
	nodes, at := insertAt(d.Nodes, index, node)
	c.applied = true
	c.at = at
	return diagram.Document{Nodes: nodes}
}

// Invert removes the synthesized participant.
func (c *AddParticipant) Invert(d diagram.Document) diagram.Document {
	if !c.applied {
		return d
	}
	for i, n := range d.Nodes {
		if n.ID() == c.id {
			return diagram.Document{Nodes: removeAt(d.Nodes, i)}
		}
	}
	return d
}

func (c *AddParticipant) Description() string {
	return fmt.Sprintf("add %s %s", c.Kind, c.Alias)
}

// SetDirective creates or updates a directive of the given kind. It is
// idempotent in shape: when a directive of the kind already exists its
// value is updated in place; otherwise a new one is synthesized and
// inserted at the canonical position, immediately after the last top-level
// participant and after a leading title directive if present.
type SetDirective struct {
	Base
	Kind  diagram.DirectiveKind
	Value string
	// IDs mints the id when a directive must be synthesized; nil uses
	// UUID-based ids.
	IDs diagram.IDSource

	applied  bool
	created  bool
	id       string
	oldValue string
	at       int
}

// NewSetDirective creates a create-or-update directive command.
func NewSetDirective(kind diagram.DirectiveKind, value string) *SetDirective {
	return &SetDirective{Kind: kind, Value: value}
}

// Apply updates the first directive of the kind, or synthesizes one.
func (c *SetDirective) Apply(d diagram.Document) diagram.Document {
	c.applied = true
	c.created = false

	for i, n := range d.Nodes {
		dir, ok := n.(diagram.Directive)
		if !ok || dir.Kind != c.Kind {
			continue
		}
		c.id = dir.ID()
		c.oldValue = dir.Value
		dir.Value = c.Value
		nodes := cloneNodes(d.Nodes)
		nodes[i] = dir
		return diagram.Document{Nodes: nodes}
	}

	if c.id == "" {
		ids := c.IDs
		if ids == nil {
			ids = diagram.RandomIDs{}
		}
		c.id = ids.NewID(diagram.TypeDirective)
	}
	node := diagram.Directive{
		Meta:  diagram.Meta{NodeID: c.id},
		Kind:  c.Kind,
		Value: c.Value,
	}
	nodes, at := insertAt(d.Nodes, canonicalDirectiveIndex(d), node)
	c.created = true
	c.at = at
	return diagram.Document{Nodes: nodes}
}

// Invert removes a synthesized directive or restores the prior value.
func (c *SetDirective) Invert(d diagram.Document) diagram.Document {
	if !c.applied {
		return d
	}
	if c.created {
		for i, n := range d.Nodes {
			if n.ID() == c.id {
				return diagram.Document{Nodes: removeAt(d.Nodes, i)}
			}
		}
		return d
	}
	for i, n := range d.Nodes {
		dir, ok := n.(diagram.Directive)
		if !ok || dir.ID() != c.id {
			continue
		}
		dir.Value = c.oldValue
		nodes := cloneNodes(d.Nodes)
		nodes[i] = dir
		return diagram.Document{Nodes: nodes}
	}
	return d
}

func (c *SetDirective) Description() string {
	return fmt.Sprintf("set %s to %q", c.Kind, c.Value)
}

// canonicalDirectiveIndex is where a synthesized directive is inserted:
// after the last top-level participant, and after a leading title.
func canonicalDirectiveIndex(d diagram.Document) int {
	index := 0
	for i, n := range d.Nodes {
		if _, ok := n.(diagram.Participant); ok {
			index = i + 1
		}
	}
	if index == 0 && len(d.Nodes) > 0 {
		if dir, ok := d.Nodes[0].(diagram.Directive); ok && dir.Kind == diagram.DirectiveTitle {
			index = 1
		}
	}
	return index
}
