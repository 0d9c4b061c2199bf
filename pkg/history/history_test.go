package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/seqline/pkg/diagram"
	"github.com/matzehuels/seqline/pkg/parser"
)

const fixtureText = `participant Alice
participant Bob
participant Carol
Alice->Bob:one
alt ok
Bob->Carol:two
Bob->Carol:three
else fail
Carol->Bob:four
end
Alice->Carol:five
autonumber 3`

func fixture(t *testing.T) diagram.Document {
	t.Helper()
	doc := parser.Parse(fixtureText)
	require.Empty(t, doc.Errors(), "fixture must parse cleanly")
	return doc
}

func fragmentID(t *testing.T, doc diagram.Document) string {
	t.Helper()
	var id string
	doc.Walk(func(n diagram.Node) bool {
		if _, ok := n.(diagram.Fragment); ok {
			id = n.ID()
			return false
		}
		return true
	})
	require.NotEmpty(t, id, "fixture must contain a fragment")
	return id
}

// commandsUnderTest builds one instance of every concrete command against
// the fixture document, for property-style invertibility checks.
func commandsUnderTest(t *testing.T, doc diagram.Document) map[string]Command {
	t.Helper()
	fragID := fragmentID(t, doc)
	alice, ok := doc.ParticipantByAlias("Alice")
	require.True(t, ok)
	var firstMsg diagram.Message
	doc.Walk(func(n diagram.Node) bool {
		if m, isMsg := n.(diagram.Message); isMsg {
			firstMsg = m
			return false
		}
		return true
	})

	newNode := diagram.Divider{Meta: diagram.Meta{NodeID: "div-new"}, Text: "later"}
	return map[string]Command{
		"insert top level":        NewInsertNode(TopLevel, 3, newNode),
		"insert into clause":      NewInsertNode(Slot{FragmentID: fragID, Clause: 0}, 0, newNode),
		"insert clamped index":    NewInsertNode(TopLevel, 99, newNode),
		"remove message":          NewRemoveNode(firstMsg.ID()),
		"remove nested":           NewRemoveNode(fragID),
		"move node":               NewMoveNode(firstMsg.ID(), 0),
		"set label":               NewSetLabel(firstMsg.ID(), "changed"),
		"set condition":           NewSetCondition(fragID, PrimaryEntries, "changed"),
		"set else condition":      NewSetCondition(fragID, 0, "changed"),
		"rename participant":      NewRenameParticipant(alice.ID(), "A1", "Alice Prime"),
		"add participant":         NewAddParticipant(diagram.KindActor, "U", "User"),
		"grow top boundary":       NewMoveFragmentBoundary(fragID, TopEdge, 1, true),
		"shrink top boundary":     NewMoveFragmentBoundary(fragID, TopEdge, 1, false),
		"grow bottom boundary":    NewMoveFragmentBoundary(fragID, BottomEdge, 1, true),
		"shrink bottom boundary":  NewMoveFragmentBoundary(fragID, BottomEdge, 1, false),
		"boundary overshoot":      NewMoveFragmentBoundary(fragID, TopEdge, 50, true),
		"transfer to clause":      NewTransferClauseEntries(fragID, 0, 1, true),
		"transfer from clause":    NewTransferClauseEntries(fragID, 0, 1, false),
		"transfer overshoot":      NewTransferClauseEntries(fragID, 0, 50, true),
		"set directive existing":  NewSetDirective(diagram.DirectiveAutonumber, "5"),
		"set directive synthesis": NewSetDirective(diagram.DirectiveEntrySpacing, "0.5"),
	}
}

func TestInvertibility_AllCommands(t *testing.T) {
	doc := fixture(t)
	for name, cmd := range commandsUnderTest(t, doc) {
		t.Run(name, func(t *testing.T) {
			after := cmd.Apply(doc)
			back := cmd.Invert(after)
			assert.True(t, diagram.Equal(doc, back), "Invert(Apply(d)) != d")
		})
	}
}

func TestCommands_UnknownIDIsNoOp(t *testing.T) {
	doc := fixture(t)
	cmds := []Command{
		NewRemoveNode("missing"),
		NewMoveNode("missing", 2),
		NewSetLabel("missing", "x"),
		NewSetCondition("missing", PrimaryEntries, "x"),
		NewRenameParticipant("missing", "X", "X"),
		NewMoveFragmentBoundary("missing", TopEdge, 1, true),
		NewTransferClauseEntries("missing", 0, 1, true),
		NewInsertNode(Slot{FragmentID: "missing", Clause: PrimaryEntries}, 0, diagram.BlankLine{Meta: diagram.Meta{NodeID: "blank-x"}}),
	}
	for _, cmd := range cmds {
		after := cmd.Apply(doc)
		assert.True(t, diagram.Equal(doc, after), "%s should be a no-op", cmd.Description())
		back := cmd.Invert(after)
		assert.True(t, diagram.Equal(doc, back), "%s invert should be a no-op", cmd.Description())
	}
}

func TestBase_PanicsWhenInvokedDirectly(t *testing.T) {
	var base Base
	assert.Panics(t, func() { base.Apply(diagram.Document{}) })
	assert.Panics(t, func() { base.Invert(diagram.Document{}) })
}

func TestAddParticipant_UndoRedoRestoresIdenticalNode(t *testing.T) {
	doc := fixture(t)
	h := NewHistory(0)
	cmd := NewAddParticipant(diagram.KindActor, "U", "User")
	cmd.IDs = diagram.NewSequentialIDs()

	after := h.Execute(cmd, doc)
	require.False(t, diagram.Equal(doc, after))

	undone := h.Undo(after)
	assert.True(t, diagram.Equal(doc, undone), "undo must restore the original document")

	redone := h.Redo(undone)
	assert.True(t, diagram.Equal(after, redone), "redo must restore the node with identical fields")

	// The synthesized node sits right after the last participant.
	p, ok := redone.Nodes[3].(diagram.Participant)
	require.True(t, ok)
	assert.Equal(t, "U", p.Alias)
	assert.Equal(t, "User", p.DisplayName)
	assert.Equal(t, diagram.KindActor, p.Kind)
}

func TestRenameParticipant_CascadesAndRestores(t *testing.T) {
	doc := fixture(t)
	alice, _ := doc.ParticipantByAlias("Alice")

	cmd := NewRenameParticipant(alice.ID(), "A1", "Alice")
	after := cmd.Apply(doc)

	count := 0
	after.Walk(func(n diagram.Node) bool {
		if m, ok := n.(diagram.Message); ok {
			assert.NotEqual(t, "Alice", m.From, "stale from reference on %s", m.ID())
			assert.NotEqual(t, "Alice", m.To, "stale to reference on %s", m.ID())
			if m.From == "A1" || m.To == "A1" {
				count++
			}
		}
		return true
	})
	assert.Equal(t, 2, count, "both Alice messages rewritten")

	back := cmd.Invert(after)
	assert.True(t, diagram.Equal(doc, back))
}

func TestMoveFragmentBoundary_Clamps(t *testing.T) {
	doc := fixture(t)
	fragID := fragmentID(t, doc)

	// The run of messages touching the top edge is just "one"; the three
	// participant declarations above it must stay outside no matter how
	// large the requested count is.
	cmd := NewMoveFragmentBoundary(fragID, TopEdge, 50, true)
	after := cmd.Apply(doc)

	f := mustFragment(t, after, fragID)
	require.Len(t, f.Entries, 3, "one message absorbed on top of the two original entries")
	first, ok := f.Entries[0].(diagram.Message)
	require.True(t, ok)
	assert.Equal(t, "one", first.Label)
	for _, n := range after.Nodes {
		if frag, isFrag := n.(diagram.Fragment); isFrag {
			for _, e := range frag.Entries {
				_, isPart := e.(diagram.Participant)
				assert.False(t, isPart, "participant pulled inside a fragment")
			}
		}
	}

	back := cmd.Invert(after)
	assert.True(t, diagram.Equal(doc, back))
}

func TestMoveFragmentBoundary_BottomEdgeStopsAtDirective(t *testing.T) {
	doc := fixture(t)
	fragID := fragmentID(t, doc)

	// Below the fragment: message "five", then the autonumber directive.
	// Only the message may cross the bottom edge.
	cmd := NewMoveFragmentBoundary(fragID, BottomEdge, 50, true)
	after := cmd.Apply(doc)

	f := mustFragment(t, after, fragID)
	require.Len(t, f.Else[0].Entries, 2, "bottom edge belongs to the last clause")
	moved, ok := f.Else[0].Entries[1].(diagram.Message)
	require.True(t, ok)
	assert.Equal(t, "five", moved.Label)

	// The directive is now the fragment's immediate sibling.
	last := after.Nodes[len(after.Nodes)-1]
	_, isDir := last.(diagram.Directive)
	assert.True(t, isDir)

	back := cmd.Invert(after)
	assert.True(t, diagram.Equal(doc, back))
}

func TestTransferClauseEntries_MovesNearestBoundaryEnd(t *testing.T) {
	doc := fixture(t)
	fragID := fragmentID(t, doc)

	cmd := NewTransferClauseEntries(fragID, 0, 1, true)
	after := cmd.Apply(doc)

	f := mustFragment(t, after, fragID)
	require.Len(t, f.Entries, 1)
	require.Len(t, f.Else[0].Entries, 2)
	moved, ok := f.Else[0].Entries[0].(diagram.Message)
	require.True(t, ok)
	assert.Equal(t, "three", moved.Label, "the tail of the primary list moves to the head of the clause")
}

func TestSetDirective_Idempotent(t *testing.T) {
	doc := parser.Parse("title Demo\nparticipant A\nparticipant B\nA->B:x")

	create := NewSetDirective(diagram.DirectiveAutonumber, "1")
	create.IDs = diagram.NewSequentialIDs()
	after := create.Apply(doc)
	require.Len(t, after.Nodes, len(doc.Nodes)+1)

	// After the last participant: title, A, B, autonumber, message.
	dir, ok := after.Nodes[3].(diagram.Directive)
	require.True(t, ok)
	assert.Equal(t, diagram.DirectiveAutonumber, dir.Kind)

	update := NewSetDirective(diagram.DirectiveAutonumber, "7")
	updated := update.Apply(after)
	assert.Len(t, updated.Nodes, len(after.Nodes), "update must not add a second directive")

	dir2, ok := updated.Nodes[3].(diagram.Directive)
	require.True(t, ok)
	assert.Equal(t, "7", dir2.Value)

	assert.True(t, diagram.Equal(after, update.Invert(updated)))
	assert.True(t, diagram.Equal(doc, create.Invert(after)))
}

func TestSetDirective_AfterLeadingTitleWithoutParticipants(t *testing.T) {
	doc := parser.Parse("title Demo\n//c")
	cmd := NewSetDirective(diagram.DirectiveEntrySpacing, "2")
	after := cmd.Apply(doc)

	dir, ok := after.Nodes[1].(diagram.Directive)
	require.True(t, ok)
	assert.Equal(t, diagram.DirectiveEntrySpacing, dir.Kind)
}

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	doc := fixture(t)
	fragID := fragmentID(t, doc)
	h := NewHistory(0)

	cmd := NewSetCondition(fragID, PrimaryEntries, "rewritten")
	after := h.Execute(cmd, doc)
	roundTrip := h.Redo(h.Undo(after))
	assert.True(t, diagram.Equal(after, roundTrip), "redo(undo(execute(c,d))) == execute(c,d)")
}

func TestHistory_EmptyStacksReturnDocumentUnchanged(t *testing.T) {
	doc := fixture(t)
	h := NewHistory(0)
	assert.True(t, diagram.Equal(doc, h.Undo(doc)))
	assert.True(t, diagram.Equal(doc, h.Redo(doc)))
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestHistory_CapacityBoundsUndoStack(t *testing.T) {
	doc := fixture(t)
	var firstMsg diagram.Message
	doc.Walk(func(n diagram.Node) bool {
		if m, ok := n.(diagram.Message); ok {
			firstMsg = m
			return false
		}
		return true
	})

	h := NewHistory(0)
	current := doc
	const edits = 150
	for i := 0; i < edits; i++ {
		current = h.Execute(NewSetLabel(firstMsg.ID(), fmt.Sprintf("label %d", i)), current)
	}

	assert.Equal(t, DefaultCapacity, h.UndoDepth(), "undo stack is bounded")

	msg, ok := current.FindNode(firstMsg.ID())
	require.True(t, ok)
	assert.Equal(t, "label 149", msg.(diagram.Message).Label, "document reflects every edit")
}

func TestHistory_ExecuteClearsRedo(t *testing.T) {
	doc := fixture(t)
	fragID := fragmentID(t, doc)
	h := NewHistory(0)

	d1 := h.Execute(NewSetCondition(fragID, PrimaryEntries, "one"), doc)
	d2 := h.Undo(d1)
	require.True(t, h.CanRedo())

	_ = h.Execute(NewSetCondition(fragID, PrimaryEntries, "two"), d2)
	assert.False(t, h.CanRedo(), "a fresh edit invalidates the redo stack")
}

func TestHistory_Clear(t *testing.T) {
	doc := fixture(t)
	h := NewHistory(0)
	_ = h.Execute(NewSetLabel("missing", "x"), doc)
	require.True(t, h.CanUndo())
	h.Clear()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestCopyOnWrite_SharesUnrelatedSubtrees(t *testing.T) {
	doc := fixture(t)
	fragID := fragmentID(t, doc)

	cmd := NewSetCondition(fragID, PrimaryEntries, "changed")
	after := cmd.Apply(doc)

	// Nodes outside the changed path are the same values, not copies.
	for i, n := range doc.Nodes {
		if n.ID() == fragID {
			continue
		}
		assert.Equal(t, n, after.Nodes[i], "unrelated node %d should be shared", i)
	}
}

func mustFragment(t *testing.T, d diagram.Document, id string) diagram.Fragment {
	t.Helper()
	n, ok := d.FindNode(id)
	require.True(t, ok)
	f, ok := n.(diagram.Fragment)
	require.True(t, ok)
	return f
}
