package diagram

import (
	"strings"
	"testing"
)

func TestSequentialIDs_PerTypeCounters(t *testing.T) {
	ids := NewSequentialIDs()

	if got := ids.NewID(TypeMessage); got != "msg-1" {
		t.Errorf("NewID(message) = %q, want %q", got, "msg-1")
	}
	if got := ids.NewID(TypeMessage); got != "msg-2" {
		t.Errorf("NewID(message) = %q, want %q", got, "msg-2")
	}
	if got := ids.NewID(TypeFragment); got != "frag-1" {
		t.Errorf("NewID(fragment) = %q, want %q", got, "frag-1")
	}
}

func TestRandomIDs_PrefixAndUniqueness(t *testing.T) {
	var ids RandomIDs
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := ids.NewID(TypeNote)
		if !strings.HasPrefix(id, "note-") {
			t.Fatalf("NewID(note) = %q, want note- prefix", id)
		}
		if seen[id] {
			t.Fatalf("NewID(note) repeated id %q", id)
		}
		seen[id] = true
	}
}

func TestArrowToken_RoundTrip(t *testing.T) {
	for _, tok := range ArrowTokens() {
		if got := tok.Arrow.Token(); got != tok.Token {
			t.Errorf("Arrow%+v.Token() = %q, want %q", tok.Arrow, got, tok.Token)
		}
	}
}

func sampleDocument() Document {
	return Document{Nodes: Nodes{
		Participant{Meta: Meta{NodeID: "part-1", LineStart: 1, LineEnd: 1}, Kind: KindActor, Alias: "A", DisplayName: "Alice"},
		Participant{Meta: Meta{NodeID: "part-2", LineStart: 2, LineEnd: 2}, Kind: KindParticipant, Alias: "B", DisplayName: "B"},
		Fragment{
			Meta: Meta{NodeID: "frag-1", LineStart: 3, LineEnd: 7},
			Kind: FragmentAlt, Condition: "ok",
			Entries: Nodes{
				Message{Meta: Meta{NodeID: "msg-1", LineStart: 4, LineEnd: 4}, From: "A", To: "B", Arrow: Arrow{Kind: ArrowSync}, Label: "hi"},
			},
			Else: []ElseClause{{
				Condition: "fail",
				Entries: Nodes{
					Message{Meta: Meta{NodeID: "msg-2", LineStart: 6, LineEnd: 6}, From: "B", To: "A", Arrow: Arrow{Kind: ArrowSync, Dashed: true}, Label: "no"},
				},
			}},
		},
		Directive{Meta: Meta{NodeID: "dir-1", LineStart: 8, LineEnd: 8}, Kind: DirectiveAutonumber, Value: "1"},
	}}
}

func TestWalk_VisitsNestedNodes(t *testing.T) {
	doc := sampleDocument()
	var order []string
	doc.Walk(func(n Node) bool {
		order = append(order, n.ID())
		return true
	})

	want := []string{"part-1", "part-2", "frag-1", "msg-1", "msg-2", "dir-1"}
	if len(order) != len(want) {
		t.Fatalf("Walk visited %d nodes, want %d: %v", len(order), len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Walk order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestFindNode_Nested(t *testing.T) {
	doc := sampleDocument()
	n, ok := doc.FindNode("msg-2")
	if !ok {
		t.Fatal("FindNode(msg-2) not found")
	}
	msg, ok := n.(Message)
	if !ok {
		t.Fatalf("FindNode(msg-2) = %T, want Message", n)
	}
	if msg.Label != "no" {
		t.Errorf("msg.Label = %q, want %q", msg.Label, "no")
	}

	if _, ok := doc.FindNode("missing"); ok {
		t.Error("FindNode(missing) found a node, want none")
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument() error: %v", err)
	}
	got, err := ReadDocument(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("ReadDocument() error: %v", err)
	}

	if !Equal(doc, got) {
		t.Errorf("JSON round trip changed document:\n%s", data)
	}
}

func TestJSON_TagPresent(t *testing.T) {
	data, err := MarshalDocument(sampleDocument())
	if err != nil {
		t.Fatalf("MarshalDocument() error: %v", err)
	}
	for _, tag := range []string{`"type": "participant"`, `"type": "fragment"`, `"type": "message"`, `"type": "directive"`} {
		if !strings.Contains(string(data), tag) {
			t.Errorf("encoded document missing %s", tag)
		}
	}
}

func TestEquivalent_IgnoresIDs(t *testing.T) {
	a := sampleDocument()
	b := sampleDocument()
	// Re-id every node in b.
	b.Nodes = renumber(b.Nodes, NewSequentialIDs())

	if !Equivalent(a, b) {
		t.Error("Equivalent() = false for documents differing only in ids")
	}
	if Equal(a, b) {
		t.Error("Equal() = true for documents with different ids")
	}
}

func TestEquivalent_DetectsFieldChange(t *testing.T) {
	a := sampleDocument()
	b := sampleDocument()
	frag := b.Nodes[2].(Fragment)
	frag.Condition = "changed"
	b.Nodes[2] = frag

	if Equivalent(a, b) {
		t.Error("Equivalent() = true after condition change")
	}
}

// renumber returns a copy of nodes with fresh ids, recursing into fragments.
func renumber(nodes Nodes, ids IDSource) Nodes {
	out := make(Nodes, len(nodes))
	for i, n := range nodes {
		switch x := n.(type) {
		case Fragment:
			x.NodeID = ids.NewID(TypeFragment)
			x.Entries = renumber(x.Entries, ids)
			cls := make([]ElseClause, len(x.Else))
			for j, c := range x.Else {
				c.Entries = renumber(c.Entries, ids)
				cls[j] = c
			}
			x.Else = cls
			out[i] = x
		case Participant:
			x.NodeID = ids.NewID(TypeParticipant)
			out[i] = x
		case Message:
			x.NodeID = ids.NewID(TypeMessage)
			out[i] = x
		case Directive:
			x.NodeID = ids.NewID(TypeDirective)
			out[i] = x
		default:
			out[i] = n
		}
	}
	return out
}
