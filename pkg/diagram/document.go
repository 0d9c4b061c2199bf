package diagram

import "reflect"

// Nodes is an ordered node list. It exists mainly so fragments and
// documents share the tagged JSON encoding (see json.go).
type Nodes []Node

// Document is the ordered structural representation of a diagram. Treat it
// as immutable: derive new documents instead of mutating in place.
type Document struct {
	Nodes Nodes `json:"nodes"`
}

// Len returns the number of top-level nodes.
func (d Document) Len() int { return len(d.Nodes) }

// Walk visits every node in document order, descending into fragment
// entries and else-clauses. It stops early when fn returns false.
func (d Document) Walk(fn func(Node) bool) {
	walkNodes(d.Nodes, fn)
}

func walkNodes(nodes Nodes, fn func(Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		if f, ok := n.(Fragment); ok {
			if !walkNodes(f.Entries, fn) {
				return false
			}
			for _, c := range f.Else {
				if !walkNodes(c.Entries, fn) {
					return false
				}
			}
		}
	}
	return true
}

// FindNode returns the node with the given id, searching nested fragment
// entries as well. The second result reports whether it was found.
func (d Document) FindNode(id string) (Node, bool) {
	var found Node
	ok := false
	d.Walk(func(n Node) bool {
		if n.ID() == id {
			found, ok = n, true
			return false
		}
		return true
	})
	return found, ok
}

// Participants returns every participant declaration in document order.
func (d Document) Participants() []Participant {
	var out []Participant
	d.Walk(func(n Node) bool {
		if p, ok := n.(Participant); ok {
			out = append(out, p)
		}
		return true
	})
	return out
}

// ParticipantByAlias returns the participant declared with the given alias.
func (d Document) ParticipantByAlias(alias string) (Participant, bool) {
	for _, p := range d.Participants() {
		if p.Alias == alias {
			return p, true
		}
	}
	return Participant{}, false
}

// Errors returns every error node in the document, including nested ones.
func (d Document) Errors() []ErrorNode {
	var out []ErrorNode
	d.Walk(func(n Node) bool {
		if e, ok := n.(ErrorNode); ok {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Equal reports structural equality of two documents, ids included. This is
// the equality the command invertibility law is stated in: content equality,
// not reference identity.
func Equal(a, b Document) bool {
	return reflect.DeepEqual(a, b)
}

// Equivalent reports whether two documents have the same structure and
// field values while ignoring node ids and source line ranges. This is the
// equality used by the serialize/re-parse round-trip property, where a
// fresh parse mints fresh ids.
func Equivalent(a, b Document) bool {
	return equivalentNodes(a.Nodes, b.Nodes)
}

func equivalentNodes(a, b Nodes) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equivalentNode(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equivalentNode(a, b Node) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch x := a.(type) {
	case Fragment:
		y := b.(Fragment)
		if x.Kind != y.Kind || x.Condition != y.Condition || x.Style != y.Style {
			return false
		}
		if !equivalentNodes(x.Entries, y.Entries) || len(x.Else) != len(y.Else) {
			return false
		}
		for i := range x.Else {
			if x.Else[i].Condition != y.Else[i].Condition || x.Else[i].Style != y.Else[i].Style {
				return false
			}
			if !equivalentNodes(x.Else[i].Entries, y.Else[i].Entries) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(stripMeta(a), stripMeta(b))
	}
}

// stripMeta returns a copy of the node with its Meta zeroed, so DeepEqual
// compares only variant fields. Fragments are handled separately because
// their nested entries carry Metas of their own.
func stripMeta(n Node) Node {
	switch x := n.(type) {
	case Participant:
		x.Meta = Meta{}
		return x
	case Message:
		x.Meta = Meta{}
		return x
	case Note:
		x.Meta = Meta{}
		return x
	case Divider:
		x.Meta = Meta{}
		return x
	case Directive:
		x.Meta = Meta{}
		return x
	case Comment:
		x.Meta = Meta{}
		return x
	case BlankLine:
		x.Meta = Meta{}
		return x
	case ErrorNode:
		x.Meta = Meta{}
		return x
	default:
		return n
	}
}
