package history

import "github.com/matzehuels/seqline/pkg/diagram"

// Command is one reversible document edit. Apply and Invert derive new
// documents and never mutate their input; Description is a short
// human-readable label for menus and logs.
type Command interface {
	Apply(d diagram.Document) diagram.Document
	Invert(d diagram.Document) diagram.Document
	Description() string
}

// Base is the abstract command. Concrete commands embed it to inherit
// Description plumbing; its Apply and Invert panic, because invoking the
// abstract operations directly is a programmer error rather than a
// recoverable condition.
type Base struct{}

// Apply panics. Concrete commands must provide their own implementation.
func (Base) Apply(diagram.Document) diagram.Document {
	panic("history: Apply called on abstract command base")
}

// Invert panics. Concrete commands must provide their own implementation.
func (Base) Invert(diagram.Document) diagram.Document {
	panic("history: Invert called on abstract command base")
}

// Description identifies the abstract base; concrete commands override it.
func (Base) Description() string { return "edit" }
