// Package history implements reversible document edits and bounded
// undo/redo for sequence diagrams.
//
// # Commands
//
// A [Command] is one self-contained edit: Apply derives a new document,
// Invert takes it back, and the two must satisfy the invertibility law
//
//	Invert(Apply(d)) == d
//
// as structural equality of content, for every valid document d. Commands
// follow a copy-on-write discipline: Apply rebuilds only the node path from
// the document root to the change and shares every unrelated subtree with
// the input document. That is what makes inversion cheap and correctness
// checkable with [diagram.Equal].
//
// A command operating on a node id that is not in the document is a no-op:
// it returns the document unchanged from both Apply and Invert. The one
// deliberate exception is [Base], whose Apply and Invert panic - calling
// the abstract operations directly is a programmer error, not a domain
// condition.
//
// Commands record what they displaced (original index, prior value,
// absorbed nodes) during Apply so Invert can restore it exactly; the same
// command instance must therefore not be applied to unrelated documents
// concurrently. The package does no locking; callers that share a History
// across goroutines must serialize access themselves.
//
// # History
//
// [History] keeps two bounded stacks. Execute applies a command, pushes it
// for undo (evicting the oldest beyond capacity, default 100) and clears
// the redo stack; Undo and Redo pop one stack, push the other, and return
// the reverted or reapplied document. Undo and Redo on an empty stack
// return the document unchanged.
//
// [diagram.Equal]: github.com/matzehuels/seqline/pkg/diagram#Equal
package history
