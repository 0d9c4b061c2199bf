// Package diagram defines the document model for sequence diagrams.
//
// # Overview
//
// A sequence diagram is represented as a [Document]: an ordered list of
// [Node] values produced by parsing diagram source text. Node is a closed
// union - every variant ([Participant], [Message], [Fragment], [Note],
// [Divider], [Directive], [Comment], [BlankLine], [ErrorNode]) is a value
// struct embedding [Meta], which carries the node id and the source line
// range the node was parsed from.
//
// Fragments own nested sub-sequences: a [Fragment] has a primary list of
// entries plus zero or more [ElseClause] values, and entries may themselves
// be fragments to arbitrary depth.
//
// # Immutability
//
// Documents are immutable by convention. Nothing in this package or its
// consumers mutates a node in place: the parser builds a fresh Document per
// parse, and edit commands (package history) produce a new Document that
// shares all unchanged subtrees with its predecessor. Treating every
// Document value as a frozen snapshot is what makes undo/redo cheap and
// testable by structural equality.
//
// # Identifiers
//
// Node ids are type-prefixed tokens ("msg-12", "frag-3f2a9c...") minted by
// an [IDSource]. [NewSequentialIDs] yields a deterministic per-type counter,
// which keeps tests reproducible; [RandomIDs] derives the suffix from a
// UUID when ids must stay unique across editing sessions.
//
// # Serialization
//
// [Document.MarshalJSON] and [Document.UnmarshalJSON] use a tagged encoding
// - every node object carries a "type" field naming its variant - so the
// document survives a JSON round trip with its union structure intact. This
// JSON schema, together with the geometry produced by package layout, is the
// stable contract consumed by external renderers.
package diagram
