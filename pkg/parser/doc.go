// Package parser turns sequence-diagram source text into a
// [diagram.Document].
//
// # Overview
//
// The grammar is line-oriented. Each line is tried against an ordered set
// of rules - blank line, comment, scope keywords (end/else), directive,
// divider, note, fragment start, participant declaration, message - and the
// first match wins. A line matching no rule becomes an error node carrying
// the raw text and a diagnostic; parsing then continues on the next line.
//
// # Error recovery
//
// [Parse] never fails and never panics. Malformed input degrades to error
// nodes with line ranges, a document is produced for every input, and an
// unclosed fragment at end of input yields both an error node and a
// best-effort fragment spanning to the last line. Recovery is always
// line-granular; one bad line cannot poison the rest of the parse.
//
// # Fragments
//
// Fragment keywords (alt, opt, loop, par, break, critical, group, ref) open
// a scope that consumes following lines until the matching "end" at the
// same nesting depth. An "else" line inside an open scope starts a new
// else-clause and redirects subsequent entries into it. Fragment starts
// nest to arbitrary depth.
//
// [diagram.Document]: github.com/matzehuels/seqline/pkg/diagram#Document
package parser
