// Package writer serializes documents back to diagram source text.
//
// The output is canonical: one line per node, fragments closed with end,
// style tokens in fill-then-border order. Parsing the output yields a
// document equivalent to the input (same structure and fields, fresh ids),
// which is what makes the parse/serialize pair a round trip.
package writer
