package parser

import (
	"fmt"
	"strings"

	"github.com/matzehuels/seqline/pkg/diagram"
)

// Parser converts diagram source text into documents. The zero value is not
// usable; construct with [New].
type Parser struct {
	ids diagram.IDSource
}

// Option configures a Parser.
type Option func(*Parser)

// WithIDSource sets the id source used for minted nodes. Without this
// option every Parse call uses a fresh deterministic counter source, so
// identical input yields an identical document.
func WithIDSource(src diagram.IDSource) Option {
	return func(p *Parser) { p.ids = src }
}

// New returns a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse converts text into a document using a default Parser.
func Parse(text string) diagram.Document {
	return New().Parse(text)
}

// Parse converts text into a document. It never fails: unrecognized lines
// become error nodes and every input line contributes at least one node.
func (p *Parser) Parse(text string) diagram.Document {
	ids := p.ids
	if ids == nil {
		ids = diagram.NewSequentialIDs()
	}
	s := &session{ids: ids}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		s.parseLine(i+1, raw)
	}
	s.closeUnfinished(len(lines))

	return diagram.Document{Nodes: s.doc}
}

// openFragment is a fragment scope under construction. clause is the index
// of the else-clause currently receiving entries, or -1 for the primary
// entry list.
type openFragment struct {
	frag   diagram.Fragment
	clause int
}

// session holds the state of one Parse call.
type session struct {
	ids    diagram.IDSource
	doc    diagram.Nodes
	scopes []*openFragment
}

func (s *session) meta(t diagram.NodeType, lineStart, lineEnd int) diagram.Meta {
	return diagram.Meta{NodeID: s.ids.NewID(t), LineStart: lineStart, LineEnd: lineEnd}
}

// append adds a node to the innermost open scope, or to the document when
// no fragment is open.
func (s *session) append(n diagram.Node) {
	if len(s.scopes) == 0 {
		s.doc = append(s.doc, n)
		return
	}
	top := s.scopes[len(s.scopes)-1]
	if top.clause < 0 {
		top.frag.Entries = append(top.frag.Entries, n)
		return
	}
	c := &top.frag.Else[top.clause]
	c.Entries = append(c.Entries, n)
}

func (s *session) errorNode(line int, raw, format string, args ...any) {
	s.append(diagram.ErrorNode{
		Meta:    s.meta(diagram.TypeError, line, line),
		Message: fmt.Sprintf(format, args...),
		Raw:     raw,
	})
}

// parseLine applies the grammar rules in order and appends the first match.
func (s *session) parseLine(line int, raw string) {
	trim := strings.TrimSpace(raw)

	switch {
	case trim == "":
		s.append(diagram.BlankLine{Meta: s.meta(diagram.TypeBlankLine, line, line)})

	case strings.HasPrefix(trim, "//"):
		s.append(diagram.Comment{
			Meta: s.meta(diagram.TypeComment, line, line),
			Text: strings.TrimSpace(trim[2:]),
		})

	case strings.HasPrefix(trim, "#"):
		s.append(diagram.Comment{
			Meta: s.meta(diagram.TypeComment, line, line),
			Text: strings.TrimSpace(trim[1:]),
		})

	case trim == "end":
		s.closeScope(line, raw)

	case trim == "else" || strings.HasPrefix(trim, "else "):
		s.startElse(line, raw, strings.TrimSpace(trim[4:]))

	case s.tryDirective(line, trim):

	case strings.HasPrefix(trim, "=="):
		s.parseDivider(line, trim)

	case s.tryNote(line, trim):

	case s.tryFragmentStart(line, trim):

	case s.tryParticipant(line, trim):

	case s.tryMessage(line, trim):

	default:
		s.errorNode(line, raw, "unrecognized line")
	}
}

// closeScope finishes the innermost fragment and appends it to its parent.
func (s *session) closeScope(line int, raw string) {
	if len(s.scopes) == 0 {
		s.errorNode(line, raw, "end without an open fragment")
		return
	}
	top := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	top.frag.LineEnd = line
	s.append(top.frag)
}

// startElse opens a new else-clause on the innermost fragment.
func (s *session) startElse(line int, raw, rest string) {
	if len(s.scopes) == 0 {
		s.errorNode(line, raw, "else without an open fragment")
		return
	}
	style, cond := takeStyle(rest)
	top := s.scopes[len(s.scopes)-1]
	top.frag.Else = append(top.frag.Else, diagram.ElseClause{Condition: cond, Style: style})
	top.clause = len(top.frag.Else) - 1
}

// tryFragmentStart opens a fragment scope if the line begins with a
// fragment keyword. The keyword may have a style attached ("alt#red").
func (s *session) tryFragmentStart(line int, trim string) bool {
	head, rest := firstField(trim)
	if i := strings.Index(head, "#"); i > 0 {
		rest = strings.TrimSpace(head[i:] + " " + rest)
		head = head[:i]
	}
	kind, ok := fragmentKind(head)
	if !ok {
		return false
	}
	style, cond := takeStyle(rest)
	s.scopes = append(s.scopes, &openFragment{
		frag: diagram.Fragment{
			Meta:      s.meta(diagram.TypeFragment, line, line),
			Kind:      kind,
			Condition: cond,
			Style:     style,
		},
		clause: -1,
	})
	return true
}

func fragmentKind(word string) (diagram.FragmentKind, bool) {
	for _, k := range diagram.FragmentKinds {
		if string(k) == word {
			return k, true
		}
	}
	return "", false
}

// closeUnfinished handles fragments still open at end of input: each one is
// appended as a best-effort fragment spanning to the last line, plus an
// error node describing the missing end. The document is never rejected.
func (s *session) closeUnfinished(lastLine int) {
	var unclosed []diagram.Fragment
	for len(s.scopes) > 0 {
		top := s.scopes[len(s.scopes)-1]
		s.scopes = s.scopes[:len(s.scopes)-1]
		top.frag.LineEnd = lastLine
		unclosed = append(unclosed, top.frag)
		s.append(top.frag)
	}
	for _, frag := range unclosed {
		s.doc = append(s.doc, diagram.ErrorNode{
			Meta:      s.meta(diagram.TypeError, frag.LineStart, lastLine),
			Message:   fmt.Sprintf("fragment %q opened on line %d is never closed with end", frag.Kind, frag.LineStart),
			Raw:       strings.TrimSpace(string(frag.Kind) + " " + frag.Condition),
			Synthetic: true,
		})
	}
}

// firstField splits off the first whitespace-delimited token.
func firstField(s string) (field, rest string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}
