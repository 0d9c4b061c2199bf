package diagram

import "strings"

// NodeType identifies which variant of the node union a value belongs to.
// It doubles as the "type" tag in the JSON encoding.
type NodeType string

const (
	TypeParticipant NodeType = "participant"
	TypeMessage     NodeType = "message"
	TypeFragment    NodeType = "fragment"
	TypeNote        NodeType = "note"
	TypeDivider     NodeType = "divider"
	TypeDirective   NodeType = "directive"
	TypeComment     NodeType = "comment"
	TypeBlankLine   NodeType = "blankline"
	TypeError       NodeType = "error"
)

// Node is the closed union of diagram node variants. Every variant is a
// value struct embedding [Meta]; dispatch is by type switch.
type Node interface {
	// ID returns the unique node identifier.
	ID() string
	// Type returns the variant tag.
	Type() NodeType
	// Lines returns the 1-based source line range the node spans.
	Lines() (start, end int)
}

// Meta carries the fields shared by every node variant: the unique id and
// the source line range for diagnostics. It is embedded, not used directly.
type Meta struct {
	NodeID    string `json:"id"`
	LineStart int    `json:"sourceLineStart"`
	LineEnd   int    `json:"sourceLineEnd"`
}

// ID returns the unique node identifier.
func (m Meta) ID() string { return m.NodeID }

// Lines returns the 1-based source line range the node spans.
func (m Meta) Lines() (start, end int) { return m.LineStart, m.LineEnd }

// Style holds the optional visual styling a node may carry: a fill color
// and a border description. The zero value means "unstyled".
type Style struct {
	Fill        string `json:"fill,omitempty"`
	BorderColor string `json:"borderColor,omitempty"`
	BorderWidth string `json:"borderWidth,omitempty"`
	BorderDash  string `json:"borderDash,omitempty"`
}

// IsZero reports whether no styling is set.
func (s Style) IsZero() bool { return s == Style{} }

// ParticipantKind distinguishes the visual flavor of a participant.
type ParticipantKind string

const (
	KindParticipant ParticipantKind = "participant"
	KindActor       ParticipantKind = "actor"
	KindBoundary    ParticipantKind = "boundary"
	KindControl     ParticipantKind = "control"
	KindEntity      ParticipantKind = "entity"
	KindDatabase    ParticipantKind = "database"
)

// Participant declares a lifeline. Alias is the identifier messages and
// notes refer to; DisplayName is what the renderer draws (often the same).
type Participant struct {
	Meta
	Kind        ParticipantKind `json:"kind"`
	Alias       string          `json:"alias"`
	DisplayName string          `json:"displayName"`
	Style       Style           `json:"style,omitzero"`
}

func (Participant) Type() NodeType { return TypeParticipant }

// ArrowKind classifies the semantics of a message arrow.
type ArrowKind string

const (
	ArrowSync               ArrowKind = "sync"
	ArrowAsync              ArrowKind = "async"
	ArrowBidirectional      ArrowKind = "bidirectional"
	ArrowBidirectionalAsync ArrowKind = "bidirectional-async"
	ArrowLost               ArrowKind = "lost"
)

// Arrow describes a message arrow: its kind and whether the line is dashed.
type Arrow struct {
	Kind   ArrowKind `json:"kind"`
	Dashed bool      `json:"dashed,omitempty"`
}

// arrowTokens maps source tokens to arrows, ordered longest-first so that
// matching never stops at an ambiguous prefix ("-->>" before "-->" before
// "->"). The parser and the writer share this table.
var arrowTokens = []struct {
	Token string
	Arrow Arrow
}{
	{"<-->>", Arrow{Kind: ArrowBidirectionalAsync, Dashed: true}},
	{"-->>", Arrow{Kind: ArrowAsync, Dashed: true}},
	{"<-->", Arrow{Kind: ArrowBidirectional, Dashed: true}},
	{"->>", Arrow{Kind: ArrowAsync}},
	{"<->", Arrow{Kind: ArrowBidirectional}},
	{"--x", Arrow{Kind: ArrowLost, Dashed: true}},
	{"-->", Arrow{Kind: ArrowSync, Dashed: true}},
	{"->", Arrow{Kind: ArrowSync}},
	{"-x", Arrow{Kind: ArrowLost}},
}

// ArrowTokens returns the arrow token table in matching priority order
// (longest, most specific tokens first).
func ArrowTokens() []struct {
	Token string
	Arrow Arrow
} {
	out := make([]struct {
		Token string
		Arrow Arrow
	}, len(arrowTokens))
	copy(out, arrowTokens)
	return out
}

// Token returns the canonical source token for the arrow. Unknown
// combinations fall back to the plain sync arrow.
func (a Arrow) Token() string {
	for _, t := range arrowTokens {
		if t.Arrow == a {
			return t.Token
		}
	}
	return "->"
}

// Boundary pseudo-endpoints: a message may enter or leave the diagram edge
// without a declared participant on that side.
const (
	BoundaryLeft  = "["
	BoundaryRight = "]"
)

// IsBoundary reports whether alias is one of the boundary pseudo-endpoints.
func IsBoundary(alias string) bool {
	return alias == BoundaryLeft || alias == BoundaryRight
}

// Message is an arrow between two lifelines. From and To are participant
// aliases or boundary markers. Delay is the slope magnitude in time units
// (0 = horizontal). Label may contain literal "\n" escapes for multi-line
// text.
type Message struct {
	Meta
	From  string `json:"from"`
	To    string `json:"to"`
	Arrow Arrow  `json:"arrow"`
	Delay int    `json:"delay,omitempty"`
	Label string `json:"label"`
	Style Style  `json:"style,omitzero"`
}

func (Message) Type() NodeType { return TypeMessage }

// LabelLines returns the label split on literal "\n" escapes.
func (m Message) LabelLines() []string { return splitEscapedLines(m.Label) }

// FragmentKind names the combined-fragment operator.
type FragmentKind string

const (
	FragmentAlt      FragmentKind = "alt"
	FragmentOpt      FragmentKind = "opt"
	FragmentLoop     FragmentKind = "loop"
	FragmentPar      FragmentKind = "par"
	FragmentBreak    FragmentKind = "break"
	FragmentCritical FragmentKind = "critical"
	FragmentGroup    FragmentKind = "group"
	FragmentRef      FragmentKind = "ref"
)

// FragmentKinds lists every keyword that opens a fragment scope.
var FragmentKinds = []FragmentKind{
	FragmentAlt, FragmentOpt, FragmentLoop, FragmentPar,
	FragmentBreak, FragmentCritical, FragmentGroup, FragmentRef,
}

// ElseClause is one "else" arm of a fragment: its own condition, styling,
// and ordered entries.
type ElseClause struct {
	Condition string `json:"condition"`
	Entries   Nodes  `json:"entries"`
	Style     Style  `json:"style,omitzero"`
}

// Fragment is a nestable diagram region (alt/loop/opt/...). Entries holds
// the primary sub-sequence in source order; Else holds the ordered else
// arms, which may be empty.
type Fragment struct {
	Meta
	Kind      FragmentKind `json:"kind"`
	Condition string       `json:"condition"`
	Entries   Nodes        `json:"entries"`
	Else      []ElseClause `json:"else,omitempty"`
	Style     Style        `json:"style,omitzero"`
}

func (Fragment) Type() NodeType { return TypeFragment }

// NoteKind is the note/box family variant.
type NoteKind string

const (
	NoteNote NoteKind = "note"
	NoteBox  NoteKind = "box"
	NoteABox NoteKind = "abox"
	NoteRBox NoteKind = "rbox"
)

// NotePlacement positions a note relative to its participants.
type NotePlacement string

const (
	PlaceLeftOf  NotePlacement = "left of"
	PlaceRightOf NotePlacement = "right of"
	PlaceOver    NotePlacement = "over"
)

// Note is free text anchored to one or more participants. Text may contain
// literal "\n" escapes for multi-line content.
type Note struct {
	Meta
	Kind         NoteKind      `json:"kind"`
	Placement    NotePlacement `json:"placement"`
	Participants []string      `json:"participants"`
	Text         string        `json:"text"`
	Style        Style         `json:"style,omitzero"`
}

func (Note) Type() NodeType { return TypeNote }

// TextLines returns the note text split on literal "\n" escapes.
func (n Note) TextLines() []string { return splitEscapedLines(n.Text) }

// Divider is a full-width separator with a centered label (==text==).
type Divider struct {
	Meta
	Text  string `json:"text"`
	Style Style  `json:"style,omitzero"`
}

func (Divider) Type() NodeType { return TypeDivider }

// DirectiveKind names a document-level instruction.
type DirectiveKind string

const (
	DirectiveTitle              DirectiveKind = "title"
	DirectiveEntrySpacing       DirectiveKind = "entryspacing"
	DirectiveAutonumber         DirectiveKind = "autonumber"
	DirectiveSpace              DirectiveKind = "space"
	DirectiveParticipantSpacing DirectiveKind = "participantspacing"
	DirectiveLifelineStyle      DirectiveKind = "lifelinestyle"
	DirectiveActivate           DirectiveKind = "activate"
	DirectiveDeactivate         DirectiveKind = "deactivate"
	DirectiveDestroy            DirectiveKind = "destroy"
	DirectiveParallel           DirectiveKind = "parallel"
	DirectiveLinear             DirectiveKind = "linear"
)

// Directive is a document-level instruction (spacing, numbering, styling).
// Value is the raw text after the keyword; its interpretation is
// kind-specific and left to the consumer.
type Directive struct {
	Meta
	Kind  DirectiveKind `json:"kind"`
	Value string        `json:"value"`
}

func (Directive) Type() NodeType { return TypeDirective }

// Comment is a source comment line (// or # prefix). The marker is not
// retained.
type Comment struct {
	Meta
	Text string `json:"text"`
}

func (Comment) Type() NodeType { return TypeComment }

// BlankLine marks an empty source line, preserved so documents round-trip
// with their original line structure.
type BlankLine struct {
	Meta
}

func (BlankLine) Type() NodeType { return TypeBlankLine }

// ErrorNode records a line the parser could not interpret: the diagnostic
// message and the raw offending text. Error nodes flow through layout like
// any other node so the diagram keeps rendering around them. Synthetic is
// set on diagnostics not backed by a source line of their own, such as the
// report for a fragment left open at end of input; the writer skips those.
type ErrorNode struct {
	Meta
	Message   string `json:"message"`
	Raw       string `json:"raw"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

func (ErrorNode) Type() NodeType { return TypeError }

// splitEscapedLines splits s on literal "\n" escape sequences. A string
// without escapes yields a single line; empty input yields one empty line.
func splitEscapedLines(s string) []string {
	return strings.Split(s, `\n`)
}
