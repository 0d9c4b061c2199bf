package layout

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/seqline/pkg/diagram"
)

// Box is the computed position and size of one node. Coordinates grow
// rightward and downward from the diagram's top-left corner.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// UnknownFrom and UnknownTo flag message endpoints that name no
	// declared participant. The message is centered instead of failing;
	// renderers present flagged endpoints distinctly.
	UnknownFrom bool `json:"unknownFrom,omitempty"`
	UnknownTo   bool `json:"unknownTo,omitempty"`
}

// PlacedParticipant is one lifeline after the horizontal pass.
type PlacedParticipant struct {
	ID      string  `json:"id"`
	Alias   string  `json:"alias"`
	CenterX float64 `json:"centerX"`
	Width   float64 `json:"width"`
}

// Result is the full geometry of one layout pass: a box per laid-out node,
// the ordered participant placement, and the total diagram extent.
type Result struct {
	Geometry     map[string]Box      `json:"geometry"`
	Participants []PlacedParticipant `json:"participants"`
	Width        float64             `json:"width"`
	Height       float64             `json:"height"`
}

// activationBarWidth is the horizontal extent recorded for activation,
// deactivation and destroy anchors.
const activationBarWidth = 10

// Compute lays out a document. It is a pure function: the same document and
// config always produce the same Result, and no input is mutated.
func Compute(doc diagram.Document, cfg Config) Result {
	e := &engine{
		cfg:       cfg,
		geo:       make(map[string]Box),
		centers:   make(map[string]float64),
		entryMult: 1,
	}
	e.placeParticipants(doc)
	e.runVertical(doc)
	return Result{
		Geometry:     e.geo,
		Participants: e.placed,
		Width:        e.width,
		Height:       e.cursor + cfg.Margin,
	}
}

type engine struct {
	cfg Config

	geo     map[string]Box
	placed  []PlacedParticipant
	centers map[string]float64
	width   float64

	cursor       float64
	lastMessageY float64

	// Directive state threaded through the vertical pass.
	entryMult   float64
	autonumber  int  // next message number; 0 when numbering is off
	parallel    bool // cursor frozen while a parallel block is open
	frozenY     float64
	parallelMax float64
}

// =============================================================================
// Horizontal pass
// =============================================================================

// placeParticipants positions the lifelines left to right. Each gap is the
// maximum of the configured base spacing, the previous head width plus the
// collision gap, and the pre-scanned extra demand from notes and
// adjacent-pair message labels that must fit between the two lifelines.
func (e *engine) placeParticipants(doc diagram.Document) {
	cfg := e.cfg
	parts := doc.Participants()

	index := make(map[string]int, len(parts))
	widths := make([]float64, len(parts))
	for i, p := range parts {
		index[p.Alias] = i
		w := cfg.textWidth(p.DisplayName) + 2*cfg.ParticipantPadding
		if w < cfg.MinParticipantWidth {
			w = cfg.MinParticipantWidth
		}
		widths[i] = w
	}

	demand := e.scanGapDemands(doc, index)
	base, equalize := e.participantSpacing(doc)

	gaps := make([]float64, 0, len(parts))
	for i := 1; i < len(parts); i++ {
		gap := base
		if g := widths[i-1] + cfg.CollisionGap; g > gap {
			gap = g
		}
		if d := demand[i-1]; d > gap {
			gap = d
		}
		gaps = append(gaps, gap)
	}
	if equalize {
		max := base
		for _, g := range gaps {
			if g > max {
				max = g
			}
		}
		for i := range gaps {
			gaps[i] = max
		}
	}

	topY := cfg.Margin
	if hasTitle(doc) {
		topY += cfg.TitleHeight
	}

	x := 0.0
	for i, p := range parts {
		if i == 0 {
			x = cfg.Margin + widths[0]/2
		} else {
			x += gaps[i-1]
		}
		e.centers[p.Alias] = x
		e.placed = append(e.placed, PlacedParticipant{
			ID: p.ID(), Alias: p.Alias, CenterX: x, Width: widths[i],
		})
		e.geo[p.ID()] = Box{
			X: x - widths[i]/2, Y: topY, Width: widths[i], Height: cfg.ParticipantHeight,
		}
	}

	e.width = 2 * cfg.Margin
	if n := len(parts); n > 0 {
		e.width = e.centers[parts[n-1].Alias] + widths[n-1]/2 + cfg.Margin
	}
	e.cursor = topY + cfg.ParticipantHeight + cfg.Margin
	e.lastMessageY = e.cursor
}

// scanGapDemands pre-computes, per adjacent participant pair, the widest
// content that must render inside that specific gap: left-of/right-of notes
// and labels of messages between directly adjacent participants. The scan
// replays autonumber state in document order so measured labels carry the
// same "N. " prefix the vertical pass will render.
func (e *engine) scanGapDemands(doc diagram.Document, index map[string]int) map[int]float64 {
	cfg := e.cfg
	demand := make(map[int]float64)
	bump := func(gap int, w float64) {
		if gap >= 0 && w > demand[gap] {
			demand[gap] = w
		}
	}

	num := 0
	doc.Walk(func(n diagram.Node) bool {
		switch x := n.(type) {
		case diagram.Note:
			if len(x.Participants) != 1 {
				return true
			}
			i, ok := index[x.Participants[0]]
			if !ok {
				return true
			}
			w := cfg.textWidth(x.Text) + 2*cfg.NotePadding + cfg.NoteGap
			switch x.Placement {
			case diagram.PlaceLeftOf:
				bump(i-1, w)
			case diagram.PlaceRightOf:
				bump(i, w)
			}
		case diagram.Directive:
			if x.Kind == diagram.DirectiveAutonumber {
				num = autonumberState(x.Value, num)
			}
		case diagram.Message:
			label := x.Label
			if num > 0 {
				label = fmt.Sprintf("%d. %s", num, x.Label)
				num++
			}
			i, okFrom := index[x.From]
			j, okTo := index[x.To]
			if !okFrom || !okTo {
				return true
			}
			if j-i == 1 || i-j == 1 {
				bump(min(i, j), cfg.textWidth(label)+2*cfg.CharWidth)
			}
		}
		return true
	})
	return demand
}

// autonumberState applies an autonumber directive value to the current
// counter: "off" disables, an empty value starts at 1, an explicit positive
// N starts at N, anything else leaves the counter alone.
func autonumberState(value string, current int) int {
	switch value {
	case "off":
		return 0
	case "":
		return 1
	default:
		if v, err := strconv.Atoi(value); err == nil && v > 0 {
			return v
		}
	}
	return current
}

// participantSpacing resolves the participantspacing directive: an explicit
// base value, or "equal" to equalize every gap at the widest one.
func (e *engine) participantSpacing(doc diagram.Document) (base float64, equalize bool) {
	base = e.cfg.ParticipantSpacing
	doc.Walk(func(n diagram.Node) bool {
		d, ok := n.(diagram.Directive)
		if !ok || d.Kind != diagram.DirectiveParticipantSpacing {
			return true
		}
		if d.Value == "equal" {
			equalize = true
			return true
		}
		if v, err := strconv.ParseFloat(d.Value, 64); err == nil && v > 0 {
			base = v
		}
		return true
	})
	return base, equalize
}

func hasTitle(doc diagram.Document) bool {
	found := false
	doc.Walk(func(n diagram.Node) bool {
		if d, ok := n.(diagram.Directive); ok && d.Kind == diagram.DirectiveTitle {
			found = true
			return false
		}
		return true
	})
	return found
}

// =============================================================================
// Vertical pass
// =============================================================================

// runVertical advances a single cursor over the document in order.
func (e *engine) runVertical(doc diagram.Document) {
	e.layoutNodes(doc.Nodes)
	if e.parallel {
		// Unclosed parallel block: resume as if it ended at the last node.
		e.cursor = e.frozenY + e.parallelMax
		e.parallel = false
	}
}

func (e *engine) layoutNodes(nodes diagram.Nodes) {
	for _, n := range nodes {
		switch x := n.(type) {
		case diagram.Participant:
			// Placed by the horizontal pass.
		case diagram.Message:
			e.layoutMessage(x)
		case diagram.Note:
			e.layoutNote(x)
		case diagram.Divider:
			e.layoutDivider(x)
		case diagram.Fragment:
			e.layoutFragment(x)
		case diagram.Directive:
			e.applyDirective(x)
		case diagram.ErrorNode:
			e.geo[x.ID()] = Box{X: e.cfg.Margin, Y: e.cursor, Width: e.width - 2*e.cfg.Margin, Height: e.cfg.LineHeight}
			e.cursor += e.cfg.LineHeight
		case diagram.Comment, diagram.BlankLine:
			// No vertical extent.
		}
	}
}

func (e *engine) layoutMessage(m diagram.Message) {
	cfg := e.cfg

	label := m.Label
	if e.autonumber > 0 {
		label = fmt.Sprintf("%d. %s", e.autonumber, m.Label)
		e.autonumber++
	}

	h := cfg.EntrySpacing * e.entryMult
	h += float64(len(splitLines(label))-1) * cfg.LineHeight
	h += float64(m.Delay) * cfg.DelaySlope

	fromX, okFrom := e.endpointX(m.From)
	toX, okTo := e.endpointX(m.To)

	var box Box
	switch {
	case m.From == m.To:
		h += cfg.LineHeight // self-loop bends back below its start
		box = Box{X: fromX, Width: cfg.SelfLoopWidth}
	default:
		x := min(fromX, toX)
		box = Box{X: x, Width: max(fromX, toX) - x}
	}

	y := e.cursor
	if e.parallel {
		y = e.frozenY
		if h > e.parallelMax {
			e.parallelMax = h
		}
	} else {
		e.cursor += h
	}

	box.Y = y
	box.Height = h
	box.UnknownFrom = !okFrom
	box.UnknownTo = !okTo
	e.geo[m.ID()] = box
	e.lastMessageY = y
}

// endpointX resolves a message endpoint to an x coordinate. Boundary
// markers map to the diagram edges; an undeclared alias is centered and
// reported as unknown.
func (e *engine) endpointX(alias string) (float64, bool) {
	switch alias {
	case diagram.BoundaryLeft:
		return e.cfg.Margin, true
	case diagram.BoundaryRight:
		return e.width - e.cfg.Margin, true
	}
	if x, ok := e.centers[alias]; ok {
		return x, true
	}
	return e.width / 2, false
}

func (e *engine) layoutNote(n diagram.Note) {
	cfg := e.cfg
	w := cfg.textWidth(n.Text) + 2*cfg.NotePadding
	h := cfg.textHeight(n.Text) + 2*cfg.NotePadding

	x := (e.width - w) / 2
	if len(n.Participants) > 0 {
		first, okFirst := e.centers[n.Participants[0]]
		switch n.Placement {
		case diagram.PlaceLeftOf:
			if okFirst {
				x = first - w - cfg.NoteGap
			}
		case diagram.PlaceRightOf:
			if okFirst {
				x = first + cfg.NoteGap
			}
		case diagram.PlaceOver:
			last, okLast := e.centers[n.Participants[len(n.Participants)-1]]
			if okFirst && okLast {
				lo, hi := min(first, last), max(first, last)
				x = lo - cfg.NotePadding
				if span := hi - lo + 2*cfg.NotePadding; span > w {
					w = span
				} else {
					x = (lo+hi)/2 - w/2
				}
			}
		}
	}

	e.geo[n.ID()] = Box{X: x, Y: e.cursor, Width: w, Height: h}
	e.cursor += h + cfg.NoteGap
}

func (e *engine) layoutDivider(d diagram.Divider) {
	cfg := e.cfg
	h := cfg.textHeight(d.Text) + 2*cfg.DividerPadding
	e.geo[d.ID()] = Box{X: cfg.Margin, Y: e.cursor, Width: e.width - 2*cfg.Margin, Height: h}
	e.cursor += h
}

func (e *engine) layoutFragment(f diagram.Fragment) {
	cfg := e.cfg
	startY := e.cursor
	e.cursor += cfg.FragmentHeaderHeight

	e.layoutNodes(f.Entries)
	for _, clause := range f.Else {
		e.cursor += cfg.ElseHeaderHeight
		e.layoutNodes(clause.Entries)
	}
	e.cursor += cfg.FragmentPadding

	x, w := e.fragmentExtent(f)
	e.geo[f.ID()] = Box{X: x, Y: startY, Width: w, Height: e.cursor - startY}
	e.cursor += cfg.FragmentMargin
}

// fragmentExtent spans the fragment over every participant its entries
// reference, transitively through nested fragments. When none resolves,
// the fragment defaults to the full diagram width.
func (e *engine) fragmentExtent(f diagram.Fragment) (x, w float64) {
	cfg := e.cfg
	lo, hi := 0.0, 0.0
	found := false
	for _, alias := range fragmentAliases(f) {
		cx, ok := e.centers[alias]
		if !ok {
			continue
		}
		if !found || cx < lo {
			lo = cx
		}
		if !found || cx > hi {
			hi = cx
		}
		found = true
	}
	if !found {
		return cfg.Margin, e.width - 2*cfg.Margin
	}
	return lo - cfg.FragmentInset, hi - lo + 2*cfg.FragmentInset
}

// fragmentAliases collects every alias referenced inside the fragment.
func fragmentAliases(f diagram.Fragment) []string {
	var out []string
	var fromNodes func(nodes diagram.Nodes)
	fromNodes = func(nodes diagram.Nodes) {
		for _, n := range nodes {
			switch x := n.(type) {
			case diagram.Message:
				out = append(out, x.From, x.To)
			case diagram.Note:
				out = append(out, x.Participants...)
			case diagram.Fragment:
				fromNodes(x.Entries)
				for _, c := range x.Else {
					fromNodes(c.Entries)
				}
			}
		}
	}
	fromNodes(f.Entries)
	for _, c := range f.Else {
		fromNodes(c.Entries)
	}
	return out
}

// =============================================================================
// Directives
// =============================================================================

func (e *engine) applyDirective(d diagram.Directive) {
	cfg := e.cfg
	switch d.Kind {
	case diagram.DirectiveTitle:
		w := cfg.textWidth(d.Value)
		e.geo[d.ID()] = Box{X: (e.width - w) / 2, Y: cfg.Margin, Width: w, Height: cfg.LineHeight}

	case diagram.DirectiveEntrySpacing:
		if v, err := strconv.ParseFloat(d.Value, 64); err == nil && v > 0 {
			e.entryMult = v
		}

	case diagram.DirectiveAutonumber:
		e.autonumber = autonumberState(d.Value, e.autonumber)

	case diagram.DirectiveSpace:
		inc := cfg.SpaceIncrement
		if d.Value != "" {
			if v, err := strconv.Atoi(d.Value); err == nil {
				inc = float64(v)
			}
		}
		e.cursor += inc

	case diagram.DirectiveParallel:
		if d.Value == "off" {
			if e.parallel {
				e.cursor = e.frozenY + e.parallelMax
				e.parallel = false
			}
			return
		}
		e.parallel = true
		e.frozenY = e.cursor
		e.parallelMax = 0

	case diagram.DirectiveActivate, diagram.DirectiveDeactivate, diagram.DirectiveDestroy:
		// Anchored at the Y of the most recent message, not at the
		// directive's own document position, so intervening notes do not
		// shift the activation bar.
		x := e.width / 2
		if cx, ok := e.centers[d.Value]; ok {
			x = cx
		}
		e.geo[d.ID()] = Box{X: x - activationBarWidth/2, Y: e.lastMessageY, Width: activationBarWidth}

	case diagram.DirectiveParticipantSpacing, diagram.DirectiveLifelineStyle, diagram.DirectiveLinear:
		// participantspacing is consumed by the horizontal pass;
		// lifelinestyle is renderer styling; linear has no layout
		// semantics.
	}
}
