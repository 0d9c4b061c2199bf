package parser

import (
	"strconv"
	"strings"

	"github.com/matzehuels/seqline/pkg/diagram"
)

// directiveKeywords maps the leading keyword of a directive line to its
// kind. The "linear" directive is parsed and stored but has no layout
// semantics; it is kept so documents round-trip.
var directiveKeywords = map[string]diagram.DirectiveKind{
	"title":              diagram.DirectiveTitle,
	"entryspacing":       diagram.DirectiveEntrySpacing,
	"autonumber":         diagram.DirectiveAutonumber,
	"space":              diagram.DirectiveSpace,
	"participantspacing": diagram.DirectiveParticipantSpacing,
	"lifelinestyle":      diagram.DirectiveLifelineStyle,
	"activate":           diagram.DirectiveActivate,
	"deactivate":         diagram.DirectiveDeactivate,
	"destroy":            diagram.DirectiveDestroy,
	"parallel":           diagram.DirectiveParallel,
	"linear":             diagram.DirectiveLinear,
}

// tryDirective matches directive lines ("title ...", "autonumber 3",
// "space -10", ...). Returns false when the line is not a directive.
func (s *session) tryDirective(line int, trim string) bool {
	head, rest := firstField(trim)
	kind, ok := directiveKeywords[strings.ToLower(head)]
	if !ok {
		return false
	}
	if bad, msg := invalidDirectiveValue(kind, rest); bad {
		s.errorNode(line, trim, "%s", msg)
		return true
	}
	s.append(diagram.Directive{
		Meta:  s.meta(diagram.TypeDirective, line, line),
		Kind:  kind,
		Value: rest,
	})
	return true
}

// invalidDirectiveValue checks kind-specific value constraints. Only values
// that would make the layout pass misbehave are rejected; anything merely
// unusual is stored as-is.
func invalidDirectiveValue(kind diagram.DirectiveKind, value string) (bool, string) {
	switch kind {
	case diagram.DirectiveEntrySpacing:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return true, "entryspacing expects a number"
		}
	case diagram.DirectiveAutonumber:
		if value == "" || value == "off" {
			return false, ""
		}
		if _, err := strconv.Atoi(value); err != nil {
			return true, "autonumber expects a number or off"
		}
	case diagram.DirectiveSpace:
		if value == "" {
			return false, ""
		}
		if _, err := strconv.Atoi(value); err != nil {
			return true, "space expects an optional signed number"
		}
	case diagram.DirectiveParticipantSpacing:
		if value == "equal" {
			return false, ""
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return true, "participantspacing expects a number or equal"
		}
	case diagram.DirectiveActivate, diagram.DirectiveDeactivate, diagram.DirectiveDestroy:
		if value == "" {
			return true, string(kind) + " expects a participant alias"
		}
	case diagram.DirectiveParallel:
		if value != "" && value != "on" && value != "off" {
			return true, "parallel expects on or off"
		}
	}
	return false, ""
}
