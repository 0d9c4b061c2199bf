package parser

import (
	"strings"

	"github.com/matzehuels/seqline/pkg/diagram"
)

var participantKeywords = map[string]diagram.ParticipantKind{
	"participant": diagram.KindParticipant,
	"actor":       diagram.KindActor,
	"boundary":    diagram.KindBoundary,
	"control":     diagram.KindControl,
	"entity":      diagram.KindEntity,
	"database":    diagram.KindDatabase,
}

// tryParticipant matches participant declarations in both forms:
//
//	kind Name [#style]
//	kind "Display Name" as alias [#style]
//
// Style tokens are accepted before or after the name; when both are given
// the leading tokens win field by field.
func (s *session) tryParticipant(line int, trim string) bool {
	head, rest := firstField(trim)
	kind, ok := participantKeywords[strings.ToLower(head)]
	if !ok {
		return false
	}

	style, rest := takeStyle(rest)

	var alias, display string
	if strings.HasPrefix(rest, `"`) {
		end := strings.Index(rest[1:], `"`)
		if end < 0 {
			s.errorNode(line, trim, "unterminated quoted participant name")
			return true
		}
		display = rest[1 : 1+end]
		tail := strings.TrimSpace(rest[end+2:])
		if strings.HasPrefix(tail, "as ") || tail == "as" {
			tail = strings.TrimSpace(strings.TrimPrefix(tail, "as"))
			alias, tail = firstField(tail)
			mergeStyle(&style, parseStyleTokens(tail))
		} else {
			alias = display
			mergeStyle(&style, parseStyleTokens(tail))
		}
	} else {
		name := rest
		if i := strings.Index(rest, "#"); i >= 0 {
			name = strings.TrimSpace(rest[:i])
			mergeStyle(&style, parseStyleTokens(rest[i:]))
		}
		alias, display = name, name
	}

	if alias == "" {
		s.errorNode(line, trim, "%s declaration is missing a name", head)
		return true
	}

	s.append(diagram.Participant{
		Meta:        s.meta(diagram.TypeParticipant, line, line),
		Kind:        kind,
		Alias:       alias,
		DisplayName: display,
		Style:       style,
	})
	return true
}
