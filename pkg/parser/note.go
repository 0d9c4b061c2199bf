package parser

import (
	"strings"

	"github.com/matzehuels/seqline/pkg/diagram"
)

var noteKeywords = map[string]diagram.NoteKind{
	"note": diagram.NoteNote,
	"box":  diagram.NoteBox,
	"abox": diagram.NoteABox,
	"rbox": diagram.NoteRBox,
}

// tryNote matches the note/box family:
//
//	noteKind position participant[,participant][ #style]: text
//
// Position is "left of", "right of", or "over". Text may contain literal
// "\n" escapes for multi-line notes.
func (s *session) tryNote(line int, trim string) bool {
	head, rest := firstField(trim)
	kind, ok := noteKeywords[strings.ToLower(head)]
	if !ok {
		return false
	}

	placement, rest, ok := takePlacement(rest)
	if !ok {
		s.errorNode(line, trim, "%s expects a position (left of, right of, over)", head)
		return true
	}

	sep := strings.Index(rest, ":")
	if sep < 0 {
		s.errorNode(line, trim, "%s is missing the text separator ':'", head)
		return true
	}
	targets := strings.TrimSpace(rest[:sep])
	text := strings.TrimSpace(rest[sep+1:])

	var style diagram.Style
	if i := strings.Index(targets, "#"); i >= 0 {
		style = parseStyleTokens(targets[i:])
		targets = strings.TrimSpace(targets[:i])
	}

	participants := splitParticipants(targets)
	if len(participants) == 0 {
		s.errorNode(line, trim, "%s names no participants", head)
		return true
	}

	s.append(diagram.Note{
		Meta:         s.meta(diagram.TypeNote, line, line),
		Kind:         kind,
		Placement:    placement,
		Participants: participants,
		Text:         text,
		Style:        style,
	})
	return true
}

func takePlacement(rest string) (diagram.NotePlacement, string, bool) {
	switch {
	case strings.HasPrefix(rest, "left of "):
		return diagram.PlaceLeftOf, strings.TrimSpace(rest[len("left of "):]), true
	case strings.HasPrefix(rest, "right of "):
		return diagram.PlaceRightOf, strings.TrimSpace(rest[len("right of "):]), true
	case strings.HasPrefix(rest, "over "):
		return diagram.PlaceOver, strings.TrimSpace(rest[len("over "):]), true
	}
	return "", rest, false
}

func splitParticipants(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDivider matches "==text==" with optional trailing style tokens.
// A missing closing "==" is tolerated; the rest of the line is the label.
func (s *session) parseDivider(line int, trim string) {
	body := trim[2:]
	var style diagram.Style
	text := body
	if i := strings.Index(body, "=="); i >= 0 {
		text = body[:i]
		style = parseStyleTokens(strings.TrimSpace(body[i+2:]))
	}
	s.append(diagram.Divider{
		Meta:  s.meta(diagram.TypeDivider, line, line),
		Text:  strings.TrimSpace(text),
		Style: style,
	})
}
