package parser

import (
	"strconv"
	"strings"

	"github.com/matzehuels/seqline/pkg/diagram"
)

// tryMessage matches message lines:
//
//	From<arrow>[(delay)]To[[#style]][:label]
//
// Arrow tokens are tried longest-first at each position so specific arrows
// ("-->>") are never mistaken for their prefixes ("-->", "->"). The
// boundary markers "[" and "]" are valid endpoints without a declared
// participant.
func (s *session) tryMessage(line int, trim string) bool {
	pos, token, arrow, ok := findArrow(trim)
	if !ok {
		return false
	}

	from := strings.TrimSpace(trim[:pos])
	rest := strings.TrimSpace(trim[pos+len(token):])
	if from == "" {
		return false
	}

	delay, rest, ok := takeDelay(rest)
	if !ok {
		s.errorNode(line, trim, "message delay expects a number in parentheses")
		return true
	}

	to, rest := takeEndpoint(rest)
	if to == "" {
		s.errorNode(line, trim, "message is missing a target participant")
		return true
	}

	var style diagram.Style
	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			s.errorNode(line, trim, "unterminated message style bracket")
			return true
		}
		style = parseStyleTokens(strings.TrimSpace(rest[1:end]))
		rest = strings.TrimSpace(rest[end+1:])
	}

	label := ""
	if strings.HasPrefix(rest, ":") {
		label = strings.TrimSpace(rest[1:])
	} else if rest != "" {
		s.errorNode(line, trim, "unexpected text %q after message target", rest)
		return true
	}

	s.append(diagram.Message{
		Meta:  s.meta(diagram.TypeMessage, line, line),
		From:  from,
		To:    to,
		Arrow: arrow,
		Delay: delay,
		Label: label,
		Style: style,
	})
	return true
}

// findArrow scans left to right; at each position the arrow tokens are
// tried in priority order (longest first).
func findArrow(s string) (pos int, token string, arrow diagram.Arrow, ok bool) {
	tokens := diagram.ArrowTokens()
	for i := 0; i < len(s); i++ {
		for _, t := range tokens {
			if strings.HasPrefix(s[i:], t.Token) {
				return i, t.Token, t.Arrow, true
			}
		}
	}
	return 0, "", diagram.Arrow{}, false
}

// takeDelay consumes an optional "(N)" delay directly after the arrow.
func takeDelay(rest string) (int, string, bool) {
	if !strings.HasPrefix(rest, "(") {
		return 0, rest, true
	}
	end := strings.Index(rest, ")")
	if end < 0 {
		return 0, rest, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest[1:end]))
	if err != nil || n < 0 {
		return 0, rest, false
	}
	return n, strings.TrimSpace(rest[end+1:]), true
}

// takeEndpoint consumes the target endpoint: a boundary marker or an alias
// running to the style bracket or label separator.
func takeEndpoint(rest string) (string, string) {
	if strings.HasPrefix(rest, diagram.BoundaryLeft) || strings.HasPrefix(rest, diagram.BoundaryRight) {
		// "[#..." opens a style bracket, not a boundary endpoint.
		if !strings.HasPrefix(rest, "[#") {
			return rest[:1], strings.TrimSpace(rest[1:])
		}
	}
	end := len(rest)
	for i := 0; i < len(rest); i++ {
		if rest[i] == ':' || rest[i] == '[' {
			end = i
			break
		}
	}
	return strings.TrimSpace(rest[:end]), strings.TrimSpace(rest[end:])
}
