package writer

import (
	"fmt"
	"strings"

	"github.com/matzehuels/seqline/pkg/diagram"
)

// Marshal renders the document as canonical diagram source. Every node
// becomes one line; fragment bodies are indented for readability (the
// parser ignores leading whitespace). Synthetic error nodes have no source
// line of their own and are skipped.
func Marshal(d diagram.Document) string {
	return strings.Join(nodeLines(d.Nodes, 0), "\n")
}

func nodeLines(nodes diagram.Nodes, depth int) []string {
	indent := strings.Repeat("  ", depth)
	var lines []string
	for _, n := range nodes {
		switch x := n.(type) {
		case diagram.Participant:
			lines = append(lines, indent+participantLine(x))
		case diagram.Message:
			lines = append(lines, indent+messageLine(x))
		case diagram.Fragment:
			lines = append(lines, fragmentLines(x, depth)...)
		case diagram.Note:
			lines = append(lines, indent+noteLine(x))
		case diagram.Divider:
			lines = append(lines, indent+dividerLine(x))
		case diagram.Directive:
			lines = append(lines, indent+strings.TrimSpace(string(x.Kind)+" "+x.Value))
		case diagram.Comment:
			lines = append(lines, indent+"//"+x.Text)
		case diagram.BlankLine:
			lines = append(lines, "")
		case diagram.ErrorNode:
			// Unparseable lines survive a round trip untouched.
			if !x.Synthetic {
				lines = append(lines, x.Raw)
			}
		}
	}
	return lines
}

func participantLine(p diagram.Participant) string {
	line := string(p.Kind)
	if p.DisplayName != p.Alias {
		// Display names cannot contain quotes, so no escaping is needed.
		line += ` "` + p.DisplayName + `" as ` + p.Alias
	} else {
		line += " " + p.Alias
	}
	if tokens := styleTokens(p.Style); tokens != "" {
		line += " " + tokens
	}
	return line
}

func messageLine(m diagram.Message) string {
	line := m.From + m.Arrow.Token()
	if m.Delay > 0 {
		line += fmt.Sprintf("(%d)", m.Delay)
	}
	line += m.To
	if !m.Style.IsZero() {
		line += "[" + styleTokens(m.Style) + "]"
	}
	if m.Label != "" {
		line += ":" + m.Label
	}
	return line
}

func fragmentLines(f diagram.Fragment, depth int) []string {
	indent := strings.Repeat("  ", depth)

	head := string(f.Kind)
	if tokens := styleTokens(f.Style); tokens != "" {
		head += " " + tokens
	}
	if f.Condition != "" {
		head += " " + f.Condition
	}

	lines := []string{indent + head}
	lines = append(lines, nodeLines(f.Entries, depth+1)...)
	for _, clause := range f.Else {
		elseLine := "else"
		if tokens := styleTokens(clause.Style); tokens != "" {
			elseLine += " " + tokens
		}
		if clause.Condition != "" {
			elseLine += " " + clause.Condition
		}
		lines = append(lines, indent+elseLine)
		lines = append(lines, nodeLines(clause.Entries, depth+1)...)
	}
	return append(lines, indent+"end")
}

func noteLine(n diagram.Note) string {
	line := string(n.Kind) + " " + string(n.Placement) + " " + strings.Join(n.Participants, ",")
	if tokens := styleTokens(n.Style); tokens != "" {
		line += " " + tokens
	}
	return line + ":" + n.Text
}

func dividerLine(d diagram.Divider) string {
	line := "==" + d.Text + "=="
	if tokens := styleTokens(d.Style); tokens != "" {
		line += " " + tokens
	}
	return line
}

// styleTokens renders a style as source tokens: the fill first, then the
// border. The border token always carries a ";" so the parser never
// mistakes it for a fill.
func styleTokens(st diagram.Style) string {
	var tokens []string
	if st.Fill != "" {
		tokens = append(tokens, "#"+st.Fill)
	}
	if st.BorderColor != "" {
		tok := "#" + st.BorderColor + ";" + st.BorderWidth
		if st.BorderDash != "" {
			tok += ";" + st.BorderDash
		}
		tokens = append(tokens, tok)
	}
	return strings.Join(tokens, " ")
}
