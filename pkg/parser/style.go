package parser

import (
	"strings"

	"github.com/matzehuels/seqline/pkg/diagram"
)

// takeStyle decomposes the leading style tokens of text and returns the
// style plus the remaining text (the condition or display portion).
//
// The rule set is fixed-precedence: an optional "#fill" token first, then
// an optional "#color;width;dash" border token. A token containing the ";"
// separator is always a border token, so "alt #red;2;dashed cond" styles
// the border even without a fill.
func takeStyle(text string) (diagram.Style, string) {
	var st diagram.Style
	rest := strings.TrimSpace(text)
	for range 2 {
		tok, tail := firstField(rest)
		if !strings.HasPrefix(tok, "#") || len(tok) < 2 {
			break
		}
		if strings.Contains(tok, ";") {
			if st.BorderColor != "" {
				break
			}
			applyBorder(&st, tok)
		} else {
			if st.Fill != "" {
				break
			}
			st.Fill = tok[1:]
		}
		rest = tail
	}
	return st, rest
}

// parseStyleTokens parses a run of style tokens with no trailing text, as
// found in bracketed inline styles and after participant names.
func parseStyleTokens(text string) diagram.Style {
	st, _ := takeStyle(text)
	return st
}

func applyBorder(st *diagram.Style, tok string) {
	parts := strings.SplitN(tok[1:], ";", 3)
	st.BorderColor = parts[0]
	if len(parts) > 1 {
		st.BorderWidth = parts[1]
	}
	if len(parts) > 2 {
		st.BorderDash = parts[2]
	}
}

// mergeStyle fills the unset fields of dst from src.
func mergeStyle(dst *diagram.Style, src diagram.Style) {
	if dst.Fill == "" {
		dst.Fill = src.Fill
	}
	if dst.BorderColor == "" {
		dst.BorderColor = src.BorderColor
		dst.BorderWidth = src.BorderWidth
		dst.BorderDash = src.BorderDash
	}
}
