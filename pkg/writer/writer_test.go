package writer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/seqline/pkg/diagram"
	"github.com/matzehuels/seqline/pkg/parser"
)

func TestMarshal_RoundTrip(t *testing.T) {
	inputs := []string{
		"participant Alice\nparticipant Bob\nAlice->Bob:Hi",
		`title My Diagram
actor "The User" as U
database DB #lightblue
participant #red;2;dashed "Styled" as S
autonumber 3
U->DB:query
DB-->>U:rows\nmore rows
U->(2)DB[#pink]:slow
U->U:think
[->U:from outside
U->]:to outside`,
		"alt ok\nA->B:x\nelse #gray fail\nA->B:y\nend",
		"loop forever\nopt maybe\nA->B:x\nend\nend",
		"note left of A:careful\nbox over A,B #pink:spans\nrbox right of B:hint",
		"==Phase Two== #gray\n\n// a comment\nspace -10\nparallel on\nA->B:x\nparallel off",
		"total garbage line\nA->B:x\nmore ???",
	}
	for _, in := range inputs {
		first := parser.Parse(in)
		out := Marshal(first)
		second := parser.Parse(out)
		assert.True(t, diagram.Equivalent(first, second),
			"round trip changed the document\ninput:\n%s\noutput:\n%s", in, out)
	}
}

func TestMarshal_CanonicalLines(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"participant   Alice", "participant Alice"},
		{`actor "The User" as U`, `actor "The User" as U`},
		{"database DB #lightblue", "database DB #lightblue"},
		{"A -> B : Hi", "A->B:Hi"},
		{"A-->>B", "A-->>B"},
		{"A<-->>B:hi", "A<-->>B:hi"},
		{"A->(3)B[#red]:slow", "A->(3)B[#red]:slow"},
		{"note over A , B : hi", "note over A,B:hi"},
		{"==  Phase  ==", "==Phase=="},
		{"autonumber   5", "autonumber 5"},
		{"linear", "linear"},
	}
	for _, tt := range tests {
		got := Marshal(parser.Parse(tt.in))
		assert.Equal(t, tt.want, got, "Marshal(Parse(%q))", tt.in)
	}
}

func TestMarshal_FragmentIndentation(t *testing.T) {
	doc := parser.Parse("alt ok\nA->B:x\nelse fail\nB->A:y\nend")
	want := strings.Join([]string{
		"alt ok",
		"  A->B:x",
		"else fail",
		"  B->A:y",
		"end",
	}, "\n")
	assert.Equal(t, want, Marshal(doc))
}

func TestMarshal_UnparseableLinesSurvive(t *testing.T) {
	const in = "participant A\n)(*& what even\nA->B:x"
	out := Marshal(parser.Parse(in))
	assert.Contains(t, out, ")(*& what even")
}

func TestMarshal_SyntheticErrorsSkipped(t *testing.T) {
	// An unclosed fragment serializes in closed canonical form; the
	// synthesized diagnostic has no source line and must not leak.
	doc := parser.Parse("loop forever\nA->B:x")
	out := Marshal(doc)
	want := strings.Join([]string{
		"loop forever",
		"  A->B:x",
		"end",
	}, "\n")
	assert.Equal(t, want, out)

	reparsed := parser.Parse(out)
	require.Empty(t, reparsed.Errors(), "canonical form is well formed")
}

func TestMarshal_BorderOnlyStyleKeepsSeparator(t *testing.T) {
	doc := diagram.Document{Nodes: diagram.Nodes{
		diagram.Fragment{
			Meta:      diagram.Meta{NodeID: "frag-1"},
			Kind:      diagram.FragmentAlt,
			Condition: "busy",
			Style:     diagram.Style{BorderColor: "red"},
		},
	}}
	out := Marshal(doc)
	assert.Equal(t, "alt #red; busy\nend", out)

	re := parser.Parse(out)
	frag := re.Nodes[0].(diagram.Fragment)
	assert.Equal(t, "red", frag.Style.BorderColor)
	assert.Empty(t, frag.Style.Fill)
	assert.Equal(t, "busy", frag.Condition)
}

func TestMarshal_EmptyDocument(t *testing.T) {
	assert.Equal(t, "", Marshal(diagram.Document{}))
}
