package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/seqline/pkg/diagram"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2024-01-01" {
		t.Errorf("date = %q, want %q", date, "2024-01-01")
	}
}

func writeTestSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diagram.seq")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunParse_WritesDocumentJSON(t *testing.T) {
	src := writeTestSource(t, "participant Alice\nparticipant Bob\nAlice->Bob:Hi")
	out := filepath.Join(t.TempDir(), "doc.json")

	opts := parseOpts{output: out, quiet: true}
	if err := runParse(context.Background(), &opts, src); err != nil {
		t.Fatalf("runParse() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	doc, err := diagram.ReadDocument(f)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	if doc.Len() != 3 {
		t.Errorf("document has %d nodes, want 3", doc.Len())
	}
}

func TestRunParse_MissingFile(t *testing.T) {
	opts := parseOpts{quiet: true}
	if err := runParse(context.Background(), &opts, filepath.Join(t.TempDir(), "absent.seq")); err == nil {
		t.Error("runParse() on a missing file must error")
	}
}

func TestRunLayout_WritesGeometryJSON(t *testing.T) {
	src := writeTestSource(t, "participant A\nparticipant B\nA->B:x")
	out := filepath.Join(t.TempDir(), "geometry.json")

	opts := layoutOpts{output: out}
	if err := runLayout(context.Background(), &opts, src); err != nil {
		t.Fatalf("runLayout() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var result struct {
		Participants []struct {
			Alias   string  `json:"alias"`
			CenterX float64 `json:"centerX"`
		} `json:"participants"`
		Width float64 `json:"width"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("geometry output is not valid JSON: %v", err)
	}
	if len(result.Participants) != 2 {
		t.Fatalf("%d participants, want 2", len(result.Participants))
	}
	if result.Participants[0].CenterX >= result.Participants[1].CenterX {
		t.Error("participants out of order in geometry output")
	}
}

func TestRunLayout_ConfigOverrides(t *testing.T) {
	src := writeTestSource(t, "participant A\nparticipant B")
	cfgPath := filepath.Join(t.TempDir(), "layout.toml")
	if err := os.WriteFile(cfgPath, []byte("participant_spacing = 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "geometry.json")

	opts := layoutOpts{config: cfgPath, output: out}
	if err := runLayout(context.Background(), &opts, src); err != nil {
		t.Fatalf("runLayout() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var result struct {
		Width float64 `json:"width"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatal(err)
	}
	if result.Width < 500 {
		t.Errorf("Width = %v, want the overridden spacing applied", result.Width)
	}
}

func TestRunFmt_RewritesInPlace(t *testing.T) {
	src := writeTestSource(t, "participant   Alice\nalt ok\nA -> B : x\nend")

	opts := fmtOpts{write: true}
	if err := runFmt(context.Background(), &opts, src); err != nil {
		t.Fatalf("runFmt() error = %v", err)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	want := "participant Alice\nalt ok\n  A->B:x\nend\n"
	if string(data) != want {
		t.Errorf("formatted = %q, want %q", data, want)
	}

	// A second run is a no-op.
	if err := runFmt(context.Background(), &opts, src); err != nil {
		t.Fatalf("second runFmt() error = %v", err)
	}
	again, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != want {
		t.Error("fmt must be idempotent")
	}
}
