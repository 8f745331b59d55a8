package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jholhewres/nextedit/pkg/nextedit/prompt"
)

// runCmd executes the root command with args and returns its stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd("test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("running %v: %v", args, err)
	}
	return out.String()
}

func writeRequest(t *testing.T) string {
	t.Helper()
	input := &prompt.PromptInput{
		CursorPath:             "src/main.rs",
		CursorExcerpt:          "prefix\neditable\nsuffix",
		EditableRangeInExcerpt: prompt.ByteRange{Start: 7, End: 15},
		CursorOffsetInExcerpt:  10,
	}
	data, err := json.Marshal(input)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "request.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing request: %v", err)
	}
	return path
}

func TestCompileCommand(t *testing.T) {
	path := writeRequest(t)

	out := runCmd(t, "compile", "--format", "ordered", path)
	if !strings.Contains(out, "<|fim_prefix|>") {
		t.Errorf("missing prefix token:\n%s", out)
	}
	if !strings.Contains(out, "edi"+prompt.CursorMarker+"table") {
		t.Errorf("cursor marker misplaced:\n%s", out)
	}
}

func TestCompileCommandRejectsBadFormat(t *testing.T) {
	path := writeRequest(t)

	root := NewRootCmd("test")
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"compile", "--format", "nope", path})
	if err := root.Execute(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestTokensCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 30)), 0o600); err != nil {
		t.Fatalf("writing text: %v", err)
	}

	out := runCmd(t, "tokens", path)
	if strings.TrimSpace(out) != "30 bytes, ~10 tokens" {
		t.Errorf("tokens = %q", strings.TrimSpace(out))
	}
}

func TestCleanCommandLegacy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.txt")
	body := "<|editable_region_start|>\nfn main() {}\n<|editable_region_end|>\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing output: %v", err)
	}

	out := runCmd(t, "clean", "--legacy", path)
	if out != "fn main() {}" {
		t.Errorf("clean --legacy = %q", out)
	}
}

func TestCleanCommandStripsMergeMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.txt")
	if err := os.WriteFile(path, []byte("done\n>>>>>>> UPDATED\n"), 0o600); err != nil {
		t.Fatalf("writing output: %v", err)
	}

	out := runCmd(t, "clean", "--format", "0120", path)
	if out != "done\n" {
		t.Errorf("clean = %q", out)
	}
}

func TestFormatsCommand(t *testing.T) {
	out := runCmd(t, "formats")
	for _, format := range prompt.Formats() {
		if !strings.Contains(out, format.String()) {
			t.Errorf("missing format %s:\n%s", format, out)
		}
	}
	if !strings.Contains(out, "* "+prompt.DefaultFormat.String()) {
		t.Errorf("default not marked:\n%s", out)
	}
}
