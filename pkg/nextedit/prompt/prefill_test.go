package prompt

import (
	"strings"
	"testing"
)

func prefillInput(editable string) *PromptInput {
	// Pad the excerpt so the editable region sits mid-file.
	excerpt := "// header\n" + editable + "// footer\n"
	return makeInput(excerpt, ByteRange{Start: 10, End: 10 + len(editable)}, 10, nil, nil)
}

func TestPrefillOnlyForPrefillFormat(t *testing.T) {
	t.Parallel()

	input := prefillInput("line one\nline two\nline three\nline four\nline five\n")
	for _, format := range Formats() {
		got, err := Prefill(input, format)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if format == FormatV0211Prefill {
			if got == "" {
				t.Errorf("%s: expected non-empty prefill", format)
			}
		} else if got != "" {
			t.Errorf("%s: expected empty prefill, got %q", format, got)
		}
	}
}

func TestPrefillCutsAfterLastNewline(t *testing.T) {
	t.Parallel()

	// 50 bytes of editable text; the 10% target lands at byte 5, inside
	// "line two", so the cut backs up to the newline after "one".
	editable := "one\ntwo three four five six seven eight nine ten.\n"
	if len(editable) != 50 {
		t.Fatalf("editable region is %d bytes, want 50", len(editable))
	}

	got, err := Prefill(prefillInput(editable), FormatV0211Prefill)
	if err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	if got != "one\n" {
		t.Errorf("Prefill = %q, want %q", got, "one\n")
	}
}

func TestPrefillNeverSplitsBlankLineRuns(t *testing.T) {
	t.Parallel()

	// The newline at the cut point is followed by a blank-line run; the cut
	// extends past the whole run.
	editable := "ab\n\n\n" + strings.Repeat("x", 35)
	if len(editable) != 40 {
		t.Fatalf("editable region is %d bytes, want 40", len(editable))
	}

	got, err := Prefill(prefillInput(editable), FormatV0211Prefill)
	if err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	if got != "ab\n\n\n" {
		t.Errorf("Prefill = %q, want %q", got, "ab\n\n\n")
	}
}

func TestPrefillFallsBackToLastSpace(t *testing.T) {
	t.Parallel()

	editable := "a b " + strings.Repeat("c", 36)
	if len(editable) != 40 {
		t.Fatalf("editable region is %d bytes, want 40", len(editable))
	}

	got, err := Prefill(prefillInput(editable), FormatV0211Prefill)
	if err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	// Target is byte 4 ("a b "); the cut lands before the last space.
	if got != "a b" {
		t.Errorf("Prefill = %q, want %q", got, "a b")
	}
}

func TestPrefillRawPrefixWithoutBoundaries(t *testing.T) {
	t.Parallel()

	editable := strings.Repeat("d", 40)
	got, err := Prefill(prefillInput(editable), FormatV0211Prefill)
	if err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	if got != "dddd" {
		t.Errorf("Prefill = %q, want %q", got, "dddd")
	}
}

func TestPrefillFloorsToCharBoundary(t *testing.T) {
	t.Parallel()

	// 40 bytes with a multibyte rune straddling the 10% target at byte 4.
	editable := "abcé" + strings.Repeat("z", 35)
	if len(editable) != 40 {
		t.Fatalf("editable region is %d bytes, want 40", len(editable))
	}

	got, err := Prefill(prefillInput(editable), FormatV0211Prefill)
	if err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	// The target of 4 bytes falls inside the two-byte é, so the prefill
	// floors to "abc"; with no newline or space it returns the raw prefix.
	if got != "abc" {
		t.Errorf("Prefill = %q, want %q", got, "abc")
	}
}

func TestPrefillRejectsMalformedRange(t *testing.T) {
	t.Parallel()

	input := makeInput("short", ByteRange{Start: 0, End: 50}, 0, nil, nil)
	if _, err := Prefill(input, FormatV0211Prefill); err == nil {
		t.Fatal("expected range error, got nil")
	}
}
