package prompt

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEventJSONDiscriminator(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(makeEvent("src/lib.rs", "-a\n+b\n"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"event":"BufferChange"`) {
		t.Errorf("missing event discriminator: %s", data)
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if event.Kind != EventBufferChange || event.Path != "src/lib.rs" || event.Diff != "-a\n+b\n" {
		t.Errorf("round trip mismatch: %+v", event)
	}
}

func TestPromptInputJSONFieldNames(t *testing.T) {
	t.Parallel()

	raw := `{
		"cursor_path": "src/main.rs",
		"cursor_excerpt": "fn main() {}\n",
		"editable_range_in_excerpt": {"start": 0, "end": 13},
		"cursor_offset_in_excerpt": 3,
		"excerpt_start_row": 42,
		"events": [
			{"event": "BufferChange", "path": "a.rs", "old_path": "a.rs", "diff": "-x\n", "predicted": true, "in_open_source_repo": false}
		],
		"related_files": [
			{"path": "b.rs", "max_row": 10, "excerpts": [{"row_range": {"start": 2, "end": 4}, "text": "let y = 2;\n"}], "in_open_source_repo": true}
		],
		"excerpt_ranges": {
			"editable_150": {"start": 0, "end": 5},
			"editable_180": {"start": 0, "end": 8},
			"editable_350": {"start": 0, "end": 13},
			"editable_150_context_350": {"start": 0, "end": 13},
			"editable_180_context_350": {"start": 0, "end": 13},
			"editable_350_context_150": {"start": 0, "end": 13}
		},
		"preferred_model": "Zeta2",
		"in_open_source_repo": true
	}`

	var input PromptInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if input.CursorPath != "src/main.rs" {
		t.Errorf("CursorPath = %q", input.CursorPath)
	}
	if input.EditableRangeInExcerpt != (ByteRange{Start: 0, End: 13}) {
		t.Errorf("EditableRangeInExcerpt = %+v", input.EditableRangeInExcerpt)
	}
	if input.ExcerptStartRow == nil || *input.ExcerptStartRow != 42 {
		t.Errorf("ExcerptStartRow = %v", input.ExcerptStartRow)
	}
	if len(input.Events) != 1 || input.Events[0].Kind != EventBufferChange || !input.Events[0].Predicted {
		t.Errorf("Events = %+v", input.Events)
	}
	if len(input.RelatedFiles) != 1 || input.RelatedFiles[0].MaxRow != 10 {
		t.Errorf("RelatedFiles = %+v", input.RelatedFiles)
	}
	if got := input.RelatedFiles[0].Excerpts[0].RowRange; got != (RowRange{Start: 2, End: 4}) {
		t.Errorf("excerpt row range = %+v", got)
	}
	if input.ExcerptRanges == nil || input.ExcerptRanges.Editable180 != (ByteRange{Start: 0, End: 8}) {
		t.Errorf("ExcerptRanges = %+v", input.ExcerptRanges)
	}
	if input.PreferredModel != ModelZeta2 {
		t.Errorf("PreferredModel = %q", input.PreferredModel)
	}
	if !input.InOpenSourceRepo {
		t.Error("InOpenSourceRepo = false")
	}
}

func TestPromptInputJSONOmitsOptionalFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(&PromptInput{CursorPath: "x.rs", CursorExcerpt: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, absent := range []string{"excerpt_start_row", "excerpt_ranges", "preferred_model"} {
		if strings.Contains(string(data), absent) {
			t.Errorf("expected %q omitted when unset: %s", absent, data)
		}
	}
}

func TestWriteRelatedFilesRanges(t *testing.T) {
	t.Parallel()

	files := []RelatedFile{
		{
			Path:     "a.rs",
			MaxRow:   1,
			Excerpts: []RelatedExcerpt{{RowRange: RowRange{Start: 0, End: 1}, Text: "one\n"}},
		},
		{
			Path:     "b.rs",
			MaxRow:   5,
			Excerpts: []RelatedExcerpt{{RowRange: RowRange{Start: 0, End: 1}, Text: "two"}},
		},
	}

	var sb strings.Builder
	ranges := WriteRelatedFiles(&sb, files)

	want := "<|file_sep|>a.rs\none\n" + "<|file_sep|>b.rs\ntwo\n...\n"
	if sb.String() != want {
		t.Errorf("rendered = %q, want %q", sb.String(), want)
	}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	first := "<|file_sep|>a.rs\none\n"
	if ranges[0] != (ByteRange{Start: 0, End: len(first)}) {
		t.Errorf("ranges[0] = %+v", ranges[0])
	}
	if ranges[1] != (ByteRange{Start: len(first), End: len(want)}) {
		t.Errorf("ranges[1] = %+v", ranges[1])
	}
	if sb.String()[ranges[1].Start:ranges[1].End] != "<|file_sep|>b.rs\ntwo\n...\n" {
		t.Errorf("ranges[1] slice = %q", sb.String()[ranges[1].Start:ranges[1].End])
	}
}
