package capture

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jholhewres/nextedit/pkg/nextedit/prompt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(filepath.Join(t.TempDir(), "captures.db"), logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testInput() *prompt.PromptInput {
	return &prompt.PromptInput{
		CursorPath:             "src/main.rs",
		CursorExcerpt:          "prefix\neditable\nsuffix",
		EditableRangeInExcerpt: prompt.ByteRange{Start: 7, End: 15},
		CursorOffsetInExcerpt:  10,
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	input := testInput()
	rendered, err := prompt.FormatPrompt(input, prompt.DefaultFormat)
	if err != nil {
		t.Fatalf("FormatPrompt: %v", err)
	}

	id, err := store.Save(ctx, prompt.DefaultFormat, input, rendered)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty ID")
	}

	record, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if record.Format != prompt.DefaultFormat {
		t.Errorf("Format = %v", record.Format)
	}
	if record.Prompt != rendered {
		t.Errorf("Prompt = %q, want %q", record.Prompt, rendered)
	}
	if record.TokenCount != prompt.EstimateTokens(len(rendered)) {
		t.Errorf("TokenCount = %d", record.TokenCount)
	}
	if record.Input.CursorPath != "src/main.rs" {
		t.Errorf("Input.CursorPath = %q", record.Input.CursorPath)
	}
	if record.Input.EditableRangeInExcerpt != input.EditableRangeInExcerpt {
		t.Errorf("Input.EditableRangeInExcerpt = %+v", record.Input.EditableRangeInExcerpt)
	}
	if record.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestStoreGetMissing(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if _, err := store.Get(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	input := testInput()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := store.Save(ctx, prompt.FormatV0113Ordered, input, "prompt body")
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		ids = append(ids, id)
	}

	records, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, record := range records {
		if record.Format != prompt.FormatV0113Ordered {
			t.Errorf("Format = %v", record.Format)
		}
	}

	all, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != len(ids) {
		t.Errorf("got %d records, want %d", len(all), len(ids))
	}
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, prompt.DefaultFormat, testInput(), "body")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}
