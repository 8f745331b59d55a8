// Package prompt – input.go defines the request value a caller builds once
// per prediction and passes read-only through the compiler, plus its JSON
// wire encoding.
package prompt

// ByteRange is a half-open [Start, End) byte offset range within some text.
type ByteRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes the range covers.
func (r ByteRange) Len() int {
	return r.End - r.Start
}

// RowRange is a half-open [Start, End) line number range within a file.
type RowRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ModelKind is the client's preferred prediction model generation. The
// server may override it.
type ModelKind string

const (
	ModelZeta1 ModelKind = "Zeta1"
	ModelZeta2 ModelKind = "Zeta2"
)

// ExcerptRanges holds byte offset ranges within the cursor excerpt,
// precomputed upstream for different editable and context token budgets so
// the server can narrow the excerpt to whichever model it uses. Every range
// must be a valid sub-range of the excerpt, and each editable range must be
// nested inside its paired context range.
type ExcerptRanges struct {
	// Editable150 is the editable region computed with a 150-token budget.
	Editable150 ByteRange `json:"editable_150"`
	// Editable180 is the editable region computed with a 180-token budget.
	Editable180 ByteRange `json:"editable_180"`
	// Editable350 is the editable region computed with a 350-token budget.
	Editable350 ByteRange `json:"editable_350"`
	// Editable150Context350 is the context boundary when using Editable150
	// with 350 tokens of additional context.
	Editable150Context350 ByteRange `json:"editable_150_context_350"`
	// Editable180Context350 is the context boundary when using Editable180
	// with 350 tokens of additional context.
	Editable180Context350 ByteRange `json:"editable_180_context_350"`
	// Editable350Context150 is the context boundary when using Editable350
	// with 150 tokens of additional context.
	Editable350Context150 ByteRange `json:"editable_350_context_150"`
}

// EventKind discriminates edit-history event variants on the wire via the
// "event" JSON field.
type EventKind string

// EventBufferChange is the only event kind clients currently produce: a
// unified diff applied to one buffer, possibly across a rename.
const EventBufferChange EventKind = "BufferChange"

// Event is one entry in the edit history, ordered oldest to newest in
// PromptInput.Events. Diff is an opaque unified-diff body produced upstream.
type Event struct {
	Kind             EventKind `json:"event"`
	Path             string    `json:"path"`
	OldPath          string    `json:"old_path"`
	Diff             string    `json:"diff"`
	Predicted        bool      `json:"predicted"`
	InOpenSourceRepo bool      `json:"in_open_source_repo"`
}

// RelatedFile is a prioritized source of grounding context. Files earlier in
// PromptInput.RelatedFiles are more likely to survive budget truncation.
type RelatedFile struct {
	Path string `json:"path"`
	// MaxRow is the total line count of the source file. Excerpts whose row
	// range ends before it are followed by an ellipsis marker in the prompt.
	MaxRow           int              `json:"max_row"`
	Excerpts         []RelatedExcerpt `json:"excerpts"`
	InOpenSourceRepo bool             `json:"in_open_source_repo"`
}

// RelatedExcerpt is a contiguous slice of a related file's text together
// with the line range it covers.
type RelatedExcerpt struct {
	RowRange RowRange `json:"row_range"`
	Text     string   `json:"text"`
}

// PromptInput is the full editing context for one prediction request. It is
// built once by the caller and treated as immutable by every operation in
// this package; concurrent compilations over the same input are safe.
type PromptInput struct {
	// CursorPath identifies the file the cursor is in. Treated as an opaque
	// identifier and only ever echoed into marker lines.
	CursorPath string `json:"cursor_path"`

	// CursorExcerpt is the text window around the cursor.
	CursorExcerpt string `json:"cursor_excerpt"`

	// EditableRangeInExcerpt is the byte range of CursorExcerpt the model is
	// allowed to rewrite.
	EditableRangeInExcerpt ByteRange `json:"editable_range_in_excerpt"`

	// CursorOffsetInExcerpt is the cursor's byte offset within CursorExcerpt.
	CursorOffsetInExcerpt int `json:"cursor_offset_in_excerpt"`

	// ExcerptStartRow, when present, is the line number CursorExcerpt starts
	// at. Only the legacy renderer consults it, to detect start of file.
	ExcerptStartRow *int `json:"excerpt_start_row,omitempty"`

	// Events is the edit history, oldest first.
	Events []Event `json:"events"`

	// RelatedFiles are grounding excerpts in caller-assigned priority order.
	RelatedFiles []RelatedFile `json:"related_files"`

	// ExcerptRanges, when present, means the excerpt was computed with a
	// larger budget and these ranges let the compiler narrow it per format.
	// When absent, the excerpt IS the context region and
	// EditableRangeInExcerpt is the only editable range.
	ExcerptRanges *ExcerptRanges `json:"excerpt_ranges,omitempty"`

	// PreferredModel is the client's preferred model. The server may
	// override it; this package passes it through untouched.
	PreferredModel ModelKind `json:"preferred_model,omitempty"`

	InOpenSourceRepo bool `json:"in_open_source_repo"`
}
