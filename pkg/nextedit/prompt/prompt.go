// Package prompt compiles next-edit prediction requests into bounded text
// payloads. Given an editing context (cursor excerpt, edit history, related
// file excerpts) and a wire format, it produces the exact byte sequence the
// corresponding prediction model expects: the cursor section is always
// included in full, then edit history and related files fill whatever budget
// remains, in that priority order.
//
// Everything here is a pure function of its input: no I/O, no shared state,
// safe for concurrent use.
package prompt

import "strings"

// CursorMarker is the literal token spliced into the editable region at the
// cursor position for every current format.
const CursorMarker = "<|user_cursor|>"

// MaxPromptTokens is the default token budget for a compiled prompt.
const MaxPromptTokens = 4096

// PrefillRatio is how much of the editable region may be used as a prefill
// seed. Larger values can make generation more robust, but the seeded part
// becomes non-editable.
const PrefillRatio = 0.1

// EstimateTokens approximates the token count of byteLen bytes of text. The
// ratio is fixed at one token per three bytes, rounding down; it is a
// deliberate deterministic approximation rather than a real tokenizer, and
// every budget decision in this package uses it.
func EstimateTokens(byteLen int) int {
	return byteLen / 3
}

// FormatPrompt compiles the input to the given format under the default
// token budget.
func FormatPrompt(input *PromptInput, format Format) (string, error) {
	return FormatPromptWithBudget(input, format, MaxPromptTokens)
}

// FormatPromptWithBudget compiles the input to the given format, packing
// edit history and related files around the cursor section until the token
// budget is spent. The cursor section itself is never truncated or omitted,
// even when it alone exceeds the budget.
func FormatPromptWithBudget(input *PromptInput, format Format, maxTokens int) (string, error) {
	if err := input.Validate(format); err != nil {
		return "", err
	}

	context, editable, cursor := resolveCursorRegion(input, format)
	path := input.CursorPath

	if format == FormatV0211SeedCoder {
		return formatSeedCoderPrompt(path, context, editable, cursor, input.Events, input.RelatedFiles, maxTokens), nil
	}

	var cursorSection strings.Builder
	switch format {
	case FormatV0112MiddleAtEnd:
		writeMiddleAtEndSection(&cursorSection, path, context, editable, cursor)
	case FormatV0113Ordered, FormatV0114180EditableRegion:
		writeOrderedSection(&cursorSection, path, context, editable, cursor)
	case FormatV0120GitMergeMarkers:
		writeMergeMarkersSection(&cursorSection, path, context, editable, cursor)
	case FormatV0131GitMergeMarkersPrefix, FormatV0211Prefill:
		writeMergeMarkersPrefixSection(&cursorSection, path, context, editable, cursor)
	}

	cursorTokens := EstimateTokens(cursorSection.Len())
	budgetAfterCursor := max(maxTokens-cursorTokens, 0)

	editHistorySection := formatEditHistoryWithinBudget(input.Events, fileSep, "edit history", budgetAfterCursor)
	budgetAfterEditHistory := max(budgetAfterCursor-EstimateTokens(len(editHistorySection)), 0)

	relatedFilesSection := formatRelatedFilesWithinBudget(input.RelatedFiles, fileSep, budgetAfterEditHistory)

	// Budgets are computed cursor-first, but the payload places the lowest
	// priority content first so the cursor section sits nearest the answer.
	var payload strings.Builder
	payload.Grow(len(relatedFilesSection) + len(editHistorySection) + cursorSection.Len())
	payload.WriteString(relatedFilesSection)
	payload.WriteString(editHistorySection)
	payload.WriteString(cursorSection.String())
	return payload.String(), nil
}

// CleanOutput strips the trailing merge end marker from model output for the
// three formats that close their answers with one. Other formats pass
// through unchanged. It is a pure suffix strip; marker balance elsewhere in
// the text is not validated.
func CleanOutput(output string, format Format) string {
	switch format {
	case FormatV0120GitMergeMarkers, FormatV0131GitMergeMarkersPrefix, FormatV0211SeedCoder:
		return strings.TrimSuffix(output, mergeEndMarker)
	default:
		return output
	}
}
