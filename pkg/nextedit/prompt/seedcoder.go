// Package prompt – seedcoder.go renders the Seed-Coder wire format, which
// uses SPM (suffix-prefix-middle) FIM order and its own token vocabulary:
// bracketed FIM tokens and StarCoder-style <filename> file markers instead
// of <|file_sep|>. All context (related files, edit history) goes into the
// prefix section; the suffix section holds only the code after the editable
// region.
//
// Example prompt:
//
//	<[fim-suffix]>
//	code after editable region
//	<[fim-prefix]><filename>related/file.py
//	related file content
//
//	<filename>edit_history
//	--- a/some_file.py
//	+++ b/some_file.py
//	-old
//	+new
//
//	<filename>path/to/target_file.py
//	code before editable region
//	<<<<<<< CURRENT
//	code that
//	needs to<|user_cursor|>
//	be rewritten
//	=======
//	<[fim-middle]>
//
// The model answers with the updated region and closes with
// `>>>>>>> UPDATED`.
package prompt

import "strings"

const (
	seedFIMSuffix  = "<[fim-suffix]>"
	seedFIMPrefix  = "<[fim-prefix]>"
	seedFIMMiddle  = "<[fim-middle]>"
	seedFileMarker = "<filename>"
)

// formatSeedCoderPrompt assembles the complete Seed-Coder payload. Unlike
// the other formats it has two non-truncatable pieces — the suffix section
// and the cursor prefix section — whose combined cost comes off the budget
// before history and related files are considered.
func formatSeedCoderPrompt(path, context string, editable ByteRange, cursor int, events []Event, relatedFiles []RelatedFile, maxTokens int) string {
	suffixSection := buildSeedCoderSuffixSection(context, editable)
	cursorPrefixSection := buildSeedCoderCursorPrefixSection(path, context, editable, cursor)

	suffixTokens := EstimateTokens(len(suffixSection))
	cursorPrefixTokens := EstimateTokens(len(cursorPrefixSection))
	budgetAfterCursor := max(maxTokens-(suffixTokens+cursorPrefixTokens), 0)

	editHistorySection := formatEditHistoryWithinBudget(events, seedFileMarker, "edit_history", budgetAfterCursor)
	budgetAfterEditHistory := max(budgetAfterCursor-EstimateTokens(len(editHistorySection)), 0)

	relatedFilesSection := formatRelatedFilesWithinBudget(relatedFiles, seedFileMarker, budgetAfterEditHistory)

	var payload strings.Builder
	payload.WriteString(suffixSection)
	payload.WriteString(seedFIMPrefix)
	payload.WriteString(relatedFilesSection)
	if relatedFilesSection != "" {
		payload.WriteByte('\n')
	}
	payload.WriteString(editHistorySection)
	if editHistorySection != "" {
		payload.WriteByte('\n')
	}
	payload.WriteString(cursorPrefixSection)
	payload.WriteString(seedFIMMiddle)
	return payload.String()
}

// buildSeedCoderSuffixSection renders the suffix marker followed by the code
// after the editable region. In SPM order this opens the prompt.
func buildSeedCoderSuffixSection(context string, editable ByteRange) string {
	var section strings.Builder
	section.WriteString(seedFIMSuffix)
	section.WriteString(context[editable.End:])
	terminateLine(&section)
	return section.String()
}

// buildSeedCoderCursorPrefixSection renders the cursor file marker, the code
// before the editable region, and the open merge-conflict block holding the
// editable text with the cursor marker spliced in.
func buildSeedCoderCursorPrefixSection(path, context string, editable ByteRange, cursor int) string {
	var section strings.Builder
	section.WriteString(seedFileMarker)
	section.WriteString(path)
	section.WriteByte('\n')

	section.WriteString(context[:editable.Start])
	section.WriteString(mergeStartMarker)
	writeEditableWithCursor(&section, context, editable, cursor)
	terminateLine(&section)
	section.WriteString(mergeSeparator)
	return section.String()
}
