// Package prompt – legacy.go implements the first-generation prompt format
// and its output cleaner. The legacy renderer predates budgeted assembly: it
// emits a fixed instruction header, every event oldest-first with no
// truncation, a fenced excerpt using its own marker vocabulary, and a fixed
// response header. It is kept for the models still served with it.
package prompt

import (
	"fmt"
	"strings"
)

// Legacy marker vocabulary. The cursor marker differs from CursorMarker;
// CleanLegacyOutput converts between the two.
const (
	LegacyCursorMarker              = "<|user_cursor_is_here|>"
	LegacyStartOfFileMarker         = "<|start_of_file|>"
	LegacyEditableRegionStartMarker = "<|editable_region_start|>"
	LegacyEditableRegionEndMarker   = "<|editable_region_end|>"
)

// MaxLegacyEventTokens is the default budget for FormatLegacyEventsWithBudget.
const MaxLegacyEventTokens = 500

const legacyInstructionHeader = "### Instruction:\n" +
	"You are a code completion assistant and your task is to analyze user edits and then rewrite an " +
	"excerpt that the user provides, suggesting the appropriate edits within the excerpt, taking " +
	"into account the cursor location.\n\n" +
	"### User Edits:\n\n"

const legacyExcerptHeader = "\n\n### User Excerpt:\n\n"

const legacyResponseHeader = "\n\n### Response:\n"

// FormatLegacyPrompt assembles a complete legacy prompt from pre-rendered
// events and excerpt sections.
func FormatLegacyPrompt(inputEvents, inputExcerpt string) string {
	var prompt strings.Builder
	prompt.Grow(len(legacyInstructionHeader) + len(inputEvents) +
		len(legacyExcerptHeader) + len(inputExcerpt) + len(legacyResponseHeader))
	prompt.WriteString(legacyInstructionHeader)
	prompt.WriteString(inputEvents)
	prompt.WriteString(legacyExcerptHeader)
	prompt.WriteString(inputExcerpt)
	prompt.WriteString(legacyResponseHeader)
	return prompt.String()
}

// FormatLegacyPromptFromInput renders a legacy prompt from a PromptInput
// using the given editable and context byte ranges within the cursor
// excerpt.
func FormatLegacyPromptFromInput(input *PromptInput, editableRange, contextRange ByteRange) (string, error) {
	excerpt := input.CursorExcerpt
	if err := validateRange(excerpt, contextRange, "context range"); err != nil {
		return "", err
	}
	if err := validateRange(excerpt, editableRange, "editable range"); err != nil {
		return "", err
	}
	if editableRange.Start < contextRange.Start || editableRange.End > contextRange.End {
		return "", fmt.Errorf("%w: editable range [%d, %d) not nested in context range [%d, %d)",
			ErrInvalidInput, editableRange.Start, editableRange.End, contextRange.Start, contextRange.End)
	}
	cursor := input.CursorOffsetInExcerpt
	if cursor < editableRange.Start || cursor > editableRange.End {
		return "", fmt.Errorf("%w: cursor offset %d outside editable range [%d, %d)",
			ErrInvalidInput, cursor, editableRange.Start, editableRange.End)
	}

	events := FormatLegacyEvents(input.Events)
	excerptSection := formatLegacyExcerpt(input, editableRange, contextRange)
	return FormatLegacyPrompt(events, excerptSection), nil
}

// FormatLegacyEvents renders every event oldest-first, separated by blank
// lines, with no budget applied.
func FormatLegacyEvents(events []Event) string {
	var result strings.Builder
	for _, event := range events {
		eventString := formatLegacyEvent(event)
		if eventString == "" {
			continue
		}
		if result.Len() > 0 {
			result.WriteString("\n\n")
		}
		result.WriteString(eventString)
	}
	return result.String()
}

// FormatLegacyEventsWithBudget renders events newest-first until the budget
// runs out, then returns them in chronological order. The first event that
// does not fit stops the scan; older events are not considered.
func FormatLegacyEventsWithBudget(events []Event, maxTokens int) string {
	var included []string
	remaining := maxTokens
	for i := len(events) - 1; i >= 0; i-- {
		eventString := formatLegacyEvent(events[i])
		eventTokens := EstimateTokens(len(eventString))
		if eventTokens > remaining {
			break
		}
		included = append(included, eventString)
		remaining -= eventTokens
	}

	var result strings.Builder
	for i := len(included) - 1; i >= 0; i-- {
		if result.Len() > 0 {
			result.WriteString("\n\n")
		}
		result.WriteString(included[i])
	}
	return result.String()
}

// formatLegacyEvent renders one event in legacy style: an optional rename
// note when the path changed, then the diff in a fenced block. Events with
// neither produce an empty string and are dropped by the callers.
func formatLegacyEvent(event Event) string {
	switch event.Kind {
	case EventBufferChange:
		var prompt strings.Builder
		if event.OldPath != event.Path {
			fmt.Fprintf(&prompt, "User renamed %s to %s\n\n", event.OldPath, event.Path)
		}
		if event.Diff != "" {
			fmt.Fprintf(&prompt, "User edited %s:\n```diff\n%s\n```", event.Path, event.Diff)
		}
		return prompt.String()
	}
	return ""
}

// formatLegacyExcerpt renders the fenced excerpt block: context before the
// editable region, the marked editable region with the legacy cursor marker
// spliced in, and context after. A start-of-file marker is emitted when the
// excerpt begins at row zero and the context range starts at byte zero.
func formatLegacyExcerpt(input *PromptInput, editableRange, contextRange ByteRange) string {
	excerpt := input.CursorExcerpt
	cursor := input.CursorOffsetInExcerpt

	var prompt strings.Builder
	prompt.WriteString("```")
	prompt.WriteString(input.CursorPath)
	prompt.WriteByte('\n')

	startsAtFileBeginning := input.ExcerptStartRow != nil &&
		*input.ExcerptStartRow == 0 && contextRange.Start == 0
	if startsAtFileBeginning {
		prompt.WriteString(LegacyStartOfFileMarker)
		prompt.WriteByte('\n')
	}

	prompt.WriteString(excerpt[contextRange.Start:editableRange.Start])

	prompt.WriteString(LegacyEditableRegionStartMarker)
	prompt.WriteByte('\n')
	prompt.WriteString(excerpt[editableRange.Start:cursor])
	prompt.WriteString(LegacyCursorMarker)
	prompt.WriteString(excerpt[cursor:editableRange.End])
	prompt.WriteByte('\n')
	prompt.WriteString(LegacyEditableRegionEndMarker)

	prompt.WriteString(excerpt[editableRange.End:contextRange.End])
	prompt.WriteString("\n```")

	return prompt.String()
}

// CleanLegacyOutput extracts the editable region content from legacy model
// output and re-inserts the canonical cursor marker at the position the
// legacy marker occupied. Missing region markers default to the whole
// string; without a cursor marker the extracted content is returned as is.
func CleanLegacyOutput(output string) string {
	content := strings.ReplaceAll(output, LegacyCursorMarker, "")

	contentStart := 0
	if pos := strings.Index(content, LegacyEditableRegionStartMarker); pos >= 0 {
		contentStart = pos + len(LegacyEditableRegionStartMarker)
		if contentStart < len(content) && content[contentStart] == '\n' {
			contentStart++
		}
	}

	contentEnd := len(content)
	if pos := strings.Index(content, LegacyEditableRegionEndMarker); pos >= 0 {
		contentEnd = pos
		if pos > 0 && content[pos-1] == '\n' {
			contentEnd = pos - 1
		}
	}

	if contentStart > contentEnd {
		return ""
	}
	extracted := content[contentStart:contentEnd]

	cursorPos := strings.Index(output, LegacyCursorMarker)
	if cursorPos < 0 {
		return extracted
	}

	// Map the raw cursor position to an offset inside the extracted region
	// by measuring the text consumed before the region start marker.
	textBeforeCursor := strings.ReplaceAll(output[:cursorPos], LegacyCursorMarker, "")
	consumed := 0
	if pos := strings.Index(textBeforeCursor, LegacyEditableRegionStartMarker); pos >= 0 {
		consumed = pos + len(LegacyEditableRegionStartMarker)
		if consumed < len(textBeforeCursor) && textBeforeCursor[consumed] == '\n' {
			consumed++
		}
	}
	offset := min(max(cursorPos-consumed, 0), len(extracted))

	return extracted[:offset] + CursorMarker + extracted[offset:]
}
