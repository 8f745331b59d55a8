// Package prompt – prefill.go computes the partial-answer seed for the one
// format that supports prefilling.
package prompt

import (
	"strings"
	"unicode/utf8"
)

// floorCharBoundary returns the largest offset <= i that falls on a UTF-8
// sequence boundary of s, clamped to len(s).
func floorCharBoundary(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// Prefill returns the partial-answer seed for the input: up to PrefillRatio
// of the editable region, cut on a token-friendly boundary. Only the
// V0211Prefill format produces a seed; every other format returns "".
//
// The cut point prefers the last newline within the target length. In
// Qwen2.5-Coder a \n always ends a token (e.g. `;\n`, ` {\n`), and \n\n or
// \n\n\n are single tokens, so the cut includes the newline and consumes any
// run of newlines immediately after it rather than splitting a blank-line
// run. Without a newline it falls back to cutting before the last space, and
// with neither it returns the raw prefix.
func Prefill(input *PromptInput, format Format) (string, error) {
	if format != FormatV0211Prefill {
		return "", nil
	}
	if err := validateRange(input.CursorExcerpt, input.EditableRangeInExcerpt, "editable range"); err != nil {
		return "", err
	}

	editableRegion := input.CursorExcerpt[input.EditableRangeInExcerpt.Start:input.EditableRangeInExcerpt.End]

	prefillLen := int(float64(len(editableRegion)) * PrefillRatio)
	prefillLen = floorCharBoundary(editableRegion, prefillLen)
	prefill := editableRegion[:prefillLen]

	if pos := strings.LastIndexByte(prefill, '\n'); pos >= 0 {
		end := pos + 1
		for end < len(editableRegion) && editableRegion[end] == '\n' {
			end++
		}
		return editableRegion[:end], nil
	}
	if pos := strings.LastIndexByte(prefill, ' '); pos >= 0 {
		return prefill[:pos], nil
	}
	return prefill, nil
}
