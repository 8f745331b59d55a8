// Package prompt – render.go holds the per-format cursor section writers.
// Each writer produces the non-truncatable block that names the cursor file,
// brackets the editable region with the format's markers, and splices the
// cursor marker at the cursor offset without altering any surrounding byte.
package prompt

import "strings"

// Special tokens shared by the FIM-style format families. The Seed-Coder
// vocabulary lives in seedcoder.go.
const (
	fimPrefix = "<|fim_prefix|>"
	fimSuffix = "<|fim_suffix|>"
	fimMiddle = "<|fim_middle|>"
	fileSep   = "<|file_sep|>"
)

// Git-style merge conflict markers used by the merge-marker formats. The
// model's continuation is expected to end with the end marker, which
// CleanOutput strips.
const (
	mergeStartMarker = "<<<<<<< CURRENT\n"
	mergeSeparator   = "=======\n"
	mergeEndMarker   = ">>>>>>> UPDATED\n"
)

// selectExcerptRanges picks the (editable, context) range pair for a format.
// The two earliest formats were trained with a 150-token editable region;
// everything since uses 180.
func selectExcerptRanges(ranges *ExcerptRanges, format Format) (editable, context ByteRange) {
	switch format {
	case FormatV0112MiddleAtEnd, FormatV0113Ordered:
		return ranges.Editable150, ranges.Editable150Context350
	default:
		return ranges.Editable180, ranges.Editable180Context350
	}
}

// resolveCursorRegion narrows the excerpt to the format's context window and
// re-bases the editable range and cursor offset into it. Without precomputed
// ranges the full excerpt passes through unchanged.
func resolveCursorRegion(input *PromptInput, format Format) (context string, editable ByteRange, cursor int) {
	if input.ExcerptRanges == nil {
		return input.CursorExcerpt, input.EditableRangeInExcerpt, input.CursorOffsetInExcerpt
	}

	editableRange, contextRange := selectExcerptRanges(input.ExcerptRanges, format)
	context = input.CursorExcerpt[contextRange.Start:contextRange.End]
	editable = ByteRange{
		Start: editableRange.Start - contextRange.Start,
		End:   editableRange.End - contextRange.Start,
	}
	cursor = input.CursorOffsetInExcerpt - contextRange.Start
	return context, editable, cursor
}

// terminateLine appends a newline unless the builder already ends with one,
// so the marker written next starts at column 0.
func terminateLine(sb *strings.Builder) {
	if !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteByte('\n')
	}
}

// writeEditableWithCursor writes the editable slice of context with the
// cursor marker spliced in at the cursor offset.
func writeEditableWithCursor(sb *strings.Builder, context string, editable ByteRange, cursor int) {
	sb.WriteString(context[editable.Start:cursor])
	sb.WriteString(CursorMarker)
	sb.WriteString(context[cursor:editable.End])
}

// writeMiddleAtEndSection renders the V0112 layout: prefix and suffix blocks
// first, then the marked "current" middle, then the "updated" continuation
// marker the model answers after.
func writeMiddleAtEndSection(sb *strings.Builder, path, context string, editable ByteRange, cursor int) {
	sb.WriteString(fileSep)
	sb.WriteString(path)
	sb.WriteByte('\n')

	sb.WriteString(fimPrefix)
	sb.WriteByte('\n')
	sb.WriteString(context[:editable.Start])

	sb.WriteString(fimSuffix)
	sb.WriteByte('\n')
	sb.WriteString(context[editable.End:])
	terminateLine(sb)

	sb.WriteString(fimMiddle)
	sb.WriteString("current\n")
	writeEditableWithCursor(sb, context, editable, cursor)
	terminateLine(sb)

	sb.WriteString(fimMiddle)
	sb.WriteString("updated\n")
}

// writeOrderedSection renders the V0113/V0114 layout: the same FIM tokens in
// document order, with the suffix after the marked current region.
func writeOrderedSection(sb *strings.Builder, path, context string, editable ByteRange, cursor int) {
	sb.WriteString(fileSep)
	sb.WriteString(path)
	sb.WriteByte('\n')

	sb.WriteString(fimPrefix)
	sb.WriteByte('\n')
	sb.WriteString(context[:editable.Start])
	terminateLine(sb)

	sb.WriteString(fimMiddle)
	sb.WriteString("current\n")
	writeEditableWithCursor(sb, context, editable, cursor)
	terminateLine(sb)

	sb.WriteString(fimSuffix)
	sb.WriteByte('\n')
	sb.WriteString(context[editable.End:])
	terminateLine(sb)

	sb.WriteString(fimMiddle)
	sb.WriteString("updated\n")
}

// writeMergeMarkersSection renders the V0120 layout. The middle section
// carries a git-style conflict block; the model continues after the
// separator and closes with the end marker.
//
// Example:
//
//	<|file_sep|>path/to/target_file.py
//	<|fim_prefix|>
//	code before editable region
//	<|fim_suffix|>
//	code after editable region
//	<|fim_middle|>
//	<<<<<<< CURRENT
//	code that
//	needs to<|user_cursor|>
//	be rewritten
//	=======
func writeMergeMarkersSection(sb *strings.Builder, path, context string, editable ByteRange, cursor int) {
	sb.WriteString(fileSep)
	sb.WriteString(path)
	sb.WriteByte('\n')

	sb.WriteString(fimPrefix)
	sb.WriteString(context[:editable.Start])

	sb.WriteString(fimSuffix)
	sb.WriteString(context[editable.End:])
	terminateLine(sb)

	sb.WriteString(fimMiddle)
	sb.WriteString(mergeStartMarker)
	writeEditableWithCursor(sb, context, editable, cursor)
	terminateLine(sb)
	sb.WriteString(mergeSeparator)
}

// writeMergeMarkersPrefixSection renders the V0131/V0211Prefill layout. The
// conflict block sits directly in the prefix section; the middle marker at
// the end is bare.
//
// Example:
//
//	<|file_sep|>path/to/target_file.py
//	<|fim_prefix|>
//	code before editable region
//	<<<<<<< CURRENT
//	code that
//	needs to<|user_cursor|>
//	be rewritten
//	=======
//	<|fim_suffix|>
//	code after editable region
//	<|fim_middle|>
func writeMergeMarkersPrefixSection(sb *strings.Builder, path, context string, editable ByteRange, cursor int) {
	sb.WriteString(fileSep)
	sb.WriteString(path)
	sb.WriteByte('\n')

	sb.WriteString(fimPrefix)
	sb.WriteString(context[:editable.Start])
	sb.WriteString(mergeStartMarker)
	writeEditableWithCursor(sb, context, editable, cursor)
	terminateLine(sb)
	sb.WriteString(mergeSeparator)

	sb.WriteString(fimSuffix)
	sb.WriteString(context[editable.End:])
	terminateLine(sb)

	sb.WriteString(fimMiddle)
}
