// Package prompt – sections.go renders the truncatable prompt sections: the
// edit-history diff log and the related-file excerpts, each packed into a
// token budget with its own truncation contract.
package prompt

import "strings"

// writeUnixPath writes path with forward-slash separators and a leading
// slash, component by component, so diff headers look the same regardless of
// the client's path separator.
func writeUnixPath(sb *strings.Builder, path string) {
	components := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, component := range components {
		sb.WriteByte('/')
		sb.WriteString(component)
	}
}

// writeEvent renders one edit-history event as a unified diff block with
// git-style a/ and b/ path headers.
func writeEvent(sb *strings.Builder, event Event) {
	switch event.Kind {
	case EventBufferChange:
		if event.Predicted {
			sb.WriteString("// User accepted prediction:\n")
		}
		sb.WriteString("--- a")
		writeUnixPath(sb, event.OldPath)
		sb.WriteString("\n+++ b")
		writeUnixPath(sb, event.Path)
		sb.WriteByte('\n')
		sb.WriteString(event.Diff)
	}
}

// formatEditHistoryWithinBudget renders as many of the newest events as fit
// the budget under a single history header. Scanning newest to oldest, the
// first event that would overflow stops the scan entirely: that event and
// everything older is excluded, with no attempt to fit a smaller older event
// instead. Included events are emitted back in chronological order. When the
// header alone meets the budget, or no event fits, the section is empty.
func formatEditHistoryWithinBudget(events []Event, fileMarker, editHistoryName string, maxTokens int) string {
	header := fileMarker + editHistoryName + "\n"
	headerTokens := EstimateTokens(len(header))
	if headerTokens >= maxTokens {
		return ""
	}

	var eventStrings []string
	totalTokens := headerTokens

	for i := len(events) - 1; i >= 0; i-- {
		var eventString strings.Builder
		writeEvent(&eventString, events[i])
		eventTokens := EstimateTokens(eventString.Len())

		if totalTokens+eventTokens > maxTokens {
			break
		}
		totalTokens += eventTokens
		eventStrings = append(eventStrings, eventString.String())
	}

	if len(eventStrings) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString(header)
	for i := len(eventStrings) - 1; i >= 0; i-- {
		result.WriteString(eventStrings[i])
	}
	return result.String()
}

// relatedExcerptLen is the rendered length of one excerpt: its text, a
// forced trailing newline when missing, and the ellipsis marker line when
// the excerpt ends before the file does.
func relatedExcerptLen(file RelatedFile, excerpt RelatedExcerpt) int {
	length := len(excerpt.Text)
	if !strings.HasSuffix(excerpt.Text, "\n") {
		length += len("\n")
	}
	if excerpt.RowRange.End < file.MaxRow {
		length += len("...\n")
	}
	return length
}

// formatRelatedFilesWithinBudget packs related files into the budget in
// priority order. A file whose header alone overflows stops the whole loop;
// within a committed file, excerpts accumulate in order until one overflows,
// and partial inclusion is allowed. A file where not even the first excerpt
// fits is skipped, but scanning continues with the next file — deliberately
// asymmetric with both the header rule above and the edit-history contract.
func formatRelatedFilesWithinBudget(relatedFiles []RelatedFile, fileMarker string, maxTokens int) string {
	var result strings.Builder
	totalTokens := 0

	for _, file := range relatedFiles {
		header := fileMarker + file.Path + "\n"
		headerTokens := EstimateTokens(len(header))

		if totalTokens+headerTokens > maxTokens {
			break
		}

		fileTokens := headerTokens
		excerptsToInclude := 0

		for _, excerpt := range file.Excerpts {
			excerptTokens := EstimateTokens(relatedExcerptLen(file, excerpt))
			if totalTokens+fileTokens+excerptTokens > maxTokens {
				break
			}
			fileTokens += excerptTokens
			excerptsToInclude++
		}

		if excerptsToInclude > 0 {
			totalTokens += fileTokens
			result.WriteString(header)
			for _, excerpt := range file.Excerpts[:excerptsToInclude] {
				result.WriteString(excerpt.Text)
				terminateLine(&result)
				if excerpt.RowRange.End < file.MaxRow {
					result.WriteString("...\n")
				}
			}
		}
	}

	return result.String()
}

// WriteRelatedFiles appends every related file to sb without any budget and
// returns the byte range each file's block occupies in the builder, in input
// order. Callers use the ranges to attribute spans of the final payload back
// to their source files.
func WriteRelatedFiles(sb *strings.Builder, relatedFiles []RelatedFile) []ByteRange {
	var ranges []ByteRange
	for _, file := range relatedFiles {
		start := sb.Len()
		sb.WriteString(fileSep)
		sb.WriteString(file.Path)
		sb.WriteByte('\n')
		for _, excerpt := range file.Excerpts {
			sb.WriteString(excerpt.Text)
			terminateLine(sb)
			if excerpt.RowRange.End < file.MaxRow {
				sb.WriteString("...\n")
			}
		}
		ranges = append(ranges, ByteRange{Start: start, End: sb.Len()})
	}
	return ranges
}
