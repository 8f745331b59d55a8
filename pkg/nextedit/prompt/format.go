// Package prompt – format.go defines the closed set of wire-format variants
// a prompt can be compiled to, their canonical names, and the literal
// special-token vocabulary each variant reserves.
package prompt

import (
	"fmt"
	"strings"
)

// Format identifies a versioned wire format. The set is closed: every
// rendering decision switches exhaustively over these variants, and a new
// model generation means a new constant here plus a renderer for it.
type Format int

const (
	// FormatV0112MiddleAtEnd places the marked "current" middle block after
	// the prefix and suffix blocks.
	FormatV0112MiddleAtEnd Format = iota

	// FormatV0113Ordered uses the same FIM tokens in document order: prefix,
	// current middle, suffix, updated middle.
	FormatV0113Ordered

	// FormatV0114180EditableRegion is the ordered layout with a 180-token
	// editable region. This is the default format.
	FormatV0114180EditableRegion

	// FormatV0120GitMergeMarkers wraps the editable region in git-style
	// merge conflict markers inside the middle section.
	FormatV0120GitMergeMarkers

	// FormatV0131GitMergeMarkersPrefix moves the merge-marker block into the
	// prefix section, leaving a bare middle marker at the end.
	FormatV0131GitMergeMarkersPrefix

	// FormatV0211Prefill is the merge-markers-prefix layout with a
	// partial-answer prefill seed (see Prefill).
	FormatV0211Prefill

	// FormatV0211SeedCoder targets Seed-Coder models: SPM (suffix, prefix,
	// middle) section order with a distinct token vocabulary.
	FormatV0211SeedCoder
)

// DefaultFormat is used when the caller does not request a specific format.
const DefaultFormat = FormatV0114180EditableRegion

// formatNames holds the canonical name of each Format, indexed by value.
var formatNames = [...]string{
	FormatV0112MiddleAtEnd:           "V0112MiddleAtEnd",
	FormatV0113Ordered:               "V0113Ordered",
	FormatV0114180EditableRegion:     "V0114180EditableRegion",
	FormatV0120GitMergeMarkers:       "V0120GitMergeMarkers",
	FormatV0131GitMergeMarkersPrefix: "V0131GitMergeMarkersPrefix",
	FormatV0211Prefill:               "V0211Prefill",
	FormatV0211SeedCoder:             "V0211SeedCoder",
}

// Formats returns all known formats in declaration order.
func Formats() []Format {
	formats := make([]Format, len(formatNames))
	for i := range formats {
		formats[i] = Format(i)
	}
	return formats
}

// String returns the canonical format name.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat resolves a format from a case-insensitive substring of its
// canonical name. It fails, listing every canonical name, when the given
// name matches no format or more than one.
func ParseFormat(name string) (Format, error) {
	folded := strings.ToLower(name)
	matched := Format(-1)
	count := 0
	for i, canonical := range formatNames {
		if strings.Contains(strings.ToLower(canonical), folded) {
			matched = Format(i)
			count++
		}
	}
	switch count {
	case 0:
		return 0, fmt.Errorf("`%s` did not match any of:\n%s", name, FormatOptions())
	case 1:
		return matched, nil
	default:
		return 0, fmt.Errorf("`%s` matched more than one of:\n%s", name, FormatOptions())
	}
}

// FormatOptions returns the canonical format names as a bulleted list, one
// per line, for inclusion in errors and CLI help.
func FormatOptions() string {
	var sb strings.Builder
	for _, name := range formatNames {
		sb.WriteString("- ")
		sb.WriteString(name)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// fimSpecialTokens is the vocabulary shared by the plain FIM formats.
var fimSpecialTokens = []string{
	fimPrefix,
	fimSuffix,
	fimMiddle,
	fileSep,
	CursorMarker,
}

// mergeSpecialTokens extends the FIM vocabulary with git-style merge markers.
var mergeSpecialTokens = []string{
	fimPrefix,
	fimSuffix,
	fimMiddle,
	fileSep,
	mergeStartMarker,
	mergeSeparator,
	mergeEndMarker,
	CursorMarker,
}

// seedCoderSpecialTokens is the Seed-Coder vocabulary: bracketed FIM tokens,
// a StarCoder-style file marker, and the same merge markers.
var seedCoderSpecialTokens = []string{
	seedFIMSuffix,
	seedFIMPrefix,
	seedFIMMiddle,
	seedFileMarker,
	mergeStartMarker,
	mergeSeparator,
	mergeEndMarker,
	CursorMarker,
}

// SpecialTokens returns the ordered literal token strings reserved by this
// format's wire vocabulary. The returned slice is shared; callers must not
// modify it.
func (f Format) SpecialTokens() []string {
	switch f {
	case FormatV0112MiddleAtEnd, FormatV0113Ordered, FormatV0114180EditableRegion:
		return fimSpecialTokens
	case FormatV0120GitMergeMarkers, FormatV0131GitMergeMarkersPrefix, FormatV0211Prefill:
		return mergeSpecialTokens
	case FormatV0211SeedCoder:
		return seedCoderSpecialTokens
	default:
		return nil
	}
}

// ContainsSpecialTokens reports whether the cursor excerpt collides with any
// literal token of the format's vocabulary. Callers can use this to detect
// source text that would be misread as markers before transmitting.
func ContainsSpecialTokens(input *PromptInput, format Format) bool {
	for _, token := range format.SpecialTokens() {
		if strings.Contains(input.CursorExcerpt, token) {
			return true
		}
	}
	return false
}
