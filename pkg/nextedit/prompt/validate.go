// Package prompt – validate.go checks a PromptInput against the byte-offset
// invariants the renderers rely on. The renderers slice the excerpt without
// further bounds checks, so every public entry point validates first and
// returns a descriptive error instead of panicking on malformed offsets.
package prompt

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidInput tags every validation failure so callers can distinguish
// malformed requests from other errors with errors.Is.
var ErrInvalidInput = errors.New("invalid prompt input")

// isCharBoundary reports whether offset i falls on a UTF-8 sequence boundary
// of s. Both ends of the string count as boundaries.
func isCharBoundary(s string, i int) bool {
	if i == 0 || i == len(s) {
		return true
	}
	return utf8.RuneStart(s[i])
}

// validateRange checks that r is a well-formed sub-range of text on UTF-8
// boundaries. name identifies the range in error messages.
func validateRange(text string, r ByteRange, name string) error {
	if r.Start < 0 || r.Start > r.End || r.End > len(text) {
		return fmt.Errorf("%w: %s [%d, %d) out of bounds for %d-byte excerpt",
			ErrInvalidInput, name, r.Start, r.End, len(text))
	}
	if !isCharBoundary(text, r.Start) || !isCharBoundary(text, r.End) {
		return fmt.Errorf("%w: %s [%d, %d) does not fall on character boundaries",
			ErrInvalidInput, name, r.Start, r.End)
	}
	return nil
}

// validateOffset checks that off is a valid UTF-8 boundary offset into text.
func validateOffset(text string, off int, name string) error {
	if off < 0 || off > len(text) {
		return fmt.Errorf("%w: %s %d out of bounds for %d-byte excerpt",
			ErrInvalidInput, name, off, len(text))
	}
	if !isCharBoundary(text, off) {
		return fmt.Errorf("%w: %s %d does not fall on a character boundary",
			ErrInvalidInput, name, off)
	}
	return nil
}

// Validate checks the input's offsets and ranges against the invariants the
// given format's renderer assumes. All compile entry points call it before
// slicing the excerpt.
func (in *PromptInput) Validate(format Format) error {
	excerpt := in.CursorExcerpt

	if err := validateRange(excerpt, in.EditableRangeInExcerpt, "editable range"); err != nil {
		return err
	}
	if err := validateOffset(excerpt, in.CursorOffsetInExcerpt, "cursor offset"); err != nil {
		return err
	}

	for i, event := range in.Events {
		if event.Kind != EventBufferChange {
			return fmt.Errorf("%w: event %d has unknown kind %q", ErrInvalidInput, i, event.Kind)
		}
	}

	editable, context := in.EditableRangeInExcerpt, ByteRange{Start: 0, End: len(excerpt)}
	if in.ExcerptRanges != nil {
		ranges := in.ExcerptRanges
		pairs := []struct {
			name              string
			editable, context ByteRange
		}{
			{"editable_150", ranges.Editable150, ranges.Editable150Context350},
			{"editable_180", ranges.Editable180, ranges.Editable180Context350},
			{"editable_350", ranges.Editable350, ranges.Editable350Context150},
		}
		for _, pair := range pairs {
			if err := validateRange(excerpt, pair.editable, pair.name); err != nil {
				return err
			}
			if err := validateRange(excerpt, pair.context, pair.name+" context"); err != nil {
				return err
			}
			if pair.editable.Start < pair.context.Start || pair.editable.End > pair.context.End {
				return fmt.Errorf("%w: %s [%d, %d) not nested in its context range [%d, %d)",
					ErrInvalidInput, pair.name,
					pair.editable.Start, pair.editable.End,
					pair.context.Start, pair.context.End)
			}
		}
		editable, context = selectExcerptRanges(ranges, format)
	}

	// The renderer splices the cursor marker inside the editable region of
	// the resolved context window, so the cursor must sit inside both.
	if in.CursorOffsetInExcerpt < editable.Start || in.CursorOffsetInExcerpt > editable.End {
		return fmt.Errorf("%w: cursor offset %d outside editable range [%d, %d)",
			ErrInvalidInput, in.CursorOffsetInExcerpt, editable.Start, editable.End)
	}
	if in.CursorOffsetInExcerpt < context.Start || in.CursorOffsetInExcerpt > context.End {
		return fmt.Errorf("%w: cursor offset %d outside context range [%d, %d)",
			ErrInvalidInput, in.CursorOffsetInExcerpt, context.Start, context.End)
	}

	return nil
}
