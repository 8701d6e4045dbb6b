// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package segment

import "strings"

// =============================================================================
// SEGMENT TYPE
// =============================================================================

// Kind distinguishes spoken dialogue from parenthetical stage directions.
type Kind int

const (
	Dialogue Kind = iota
	Expression
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Dialogue:
		return "dialogue"
	case Expression:
		return "expression"
	default:
		return "unknown"
	}
}

// Segment is one typed run of an assistant reply.
type Segment struct {
	Kind Kind
	Text string
}

// =============================================================================
// SPLITTING
// =============================================================================

// Split scans input left to right for parenthesized spans and returns the
// ordered segment sequence. Spans do not nest: a span ends at the first ')'
// after its '('. The inner text becomes an expression segment, emitted even
// when blank. Text between spans (and the trailing tail) becomes a dialogue
// segment, trimmed, and is dropped when blank.
//
// An unclosed '(' produces no span; its characters stay in the surrounding
// dialogue text. When the input contains no span at all, the entire input is
// returned verbatim as a single dialogue segment, even when blank.
func Split(input string) []Segment {
	var segs []Segment
	pos := 0
	matched := false

	for pos < len(input) {
		open := strings.IndexByte(input[pos:], '(')
		if open < 0 {
			break
		}
		open += pos

		end := strings.IndexByte(input[open+1:], ')')
		if end < 0 {
			break
		}
		end += open + 1

		matched = true
		segs = appendDialogue(segs, input[pos:open])
		segs = append(segs, Segment{Kind: Expression, Text: input[open+1 : end]})
		pos = end + 1
	}

	if !matched {
		return []Segment{{Kind: Dialogue, Text: input}}
	}
	return appendDialogue(segs, input[pos:])
}

// appendDialogue appends run as a dialogue segment unless it is blank.
func appendDialogue(segs []Segment, run string) []Segment {
	trimmed := strings.TrimSpace(run)
	if trimmed == "" {
		return segs
	}
	return append(segs, Segment{Kind: Dialogue, Text: trimmed})
}
