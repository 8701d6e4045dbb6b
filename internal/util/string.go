// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package util

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// TruncateRunes truncates a string to a maximum number of runes.
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateWidth truncates a string to a maximum display width.
// Double-width characters (CJK) count as 2 columns.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// WordWrap wraps text to the given display width, breaking on spaces
// where possible. Words wider than the limit are broken mid-word.
// Existing newlines are preserved.
func WordWrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}

	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		if paragraph == "" {
			lines = append(lines, "")
			continue
		}
		var line strings.Builder
		lineWidth := 0
		for _, word := range strings.Fields(paragraph) {
			w := runewidth.StringWidth(word)
			switch {
			case lineWidth == 0:
				// First word on the line always goes in, broken if oversized.
				lines, word, w = breakOversized(lines, word, width)
				line.WriteString(word)
				lineWidth = w
			case lineWidth+1+w <= width:
				line.WriteByte(' ')
				line.WriteString(word)
				lineWidth += 1 + w
			default:
				lines = append(lines, line.String())
				line.Reset()
				lines, word, w = breakOversized(lines, word, width)
				line.WriteString(word)
				lineWidth = w
			}
		}
		lines = append(lines, line.String())
	}
	return lines
}

// breakOversized emits width-sized slices of word onto lines until the
// remainder fits. Each pass consumes at least one rune, so a rune whose
// display width exceeds the limit still makes progress (on its own line,
// overflowing by one column) instead of looping forever.
func breakOversized(lines []string, word string, width int) ([]string, string, int) {
	w := runewidth.StringWidth(word)
	for w > width {
		part := runewidth.Truncate(word, width, "")
		if part == "" {
			_, size := utf8.DecodeRuneInString(word)
			part = word[:size]
		}
		lines = append(lines, part)
		word = word[len(part):]
		w = runewidth.StringWidth(word)
	}
	return lines, word, w
}
