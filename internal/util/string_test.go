// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package util

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
)

func TestTruncateRunes(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 2, "he"},
		{"hello", 0, ""},
		{"你好世界再见", 5, "你好..."},
	}
	for _, tc := range cases {
		if got := TruncateRunes(tc.in, tc.max); got != tc.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("hello", 10); got != "hello" {
		t.Errorf("no-op truncate changed string: %q", got)
	}
	got := TruncateWidth("你好世界", 5)
	if runewidth.StringWidth(got) > 5 {
		t.Errorf("truncated string too wide: %q (%d)", got, runewidth.StringWidth(got))
	}
	if TruncateWidth("anything", 0) != "" {
		t.Error("zero width should yield empty string")
	}
}

func TestWordWrapBasic(t *testing.T) {
	lines := WordWrap("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > 10 {
			t.Errorf("line %q exceeds width: %d", line, w)
		}
	}
	if len(lines) < 4 {
		t.Errorf("expected at least 4 lines, got %d: %v", len(lines), lines)
	}
}

func TestWordWrapShortInput(t *testing.T) {
	lines := WordWrap("short", 40)
	if len(lines) != 1 || lines[0] != "short" {
		t.Errorf("short input mangled: %v", lines)
	}
}

func TestWordWrapPreservesNewlines(t *testing.T) {
	lines := WordWrap("one\n\ntwo", 40)
	want := []string{"one", "", "two"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWordWrapBreaksOversizedWord(t *testing.T) {
	lines := WordWrap("abcdefghijklmnop", 5)
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > 5 {
			t.Errorf("line %q exceeds width: %d", line, w)
		}
	}
}

func TestWordWrapCJK(t *testing.T) {
	// CJK runs have no spaces; they must break by display width.
	lines := WordWrap("你好世界你好世界你好世界", 8)
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > 8 {
			t.Errorf("line %q exceeds width: %d", line, w)
		}
	}
	if len(lines) < 3 {
		t.Errorf("expected the run to wrap, got %v", lines)
	}
}

func TestWordWrapWidthNarrowerThanRune(t *testing.T) {
	// A double-width rune cannot fit in one column. The wrap must still
	// terminate, emitting one rune per line and overflowing by a column,
	// rather than spinning on a rune it can never place.
	done := make(chan []string, 1)
	go func() { done <- WordWrap("你好", 1) }()

	select {
	case lines := <-done:
		if len(lines) != 2 || lines[0] != "你" || lines[1] != "好" {
			t.Errorf("WordWrap(\"你好\", 1) = %v", lines)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WordWrap did not return for width narrower than a rune")
	}

	// Mixed content at the same degenerate width also terminates.
	lines := WordWrap("a 你 b", 1)
	if len(lines) == 0 {
		t.Error("mixed-width wrap returned nothing")
	}
}

func TestWordWrapZeroWidth(t *testing.T) {
	lines := WordWrap("whatever", 0)
	if len(lines) != 1 || lines[0] != "whatever" {
		t.Errorf("zero width should pass through: %v", lines)
	}
}
