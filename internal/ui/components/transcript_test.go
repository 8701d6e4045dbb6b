// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package components

import (
	"strings"
	"testing"

	"github.com/wonderxxxx/super-chizuko/internal/model"
	"github.com/wonderxxxx/super-chizuko/internal/segment"
	"github.com/wonderxxxx/super-chizuko/internal/ui/styles"
)

func TestTranscriptResolveInPlace(t *testing.T) {
	var tr Transcript

	tr.Append(model.RoleUser, []segment.Segment{{Kind: segment.Dialogue, Text: "hi"}})
	tr.AddPending("p1")
	tr.Append(model.RoleUser, []segment.Segment{{Kind: segment.Dialogue, Text: "second"}})

	if !tr.HasPending() {
		t.Fatal("expected a pending entry")
	}

	ok := tr.Resolve("p1", []segment.Segment{{Kind: segment.Dialogue, Text: "hello!"}})
	if !ok {
		t.Fatal("Resolve failed for a known id")
	}
	if tr.HasPending() {
		t.Error("pending entry survived resolution")
	}
	if tr.Len() != 3 {
		t.Errorf("Len = %d", tr.Len())
	}
	// The resolved entry keeps its slot between the two user messages.
	middle := tr.entries[1]
	if middle.Kind != EntryMessage || middle.Role != model.RoleAssistant {
		t.Errorf("resolved entry wrong: %+v", middle)
	}
	if middle.Segments[0].Text != "hello!" {
		t.Errorf("resolved segments wrong: %+v", middle.Segments)
	}
}

func TestTranscriptResolveUnknownID(t *testing.T) {
	var tr Transcript
	tr.AddPending("p1")
	if tr.Resolve("nope", nil) {
		t.Error("Resolve succeeded for an unknown id")
	}
	if !tr.HasPending() {
		t.Error("pending entry lost")
	}
}

func TestTranscriptConcurrentPendings(t *testing.T) {
	var tr Transcript
	tr.AddPending("a")
	tr.AddPending("b")

	// Resolving out of order must hit the right placeholders.
	tr.Resolve("b", []segment.Segment{{Kind: segment.Dialogue, Text: "reply b"}})
	if tr.entries[0].Kind != EntryPending {
		t.Error("wrong placeholder resolved")
	}
	if tr.entries[1].Segments[0].Text != "reply b" {
		t.Errorf("entry 1 = %+v", tr.entries[1])
	}
	tr.Resolve("a", []segment.Segment{{Kind: segment.Dialogue, Text: "reply a"}})
	if tr.HasPending() {
		t.Error("placeholders remain after both resolutions")
	}
}

func TestRenderContainsContent(t *testing.T) {
	theme := styles.NewTheme()
	var tr Transcript
	tr.Append(model.RoleUser, []segment.Segment{{Kind: segment.Dialogue, Text: "hello there"}})
	tr.Append(model.RoleAssistant, []segment.Segment{
		{Kind: segment.Expression, Text: "waves"},
		{Kind: segment.Dialogue, Text: "hi!"},
	})
	tr.AddPending("p1")

	out := tr.Render(theme, RenderOptions{Width: 60, SpinnerView: "*"})
	for _, want := range []string{"You", "Chizuko", "hello there", "(waves)", "hi!", "Chizuko is typing"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}

func TestRenderSegmentExpressionParenthesized(t *testing.T) {
	theme := styles.NewTheme()
	out := RenderSegment(segment.Segment{Kind: segment.Expression, Text: "tilts head"}, theme, 60)
	if !strings.Contains(out, "(tilts head)") {
		t.Errorf("expression not re-parenthesized: %q", out)
	}

	out = RenderSegment(segment.Segment{Kind: segment.Dialogue, Text: "plain words"}, theme, 60)
	if !strings.Contains(out, "plain words") {
		t.Errorf("dialogue text missing: %q", out)
	}
}

func TestRenderSegmentWraps(t *testing.T) {
	theme := styles.NewTheme()
	out := RenderSegment(segment.Segment{
		Kind: segment.Dialogue,
		Text: "this sentence is long enough that it must wrap at a narrow width",
	}, theme, 20)
	if !strings.Contains(out, "\n") {
		t.Error("long dialogue did not wrap")
	}
}
