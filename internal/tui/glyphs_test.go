package tui

import "testing"

func TestApplyGlyphPreference(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	applyGlyphPreference("ASCII")
	if glyphs() != glyphSetASCII || glyphTwistyCollapsed() != ">" || glyphFolder(false) != "[+]" {
		t.Fatalf("ascii glyphs not applied")
	}
	applyGlyphPreference("nonsense")
	if glyphs() != glyphSetASCII {
		t.Fatalf("unknown value should be ignored")
	}
	applyGlyphPreference("unicode")
	if glyphTwistyExpanded() != "▾" || glyphPending() != "…" {
		t.Fatalf("unicode glyphs not applied")
	}
}
