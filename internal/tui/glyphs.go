package tui

import (
	"strings"
	"sync"
)

// Terminals can't change the user's font, but the explorer can choose between
// Unicode and ASCII glyphs for twisties, folder markers and rules.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference maps the tui.glyphs setting; unknown values are ignored.
func applyGlyphPreference(v string) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func pick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphTwistyCollapsed() string { return pick("▸", ">") }
func glyphTwistyExpanded() string  { return pick("▾", "v") }
func glyphPending() string         { return pick("…", "...") }
func glyphHRule() string           { return pick("─", "-") }

// glyphFolder shows open and closed folders differently.
func glyphFolder(open bool) string {
	if open {
		return pick("▭", "[-]")
	}
	return pick("▬", "[+]")
}

func glyphFile() string { return pick("·", "-") }
