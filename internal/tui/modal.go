package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmRemove
	modalPrompt
	modalSearch
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func modalWidth(screenW int) int {
	w := screenW * 2 / 3
	return max(36, min(w, 72))
}

func modalBodyWidth(width int) int {
	return max(10, width-4)
}

func renderModalBox(width int, title, content string) string {
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(modalBodyWidth(width)).
		Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(width - 2).
		Render(head + "\n\n" + content)
}

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	switch focus {
	case confirmFocusConfirm:
		confirm = btnActive.Render(confirmLabel)
	case confirmFocusCancel:
		cancel = btnActive.Render(cancelLabel)
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	help := styleMuted().Width(modalBodyWidth(width)).Render("tab: focus   enter: select   y/n   esc: cancel")
	return renderModalBox(width, title, strings.Join([]string{body, "", controls, "", help}, "\n"))
}

func renderPromptModal(width int, title, hint, inputView, errText string) string {
	bodyW := modalBodyWidth(width)
	lines := []string{renderInputLine(bodyW, inputView)}
	if errText != "" {
		lines = append(lines, styleError().Width(bodyW).Render(errText))
	}
	lines = append(lines, "", styleMuted().Width(bodyW).Render(hint))
	return renderModalBox(width, title, strings.Join(lines, "\n"))
}

// renderInputLine keeps a text input on one visual line of exactly bodyW
// columns; a wrapped input looks like inserted newlines while typing.
func renderInputLine(bodyW int, inputView string) string {
	inputView = strings.NewReplacer("\n", " ", "\r", " ").Replace(inputView)
	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}

// normalizePane forces s to exactly width columns and height lines so split
// panes line up under lipgloss.JoinHorizontal.
func normalizePane(s string, width, height int) string {
	width, height = max(width, 0), max(height, 0)
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			if width > 1 {
				ln = xansi.Cut(ln, 0, width-1) + "…"
			} else {
				ln = xansi.Cut(ln, 0, width)
			}
			w = xansi.StringWidth(ln)
		}
		lines[i] = ln + strings.Repeat(" ", max(0, width-w))
	}
	return strings.Join(lines, "\n")
}
