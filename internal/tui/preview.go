package tui

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/wcy168/scada-v6/internal/explorer"
	"github.com/wcy168/scada-v6/internal/model"
)

// previewByteLimit bounds how much of a file is read for the preview pane.
const previewByteLimit = 64 << 10

var (
	mdRendererMu sync.Mutex
	// Renderers are cached per style and width; WithAutoStyle is avoided
	// because its terminal queries can block.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// renderPreview describes the node for the preview pane: file content for
// files, rows for channel groups and tables, a summary otherwise.
func renderPreview(fsys afero.Fs, n *explorer.Node, width, maxLines int) string {
	if n == nil {
		return styleMuted().Render("Nothing selected.")
	}
	var body string
	switch obj := n.Object.(type) {
	case *explorer.FileEntry:
		if obj.Dir {
			body = summary(n)
		} else {
			body = filePreview(fsys, obj.Path, width, maxLines)
		}
	case *explorer.TableView:
		body = rowsPreview(obj.Rows(), maxLines)
	case *model.BaseTable:
		body = rowsPreview(obj.Rows, maxLines)
	default:
		body = summary(n)
	}
	header := lipgloss.NewStyle().Bold(true).Render(n.Text)
	return header + "\n" + styleMuted().Render(strings.Repeat(glyphHRule(), max(1, min(width, 40)))) + "\n" + body
}

func filePreview(fsys afero.Fs, path string, width, maxLines int) string {
	f, err := fsys.Open(path)
	if err != nil {
		return styleError().Render(err.Error())
	}
	defer f.Close()
	b, err := io.ReadAll(io.LimitReader(f, previewByteLimit))
	if err != nil {
		return styleError().Render(err.Error())
	}
	if bytes.IndexByte(b, 0) >= 0 {
		return styleMuted().Render("(binary file)")
	}
	text := capLines(string(b), maxLines)
	if strings.EqualFold(filepath.Ext(path), ".md") {
		return renderMarkdown(text, width)
	}
	if strings.TrimSpace(text) == "" {
		return styleMuted().Render("(empty file)")
	}
	return text
}

func rowsPreview(rows []model.Row, maxLines int) string {
	if len(rows) == 0 {
		return styleMuted().Render("(no rows)")
	}
	var b strings.Builder
	for i, r := range rows {
		if maxLines > 0 && i >= maxLines {
			fmt.Fprintf(&b, "… %d more\n", len(rows)-i)
			break
		}
		fmt.Fprintf(&b, "%6d  %s\n", r.ID, r.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

func summary(n *explorer.Node) string {
	lines := []string{"Category: " + n.Category.String()}
	if n.Pending() {
		lines = append(lines, "Not loaded yet (enter to expand)")
	} else if n.Len() > 0 {
		lines = append(lines, fmt.Sprintf("Children: %d", n.Len()))
	}
	if n.Editor != nil && n.Editor.Path != "" {
		lines = append(lines, "Path: "+n.Editor.Path)
	}
	if n.Filter != nil {
		lines = append(lines, "Filter: "+n.Filter.String())
	}
	return strings.Join(lines, "\n")
}

func capLines(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	lines := strings.SplitN(s, "\n", maxLines+1)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n")
}
