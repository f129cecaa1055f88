package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/wcy168/scada-v6/internal/explorer"
	"github.com/wcy168/scada-v6/internal/model"
	"github.com/wcy168/scada-v6/internal/store"
	"github.com/wcy168/scada-v6/internal/watcher"
)

// session is the explorer state shared by every copy of the model. Tree
// hooks record into it; the model persists after each command.
type session struct {
	store   store.Store
	project *model.Project
	builder *explorer.Builder
	tree    *explorer.Tree
	exp     *explorer.Expander
	dirty   bool
}

type appModel struct {
	*session

	fs   afero.Fs
	log  *logrus.Entry
	opts Options
	keys keyMap

	width  int
	height int

	list        list.Model
	rows        []treeRow
	showPreview bool

	modal        modalKind
	confirmFocus confirmModalFocus
	prompt       promptState
	input        textinput.Model
	inputErr     string
	matches      []*explorer.Node
	matchIndex   int

	status    string
	statusErr bool

	watch *watcher.Watcher
}

func newAppModel(s store.Store, p *model.Project, opts Options) appModel {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	fsys := s.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	b := explorer.NewBuilder(fsys, log)
	t := explorer.NewTree(b.BuildProjectTree(p))
	ses := &session{
		store:   s,
		project: p,
		builder: b,
		tree:    t,
		exp:     explorer.NewExpander(t, b, log),
	}
	t.Hooks.Changed = func(*explorer.Node) { ses.dirty = true }
	t.Root().Expanded = true
	t.Select(t.Root())

	m := appModel{
		session: ses,
		fs:      fsys,
		log:     log,
		opts:    opts,
		keys:    defaultKeyMap(),
		width:   80,
		height:  24,
	}
	m.list = list.New(nil, newTreeRowDelegate(), 0, 0)
	m.list.SetShowTitle(false)
	m.list.SetShowHelp(false)
	m.list.SetShowStatusBar(false)
	m.list.SetShowPagination(false)
	m.list.SetFilteringEnabled(false)
	m.list.KeyMap.Quit.SetEnabled(false)
	m.list.KeyMap.ForceQuit.SetEnabled(false)

	m.input = textinput.New()
	m.input.CharLimit = 120
	m.input.Width = 40

	m.resize()
	m.refreshRows()
	return m
}

func (m appModel) Init() tea.Cmd {
	return waitForWatch(m.watch)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case watchMsg:
		m.applyWatch(msg.dirs)
		return m, waitForWatch(m.watch)

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.updateTree(msg)
	}
	return m, nil
}

func (m appModel) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := m.tree.Selected()
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.watch != nil {
			_ = m.watch.Close()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Expand):
		m.expand(sel)
	case key.Matches(msg, m.keys.Collapse):
		m.collapse(sel)
	case key.Matches(msg, m.keys.MoveUp):
		m.move(sel, -1)
	case key.Matches(msg, m.keys.MoveDown):
		m.move(sel, 1)
	case key.Matches(msg, m.keys.AddAfter):
		return m, m.beginAdd(sel, false)
	case key.Matches(msg, m.keys.AddLast):
		return m, m.beginAdd(sel, true)
	case key.Matches(msg, m.keys.Remove):
		m.beginRemove(sel)
	case key.Matches(msg, m.keys.NewFile):
		return m, m.beginCreate(sel, false)
	case key.Matches(msg, m.keys.NewDir):
		return m, m.beginCreate(sel, true)
	case key.Matches(msg, m.keys.Search):
		return m, m.beginSearch()
	case key.Matches(msg, m.keys.Refresh):
		m.refresh(sel)
	case key.Matches(msg, m.keys.Preview):
		m.showPreview = !m.showPreview
		m.resize()
	default:
		// Paging and home/end.
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		m.syncSelection()
		return m, cmd
	}
	return m, nil
}

func (m *appModel) moveCursor(delta int) {
	i := m.list.Index() + delta
	if i < 0 || i >= len(m.rows) {
		return
	}
	m.list.Select(i)
	m.syncSelection()
}

// syncSelection reports the list cursor to the tree.
func (m *appModel) syncSelection() {
	i := m.list.Index()
	if i >= 0 && i < len(m.rows) {
		m.tree.Select(m.rows[i].node)
	}
}

// refreshRows re-flattens the tree and puts the cursor on the tree's
// selection, falling back to the nearest row.
func (m *appModel) refreshRows() {
	m.rows = flattenTree(m.tree.Root())
	items := make([]list.Item, len(m.rows))
	for i, r := range m.rows {
		items[i] = r
	}
	m.list.SetItems(items)
	if len(m.rows) == 0 {
		return
	}
	i := rowIndex(m.rows, m.tree.Selected())
	if i < 0 {
		i = min(max(m.list.Index(), 0), len(m.rows)-1)
		m.tree.Select(m.rows[i].node)
	}
	m.list.Select(i)
}

func (m *appModel) setStatus(format string, args ...any) {
	m.status, m.statusErr = fmt.Sprintf(format, args...), false
}

func (m *appModel) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

// persist saves the descriptor after structural edits.
func (m *appModel) persist() {
	if !m.dirty {
		return
	}
	if err := m.store.SaveDescriptor(m.project); err != nil {
		m.log.WithError(err).Error("save project")
		m.setError(fmt.Errorf("save: %w", err))
		return
	}
	m.dirty = false
}

func (m *appModel) resize() {
	h := max(m.height-4, 3)
	w := max(m.width, 20)
	if m.showPreview {
		w = w / 2
	}
	m.list.SetSize(w, h)
}

func (m appModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(m.project.Name) +
		styleMuted().Render("  "+m.project.Dir)

	bodyH := max(m.height-4, 3)
	body := m.list.View()
	if m.showPreview {
		leftW := m.list.Width()
		rightW := max(m.width-leftW-1, 10)
		preview := renderPreview(m.fs, m.tree.Selected(), rightW, m.opts.PreviewLines)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			normalizePane(body, leftW, bodyH),
			" ",
			normalizePane(preview, rightW, bodyH))
	}

	switch m.modal {
	case modalConfirmRemove:
		body = m.overlay(renderConfirmModal(modalWidth(m.width), "Remove",
			fmt.Sprintf("Remove %q from the project?", m.tree.Selected().Text),
			"Remove", "Cancel", m.confirmFocus), bodyH)
	case modalPrompt:
		body = m.overlay(renderPromptModal(modalWidth(m.width), m.prompt.title(), m.prompt.hint(),
			m.input.View(), m.inputErr), bodyH)
	case modalSearch:
		body = m.overlay(m.renderSearch(modalWidth(m.width)), bodyH)
	}

	status := styleMuted().Render(m.status)
	if m.statusErr {
		status = styleError().Render(m.status)
	}
	footer := styleMuted().Render(m.keys.footerHelp())
	return strings.Join([]string{header, body, status, footer}, "\n")
}

func (m appModel) overlay(box string, h int) string {
	return lipgloss.Place(max(m.width, 20), h, lipgloss.Center, lipgloss.Center, box)
}
