package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/wcy168/scada-v6/internal/explorer"
	"github.com/wcy168/scada-v6/internal/model"
)

type promptKind int

const (
	promptInstance promptKind = iota
	promptLine
	promptDevice
	promptFile
	promptDir
)

// promptState remembers what the open prompt creates and where.
type promptState struct {
	kind   promptKind
	parent *explorer.Node
	last   bool
}

func (p promptState) title() string {
	switch p.kind {
	case promptInstance:
		return "New instance"
	case promptLine:
		return "New communication line"
	case promptDevice:
		return "New device"
	case promptFile:
		return "New file in " + p.parent.Text
	default:
		return "New folder in " + p.parent.Text
	}
}

func (p promptState) hint() string {
	switch p.kind {
	case promptLine, promptDevice:
		return "<number> <name>   enter: create   esc: cancel"
	default:
		return "name   enter: create   esc: cancel"
	}
}

func (m *appModel) expand(n *explorer.Node) {
	if n == nil || !n.Expandable() {
		return
	}
	if _, err := m.exp.OnActivate(n); err != nil {
		n.Expanded = false
		m.setError(err)
	}
	m.refreshRows()
}

func (m *appModel) collapse(n *explorer.Node) {
	if n == nil {
		return
	}
	if n.Expanded && n.Expandable() && n.Parent() != nil {
		m.exp.Collapse(n)
	} else if p := n.Parent(); p != nil {
		m.tree.Select(p)
	}
	m.refreshRows()
}

func (m *appModel) move(n *explorer.Node, dir int) {
	var moved bool
	if dir < 0 {
		moved = m.tree.MoveUp(n, explorer.ThroughSimilarParents)
	} else {
		moved = m.tree.MoveDown(n, explorer.ThroughSimilarParents)
	}
	if !moved {
		m.setStatus("%s cannot move further", textOf(n))
		return
	}
	m.persist()
	revealNode(n)
	m.refreshRows()
}

func textOf(n *explorer.Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Text
}

// addKind tells what a node of parent's category holds.
func addKind(parent *explorer.Node) (promptKind, bool) {
	if parent == nil {
		return 0, false
	}
	switch parent.Category {
	case explorer.CategoryInstanceGroup:
		return promptInstance, true
	case explorer.CategoryCommApp:
		return promptLine, true
	case explorer.CategoryCommLine:
		return promptDevice, true
	}
	return 0, false
}

// beginAdd opens the prompt for a new sibling after n, or a new last child
// of n.
func (m *appModel) beginAdd(n *explorer.Node, last bool) tea.Cmd {
	if n == nil {
		return nil
	}
	parent := n
	if !last {
		parent = n.Parent()
	}
	kind, ok := addKind(parent)
	if !ok {
		m.setStatus("nothing can be added here")
		return nil
	}
	return m.openPrompt(promptState{kind: kind, parent: parent, last: last})
}

// dirOf returns the directory a node lists, if any.
func dirOf(n *explorer.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch obj := n.Object.(type) {
	case *model.ProjectViews:
		return obj.Dir, true
	case *model.App:
		if n.Category == explorer.CategoryWebApp {
			return obj.Dir, true
		}
	case *explorer.FileEntry:
		if obj.Dir {
			return obj.Path, true
		}
	}
	return "", false
}

func (m *appModel) beginCreate(n *explorer.Node, dir bool) tea.Cmd {
	if n != nil && n.Category == explorer.CategoryFile {
		n = n.Parent()
	}
	if _, ok := dirOf(n); !ok {
		m.setStatus("select a folder to create entries in")
		return nil
	}
	if n.Pending() {
		if _, err := m.exp.OnActivate(n); err != nil {
			m.setError(err)
			return nil
		}
		m.refreshRows()
	}
	kind := promptFile
	if dir {
		kind = promptDir
	}
	return m.openPrompt(promptState{kind: kind, parent: n})
}

func (m *appModel) openPrompt(p promptState) tea.Cmd {
	m.modal = modalPrompt
	m.prompt = p
	m.inputErr = ""
	m.input.Reset()
	m.input.Placeholder = ""
	return m.input.Focus()
}

func (m *appModel) beginRemove(n *explorer.Node) {
	if n == nil || n.Parent() == nil || n.Parent().MirroredCollection() == nil {
		m.setStatus("%s cannot be removed", textOf(n))
		return
	}
	m.modal = modalConfirmRemove
	m.confirmFocus = confirmFocusCancel
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" || msg.String() == "ctrl+g" {
		m.closeModal()
		return m, nil
	}
	switch m.modal {
	case modalConfirmRemove:
		return m.updateConfirm(msg)
	case modalSearch:
		return m.updateSearch(msg)
	}

	if msg.String() == "enter" {
		if err := m.submitPrompt(strings.TrimSpace(m.input.Value())); err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.closeModal()
		m.persist()
		m.refreshRows()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.inputErr = ""
	m.matches = nil
	m.input.Blur()
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
	case "y":
		m.confirmFocus = confirmFocusConfirm
		fallthrough
	case "enter":
		confirmed := m.confirmFocus == confirmFocusConfirm
		m.closeModal()
		if confirmed {
			m.remove(m.tree.Selected())
		}
	case "n":
		m.closeModal()
	}
	return m, nil
}

func (m *appModel) remove(n *explorer.Node) {
	text := textOf(n)
	if !m.tree.Remove(n) {
		m.setStatus("%s cannot be removed", text)
		return
	}
	m.persist()
	m.refreshRows()
	m.setStatus("removed %s", text)
}

var errEmptyName = errors.New("a name is required")

func (m *appModel) submitPrompt(v string) error {
	p := m.prompt
	switch p.kind {
	case promptInstance:
		return m.addInstance(p, v)
	case promptLine, promptDevice:
		num, name, err := parseNumName(v)
		if err != nil {
			return err
		}
		commNode := p.parent.FindClosest(explorer.CategoryCommApp)
		if commNode == nil {
			return explorer.ErrInvalidArgument
		}
		comm, _ := commNode.Object.(*model.CommApp)
		if comm == nil {
			return explorer.ErrInvalidArgument
		}
		if p.kind == promptLine {
			if _, dup := comm.FindLine(num); dup {
				return fmt.Errorf("line %d already exists", num)
			}
			line := model.NewCommLine(num, name)
			return m.insert(p, explorer.NewCommLineNode(line), line)
		}
		if _, dup := comm.FindDevice(num); dup {
			return fmt.Errorf("device %d already exists", num)
		}
		dev := model.NewCommDevice(num, name)
		return m.insert(p, explorer.NewNode("", explorer.CategoryCommDevice, dev), dev)
	default:
		return m.createEntry(p, v)
	}
}

func (m *appModel) insert(p promptState, n *explorer.Node, obj any) error {
	if p.last {
		return m.tree.InsertAsLastChild(p.parent, n, obj)
	}
	return m.tree.InsertAfterSelection(p.parent, n, obj)
}

func (m *appModel) addInstance(p promptState, name string) error {
	if name == "" {
		return errEmptyName
	}
	if _, dup := m.project.FindInstance(name); dup {
		return fmt.Errorf("instance %s already exists", name)
	}
	inst := model.NewInstance(name)
	inst.Server.Enabled = true
	dir := filepath.Join(m.project.Dir, "Instances", name)
	inst.Server.Dir = filepath.Join(dir, "ScadaServer")
	inst.Comm.Dir = filepath.Join(dir, "ScadaComm")
	inst.Web.Dir = filepath.Join(dir, "ScadaWeb")
	if err := m.fs.MkdirAll(inst.Server.Dir, 0o755); err != nil {
		m.log.WithError(err).Warn("create instance directory")
	}
	return m.insert(p, explorer.NewInstanceNode(inst), inst)
}

func (m *appModel) createEntry(p promptState, name string) error {
	if name == "" {
		return errEmptyName
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid name %q", name)
	}
	dir, _ := dirOf(p.parent)
	path := filepath.Join(dir, name)
	if ok, _ := afero.Exists(m.fs, path); ok {
		return fmt.Errorf("%s already exists", name)
	}
	if p.kind == promptDir {
		if err := m.fs.Mkdir(path, 0o755); err != nil {
			return err
		}
		m.builder.InsertDirectoryNode(p.parent, path)
	} else {
		if err := afero.WriteFile(m.fs, path, nil, 0o644); err != nil {
			return err
		}
		m.builder.InsertFileNode(p.parent, path)
	}
	p.parent.Expanded = true
	m.setStatus("created %s", path)
	return nil
}

// parseNumName splits "<number> <name>".
func parseNumName(v string) (int, string, error) {
	numStr, name, _ := strings.Cut(strings.TrimSpace(v), " ")
	num, err := strconv.Atoi(numStr)
	if err != nil || num <= 0 {
		return 0, "", fmt.Errorf("expected <number> <name>, got %q", v)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, "", errEmptyName
	}
	return num, name, nil
}

// refresh re-lists the directory behind n (or behind the folder holding n)
// and rebuilds channel groups, keeping open folders open.
func (m *appModel) refresh(n *explorer.Node) {
	if n != nil && n.Category == explorer.CategoryFile {
		n = n.Parent()
	}
	if n == nil {
		return
	}
	if n.Pending() {
		m.setStatus("%s is not loaded yet", n.Text)
		return
	}
	if err := m.reload(n); err != nil {
		m.setError(err)
	} else {
		m.setStatus("refreshed %s", n.Text)
	}
	m.refreshRows()
}

// reload repopulates n and reopens the folders that were open before.
func (m *appModel) reload(n *explorer.Node) error {
	open := map[string]bool{}
	for c := range n.All() {
		if fe, ok := c.Object.(*explorer.FileEntry); ok && c.Expanded {
			open[fe.Path] = true
		}
	}
	var selPath string
	if fe, ok := m.tree.SelectedObject().(*explorer.FileEntry); ok {
		selPath = fe.Path
	}
	err := m.exp.Reload(n)
	for c := range n.All() {
		fe, ok := c.Object.(*explorer.FileEntry)
		if !ok {
			continue
		}
		if open[fe.Path] {
			c.Expanded = true
		}
		if fe.Path == selPath && m.tree.Selected() == nil {
			m.tree.Select(c)
		}
	}
	if m.tree.Selected() == nil {
		m.tree.Select(n)
	}
	return err
}
