package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/wcy168/scada-v6/internal/explorer"
)

// result is the {"data": ...} envelope of a command, with a one-line
// rendering for the text format.
type result struct {
	Data any `json:"data"`
	text string
}

func (r result) WriteText(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.text)
	return err
}

// treeView is the serializable form of a subtree.
type treeView struct {
	Text     string     `json:"text"`
	Category string     `json:"category"`
	Pending  bool       `json:"pending,omitempty"`
	Rows     *int       `json:"rows,omitempty"`
	Children []treeView `json:"children,omitempty"`
}

// exportTree converts n and its children down to maxDepth (-1: all).
// Placeholders are left out; pending nodes are flagged instead.
func exportTree(n *explorer.Node, maxDepth int) treeView {
	v := treeView{Text: n.Text, Category: n.Category.String(), Pending: n.Pending()}
	if tv, ok := n.Object.(*explorer.TableView); ok {
		c := tv.Filter.Count(tv.Table)
		v.Rows = &c
	}
	if maxDepth == 0 {
		return v
	}
	for _, c := range n.Children() {
		if c.IsPlaceholder() {
			continue
		}
		v.Children = append(v.Children, exportTree(c, maxDepth-1))
	}
	return v
}

func (v treeView) WriteText(w io.Writer) error {
	var b strings.Builder
	b.WriteString(v.Text)
	b.WriteByte('\n')
	v.writeChildren(&b, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func (v treeView) writeChildren(b *strings.Builder, prefix string) {
	for i, c := range v.Children {
		branch, next := "├── ", "│   "
		if i == len(v.Children)-1 {
			branch, next = "└── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(c.label())
		b.WriteByte('\n')
		c.writeChildren(b, prefix+next)
	}
}

func (v treeView) label() string {
	s := v.Text
	if v.Rows != nil {
		s += fmt.Sprintf(" (%d)", *v.Rows)
	}
	if v.Pending {
		s += " …"
	}
	return s
}

// listing renders the direct children of a node, for commands that edit
// one level.
type listing struct {
	Parent string   `json:"parent"`
	Items  []string `json:"items"`
	Moved  *bool    `json:"moved,omitempty"`
}

func listingOf(n *explorer.Node) listing {
	l := listing{Parent: explorer.PathOf(n), Items: []string{}}
	for _, c := range n.Children() {
		if !c.IsPlaceholder() {
			l.Items = append(l.Items, c.Text)
		}
	}
	return l
}

func (l listing) WriteText(w io.Writer) error {
	for i, it := range l.Items {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, it); err != nil {
			return err
		}
	}
	return nil
}
