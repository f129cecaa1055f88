package explorer

import "testing"

func TestNode_Queries(t *testing.T) {
	f := newFixture(t)
	f.activate(t, LabelInstances)
	def := f.activate(t, LabelInstances, "Default")
	web := def.Children()[2]

	if got := f.tree.Root().FindFirst(CategoryWebApp); got != web {
		t.Fatalf("FindFirst = %v", got)
	}
	if got := web.FindClosest(CategoryInstance); got != def {
		t.Fatalf("FindClosest = %v", got)
	}
	if got := web.FindClosest(CategoryWebApp); got != web {
		t.Fatalf("FindClosest should include the node itself")
	}
	if got := web.FindSibling(CategoryServerApp); got != def.Children()[0] {
		t.Fatalf("FindSibling = %v", got)
	}
	if f.tree.Root().FindSibling(CategoryBase) != nil {
		t.Fatalf("root has no siblings")
	}
	if web.Depth() != 3 || web.Index() != 2 {
		t.Fatalf("depth=%d index=%d", web.Depth(), web.Index())
	}
	if got := PathOf(web); got != "Demo / Instances / Default / Webstation" {
		t.Fatalf("path = %q", got)
	}
}

func TestTree_SelectAndInsertPosition(t *testing.T) {
	f := newFixture(t)
	f.activate(t, LabelInstances)
	def := f.activate(t, LabelInstances, "Default")

	var seen []*Node
	f.tree.Hooks.Selected = func(n *Node) { seen = append(seen, n) }
	obj := f.tree.Select(def.Children()[0])
	if obj != def.Children()[0].Object {
		t.Fatalf("Select returned %v", obj)
	}
	f.tree.Select(def.Children()[0])
	if len(seen) != 1 {
		t.Fatalf("expected one selection event, got %d", len(seen))
	}

	parent, idx, ok := f.tree.InsertPosition(CategoryInstance)
	if !ok || parent != def.Parent() || idx != 1 {
		t.Fatalf("InsertPosition = %v %d %v", parent, idx, ok)
	}
	if _, _, ok := f.tree.InsertPosition(CategoryCommLine); ok {
		t.Fatalf("expected no position for an absent category")
	}

	detached := NewNode("x", CategoryFile, nil)
	if f.tree.Select(detached) != nil || f.tree.Selected() != nil {
		t.Fatalf("selecting a foreign node must clear the selection")
	}
}

func TestTree_UpdateSelectedText(t *testing.T) {
	f := newFixture(t)
	instances := f.activate(t, LabelInstances)
	n := instances.Children()[0]
	f.tree.Select(n)
	f.project.Instances.Get(0).Name = "Renamed"
	f.tree.UpdateSelectedText()
	if n.Text != "Renamed" {
		t.Fatalf("text = %q", n.Text)
	}
}

func TestTree_VerifyPlacement(t *testing.T) {
	f := newFixture(t)
	f.activate(t, LabelInstances)
	f.activate(t, LabelInstances, "Default")
	if v := f.tree.Verify(); len(v) != 0 {
		t.Fatalf("fresh tree: %v", v)
	}

	root := f.tree.Root()
	root.add(NewNode("stray.sch", CategoryFile, &FileEntry{Path: "/stray.sch"}))
	root.add(NewNode("Server", CategoryServerApp, nil))

	var msgs []string
	for _, v := range f.tree.Verify() {
		msgs = append(msgs, v.Msg)
	}
	want := []string{"directory entry outside a listed folder", "application outside an instance"}
	if len(msgs) != len(want) || msgs[0] != want[0] || msgs[1] != want[1] {
		t.Fatalf("violations = %v, want %v", msgs, want)
	}
}
