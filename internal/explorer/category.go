package explorer

// Category classifies a node. The set is closed; builder, expander and
// synchronizer dispatch on it with switch statements.
type Category int

const (
	CategoryProject Category = iota
	CategoryBase
	CategoryTableGroup
	CategoryTable
	CategoryChannelTable
	CategoryTableByFilter
	CategoryEmpty
	CategoryDirectory
	CategoryFile
	CategoryViewsGroup
	CategoryInstanceGroup
	CategoryInstance
	CategoryServerApp
	CategoryCommApp
	CategoryWebApp
	CategoryCommLine
	CategoryCommDevice
)

var categoryNames = [...]string{
	CategoryProject:       "project",
	CategoryBase:          "base",
	CategoryTableGroup:    "table-group",
	CategoryTable:         "table",
	CategoryChannelTable:  "channel-table",
	CategoryTableByFilter: "table-by-filter",
	CategoryEmpty:         "empty",
	CategoryDirectory:     "directory",
	CategoryFile:          "file",
	CategoryViewsGroup:    "views",
	CategoryInstanceGroup: "instances",
	CategoryInstance:      "instance",
	CategoryServerApp:     "server-app",
	CategoryCommApp:       "comm-app",
	CategoryWebApp:        "web-app",
	CategoryCommLine:      "comm-line",
	CategoryCommDevice:    "comm-device",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// IsSubApplication reports whether c is one of the per-instance applications.
func (c Category) IsSubApplication() bool {
	switch c {
	case CategoryServerApp, CategoryCommApp, CategoryWebApp:
		return true
	}
	return false
}

// IsFileSystem reports whether nodes of category c represent directory entries.
func (c Category) IsFileSystem() bool {
	return c == CategoryDirectory || c == CategoryFile
}

// MoveBehavior selects what MoveUp and MoveDown do at the edge of a sibling group.
type MoveBehavior int

const (
	// WithinParent stops at the group edge.
	WithinParent MoveBehavior = iota
	// ThroughSimilarParents promotes the node into the adjacent parent group
	// when that parent has the same category.
	ThroughSimilarParents
)

// EditorKind names the editing surface a host opens for a node.
type EditorKind int

const (
	EditorNone EditorKind = iota
	EditorTable
	EditorFile
	EditorInstance
	EditorApp
)

func (k EditorKind) String() string {
	switch k {
	case EditorTable:
		return "table"
	case EditorFile:
		return "file"
	case EditorInstance:
		return "instance"
	case EditorApp:
		return "app"
	}
	return "none"
}

// Editor describes which editor to open for a node and with what arguments.
type Editor struct {
	Kind   EditorKind
	Table  string
	Filter *TableFilter
	Path   string
}
