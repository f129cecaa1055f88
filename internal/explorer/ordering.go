package explorer

import (
	"io/fs"
	"slices"
	"strings"

	"github.com/wcy168/scada-v6/internal/model"
)

// primaryTables is the hand-specified order of the primary table group.
var primaryTables = []string{
	model.TableObj,
	model.TableCommLine,
	model.TableDevice,
	model.TableInCnl,
	model.TableOutCnl,
	model.TableLim,
	model.TableView,
	model.TableRole,
	model.TableRoleRef,
	model.TableObjRight,
	model.TableUser,
}

var secondaryTables = []string{
	model.TableArchive,
	model.TableCnlStatus,
	model.TableCnlType,
	model.TableCmdType,
	model.TableDataType,
	model.TableDevType,
	model.TableFormat,
	model.TableQuantity,
	model.TableScript,
	model.TableUnit,
	model.TableViewType,
}

// PrimaryTables returns the primary tables of cb in fixed order. Tables
// missing from cb are skipped.
func PrimaryTables(cb *model.ConfigBase) []*model.BaseTable {
	out := make([]*model.BaseTable, 0, len(primaryTables))
	for _, name := range primaryTables {
		if t := cb.Table(name); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// SecondaryTables returns the secondary tables of cb ordered by title using
// ordinal comparison. Equal titles keep their definition order.
func SecondaryTables(cb *model.ConfigBase) []*model.BaseTable {
	out := make([]*model.BaseTable, 0, len(secondaryTables))
	for _, name := range secondaryTables {
		if t := cb.Table(name); t != nil {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b *model.BaseTable) int {
		return strings.Compare(a.Title, b.Title)
	})
	return out
}

// IsChannelTable reports whether rows of the named table are grouped by device.
func IsChannelTable(name string) bool {
	return name == model.TableInCnl || name == model.TableOutCnl
}

// DeviceFilters returns one filter per device in device-table order followed
// by the trailing filter for rows bound to no device.
func DeviceFilters(devices []model.Device) []TableFilter {
	out := make([]TableFilter, 0, len(devices)+1)
	for i := range devices {
		out = append(out, NewDeviceFilter(&devices[i]))
	}
	return append(out, NewDeviceFilter(nil))
}

// SortDirEntries orders directory entries with directories first, each group
// by name using ordinal comparison.
func SortDirEntries(entries []fs.FileInfo) {
	slices.SortStableFunc(entries, func(a, b fs.FileInfo) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name(), b.Name())
	})
}

// DirectoryInsertIndex returns where a directory named name goes among the
// children of parent: inside the leading directory block, by name.
func DirectoryInsertIndex(parent *Node, name string) int {
	index := 0
	for i, c := range parent.children {
		if c.Category != CategoryDirectory {
			break
		}
		if strings.Compare(name, c.Text) < 0 {
			break
		}
		index = i + 1
	}
	return index
}

// FileInsertIndex returns where a file named name goes among the children of
// parent: after the directory block, by name among files, and before the
// first node that is neither.
func FileInsertIndex(parent *Node, name string) int {
	index := 0
	for i, c := range parent.children {
		switch c.Category {
		case CategoryDirectory:
			index = i + 1
			continue
		case CategoryFile:
			if strings.Compare(name, c.Text) < 0 {
				return index
			}
			index = i + 1
			continue
		}
		return i
	}
	return index
}
