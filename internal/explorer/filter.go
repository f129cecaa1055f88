package explorer

import (
	"fmt"

	"github.com/wcy168/scada-v6/internal/model"
)

// TableFilter restricts a table to rows whose Field equals Value. A nil Value
// matches rows where the field is unset.
//
// Value must hold a comparable type.
type TableFilter struct {
	Field string
	Value any
	Label string
}

// NewDeviceFilter returns the per-device channel filter. A nil device yields
// the filter for channels bound to no device.
func NewDeviceFilter(dev *model.Device) TableFilter {
	if dev == nil {
		return TableFilter{Field: model.FieldDeviceNum, Label: "Unassigned"}
	}
	return TableFilter{
		Field: model.FieldDeviceNum,
		Value: dev.DeviceNum,
		Label: fmt.Sprintf("[%d] %s", dev.DeviceNum, dev.Name),
	}
}

// Unset reports whether the filter selects rows lacking the field.
func (f TableFilter) Unset() bool { return f.Value == nil }

// Equal compares field and value. Labels are presentation only.
func (f TableFilter) Equal(o TableFilter) bool {
	return f.Field == o.Field && f.Value == o.Value
}

func (f TableFilter) Match(r model.Row) bool {
	v, ok := r.Field(f.Field)
	if f.Value == nil {
		return !ok
	}
	return ok && v == f.Value
}

// Rows returns the matching rows of t in table order.
func (f TableFilter) Rows(t *model.BaseTable) []model.Row {
	if t == nil {
		return nil
	}
	var out []model.Row
	for _, r := range t.Rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f TableFilter) Count(t *model.BaseTable) int {
	if t == nil {
		return 0
	}
	n := 0
	for _, r := range t.Rows {
		if f.Match(r) {
			n++
		}
	}
	return n
}

func (f TableFilter) String() string {
	if f.Value == nil {
		return fmt.Sprintf("%s is unset", f.Field)
	}
	return fmt.Sprintf("%s = %v", f.Field, f.Value)
}

// TableView is the object behind a filtered table node.
type TableView struct {
	Table  *model.BaseTable
	Filter TableFilter
}

func (v *TableView) String() string { return v.Filter.Label }

// Rows returns the rows visible through the view.
func (v *TableView) Rows() []model.Row { return v.Filter.Rows(v.Table) }
