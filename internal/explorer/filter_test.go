package explorer

import (
	"io/fs"
	"testing"
	"time"

	"github.com/wcy168/scada-v6/internal/model"
)

func TestTableFilter_Equal(t *testing.T) {
	a := TableFilter{Field: model.FieldDeviceNum, Value: 1, Label: "one"}
	b := TableFilter{Field: model.FieldDeviceNum, Value: 1, Label: "other label"}
	if !a.Equal(b) {
		t.Fatalf("expected filters with equal field and value to be equal")
	}
	if a.Equal(TableFilter{Field: model.FieldDeviceNum, Value: 2}) {
		t.Fatalf("expected different values to differ")
	}
	if a.Equal(TableFilter{Field: "Other", Value: 1}) {
		t.Fatalf("expected different fields to differ")
	}
	unset := NewDeviceFilter(nil)
	if !unset.Equal(TableFilter{Field: model.FieldDeviceNum}) {
		t.Fatalf("expected unset filters to be equal")
	}
	if unset.Equal(a) {
		t.Fatalf("expected unset to differ from a concrete value")
	}
}

func TestTableFilter_Match(t *testing.T) {
	one := 1
	rows := []model.Row{
		{ID: 1, DeviceNum: &one},
		{ID: 2},
	}
	cases := []struct {
		name   string
		filter TableFilter
		want   []bool
	}{
		{"device", NewDeviceFilter(&model.Device{DeviceNum: 1}), []bool{true, false}},
		{"unset", NewDeviceFilter(nil), []bool{false, true}},
		{"other device", NewDeviceFilter(&model.Device{DeviceNum: 5}), []bool{false, false}},
		{"by id", TableFilter{Field: "ID", Value: 2}, []bool{false, true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i, r := range rows {
				if got := tc.filter.Match(r); got != tc.want[i] {
					t.Fatalf("row %d: got %v want %v", i, got, tc.want[i])
				}
			}
		})
	}
}

func TestTableFilter_RowsAndLabel(t *testing.T) {
	two := 2
	table := &model.BaseTable{Rows: []model.Row{{ID: 1}, {ID: 2, DeviceNum: &two}, {ID: 3}}}
	f := NewDeviceFilter(nil)
	rows := f.Rows(table)
	if len(rows) != 2 || rows[0].ID != 1 || rows[1].ID != 3 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if f.Count(nil) != 0 || f.Rows(nil) != nil {
		t.Fatalf("expected nil table to yield nothing")
	}
	if got := NewDeviceFilter(&model.Device{DeviceNum: 2, Name: "PLC"}).Label; got != "[2] PLC" {
		t.Fatalf("label = %q", got)
	}
}

type fakeInfo struct {
	name string
	dir  bool
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return 0 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.dir }
func (f fakeInfo) Sys() any           { return nil }

func TestSortDirEntries(t *testing.T) {
	entries := []fs.FileInfo{
		fakeInfo{name: "b.txt"},
		fakeInfo{name: "A", dir: true},
		fakeInfo{name: "a.txt"},
		fakeInfo{name: "B.txt"},
		fakeInfo{name: "a", dir: true},
	}
	SortDirEntries(entries)
	want := []string{"A", "a", "B.txt", "a.txt", "b.txt"}
	for i, e := range entries {
		if e.Name() != want[i] {
			t.Fatalf("entry %d: got %q want %q", i, e.Name(), want[i])
		}
	}
}

func TestDeviceFilters_TrailingUnset(t *testing.T) {
	got := DeviceFilters([]model.Device{{DeviceNum: 3}, {DeviceNum: 1}})
	if len(got) != 3 {
		t.Fatalf("expected 3 filters, got %d", len(got))
	}
	if got[0].Value != 3 || got[1].Value != 1 || !got[2].Unset() {
		t.Fatalf("unexpected order: %+v", got)
	}
}
