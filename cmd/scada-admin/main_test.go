package main

import (
	"reflect"
	"testing"
)

func TestRewriteNodePathArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"scada-admin"},
			want: []string{"scada-admin"},
		},
		{
			name: "node path first token",
			in:   []string{"scada-admin", "Demo / Views"},
			want: []string{"scada-admin", "tree", "--path", "Demo / Views"},
		},
		{
			name: "node path after value flag",
			in:   []string{"scada-admin", "--project", "./demo", "Demo / Instances / Default"},
			want: []string{"scada-admin", "--project", "./demo", "tree", "--path", "Demo / Instances / Default"},
		},
		{
			name: "node path after equals flag",
			in:   []string{"scada-admin", "--format=json", "Demo / Views"},
			want: []string{"scada-admin", "--format=json", "tree", "--path", "Demo / Views"},
		},
		{
			name: "node path after bool flag",
			in:   []string{"scada-admin", "--pretty", "Demo / Views"},
			want: []string{"scada-admin", "--pretty", "tree", "--path", "Demo / Views"},
		},
		{
			name: "node path after double dash",
			in:   []string{"scada-admin", "--project", "./demo", "--", "Demo / Views"},
			want: []string{"scada-admin", "--project", "./demo", "tree", "--path", "Demo / Views"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"scada-admin", "tree", "--path", "Demo / Views"},
			want: []string{"scada-admin", "tree", "--path", "Demo / Views"},
		},
		{
			name: "value flag argument not mistaken for a path",
			in:   []string{"scada-admin", "--project", "Demo / Copy", "check"},
			want: []string{"scada-admin", "--project", "Demo / Copy", "check"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteNodePathArgs(append([]string{}, tt.in...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
