package main

import (
	"reflect"
	"testing"
)

func TestRewriteTaskLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"kanban"},
			want: []string{"kanban"},
		},
		{
			name: "task id first token",
			in:   []string{"kanban", "task-abc123"},
			want: []string{"kanban", "tasks", "show", "task-abc123"},
		},
		{
			name: "task id after value flag",
			in:   []string{"kanban", "--board", "board-x", "task-abc123"},
			want: []string{"kanban", "--board", "board-x", "tasks", "show", "task-abc123"},
		},
		{
			name: "task id after equals flag",
			in:   []string{"kanban", "--dir=./tmp", "task-abc123"},
			want: []string{"kanban", "--dir=./tmp", "tasks", "show", "task-abc123"},
		},
		{
			name: "task id after bool flag",
			in:   []string{"kanban", "--pretty", "task-abc123"},
			want: []string{"kanban", "--pretty", "tasks", "show", "task-abc123"},
		},
		{
			name: "task id after double dash",
			in:   []string{"kanban", "--dir", "./tmp", "--", "task-abc123"},
			want: []string{"kanban", "--dir", "./tmp", "--", "tasks", "show", "task-abc123"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"kanban", "tasks", "show", "task-abc123"},
			want: []string{"kanban", "tasks", "show", "task-abc123"},
		},
		{
			name: "bare prefix not rewritten",
			in:   []string{"kanban", "task-"},
			want: []string{"kanban", "task-"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteTaskLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteTaskLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
