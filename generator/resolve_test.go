// SPDX-License-Identifier: MIT

package generator

import (
	"sort"
	"testing"

	"github.com/albertocavalcante/gdbind/internal/callbacks"
	"github.com/albertocavalcante/gdbind/model"
)

func TestResolveDeps(t *testing.T) {
	tests := []struct {
		name   string
		api    *model.API
		sigs   *callbacks.File
		filter map[string]bool
		want   []string // expected classes after resolution, nil means nil
	}{
		{
			name:   "nil filter returns nil",
			api:    &model.API{Classes: []*model.Class{{Name: "GKPlayer"}}},
			filter: nil,
			want:   nil,
		},
		{
			name: "parent class",
			api: &model.API{Classes: []*model.Class{
				{Name: "GKPlayer", Inherits: "RefCounted"},
				{Name: "GKLocalPlayer", Inherits: "GKPlayer"},
			}},
			filter: map[string]bool{"GKLocalPlayer": true},
			want:   []string{"GKLocalPlayer", "GKPlayer"},
		},
		{
			name: "method return and typed array parameter",
			api: &model.API{Classes: []*model.Class{
				{
					Name: "GKLeaderboard",
					Methods: []*model.Method{
						{
							Name:       "submit",
							ReturnType: "GKLeaderboardEntry",
							Parameters: []*model.Parameter{{Name: "players", Type: "Array[GKPlayer]"}},
						},
					},
				},
				{Name: "GKLeaderboardEntry"},
				{Name: "GKPlayer"},
				{Name: "Unrelated"},
			}},
			filter: map[string]bool{"GKLeaderboard": true},
			want:   []string{"GKLeaderboard", "GKLeaderboardEntry", "GKPlayer"},
		},
		{
			name: "chain through property and signal",
			api: &model.API{Classes: []*model.Class{
				{Name: "A", Properties: []*model.Property{{Name: "b", Type: "B"}}},
				{Name: "B", Signals: []*model.Signal{{Name: "changed", Parameters: []*model.Parameter{{Type: "C"}}}}},
				{Name: "C", Properties: []*model.Property{{Name: "v", Type: "String"}}},
			}},
			filter: map[string]bool{"A": true},
			want:   []string{"A", "B", "C"},
		},
		{
			name: "cycle",
			api: &model.API{Classes: []*model.Class{
				{Name: "A", Properties: []*model.Property{{Name: "b", Type: "B"}}},
				{Name: "B", Properties: []*model.Property{{Name: "a", Type: "A"}}},
			}},
			filter: map[string]bool{"A": true},
			want:   []string{"A", "B"},
		},
		{
			name: "callback signature types",
			api: &model.API{Classes: []*model.Class{
				{
					Name: "GKLocalPlayer",
					Methods: []*model.Method{
						{Name: "load_friends", Parameters: []*model.Parameter{{Name: "callback", Type: "Callable"}}},
					},
				},
				{Name: "GKPlayer"},
			}},
			sigs: &callbacks.File{Callbacks: map[string]*callbacks.Signature{
				"GKLocalPlayer.load_friends": {Parameters: []callbacks.Parameter{{Name: "players", Type: "Array[GKPlayer]"}}},
			}},
			filter: map[string]bool{"GKLocalPlayer": true},
			want:   []string{"GKLocalPlayer", "GKPlayer"},
		},
		{
			name:   "unknown class kept",
			api:    &model.API{},
			filter: map[string]bool{"Missing": true},
			want:   []string{"Missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDeps(tt.api, tt.filter, tt.sigs)

			// Extract result
			var gotSlice []string
			if got == nil {
				gotSlice = nil
			} else {
				for name := range got {
					gotSlice = append(gotSlice, name)
				}
				sort.Strings(gotSlice)
			}

			// Sort want for comparison
			var want []string
			if tt.want != nil {
				want = make([]string, len(tt.want))
				copy(want, tt.want)
				sort.Strings(want)
			}

			if len(gotSlice) != len(want) {
				t.Errorf("got %d classes, want %d classes\ngot:  %v\nwant: %v", len(gotSlice), len(want), gotSlice, want)
				return
			}

			for i := range gotSlice {
				if gotSlice[i] != want[i] {
					t.Errorf("class mismatch at index %d\ngot:  %v\nwant: %v", i, gotSlice, want)
					return
				}
			}
		})
	}
}

func TestConfig_Filter(t *testing.T) {
	api := &model.API{Classes: []*model.Class{
		{Name: "GKPlayer"},
		{Name: "GKLocalPlayer", Inherits: "GKPlayer"},
	}}

	if got := (Config{}).Filter(api); got != nil {
		t.Errorf("empty Classes: got %v, want nil", got)
	}

	got := Config{Classes: []string{"GKLocalPlayer"}}.Filter(api)
	if len(got) != 1 || !got["GKLocalPlayer"] {
		t.Errorf("without ResolveDeps: got %v", got)
	}

	got = Config{Classes: []string{"GKLocalPlayer"}, ResolveDeps: true}.Filter(api)
	if len(got) != 2 || !got["GKPlayer"] {
		t.Errorf("with ResolveDeps: got %v", got)
	}
}
