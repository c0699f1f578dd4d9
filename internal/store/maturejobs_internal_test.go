package store

import (
	"reflect"
	"testing"
)

func TestApplySetOps(t *testing.T) {
	cases := []struct {
		name                 string
		current, add, remove []string
		want                 []string
	}{
		{
			name: "add to empty",
			add:  []string{"u1", "u2"},
			want: []string{"u1", "u2"},
		},
		{
			name:    "remove existing",
			current: []string{"u1", "u2", "u3"},
			remove:  []string{"u2"},
			want:    []string{"u1", "u3"},
		},
		{
			name:    "add existing is a no-op",
			current: []string{"u1"},
			add:     []string{"u1"},
			want:    []string{"u1"},
		},
		{
			name:    "add wins when listed in both",
			current: []string{"u1"},
			add:     []string{"u2"},
			remove:  []string{"u2"},
			want:    []string{"u1", "u2"},
		},
		{
			name:    "remove unknown is a no-op",
			current: []string{"u1"},
			remove:  []string{"u9"},
			want:    []string{"u1"},
		},
		{
			name:    "duplicates in current collapse",
			current: []string{"u1", "u1", "u2"},
			want:    []string{"u1", "u2"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := applySetOps(tc.current, tc.add, tc.remove)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("applySetOps(%v, %v, %v) = %v, want %v",
					tc.current, tc.add, tc.remove, got, tc.want)
			}
		})
	}
}
