package statediff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/sonda/pkg/domain"
)

func TestDiff(t *testing.T) {
	shared := map[string]any{"x": 1}

	tests := []struct {
		name string
		prev domain.Snapshot
		cur  domain.Snapshot
		want domain.DiffRecord
	}{
		{
			name: "Changed Key",
			prev: domain.Snapshot{"a": 1, "b": 2},
			cur:  domain.Snapshot{"a": 1, "b": 3},
			want: domain.DiffRecord{"b": {Previous: 2, Current: 3}},
		},
		{
			name: "First Snapshot",
			prev: nil,
			cur:  domain.Snapshot{"a": 1},
			want: domain.DiffRecord{"a": {Current: 1, Added: true}},
		},
		{
			name: "Deleted Key Not Reported",
			prev: domain.Snapshot{"a": 1, "b": 2},
			cur:  domain.Snapshot{"a": 1},
			want: domain.DiffRecord{},
		},
		{
			name: "Added Key",
			prev: domain.Snapshot{"a": 1},
			cur:  domain.Snapshot{"a": 1, "c": nil},
			want: domain.DiffRecord{"c": {Current: nil, Added: true}},
		},
		{
			name: "Type Change",
			prev: domain.Snapshot{"a": 1},
			cur:  domain.Snapshot{"a": "1"},
			want: domain.DiffRecord{"a": {Previous: 1, Current: "1"}},
		},
		{
			name: "Same Nested Reference",
			prev: domain.Snapshot{"n": shared},
			cur:  domain.Snapshot{"n": shared},
			want: domain.DiffRecord{},
		},
		{
			name: "Equal But Rebuilt Nested Map",
			prev: domain.Snapshot{"n": map[string]any{"x": 1}},
			cur:  domain.Snapshot{"n": map[string]any{"x": 1}},
			want: domain.DiffRecord{"n": {Previous: map[string]any{"x": 1}, Current: map[string]any{"x": 1}}},
		},
		{
			name: "Empty Current",
			prev: domain.Snapshot{"a": 1},
			cur:  domain.Snapshot{},
			want: domain.DiffRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.prev, tt.cur)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSame(t *testing.T) {
	slice := []int{1, 2}
	ptr := &struct{ A int }{1}
	fn := func() {}

	type withIface struct{ V any }

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "equal ints", a: 1, b: 1, want: true},
		{name: "different ints", a: 1, b: 2, want: false},
		{name: "int vs int64", a: 1, b: int64(1), want: false},
		{name: "both nil", a: nil, b: nil, want: true},
		{name: "nil vs value", a: nil, b: 0, want: false},
		{name: "same slice", a: slice, b: slice, want: true},
		{name: "resliced", a: slice, b: slice[:1], want: false},
		{name: "copied slice", a: slice, b: []int{1, 2}, want: false},
		{name: "same pointer", a: ptr, b: ptr, want: true},
		{name: "equal pointee", a: ptr, b: &struct{ A int }{1}, want: false},
		{name: "same func", a: fn, b: fn, want: true},
		{name: "comparable struct", a: struct{ A int }{1}, b: struct{ A int }{1}, want: true},
		{name: "interface field holding slice", a: withIface{V: slice}, b: withIface{V: slice}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, Same(tt.a, tt.b))
			})
		})
	}
}
