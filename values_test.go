package golg

import (
	"errors"
	"testing"
)

func TestRenderValue(t *testing.T) {
	t.Parallel()

	var collapse = Config{CollapseSlices: true, CollapseMaps: true}

	for _, tc := range []struct {
		name  string
		cfg   Config
		value any
		want  string
	}{
		{name: "int", value: 5, want: "5"},
		{name: "string", value: "x", want: "x"},
		{name: "nil", value: nil, want: "<nil>"},
		{name: "slice", value: []int{1, 2, 3}, want: "[1 2 3]"},
		{name: "slice collapsed", cfg: collapse, value: []int{1, 2, 3}, want: "[ len=3 ]"},
		{name: "array collapsed", cfg: collapse, value: [2]string{"a", "b"}, want: "[ len=2 ]"},
		{name: "map collapsed", cfg: collapse, value: map[string]int{"a": 1, "b": 2}, want: "{ len=2 }"},
		{name: "nil never collapsed", cfg: collapse, value: nil, want: "<nil>"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			have := renderValue(tc.cfg, tc.value)
			if tc.want != have {
				t.Fatalf("want %q, have %q", tc.want, have)
			}
		})
	}
}

func TestTypeName(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: "nil"},
		{name: "int", value: 5, want: "int"},
		{name: "string", value: "x", want: "string"},
		{name: "error", value: errors.New("boom"), want: "*errors.errorString"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			have := typeName(tc.value)
			if tc.want != have {
				t.Fatalf("want %q, have %q", tc.want, have)
			}
		})
	}
}
