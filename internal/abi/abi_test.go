package abi

import "testing"

func TestWordAlign(t *testing.T) {
	cases := []struct {
		argc int
		want int
	}{
		{0, 2},
		{1, 1},
		{2, 0},
		{3, 1},
		{4, 0},
		{6, 0},
	}
	for _, c := range cases {
		if got := WordAlign(c.argc); got != c.want {
			t.Errorf("WordAlign(%d) = %d, want %d", c.argc, got, c.want)
		}
	}
}

func TestCurrentConventionIsPopulated(t *testing.T) {
	if Current.Name == "" {
		t.Fatal("Current.Name is empty")
	}
	if Current.RegisterArgs <= 0 {
		t.Fatalf("Current.RegisterArgs = %d, want > 0", Current.RegisterArgs)
	}
	if Current.CalleeSaved <= 0 {
		t.Fatalf("Current.CalleeSaved = %d, want > 0", Current.CalleeSaved)
	}
}
