package core

import "testing"

func TestReachTouches(t *testing.T) {
	coin := Reach{HalfW: 15, HalfH: 10}

	tests := []struct {
		name     string
		b        Vec
		expected bool
	}{
		{"same point", Vec{50, 32}, true},
		{"just inside both axes", Vec{64.9, 41}, true},
		{"horizontal boundary excluded", Vec{65, 32}, false},
		{"vertical boundary excluded", Vec{50, 42}, false},
		{"nine below", Vec{50, 23}, true},
		{"adjacent lane", Vec{50, 12}, false},
		{"left side", Vec{35.5, 32}, true},
	}

	a := Vec{50, 32}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := coin.Touches(a, tc.b); got != tc.expected {
				t.Errorf("Touches(%v, %v) = %v, expected %v", a, tc.b, got, tc.expected)
			}
			// Reach is symmetric
			if got := coin.Touches(tc.b, a); got != tc.expected {
				t.Errorf("Touches reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, expected float64
	}{
		{57.5, 57.5},
		{-3, 0},
		{116, 115},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, 0, 115); got != tc.expected {
			t.Errorf("ClampF(%f) = %f, expected %f", tc.val, got, tc.expected)
		}
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		a, b, expected int
	}{
		{0, 3, 0},
		{3, 3, 0},
		{-1, 3, 2},
		{-4, 3, 2},
		{27, 26, 1},
		{-1, 26, 25},
	}

	for _, tc := range tests {
		if got := Mod(tc.a, tc.b); got != tc.expected {
			t.Errorf("Mod(%d, %d) = %d, expected %d", tc.a, tc.b, got, tc.expected)
		}
	}
}
