package service

import "testing"

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{950, 1},
		{999, 1},
		{1000, 2},
		{1500, 2},
		{2999, 3},
		{3000, 4},
		{-50, 1},
	}
	for _, tc := range cases {
		if got := LevelForXP(tc.xp); got != tc.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}
