package timefmt

import "testing"

func TestClock(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "0:00"},
		{999, "0:00"},
		{1000, "0:01"},
		{15000, "0:15"},
		{65000, "1:05"},
		{600000, "10:00"},
		{3599000, "59:59"},
		{3600000, "1:00:00"},
		{3723000, "1:02:03"},
		{-5000, "0:00"},
	}
	for _, tc := range cases {
		if got := Clock(tc.ms); got != tc.want {
			t.Errorf("Clock(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}
