package utils

import "testing"

func TestDateWithin(t *testing.T) {
	cases := []struct {
		date, start, end string
		want             bool
	}{
		{"2025-11-01", "2025-10-01", "2025-12-31", true},
		{"2025-10-01", "2025-10-01", "2025-12-31", true},
		{"2025-12-31", "2025-10-01", "2025-12-31", true},
		{"2025-09-30", "2025-10-01", "2025-12-31", false},
		{"2026-01-01", "2025-10-01", "2025-12-31", false},
		{"not-a-date", "2025-10-01", "2025-12-31", false},
	}
	for _, tc := range cases {
		if got := DateWithin(tc.date, tc.start, tc.end); got != tc.want {
			t.Fatalf("DateWithin(%q, %q, %q) = %v, want %v", tc.date, tc.start, tc.end, got, tc.want)
		}
	}
}

func TestSplitSeatList(t *testing.T) {
	got := SplitSeatList(" s1, S2 ;u3,,")
	want := []string{"S1", "S2", "U3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
