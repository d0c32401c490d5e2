package daterange

import (
	"testing"
	"time"
)

func TestSetup_DefaultsAndBounds(t *testing.T) {
	today := time.Date(2026, time.October, 17, 21, 30, 0, 0, time.Local)
	f := Setup(today)
	if f.End != "2026-10-17" {
		t.Fatalf("End = %q, want 2026-10-17", f.End)
	}
	if f.Start != "2026-10-08" {
		t.Fatalf("Start = %q, want 2026-10-08", f.Start)
	}
	if f.Min != "1995-06-16" || f.Max != "2026-10-17" {
		t.Fatalf("bounds = [%s, %s], want [1995-06-16, 2026-10-17]", f.Min, f.Max)
	}
}

func TestSetup_StartNeverBeforeArchive(t *testing.T) {
	f := Setup(time.Date(1995, time.June, 20, 0, 0, 0, 0, time.UTC))
	if f.Start != "1995-06-16" {
		t.Fatalf("Start = %q, want archive start", f.Start)
	}
}

func TestClamp(t *testing.T) {
	f := Setup(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	cases := []struct {
		in, want string
	}{
		{"1990-01-01", "1995-06-16"},
		{"2030-01-01", "2024-03-01"},
		{" 2020-05-05 ", "2020-05-05"},
		{"", ""},
		{"2020-13", "2020-13"},
	}
	for _, tc := range cases {
		if got := f.Clamp(tc.in); got != tc.want {
			t.Fatalf("Clamp(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateInput(t *testing.T) {
	for _, ok := range []string{"", "2024", "2024-01-0", "2024-01-01"} {
		if err := ValidateInput(ok); err != nil {
			t.Fatalf("ValidateInput(%q) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"2024/01/01", "abcd", "2024-01-011"} {
		if err := ValidateInput(bad); err == nil {
			t.Fatalf("ValidateInput(%q) = nil, want error", bad)
		}
	}
}
