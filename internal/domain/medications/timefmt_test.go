package medications

import "testing"

func TestFormatDisplayTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"00:05", "12:05 AM"},
		{"09:00", "9:00 AM"},
		{"12:00", "12:00 PM"},
		{"13:00", "1:00 PM"},
		{"23:59", "11:59 PM"},
		{"9:3", "9:03 AM"},
		{"not-a-time", "not-a-time"},
		{"25:00", "25:00"},
		{"12:61", "12:61"},
		{"", ""},
		{"10:30 AM", "10:30 AM"},
		{"7:45 PM", "7:45 PM"},
	}

	for _, c := range cases {
		if got := FormatDisplayTime(c.in); got != c.want {
			t.Fatalf("FormatDisplayTime(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatDisplayTime_Idempotent(t *testing.T) {
	inputs := []string{"00:05", "13:00", "9:3", "not-a-time", "", "10:30 AM"}

	for _, in := range inputs {
		once := FormatDisplayTime(in)
		twice := FormatDisplayTime(once)
		if once != twice {
			t.Fatalf("FormatDisplayTime no es idempotente para %q: %q vs %q", in, once, twice)
		}
	}
}
