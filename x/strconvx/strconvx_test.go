package strconvx

import "testing"

// These run against whichever implementation the build selected; the point is
// that both expose identical behaviour for the firmware's formatting needs.

func TestFormatRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 360, -360, 725, -725, 1<<31 - 1, -(1 << 31)}
	for _, c := range cases {
		s := FormatInt(c, 10)
		got, err := Atoi(s)
		if err != nil {
			t.Fatalf("Atoi(%q): %v", s, err)
		}
		if int64(got) != c {
			t.Fatalf("round trip %d -> %q -> %d", c, s, got)
		}
	}
}

func TestFormatUintHex(t *testing.T) {
	if FormatUint(0x29000000, 16) != "29000000" {
		t.Fatalf("hex format: got %q", FormatUint(0x29000000, 16))
	}
	if FormatUint(0, 16) != "0" {
		t.Fatal("zero should format as 0")
	}
}

func TestParseUintRejectsJunk(t *testing.T) {
	if _, err := ParseUint("12x4", 10, 32); err == nil {
		t.Fatal("expected syntax error")
	}
	if _, err := ParseUint("", 10, 32); err == nil {
		t.Fatal("expected syntax error for empty input")
	}
}
