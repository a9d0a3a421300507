package commands

import "testing"

func TestParseID_OK(t *testing.T) {
	id, err := parseID("42", "product")
	if err != nil || id != 42 {
		t.Fatalf("parseID = %d, %v", id, err)
	}
}

func TestParseID_Rejects(t *testing.T) {
	for _, in := range []string{"", "0", "-3", "abc", "1.5"} {
		if _, err := parseID(in, "product"); err == nil {
			t.Fatalf("parseID(%q) accepted", in)
		}
	}
}

func TestStars_Rounds(t *testing.T) {
	cases := map[float64]string{
		0:   "☆☆☆☆☆",
		2.4: "★★☆☆☆",
		4.5: "★★★★★",
		9:   "★★★★★",
	}
	for avg, want := range cases {
		if got := stars(avg); got != want {
			t.Fatalf("stars(%v) = %q, want %q", avg, got, want)
		}
	}
}
