package time

import "testing"

func TestParseArchiveAndISO(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Mon Jan 01 00:00:00 +0000 2024", "2024-01-01T00:00:00+00:00"},
		{"Tue Mar 05 17:45:12 +0000 2019", "2019-03-05T17:45:12+00:00"},
		{"Fri Jul 14 09:30:00 -0500 2023", "2023-07-14T09:30:00-05:00"},
	}
	for _, c := range cases {
		ts, err := ParseArchive(c.in)
		if err != nil {
			t.Fatalf("ParseArchive(%q): %v", c.in, err)
		}
		if got := ISO(ts); got != c.want {
			t.Fatalf("ISO(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseArchive_Rejects(t *testing.T) {
	for _, in := range []string{"", "2024-01-01T00:00:00Z", "Mon Jan 01 2024"} {
		if _, err := ParseArchive(in); err == nil {
			t.Fatalf("ParseArchive(%q) should fail", in)
		}
	}
}
