package email

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  John.Doe@Example.COM ": "john.doe@example.com",
		"plain@host.tld":          "plain@host.tld",
		"":                        "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValid(t *testing.T) {
	valid := []string{"a@b.co", "john.doe+tag@example.com", "x_y-z@sub.domain.org"}
	for _, s := range valid {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "nodomain@", "@nolocal.com", "spaces in@local.com", "noat.example.com", "trailing@dot."}
	for _, s := range invalid {
		if Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}
