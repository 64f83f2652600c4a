package normalize

import (
	"strings"
	"testing"
)

func TestClean_StripsMarkupURLsAndPunctuation(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<b>Hello</b> World!", "hello world"},
		{"Visited https://example.com/page?id=1 today", "visited today"},
		{"see www.example.org for details", "see for details"},
		{"Cats & Dogs — the movie", "cats dogs the movie"},
		{"  lots\t of \n whitespace  ", "lots of whitespace"},
		{"", ""},
		{"!!! ???", ""},
	}
	for _, c := range cases {
		if got := Clean(c.in); got != c.want {
			t.Fatalf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClean_OutputShape(t *testing.T) {
	inputs := []string{
		"<a href=\"https://x.y\">Click HERE</a> • January 1, 2025 at 10:30",
		"MiXeD CaSe With NBSP and émojis 🎉",
		"plain",
	}
	for _, in := range inputs {
		got := Clean(in)
		if got != strings.TrimSpace(got) {
			t.Fatalf("Clean(%q) has surrounding space: %q", in, got)
		}
		if strings.Contains(got, "  ") {
			t.Fatalf("Clean(%q) has a double space: %q", in, got)
		}
		for _, r := range got {
			isLower := r >= 'a' && r <= 'z'
			isDigit := r >= '0' && r <= '9'
			if !isLower && !isDigit && r != ' ' {
				t.Fatalf("Clean(%q) contains %q, want only lowercase alphanumerics and spaces", in, r)
			}
		}
	}
}

func TestFilterNoise_DropsStoplistAndShortTokens(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"click here to login at home ok", ""},
		{"cats and dogs at 10 30", "cats and dogs"},
		{"go is ok", ""},
		{"quantum computing basics", "quantum computing basics"},
		{"", ""},
	}
	for _, c := range cases {
		if got := FilterNoise(c.in); got != c.want {
			t.Fatalf("FilterNoise(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
