package pathutil

import "testing"

func TestSanitize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"library/nginx", "library/nginx"},
		{"../../etc/passwd", "../../etc/passwd"},
		{"sha256:abcdef", "sha256abcdef"},
		{"foo bar", "foobar"},
		{"", ""},
		{"v1.0-rc1_build", "v1.0-rc1_build"},
		{"name;rm -rf /", "namerm-rf/"},
	}

	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
