package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Slow Burn", "slow-burn"},
		{"Café Music", "cafe-music"},
		{"Lo-Fi/Chill", "lo-fi-chill"},
		{"  spaced  out  ", "spaced-out"},
		{"UPPERCASE", "uppercase"},
		{"already-a-slug", "already-a-slug"},
		{"émigré", "emigre"},
		{"---", ""},
		{"", ""},
		{"100% cotton", "100-cotton"},
	}

	for _, tt := range tests {
		if got := Make(tt.in); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
