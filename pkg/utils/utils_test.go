package utils

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestFilter(t *testing.T) {
	even := Filter([]int{1, 2, 3, 4, 5}, func(n int) bool { return n%2 == 0 })
	if len(even) != 2 || even[0] != 2 || even[1] != 4 {
		t.Errorf("Filter() = %v, want [2 4]", even)
	}

	none := Filter([]int{1, 3}, func(n int) bool { return n%2 == 0 })
	if len(none) != 0 {
		t.Errorf("Filter() = %v, want empty", none)
	}
}

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	want := []string{"1", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("Map() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Map()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	t.Setenv("PYQ_TEST_DIR", "/opt/pyq")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "bare tilde", path: "~", want: home},
		{name: "tilde prefix", path: "~/apps", want: filepath.Join(home, "apps")},
		{name: "tilde not a prefix", path: "/data/~backup", want: "/data/~backup"},
		{name: "env var", path: "$PYQ_TEST_DIR/apps", want: "/opt/pyq/apps"},
		{name: "plain path", path: "/usr/local/bin", want: "/usr/local/bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.path); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestTildePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "home itself", path: home, want: "~"},
		{name: "inside home", path: filepath.Join(home, "apps", "demo"), want: filepath.Join("~", "apps", "demo")},
		{name: "outside home", path: "/opt/pyq", want: "/opt/pyq"},
		{name: "sibling prefix", path: home + "extra", want: home + "extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TildePath(tt.path); got != tt.want {
				t.Errorf("TildePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
