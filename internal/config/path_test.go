package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	t.Setenv("CYCLESENSE_TEST_DIR", "/var/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain path untouched", in: "/tmp/app.db", want: "/tmp/app.db"},
		{name: "tilde prefix", in: "~/data/app.db", want: filepath.Join(home, "data", "app.db")},
		{name: "bare tilde", in: "~", want: home},
		{name: "env var", in: "$CYCLESENSE_TEST_DIR/app.db", want: "/var/data/app.db"},
		{name: "tilde mid-path is literal", in: "/tmp/~file", want: "/tmp/~file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
