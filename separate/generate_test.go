package separate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// go generate runs in module mode, so every generator named by a directive
// must be a tool of the module.
func TestGenerateToolsDeclared(t *testing.T) {
	src, err := os.ReadFile("estimator.go")
	if err != nil {
		t.Fatal(err)
	}

	mod, err := os.ReadFile(filepath.Join("..", "go.mod"))
	if err != nil {
		t.Fatal(err)
	}

	tools := map[string]bool{}
	for _, line := range strings.Split(string(mod), "\n") {
		if f := strings.Fields(line); len(f) == 2 && f[0] == "tool" {
			tools[f[1]] = true
		}
	}

	found := false
	for _, line := range strings.Split(string(src), "\n") {
		f := strings.Fields(strings.TrimPrefix(line, "//go:generate "))
		if !strings.HasPrefix(line, "//go:generate ") || len(f) < 3 || f[0] != "go" || f[1] != "run" {
			continue
		}
		found = true
		if !tools[f[2]] {
			t.Fatalf("generator %s is not declared with a tool directive in go.mod", f[2])
		}
	}

	if !found {
		t.Fatal("estimator.go has no go:generate directive")
	}
}
