package architecture_test

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// layerRules maps a directory under internal/ to the internal directories it must not import.
// Lower layers never reach upward: domain < data < services < http < app.
var layerRules = []struct {
	prefix     string
	disallowed []string
}{
	{prefix: "internal/pkg/", disallowed: []string{"platform/", "domain", "data/", "services", "http", "app", "observability", "realtime"}},
	{prefix: "internal/domain", disallowed: []string{"platform/", "data/", "services", "http", "app", "observability", "realtime"}},
	{prefix: "internal/platform/", disallowed: []string{"data/", "services", "http", "app"}},
	{prefix: "internal/observability", disallowed: []string{"data/", "services", "http", "app", "realtime"}},
	{prefix: "internal/prompts", disallowed: []string{"data/", "services", "http", "app"}},
	{prefix: "internal/realtime", disallowed: []string{"data/", "services", "http", "app"}},
	{prefix: "internal/data/", disallowed: []string{"services", "http", "app", "realtime"}},
	{prefix: "internal/services", disallowed: []string{"http", "app"}},
	{prefix: "internal/http", disallowed: []string{"app", "data/"}},
}

func TestImportBoundaries(t *testing.T) {
	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root, err := findModuleRoot(start)
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}
	modulePath, err := readModulePath(filepath.Join(root, "go.mod"))
	if err != nil {
		t.Fatalf("read module path: %v", err)
	}
	internalPrefix := modulePath + "/internal/"

	fset := token.NewFileSet()
	var violations []string
	walkErr := filepath.WalkDir(filepath.Join(root, "internal"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		disallowed := disallowedFor(rel)
		if len(disallowed) == 0 {
			return nil
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range f.Imports {
			imp, err := strconv.Unquote(spec.Path.Value)
			if err != nil || !strings.HasPrefix(imp, internalPrefix) {
				continue
			}
			target := strings.TrimPrefix(imp, internalPrefix)
			for _, bad := range disallowed {
				if target == strings.TrimSuffix(bad, "/") || strings.HasPrefix(target, strings.TrimSuffix(bad, "/")+"/") {
					violations = append(violations, fmt.Sprintf("- %s imports %q (disallowed: internal/%s)", rel, imp, bad))
					break
				}
			}
		}
		return nil
	})
	if walkErr != nil {
		t.Fatalf("walk internal/: %v", walkErr)
	}
	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n%s", strings.Join(violations, "\n"))
	}
}

func TestDisallowedFor(t *testing.T) {
	if got := disallowedFor("internal/services/mastery.go"); len(got) != 2 {
		t.Fatalf("services rules: got %v", got)
	}
	if got := disallowedFor("internal/app/app.go"); got != nil {
		t.Fatalf("app has no restrictions, got %v", got)
	}
	if got := disallowedFor("internal/data/repos/feedback/pattern.go"); len(got) == 0 {
		t.Fatal("data layer should be restricted")
	}
}

func disallowedFor(rel string) []string {
	for _, r := range layerRules {
		if strings.HasPrefix(rel, r.prefix) {
			return r.disallowed
		}
	}
	return nil
}

func findModuleRoot(start string) (string, error) {
	for dir := start; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found from %s", start)
		}
		dir = parent
	}
}

func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if mp, ok := strings.CutPrefix(line, "module "); ok {
			if mp = strings.TrimSpace(mp); mp != "" {
				return mp, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in %s", goModPath)
}
