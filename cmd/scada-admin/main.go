package main

import (
	"os"
	"strings"

	"github.com/wcy168/scada-v6/internal/cli"
	"github.com/wcy168/scada-v6/internal/explorer"
)

// isNodePath reports whether s looks like an explorer node path such as
// "Demo / Views / Station".
func isNodePath(s string) bool {
	return strings.Contains(strings.TrimSpace(s), explorer.PathSeparator)
}

// rewriteNodePathArgs turns `scada-admin <node path>` into
// `scada-admin tree --path <node path>`. Persistent flags may come first, so
// the first positional token is looked up rather than argv[1].
func rewriteNodePathArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}
	valueFlags := map[string]bool{
		"--project":   true,
		"--config":    true,
		"--format":    true,
		"--log-level": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "tree", "--path")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isNodePath(argv[i+1]) {
				// tree takes the path as a flag value, so "--" is dropped.
				out := append([]string{}, argv[:i]...)
				out = append(out, "tree", "--path")
				return append(out, argv[i+1:]...)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isNodePath(a) {
			return rewrite(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteNodePathArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
