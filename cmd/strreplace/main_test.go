// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/strreplace/cmd/strreplace/opts"
)

// 🧪 execute runs the root command with args and captures stdout/stderr
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := newRootCmd(&opts.RootOpts{})
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestStringCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "replaces_all",
			args: []string{"string", "hello world hello", "--from", "hello", "--to", "hi"},
			want: "hi world hi\n",
		},
		{
			name: "non_overlapping",
			args: []string{"string", "aaa", "--from", "aa", "--to", "b"},
			want: "ba\n",
		},
		{
			name: "empty_from_is_noop",
			args: []string{"string", "abc", "--from", "", "--to", "X"},
			want: "abc\n",
		},
		{
			name: "no_rescan_of_replacement",
			args: []string{"string", "xx", "--from", "x", "--to", "xy"},
			want: "xyxy\n",
		},
		{
			name:  "stdin",
			stdin: "one two one\n",
			args:  []string{"string", "-", "--from", "one", "--to", "1"},
			want:  "1 two 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestStringCommand_RequiresFrom(t *testing.T) {
	_, _, err := execute(t, "", "string", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from")
}

func TestApplyCommand_WithFlags(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.txt":     "old value",
		"sub/b.txt": "nothing",
	})

	stdout, _, err := execute(t, "",
		"apply", root,
		"--config", filepath.Join(root, "missing.yaml"),
		"--from", "old", "--to", "new",
	)
	require.Error(t, err, "an explicit config path must exist")
	assert.Contains(t, err.Error(), "loading config")
	assert.Empty(t, stdout)

	stdout, _, err = execute(t, "", "apply", root, "--from", "old", "--to", "new")
	require.NoError(t, err)
	assert.Contains(t, stdout, "a.txt")
	assert.Contains(t, stdout, "2 file(s) scanned, 1 modified, 1 replacement(s)")

	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new value", string(data))
}

func TestApplyCommand_WithConfig(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"main.go":   "import \"github.com/old/mod\"",
		"README.md": "github.com/old/mod",
	})
	cfgPath := filepath.Join(t.TempDir(), "rules.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
rule {
  from  = "github.com/old/mod"
  to    = "github.com/new/mod"
  files = "**/*.go"
}
`), 0o644))

	stdout, _, err := execute(t, "", "apply", root, "-c", cfgPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 would modify")

	data, err := os.ReadFile(filepath.Join(root, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "import \"github.com/old/mod\"", string(data), "dry run leaves files untouched")

	_, _, err = execute(t, "", "apply", root, "-c", cfgPath)
	require.NoError(t, err)

	data, err = os.ReadFile(filepath.Join(root, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "import \"github.com/new/mod\"", string(data))

	data, err = os.ReadFile(filepath.Join(root, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "github.com/old/mod", string(data))
}

func TestApplyCommand_NoRules(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "x"})

	_, _, err := execute(t, "", "apply", root, "-c", filepath.Join(t.TempDir(), ".strreplace.yaml"))
	require.Error(t, err)

	_, _, err = execute(t, "", "apply", root, "--to", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--to and --files require --from")
}

func TestCheckCommand(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "old"})

	stdout, _, err := execute(t, "", "check", root, "--from", "old", "--to", "new")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 file(s) would change")
	assert.Contains(t, stdout, "a.txt")

	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	stdout, _, err = execute(t, "", "check", root, "--from", "absent", "--to", "new")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 file(s) scanned, 0 would modify, 0 replacement(s)")
}

func TestApplyCommand_DefaultConfigInRoot(t *testing.T) {
	const rules = "rules:\n  - from: old\n    to: new\n"
	root := writeFiles(t, map[string]string{
		".strreplace.yaml": rules,
		"a.txt":            "old",
		"sub/.git/config":  "url = old",
	})

	stdout, stderr, err := execute(t, "", "check", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 file(s) would change")
	assert.NotContains(t, stdout, ".strreplace.yaml")
	assert.Contains(t, stderr, "1 of 1 file(s) need rewriting")

	_, _, err = execute(t, "", "apply", root)
	require.NoError(t, err)

	_, stderr, err = execute(t, "", "check", root)
	require.NoError(t, err, "nothing left to change once applied")
	assert.Contains(t, stderr, "1 file(s) up to date")

	for name, want := range map[string]string{
		".strreplace.yaml": rules,
		"a.txt":            "new",
		"sub/.git/config":  "url = old",
	} {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, want, string(data), "content of %s", name)
	}
}

func TestApplyCommand_NoMatchingFiles(t *testing.T) {
	root := t.TempDir()

	_, stderr, err := execute(t, "", "apply", root, "--from", "old", "--to", "new")
	require.NoError(t, err)
	assert.Contains(t, stderr, "no files matched under "+root)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "strreplace version info:")
	assert.Contains(t, stdout, "Platform:")
}
