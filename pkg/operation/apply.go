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

package operation

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/strreplace/pkg/config"
	"github.com/walteh/strreplace/pkg/log"
	"github.com/walteh/strreplace/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// alwaysExclude is never walked, whatever the config says. Nested
// repositories and submodules carry their own .git directory or file.
var alwaysExclude = []string{"**/.git", "**/.git/**"}

// 📦 ApplyOperation runs the configured rules over every selected file
type ApplyOperation struct {
	opts    Options
	summary *Summary
}

// 🏭 NewApplyOperation creates a new apply operation
func NewApplyOperation(opts Options) (*ApplyOperation, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewSimpleTextReplacer()
	}

	opts.Config.SetDefaults()
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &ApplyOperation{opts: opts}, nil
}

// 📊 Summary returns the result of the last Execute, nil before it ran
func (op *ApplyOperation) Summary() *Summary {
	return op.summary
}

// 🏃 Execute runs the operation
func (op *ApplyOperation) Execute(ctx context.Context) error {
	logger := op.opts.Logger
	if logger == nil {
		logger = log.NewWithZerolog(io.Discard, *zerolog.Ctx(ctx))
	}

	rules := op.opts.Config.ReplacementRules()

	files, err := Discover(op.opts.Root, op.opts.Config.Include, op.opts.Config.Exclude)
	if err != nil {
		return errors.Errorf("discovering files: %w", err)
	}

	// the rule file holds every pattern as a literal match of itself
	if self := op.configPath(); self != "" {
		files = slices.DeleteFunc(files, func(f string) bool { return f == self })
	}

	zerolog.Ctx(ctx).Debug().
		Str("root", op.opts.Root).
		Int("files", len(files)).
		Int("rules", len(rules)).
		Bool("dry_run", op.opts.DryRun).
		Msg("applying rules")

	logger.StartRun(ctx, log.RunOperation{
		Root:   op.opts.Root,
		Rules:  len(rules),
		DryRun: op.opts.DryRun,
	})
	defer logger.EndRun(ctx)

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(op.opts.Config.Workers)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := op.processFile(gctx, file, rules)
			if err != nil {
				logger.LogFileOperation(gctx, log.FileOperation{
					Path:   file,
					Status: "error",
					Err:    err,
				})
				return errors.Errorf("processing file %s: %w", file, err)
			}

			results[i] = *res
			logger.LogFileOperation(gctx, log.FileOperation{
				Path:         file,
				Status:       op.statusFor(res),
				IsModified:   res.Modified,
				DryRun:       op.opts.DryRun,
				Replacements: res.Replacements,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	summary := &Summary{
		Files:   results,
		Scanned: len(results),
	}
	for _, r := range results {
		if r.Modified {
			summary.Modified++
		}
		summary.Replacements += r.Replacements
	}
	op.summary = summary

	return nil
}

// configPath returns the loaded config file relative to the root, or "" when
// it was not loaded from disk or lives outside the root
func (op *ApplyOperation) configPath() string {
	loc := op.opts.Config.Location()
	if loc == "" {
		return ""
	}

	absRoot, err := filepath.Abs(op.opts.Root)
	if err != nil {
		return ""
	}
	absLoc, err := filepath.Abs(loc)
	if err != nil {
		return ""
	}

	rel, err := filepath.Rel(absRoot, absLoc)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}

func (op *ApplyOperation) statusFor(res *FileResult) string {
	switch {
	case res.Modified && op.opts.DryRun:
		return "would modify"
	case res.Modified:
		return "modified"
	default:
		return "unchanged"
	}
}

// 📄 processFile runs the rules over a single file
func (op *ApplyOperation) processFile(ctx context.Context, rel string, rules []text.ReplacementRule) (*FileResult, error) {
	full := filepath.Join(op.opts.Root, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	if err != nil {
		return nil, errors.Errorf("stat: %w", err)
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, errors.Errorf("opening file: %w", err)
	}
	defer f.Close()

	result, err := op.opts.Replacer.ReplaceText(ctx, rel, f, rules)
	if err != nil {
		return nil, errors.Errorf("replacing text: %w", err)
	}

	res := &FileResult{
		Path:         rel,
		Replacements: result.ReplacementCount,
		Modified:     result.WasModified,
	}

	if !result.WasModified || op.opts.DryRun {
		return res, nil
	}

	if err := WriteFileAtomic(full, result.ModifiedContent, info.Mode().Perm()); err != nil {
		return nil, errors.Errorf("writing file: %w", err)
	}

	return res, nil
}

// 🔍 Discover lists the regular files under root matching any include
// pattern and no exclude pattern. Paths are slash-separated, relative to
// root, and sorted.
func Discover(root string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = []string{config.DefaultInclude}
	}

	fsys := os.DirFS(root)
	seen := make(map[string]struct{})
	var files []string

	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}

		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			if isExcluded(m, exclude) {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}

func isExcluded(path string, exclude []string) bool {
	for _, patterns := range [][]string{alwaysExclude, exclude} {
		for _, pattern := range patterns {
			if matched, _ := doublestar.Match(pattern, path); matched {
				return true
			}
		}
	}
	return false
}

// 💾 WriteFileAtomic replaces path with content through a temp file in the
// same directory and a rename
func WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+strings.TrimPrefix(base, ".")+".strreplace-*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return errors.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
