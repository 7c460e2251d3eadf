package operation

import (
	"context"

	"github.com/walteh/strreplace/pkg/config"
	"github.com/walteh/strreplace/pkg/log"
	"github.com/walteh/strreplace/pkg/text"
)

// 🎯 Operation is a unit of work the runner can execute
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for an apply run
type Options struct {
	// Config holds the rules and file selection
	Config *config.Config
	// Root is the directory to walk, defaults to "."
	Root string
	// DryRun reports changes without writing them
	DryRun bool
	// Logger receives one entry per processed file; optional
	Logger *log.Logger
	// Replacer defaults to text.SimpleTextReplacer
	Replacer text.TextReplacer
}

// 📄 FileResult is the outcome for a single file
type FileResult struct {
	Path         string
	Replacements int
	Modified     bool
}

// 📊 Summary aggregates a finished run
type Summary struct {
	Files        []FileResult
	Scanned      int
	Modified     int
	Replacements int
}

// ModifiedFiles returns the paths that changed, or would change on a dry run
func (s *Summary) ModifiedFiles() []string {
	var out []string
	for _, f := range s.Files {
		if f.Modified {
			out = append(out, f.Path)
		}
	}
	return out
}
