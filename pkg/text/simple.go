package text

import (
	"bytes"
	"context"
	"io"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var _ TextReplacer = (*SimpleTextReplacer)(nil)

// SimpleTextReplacer implements TextReplacer with literal, non-overlapping
// substring replacement
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, path string, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	current := string(originalContent)
	for i, rule := range rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("applying rule %d: %w", i, err)
		}

		if !RuleApplies(rule, path) {
			continue
		}

		var n int
		current, n = Replace(current, rule.FromText, rule.ToText)
		result.ReplacementCount += n

		if n > 0 {
			zerolog.Ctx(ctx).Trace().
				Str("path", path).
				Str("from", rule.FromText).
				Int("count", n).
				Msg("rule applied")
		}
	}

	if result.ReplacementCount > 0 {
		result.ModifiedContent = []byte(current)
		result.WasModified = !bytes.Equal(result.OriginalContent, result.ModifiedContent)
	}

	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
		if rule.FileFilterGlob != "" && !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %d: invalid file_filter_glob %q", i, rule.FileFilterGlob)
		}
	}
	return nil
}

// RuleApplies reports whether rule should run against path. Rules with an
// empty FromText never apply.
func RuleApplies(rule ReplacementRule, path string) bool {
	if rule.FromText == "" {
		return false
	}
	if rule.FileFilterGlob == "" {
		return true
	}
	matched, err := doublestar.Match(rule.FileFilterGlob, path)
	if err != nil {
		return false
	}
	return matched
}
