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

package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/strreplace/pkg/text"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultInclude matches every file below the root
	DefaultInclude = "**"
	// DefaultWorkers bounds concurrent file processing
	DefaultWorkers = 4
)

// 🔄 Rule is a single literal replacement
type Rule struct {
	From  string `json:"from" yaml:"from" hcl:"from,attr"`
	To    string `json:"to" yaml:"to" hcl:"to,optional"`
	Files string `json:"files,omitempty" yaml:"files,omitempty" hcl:"files,optional"` // doublestar glob, empty means every file
}

// 📚 Config is the complete replacement configuration
type Config struct {
	Rules   []Rule   `json:"rules" yaml:"rules" hcl:"rule,block"`
	Include []string `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	Workers int      `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`
	Async   bool     `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`

	location string
}

// 📍 Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔧 SetDefaults fills unset fields
func (cfg *Config) SetDefaults() {
	if len(cfg.Include) == 0 {
		cfg.Include = []string{DefaultInclude}
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}

	if err := text.NewSimpleTextReplacer().ValidateRules(cfg.ReplacementRules()); err != nil {
		return errors.Errorf("validating rules: %w", err)
	}

	for _, pattern := range cfg.Include {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid include pattern %q", pattern)
		}
	}
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	if cfg.Workers < 0 {
		return errors.Errorf("workers must be positive, got %d", cfg.Workers)
	}

	return nil
}

// ReplacementRules converts the config rules for use with pkg/text
func (cfg *Config) ReplacementRules() []text.ReplacementRule {
	rules := make([]text.ReplacementRule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, text.ReplacementRule{
			FromText:       r.From,
			ToText:         r.To,
			FileFilterGlob: r.Files,
		})
	}
	return rules
}

// 📝 String returns a short summary of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%d rule(s) over [%s]", len(cfg.Rules), strings.Join(cfg.Include, ", "))
}
