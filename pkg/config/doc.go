// Package config loads and validates strreplace rule files.
//
//	            +-------------+
//	            |   Config    |
//	            |   (Rules)   |
//	            +------+------+
//	                   |
//	      +------------+------------+
//	      |            |            |
//	+-----+----+ +-----+----+ +-----+----+
//	|   YAML   | |   JSON   | |   HCL    |
//	+----------+ +----------+ +----------+
//
// A config is a list of literal rules plus the globs that select files:
//
//	rules:
//	  - from: github.com/old/mod
//	    to: github.com/new/mod
//	    files: "**/*.go"
//	include: ["**"]
//	exclude: ["vendor/**"]
//	workers: 4
//
// The same document in HCL uses one rule block per rule:
//
//	rule {
//	  from  = "github.com/old/mod"
//	  to    = "github.com/new/mod"
//	  files = "**/*.go"
//	}
//	exclude = ["vendor/**"]
//
// Every rule needs a non-empty from. Globs use doublestar syntax.
package config
