/*
Package operation runs replacement rules over a tree of files.

	+-------------+
	|  Discover   |
	|  (globs)    |
	+------+------+
	       |
	+------+------+
	|   Process   |
	| (pkg/text)  |
	+------+------+
	       |
	+------+------+
	|   Write     |
	|  (atomic)   |
	+-------------+

🔄 Flow:
1. Collects files under the root matching the include globs, minus excludes
2. Runs the configured rules over each file with a bounded worker pool
3. Writes changed files back atomically, unless running dry
4. Reports every file through pkg/log

The first failing file cancels the rest of the run.
*/
package operation
