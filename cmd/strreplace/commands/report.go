package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/walteh/strreplace/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// renderSummary prints the changed files as a table followed by the totals
func renderSummary(w io.Writer, summary *operation.Summary, dryRun bool) error {
	status := "modified"
	if dryRun {
		status = "would modify"
	}

	if summary.Modified > 0 {
		data := pterm.TableData{{"File", "Replacements", "Status"}}
		for _, f := range summary.Files {
			if !f.Modified {
				continue
			}
			data = append(data, []string{f.Path, strconv.Itoa(f.Replacements), status})
		}

		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return errors.Errorf("rendering summary: %w", err)
		}
		fmt.Fprintln(w, table)
	}

	_, err := fmt.Fprintf(w, "%d file(s) scanned, %d %s, %d replacement(s)\n",
		summary.Scanned, summary.Modified, status, summary.Replacements)
	return err
}
