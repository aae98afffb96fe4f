package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/merchant-report/constants"
	"github.com/joseph-ayodele/merchant-report/internal/pipeline"
)

// writeSummary prints JSON when asked to or when stdout is not a terminal.
func writeSummary(cmd *cobra.Command, s *pipeline.Summary, jsonOut bool) error {
	out := cmd.OutOrStdout()
	if jsonOut || !isTerminal(out) {
		return writeJSON(out, s)
	}
	renderSummary(out, s)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func renderSummary(w io.Writer, s *pipeline.Summary) {
	if s.Error != "" {
		fmt.Fprintln(w, s.Error)
		return
	}
	fmt.Fprintf(w, "Report for %s: %d rows (excel generated: %t)\n", s.TargetDate, s.Rows, s.ExcelGenerated)
	fmt.Fprintln(w, summaryTable(s))
}

func summaryTable(s *pipeline.Summary) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Field", "Header", "Kind", "Downloaded"})

	specs := append([]constants.AssetSpec(nil), constants.AssetFields...)
	sort.SliceStable(specs, func(i, j int) bool { return specs[i].Classification < specs[j].Classification })
	for _, spec := range specs {
		t.AppendRow(table.Row{spec.Field, spec.Header, spec.Classification, s.DownloadCounts[string(spec.Field)]})
	}
	t.AppendFooter(table.Row{"", "", "documents", yesNo(s.DocumentsDownloaded)})
	t.AppendFooter(table.Row{"", "", "images", yesNo(s.ImagesDownloaded)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
