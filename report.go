package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ccollins476ad/dlsys/fetch"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

var reportHeaders = []string{"#", "Status", "Size", "File", "URL"}

// printReport writes report and its followups to w: a table on a terminal,
// tab-separated lines otherwise.
func printReport(w io.Writer, report *fetch.Report) {
	if isTerminal(w) {
		fmt.Fprintln(w, renderTable(report))
	} else {
		io.WriteString(w, renderPlain(report))
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderTable(report *fetch.Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(fmt.Sprintf("%s batch %s (%s, %d workers)", report.Kind, report.ID, report.Mode, report.Workers))

	header := make(table.Row, len(reportHeaders))
	for i, h := range reportHeaders {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range reportRows(report) {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = v
		}
		tw.AppendRow(r)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	var sb strings.Builder
	sb.WriteString(tw.Render())
	for _, seg := range report.Segments {
		sb.WriteString("\nsegment: " + seg)
	}
	for _, f := range report.Followups {
		sb.WriteString("\n" + renderTable(f))
	}
	return sb.String()
}

func renderPlain(report *fetch.Report) string {
	var sb strings.Builder
	for _, row := range reportRows(report) {
		sb.WriteString(report.Kind + "\t" + strings.Join(row, "\t") + "\n")
	}
	for _, seg := range report.Segments {
		sb.WriteString("segment\t" + seg + "\n")
	}
	for _, f := range report.Followups {
		sb.WriteString(renderPlain(f))
	}
	return sb.String()
}

func reportRows(report *fetch.Report) [][]string {
	rows := make([][]string, 0, len(report.Results))
	for i, res := range report.Results {
		status := "ok"
		size := humanize.Bytes(uint64(res.Size))
		file := res.Path
		switch {
		case errors.Is(res.Err, fetch.ErrSkipped):
			status = "aborted"
			size = "-"
			file = res.Err.Error()
		case !res.OK():
			status = "failed"
			size = "-"
			file = res.Err.Error()
		case res.Skipped:
			status = "skipped"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), status, size, file, res.URL})
	}
	return rows
}

// countFailed returns the number of failed jobs in report and its followups.
func countFailed(report *fetch.Report) int {
	n := len(report.Failed())
	for _, f := range report.Followups {
		n += countFailed(f)
	}
	return n
}
