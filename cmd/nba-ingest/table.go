package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/hoopcast/nba-ingest/external/nbastats"
	"github.com/hoopcast/nba-ingest/internal/domain/team"
	"github.com/hoopcast/nba-ingest/internal/usecase"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, footer []string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}
	if len(footer) > 0 {
		tw.AppendFooter(toRow(footer, columns))
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func toRow(values []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(values) {
			r[i] = values[i]
		} else {
			r[i] = ""
		}
	}
	return r
}

func renderIngestionReport(report usecase.IngestionReport, dryRun bool) string {
	if len(report.Seasons) == 0 {
		return "no seasons ingested"
	}

	headers := []string{"Season", "Rows", "Games", "Added", "Skipped", "Rejected", "Batches", "Duration", "Status"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}

	rows := make([][]string, 0, len(report.Seasons))
	for _, item := range report.Seasons {
		rows = append(rows, seasonRow(seasonName(item.Season), item))
	}
	footer := seasonRow("Total", report.Totals())

	var b strings.Builder
	if dryRun {
		b.WriteString("dry run: nothing was committed\n")
	}
	b.WriteString(renderTable(headers, rows, footer, aligns))

	if reasons := rejectionSummary(report.Totals().RejectedByReason); reasons != "" {
		b.WriteString("\nrejected: ")
		b.WriteString(reasons)
	}
	return b.String()
}

func seasonRow(label string, item usecase.SeasonReport) []string {
	status := "ok"
	if item.Failed {
		status = "failed"
	}
	return []string{
		label,
		strconv.Itoa(item.FetchedRows),
		strconv.Itoa(item.Games),
		strconv.Itoa(item.Added),
		strconv.Itoa(item.Skipped),
		strconv.Itoa(item.Rejected),
		strconv.Itoa(item.Commits),
		item.Duration.Round(time.Millisecond).String(),
		status,
	}
}

func seasonName(season int) string {
	label, err := nbastats.SeasonLabel(season)
	if err != nil {
		return strconv.Itoa(season)
	}
	return label
}

func rejectionSummary(byReason map[usecase.RejectReason]int) string {
	if len(byReason) == 0 {
		return ""
	}
	keys := make([]string, 0, len(byReason))
	for reason, count := range byReason {
		if count > 0 {
			keys = append(keys, string(reason))
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", key, byReason[usecase.RejectReason(key)]))
	}
	return strings.Join(parts, " ")
}

func renderTeamDirectory(teams []team.Team) string {
	if len(teams) == 0 {
		return "team directory is empty; run `nba-ingest teams seed`"
	}
	headers := []string{"ID", "Abbr", "Name", "Conference", "Division"}
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{strconv.FormatInt(t.ID, 10), t.Abbreviation, t.Name, t.Conference, t.Division})
	}
	return renderTable(headers, rows, []string{"", strconv.Itoa(len(teams)) + " teams"}, []columnAlignment{alignRight})
}
