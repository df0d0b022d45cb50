package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/parquet"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteReportResults outputs the report, dispatching based on the output format configured.
func WriteReportResults(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtNullable := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		// The dashboard reads data.json, so JSON never goes to stdout by default
		outputFile := cfg.OutputFile
		if outputFile == "" {
			outputFile = contract.DefaultOutputFile
		}
		if err := writeWithFile(outputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report, fmtNullable)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteDailyPointsParquet(parquet.ConvertDailyRows(FlattenReport(report)), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		contract.Logger().Info("Wrote Parquet", "file", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(w, report, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeReportCSV writes one line per view, entity and date.
func writeReportCSV(w io.Writer, report *schema.Report, fmtNullable func(*float64) string) error {
	header := []string{"view", "entity", "date", "earned", "cost", "planned"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range FlattenReport(report) {
			rec := []string{
				row.View,
				row.Entity,
				row.Date,
				fmtNullable(row.Earned),
				fmtNullable(row.Cost),
				fmtNullable(row.Planned),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeReportTable generates and writes the human-readable sprint table.
func writeReportTable(w io.Writer, report *schema.Report, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Sprint", "State", "Start", "End", "Planned", "Earned", "Cost", "SPI", "Label", "Users"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	usersWidth := getMaxUsersWidth()
	var data [][]string
	for _, s := range report.Sprints {
		o := schema.SummarizeSprint(s)
		data = append(data, []string{
			o.Name,
			string(o.State),
			o.Start,
			o.End,
			fmtFloat(o.Planned),
			fmtFloat(o.Earned),
			fmtFloat(o.Cost),
			fmtFloat(o.Progress),
			label(o.Progress, cfg.UseColors),
			truncateList(schema.AbbreviateUsers(o.Users), usersWidth),
		})
	}

	if ev, ok := schema.SummarizeEVPV(report.EVPV); ok {
		data = append(data, []string{
			schema.EVPVKey, "", "", ev.Date,
			fmtFloat(ev.Planned), fmtFloat(ev.Earned), "",
			fmtFloat(ev.SPI), label(ev.SPI, cfg.UseColors), "",
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d sprints (all-time views: %t)\n", len(report.Sprints), report.AllTime != nil); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Report built in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

func label(ratio float64, colors bool) string {
	if colors {
		return contract.GetColorLabel(ratio)
	}
	return schema.GetPlainLabel(ratio)
}
