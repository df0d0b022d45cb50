package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"

	"github.com/olekukonko/tablewriter"
)

// WriteSprintListing outputs the sprint listing, to stdout unless an output
// file is set. Parquet is not offered for listings and falls back to the table.
func WriteSprintListing(listing []schema.SprintListing, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, listing)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSprintsCSV(w, listing)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSprintsTable(w, listing)
		}, "Wrote table")
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(schema.DateLayout)
}

func writeSprintsCSV(w io.Writer, listing []schema.SprintListing) error {
	header := []string{"id", "name", "state", "start", "end", "verdict", "all_time"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, l := range listing {
			rec := []string{
				strconv.FormatInt(l.ID, 10),
				l.Name,
				string(l.State),
				formatDate(l.Start),
				formatDate(l.End),
				string(l.Verdict),
				strconv.FormatBool(l.AllTime),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeSprintsTable(w io.Writer, listing []schema.SprintListing) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Sprint", "State", "Start", "End", "Verdict", "All Time"})

	var data [][]string
	included := 0
	for _, l := range listing {
		if l.Verdict == schema.IncludedVerdict {
			included++
		}
		allTime := ""
		if l.AllTime {
			allTime = "yes"
		}
		data = append(data, []string{
			strconv.FormatInt(l.ID, 10),
			l.Name,
			string(l.State),
			formatDate(l.Start),
			formatDate(l.End),
			string(l.Verdict),
			allTime,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d sprints included\n", included, len(listing))
	return err
}
