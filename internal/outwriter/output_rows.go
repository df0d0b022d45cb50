package outwriter

import (
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// FlattenReport turns the report into one row per view, entity and date, in
// output order: sprints first, then the all-time and EV/PV views.
func FlattenReport(report *schema.Report) []schema.DailyRow {
	var rows []schema.DailyRow
	for _, s := range report.Sprints {
		for _, entity := range s.Entities() {
			chart := s.Charts[entity]
			for i, date := range s.Dates {
				row := schema.DailyRow{
					View:   s.Name,
					Entity: entity,
					Date:   date,
					Earned: at(chart.EarnedHours, i),
					Cost:   at(chart.ActualCost, i),
				}
				if i < len(chart.DailyPlannedHours) {
					row.Planned = schema.Float(chart.DailyPlannedHours[i])
				}
				rows = append(rows, row)
			}
		}
	}

	if report.AllTime != nil {
		chart := report.AllTime.Charts[schema.OverallEntity]
		for i, date := range report.AllTime.Dates {
			rows = append(rows, schema.DailyRow{
				View:   schema.AllTimeKey,
				Entity: schema.OverallEntity,
				Date:   date,
				Earned: at(chart.EarnedHours, i),
				Cost:   at(chart.ActualCost, i),
			})
		}
	}

	if report.EVPV != nil {
		chart := report.EVPV.Charts[schema.OverallEntity]
		for i, date := range report.EVPV.Dates {
			row := schema.DailyRow{
				View:   schema.EVPVKey,
				Entity: schema.OverallEntity,
				Date:   date,
				Earned: at(chart.EarnedValue, i),
			}
			if i < len(chart.PlannedValue) {
				row.Planned = schema.Float(chart.PlannedValue[i])
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func at(series []*float64, i int) *float64 {
	if i < len(series) {
		return series[i]
	}
	return nil
}
