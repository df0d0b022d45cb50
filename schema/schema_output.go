package schema

// Schedule performance label constants.
const (
	OnTrackValue  = "On Track"
	SlippingValue = "Slipping"
	BehindValue   = "Behind"
	CriticalValue = "Critical"
)

// SprintOverview is the one-line summary of a sprint used by the text sink.
type SprintOverview struct {
	Name     string      `json:"name"`
	State    SprintState `json:"state"`
	Start    string      `json:"start"`
	End      string      `json:"end"`
	Planned  float64     `json:"planned"`
	Earned   float64     `json:"earned"`
	Cost     float64     `json:"cost"`
	Users    []string    `json:"users"`
	Progress float64     `json:"progress"`
	Label    string      `json:"label"`
}

// EVPVOverview summarizes the latest known point of the EV/PV view.
type EVPVOverview struct {
	Date    string  `json:"date"`
	Earned  float64 `json:"earned"`
	Planned float64 `json:"planned"`
	SPI     float64 `json:"spi"`
	Label   string  `json:"label"`
}

// GetPlainLabel returns the schedule label for an earned/planned ratio.
func GetPlainLabel(ratio float64) string {
	switch {
	case ratio >= 1:
		return OnTrackValue
	case ratio >= 0.8:
		return SlippingValue
	case ratio >= 0.5:
		return BehindValue
	default:
		return CriticalValue
	}
}

// Ratio divides earned by planned, returning 0 when nothing was planned.
func Ratio(earned, planned float64) float64 {
	if planned == 0 {
		return 0
	}
	return Round2(earned / planned)
}

// SummarizeSprint builds the overview of one sprint series.
func SummarizeSprint(s SprintSeries) SprintOverview {
	overall := s.Charts[OverallEntity]
	planned := s.PlannedHours[OverallEntity]
	earned := LastValue(overall.EarnedHours)
	progress := Ratio(earned, planned)

	var start, end string
	if len(s.Dates) > 0 {
		start, end = s.Dates[0], s.Dates[len(s.Dates)-1]
	}
	return SprintOverview{
		Name:     s.Name,
		State:    s.State,
		Start:    start,
		End:      end,
		Planned:  planned,
		Earned:   earned,
		Cost:     LastValue(overall.ActualCost),
		Users:    s.Users,
		Progress: progress,
		Label:    GetPlainLabel(progress),
	}
}

// SummarizeEVPV returns the overview at the last date that has an earned value.
// It reports false when the view has no such date.
func SummarizeEVPV(v *EVPVView) (EVPVOverview, bool) {
	if v == nil {
		return EVPVOverview{}, false
	}
	chart := v.Charts[OverallEntity]
	for i := len(chart.EarnedValue) - 1; i >= 0; i-- {
		if chart.EarnedValue[i] == nil || i >= len(chart.PlannedValue) || i >= len(v.Dates) {
			continue
		}
		earned, planned := *chart.EarnedValue[i], chart.PlannedValue[i]
		spi := Ratio(earned, planned)
		return EVPVOverview{
			Date:    v.Dates[i],
			Earned:  earned,
			Planned: planned,
			SPI:     spi,
			Label:   GetPlainLabel(spi),
		}, true
	}
	return EVPVOverview{}, false
}
