package core

import (
	"strings"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// Selection decides which sprints are processed and which feed the all-time views.
type Selection struct {
	ExcludePattern string
	AllTimePrefix  string
}

// NewSelection reads the selection rules from the config.
func NewSelection(cfg *contract.Config) Selection {
	return Selection{ExcludePattern: cfg.ExcludePattern, AllTimePrefix: cfg.AllTimePrefix}
}

// Verdict reports whether a sprint is processed or why it is skipped.
// Future sprints are checked first.
func (s Selection) Verdict(sprint schema.Sprint) schema.SprintVerdict {
	if sprint.State == schema.FutureState {
		return schema.FutureVerdict
	}
	if s.ExcludePattern != "" && strings.Contains(strings.ToUpper(sprint.Name), strings.ToUpper(s.ExcludePattern)) {
		return schema.ExcludedVerdict
	}
	return schema.IncludedVerdict
}

// FeedsAllTime reports whether an included sprint contributes to the all-time views.
func (s Selection) FeedsAllTime(sprint schema.Sprint) bool {
	return strings.HasPrefix(sprint.Name, s.AllTimePrefix)
}

// Listing annotates every sprint with its verdict, keeping source order.
func (s Selection) Listing(sprints []schema.Sprint) []schema.SprintListing {
	out := make([]schema.SprintListing, len(sprints))
	for i, sp := range sprints {
		verdict := s.Verdict(sp)
		out[i] = schema.SprintListing{
			Sprint:  sp,
			Verdict: verdict,
			AllTime: verdict == schema.IncludedVerdict && s.FeedsAllTime(sp),
		}
	}
	return out
}
