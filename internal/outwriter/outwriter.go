// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.ReportWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport writes the sprint report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	return WriteReportResults(report, cfg, duration)
}

// WriteSprints writes the sprint listing using the configured output format.
func (ow *OutWriter) WriteSprints(listing []schema.SprintListing, cfg *contract.Config) error {
	return WriteSprintListing(listing, cfg)
}
