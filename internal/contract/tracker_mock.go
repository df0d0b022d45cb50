package contract

import (
	"context"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockTrackerClient is a mock implementation of TrackerClient for testing.
type MockTrackerClient struct {
	mock.Mock
}

var _ TrackerClient = &MockTrackerClient{} // Compile-time check

// ListSprints implements the SprintSource interface.
func (m *MockTrackerClient) ListSprints(ctx context.Context, boardID int64) ([]schema.Sprint, error) {
	args := m.Called(ctx, boardID)
	sprints, _ := args.Get(0).([]schema.Sprint)
	return sprints, args.Error(1)
}

// SprintIssues implements the IssueSource interface.
func (m *MockTrackerClient) SprintIssues(ctx context.Context, sprintID int64) ([]schema.Issue, error) {
	args := m.Called(ctx, sprintID)
	issues, _ := args.Get(0).([]schema.Issue)
	return issues, args.Error(1)
}

// ServerID implements the TrackerClient interface.
func (m *MockTrackerClient) ServerID() string {
	args := m.Called()
	return args.String(0)
}
