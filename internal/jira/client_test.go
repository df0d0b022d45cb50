package jira

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&contract.Config{
		JiraServer:       srv.URL + "/",
		JiraEmail:        "ana@example.com",
		APIToken:         "secret",
		MaxResults:       2,
		StoryPointsField: "customfield_10016",
		StoryPointsLabel: "Story Points",
	}, nil)
}

func TestListSprints_Paginates(t *testing.T) {
	var calls int
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/rest/agile/1.0/board/7/sprint", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "ana@example.com", user)
		assert.Equal(t, "secret", pass)

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("startAt") {
		case "0":
			_, _ = fmt.Fprint(w, `{"startAt":0,"isLast":false,"values":[
				{"id":1,"name":"Sprint 1","state":"closed","startDate":"2024-01-01T09:00:00.000Z","endDate":"2024-01-05T17:00:00.000Z"},
				{"id":2,"name":"Sprint 2","state":"active","startDate":"2024-01-08T09:00:00.000+0530","endDate":"bogus"}]}`)
		case "2":
			_, _ = fmt.Fprint(w, `{"startAt":2,"isLast":true,"values":[{"id":3,"name":"Sprint 3","state":"future"}]}`)
		default:
			t.Errorf("unexpected startAt %q", r.URL.Query().Get("startAt"))
		}
	})

	sprints, err := client.ListSprints(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	require.Len(t, sprints, 3)
	assert.Equal(t, schema.Sprint{
		ID: 1, Name: "Sprint 1", State: schema.ClosedState,
		Start: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 5, 17, 0, 0, 0, time.UTC),
	}, sprints[0])
	assert.Equal(t, schema.ActiveState, sprints[1].State)
	assert.Equal(t, time.Date(2024, 1, 8, 3, 30, 0, 0, time.UTC), sprints[1].Start)
	assert.True(t, sprints[1].End.IsZero())
	assert.Equal(t, schema.FutureState, sprints[2].State)
	assert.True(t, sprints[2].Start.IsZero())
}

func TestListSprints_HTTPError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"errorMessages":["Unauthorized"]}`)
	})

	_, err := client.ListSprints(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "board 1")
}

const issuePage1 = `{"startAt":0,"maxResults":2,"total":3,"issues":[
  {"key":"DASH-1","fields":{
     "customfield_10016":5,
     "assignee":{"displayName":"Ana Souza"},
     "status":{"name":"Done"},
     "created":"2024-01-01T08:00:00.000+0000",
     "worklog":{"startAt":0,"maxResults":20,"total":1,"worklogs":[
       {"author":{"displayName":"Ana Souza"},"started":"2024-01-03T10:00:00.000+0000","timeSpentSeconds":7200}]}},
   "changelog":{"histories":[
     {"created":"2024-01-04T15:00:00.000+0000","items":[{"field":"status","fromString":"In Progress","toString":"Done"}]},
     {"created":"2024-01-02T10:00:00.000+0000","items":[
        {"field":"status","fromString":"To Do","toString":"In Progress"},
        {"field":"Story Points","fromString":"3","toString":"5"}]}]}},
  {"key":"DASH-2","fields":{
     "customfield_10016":null,
     "assignee":null,
     "status":{"name":"To Do"},
     "created":"2024-01-02T08:00:00.000+0000",
     "worklog":{"startAt":0,"maxResults":1,"total":2,"worklogs":[
       {"author":{"displayName":"Bo"},"started":"2024-01-02T10:00:00.000+0000","timeSpentSeconds":600}]}},
   "changelog":{"histories":[]}}]}`

const issuePage2 = `{"startAt":2,"maxResults":2,"total":3,"issues":[
  {"key":"DASH-3","fields":{"customfield_10016":"2.5","status":{"name":"In Progress"},"created":"not a date"},
   "changelog":{"histories":[{"created":"2024-01-03T10:00:00.000+0000","items":[{"field":"Story Points","fromString":null,"toString":"2.5"}]}]}}]}`

func TestSprintIssues(t *testing.T) {
	worklogCalls := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/rest/api/2/search":
			q := r.URL.Query()
			assert.Equal(t, "Sprint = 42", q.Get("jql"))
			assert.Equal(t, "changelog", q.Get("expand"))
			assert.Equal(t, "assignee,summary,worklog,customfield_10016,status,changelog,created", q.Get("fields"))
			assert.Equal(t, "2", q.Get("maxResults"))
			if q.Get("startAt") == "0" {
				_, _ = fmt.Fprint(w, issuePage1)
			} else {
				assert.Equal(t, "2", q.Get("startAt"))
				_, _ = fmt.Fprint(w, issuePage2)
			}
		case "/rest/api/2/issue/DASH-2/worklog":
			worklogCalls++
			_, _ = fmt.Fprint(w, `{"startAt":0,"maxResults":1000,"total":2,"worklogs":[
				{"author":{"displayName":"Bo"},"started":"2024-01-02T10:00:00.000+0000","timeSpentSeconds":600},
				{"author":{"displayName":"Cy"},"started":"2024-01-03T10:00:00.000+0000","timeSpentSeconds":1200}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	issues, err := client.SprintIssues(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, issues, 3)
	assert.Equal(t, 1, worklogCalls)

	first := issues[0]
	assert.Equal(t, "DASH-1", first.Key)
	assert.Equal(t, 5.0, first.StoryPoints)
	assert.Equal(t, "Ana Souza", first.Assignee)
	assert.Equal(t, schema.DoneStatus, first.Status)
	assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), first.Created)
	require.Len(t, first.StatusChanges, 2)
	assert.Equal(t, schema.StatusChange{At: time.Date(2024, 1, 4, 15, 0, 0, 0, time.UTC), From: "In Progress", To: schema.DoneStatus}, first.StatusChanges[0])
	require.Len(t, first.PointChanges, 1)
	assert.Equal(t, 3.0, first.PointChanges[0].From)
	assert.Equal(t, 5.0, first.PointChanges[0].To)
	require.Len(t, first.Worklogs, 1)
	assert.Equal(t, int64(7200), first.Worklogs[0].SecondsSpent)

	second := issues[1]
	assert.Zero(t, second.StoryPoints)
	assert.Empty(t, second.Assignee)
	assert.Equal(t, schema.UnassignedUser, second.AssigneeName())
	require.Len(t, second.Worklogs, 2)
	assert.Equal(t, "Cy", second.Worklogs[1].Author)

	third := issues[2]
	assert.Equal(t, 2.5, third.StoryPoints)
	assert.True(t, third.Created.IsZero())
	require.Len(t, third.PointChanges, 1)
	assert.Zero(t, third.PointChanges[0].From)
	assert.Equal(t, 2.5, third.PointChanges[0].To)
}

func TestSprintIssues_WorklogFailure(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rest/api/2/search" {
			_, _ = fmt.Fprint(w, `{"startAt":0,"total":1,"issues":[{"key":"DASH-9","fields":{"worklog":{"total":5,"worklogs":[]}}}]}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.SprintIssues(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DASH-9")
}

func TestSprintIssues_CompletesTruncatedChangelog(t *testing.T) {
	var pages []string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/rest/api/2/search":
			_, _ = fmt.Fprint(w, `{"startAt":0,"total":1,"issues":[{"key":"DASH-5",
				"fields":{"customfield_10016":3,"status":{"name":"Done"}},
				"changelog":{"startAt":0,"maxResults":1,"total":3,"histories":[
				  {"created":"2024-01-02T10:00:00.000+0000","items":[{"field":"status","fromString":"To Do","toString":"In Progress"}]}]}}]}`)
		case "/rest/api/2/issue/DASH-5/changelog":
			startAt := r.URL.Query().Get("startAt")
			pages = append(pages, startAt)
			assert.Equal(t, "100", r.URL.Query().Get("maxResults"))
			if startAt == "0" {
				_, _ = fmt.Fprint(w, `{"startAt":0,"maxResults":2,"total":3,"isLast":false,"values":[
				  {"created":"2024-01-02T10:00:00.000+0000","items":[{"field":"status","fromString":"To Do","toString":"In Progress"}]},
				  {"created":"2024-01-03T10:00:00.000+0000","items":[{"field":"Story Points","fromString":"2","toString":"3"}]}]}`)
				return
			}
			_, _ = fmt.Fprint(w, `{"startAt":2,"maxResults":2,"total":3,"isLast":true,"values":[
			  {"created":"2024-01-04T10:00:00.000+0000","items":[{"field":"status","fromString":"In Progress","toString":"Done"}]}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	issues, err := client.SprintIssues(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	assert.Equal(t, []string{"0", "2"}, pages)
	require.Len(t, issues[0].StatusChanges, 2)
	assert.Equal(t, schema.DoneStatus, issues[0].StatusChanges[1].To)
	assert.Equal(t, time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC), issues[0].StatusChanges[1].At)
	require.Len(t, issues[0].PointChanges, 1)
}

func TestSprintIssues_ChangelogFailure(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rest/api/2/search" {
			_, _ = fmt.Fprint(w, `{"startAt":0,"total":1,"issues":[{"key":"DASH-8","fields":{},"changelog":{"total":150,"histories":[]}}]}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.SprintIssues(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changelog of DASH-8")
}

func TestSprintIssues_EmptySprint(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"startAt":0,"total":0,"issues":[]}`)
	})

	issues, err := client.SprintIssues(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestSprintIssues_ContextCanceled(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SprintIssues(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServerID(t *testing.T) {
	client := NewClient(&contract.Config{JiraServer: "https://example.atlassian.net/"}, nil)
	assert.Equal(t, "https://example.atlassian.net", client.ServerID())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	assert.Equal(t, "12345", truncate("12345", 5))
}
