// Package jira reads sprints, issues and worklogs from the Jira Cloud REST API.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// issueFieldList is requested on every search, plus the story points field.
const issueFieldList = "assignee,summary,worklog,%s,status,changelog,created"

// sprintPageSize is the page size of the agile sprint listing.
const sprintPageSize = 50

// worklogPageSize is the page size used when completing truncated worklogs.
const worklogPageSize = 1000

// changelogPageSize is the page size used when completing truncated changelogs.
const changelogPageSize = 100

// Client talks to one Jira site with basic auth. It does not retry.
type Client struct {
	server     string
	email      string
	token      string
	maxResults int
	conv       converter
	httpClient *http.Client
	logger     *slog.Logger
}

var _ contract.TrackerClient = &Client{} // Compile-time check

// NewClient builds a client from the validated config.
func NewClient(cfg *contract.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		server:     strings.TrimRight(cfg.JiraServer, "/"),
		email:      cfg.JiraEmail,
		token:      cfg.APIToken,
		maxResults: cfg.MaxResults,
		conv: converter{
			pointsField: cfg.StoryPointsField,
			pointsLabel: cfg.StoryPointsLabel,
			logger:      logger,
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// ServerID identifies the Jira site for cache keys.
func (c *Client) ServerID() string {
	return c.server
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.server + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.logger.Debug("jira API request", "path", path, "query", query.Encode())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	c.logger.Debug("jira API response", "path", path, "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("jira API error (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response of %s: %w", path, err)
	}
	return nil
}

// ListSprints returns every sprint of the board in listing order.
func (c *Client) ListSprints(ctx context.Context, boardID int64) ([]schema.Sprint, error) {
	path := fmt.Sprintf("/rest/agile/1.0/board/%d/sprint", boardID)
	var sprints []schema.Sprint
	startAt := 0
	for {
		query := url.Values{}
		query.Set("startAt", strconv.Itoa(startAt))
		query.Set("maxResults", strconv.Itoa(sprintPageSize))

		var page sprintPage
		if err := c.get(ctx, path, query, &page); err != nil {
			return nil, fmt.Errorf("listing sprints of board %d: %w", boardID, err)
		}
		for _, s := range page.Values {
			sprints = append(sprints, c.conv.sprint(s))
		}
		if page.IsLast || len(page.Values) == 0 {
			return sprints, nil
		}
		startAt += len(page.Values)
	}
}

// SprintIssues returns every issue of the sprint with its changelog and
// complete worklog.
func (c *Client) SprintIssues(ctx context.Context, sprintID int64) ([]schema.Issue, error) {
	var issues []schema.Issue
	startAt := 0
	for {
		query := url.Values{}
		query.Set("jql", fmt.Sprintf("Sprint = %d", sprintID))
		query.Set("fields", fmt.Sprintf(issueFieldList, c.conv.pointsField))
		query.Set("expand", "changelog")
		query.Set("startAt", strconv.Itoa(startAt))
		query.Set("maxResults", strconv.Itoa(c.maxResults))

		var page searchPage
		if err := c.get(ctx, "/rest/api/2/search", query, &page); err != nil {
			return nil, fmt.Errorf("searching issues of sprint %d: %w", sprintID, err)
		}
		for _, raw := range page.Issues {
			issue, err := c.convertIssue(ctx, raw)
			if err != nil {
				return nil, err
			}
			issues = append(issues, issue)
		}

		startAt += len(page.Issues)
		if len(page.Issues) == 0 || startAt >= page.Total {
			return issues, nil
		}
	}
}

func (c *Client) convertIssue(ctx context.Context, raw jiraIssue) (schema.Issue, error) {
	fields, err := decodeFields(raw.Fields)
	if err != nil {
		return schema.Issue{}, fmt.Errorf("decoding fields of %s: %w", raw.Key, err)
	}
	if raw.Changelog.Total > len(raw.Changelog.Histories) {
		c.logger.Debug("Fetching complete changelog", "key", raw.Key, "embedded", len(raw.Changelog.Histories), "total", raw.Changelog.Total)
		if raw.Changelog.Histories, err = c.issueChangelog(ctx, raw.Key); err != nil {
			return schema.Issue{}, err
		}
	}
	worklogs := fields.Worklog.Worklogs
	if fields.Worklog.Total > len(worklogs) {
		c.logger.Debug("Fetching complete worklog", "key", raw.Key, "embedded", len(worklogs), "total", fields.Worklog.Total)
		if worklogs, err = c.issueWorklogs(ctx, raw.Key); err != nil {
			return schema.Issue{}, err
		}
	}
	return c.conv.issue(raw, fields, worklogs), nil
}

// issueWorklogs pages through the worklog endpoint of one issue.
func (c *Client) issueWorklogs(ctx context.Context, key string) ([]jiraWorklog, error) {
	path := fmt.Sprintf("/rest/api/2/issue/%s/worklog", url.PathEscape(key))
	var all []jiraWorklog
	startAt := 0
	for {
		query := url.Values{}
		query.Set("startAt", strconv.Itoa(startAt))
		query.Set("maxResults", strconv.Itoa(worklogPageSize))

		var page worklogPage
		if err := c.get(ctx, path, query, &page); err != nil {
			return nil, fmt.Errorf("fetching worklogs of %s: %w", key, err)
		}
		all = append(all, page.Worklogs...)
		startAt += len(page.Worklogs)
		if len(page.Worklogs) == 0 || startAt >= page.Total {
			return all, nil
		}
	}
}

// issueChangelog pages through the changelog endpoint of one issue.
func (c *Client) issueChangelog(ctx context.Context, key string) ([]history, error) {
	path := fmt.Sprintf("/rest/api/2/issue/%s/changelog", url.PathEscape(key))
	var all []history
	startAt := 0
	for {
		query := url.Values{}
		query.Set("startAt", strconv.Itoa(startAt))
		query.Set("maxResults", strconv.Itoa(changelogPageSize))

		var page changelogPage
		if err := c.get(ctx, path, query, &page); err != nil {
			return nil, fmt.Errorf("fetching changelog of %s: %w", key, err)
		}
		all = append(all, page.Values...)
		startAt += len(page.Values)
		if page.IsLast || len(page.Values) == 0 || startAt >= page.Total {
			return all, nil
		}
	}
}

func decodeFields(raw map[string]json.RawMessage) (issueFields, error) {
	var fields issueFields
	if len(raw) == 0 {
		return fields, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fields, err
	}
	err = json.Unmarshal(data, &fields)
	return fields, err
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
