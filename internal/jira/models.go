package jira

import "encoding/json"

// sprintPage is one page of GET /rest/agile/1.0/board/{id}/sprint.
type sprintPage struct {
	MaxResults int          `json:"maxResults"`
	StartAt    int          `json:"startAt"`
	IsLast     bool         `json:"isLast"`
	Values     []jiraSprint `json:"values"`
}

type jiraSprint struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// searchPage is one page of GET /rest/api/2/search.
type searchPage struct {
	StartAt    int         `json:"startAt"`
	MaxResults int         `json:"maxResults"`
	Total      int         `json:"total"`
	Issues     []jiraIssue `json:"issues"`
}

// jiraIssue keeps the raw fields so the configured story points field can be
// looked up by name.
type jiraIssue struct {
	Key       string                     `json:"key"`
	Fields    map[string]json.RawMessage `json:"fields"`
	Changelog changelog                  `json:"changelog"`
}

type issueFields struct {
	Assignee *user       `json:"assignee"`
	Status   *status     `json:"status"`
	Created  string      `json:"created"`
	Worklog  worklogPage `json:"worklog"`
}

type user struct {
	DisplayName string `json:"displayName"`
}

type status struct {
	Name string `json:"name"`
}

// changelog is the embedded changelog of a search result. Search returns at
// most 100 histories per issue; Total tells whether more exist.
type changelog struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	Histories  []history `json:"histories"`
}

// changelogPage is one page of GET /rest/api/2/issue/{key}/changelog.
type changelogPage struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	IsLast     bool      `json:"isLast"`
	Values     []history `json:"values"`
}

type history struct {
	Created string        `json:"created"`
	Items   []historyItem `json:"items"`
}

type historyItem struct {
	Field      string  `json:"field"`
	FromString *string `json:"fromString"`
	ToString   *string `json:"toString"`
}

// worklogPage doubles as the embedded worklog field of an issue and as the
// response of GET /rest/api/2/issue/{key}/worklog.
type worklogPage struct {
	StartAt    int           `json:"startAt"`
	MaxResults int           `json:"maxResults"`
	Total      int           `json:"total"`
	Worklogs   []jiraWorklog `json:"worklogs"`
}

type jiraWorklog struct {
	Author           *user  `json:"author"`
	Started          string `json:"started"`
	TimeSpentSeconds int64  `json:"timeSpentSeconds"`
}
