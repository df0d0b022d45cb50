// Package main provides a performance benchmarking tool for the sprintdash report pipeline.
// It builds reports over synthetic boards of different sizes, running each phase multiple
// times, treating the first cached run as cold and averaging the rest as warm,
// and generates CSV output for performance analysis and documentation.
//
// The tracker is simulated in-process with a fixed per-request latency, so the
// numbers show what the issue cache saves without needing a Jira instance.
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the temporary SQLite cache (default: os.TempDir())
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/core"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/iocache"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Board       string
	Sprints     int
	Issues      int
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BoardSize describes one synthetic board.
type BoardSize struct {
	Name            string
	Sprints         int
	IssuesPerSprint int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Latency     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Boards      []BoardSize
}

func main() {
	workDir := os.TempDir()
	if len(os.Args) == 2 {
		workDir = os.Args[1]
	} else if len(os.Args) > 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Latency:     15 * time.Millisecond,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Boards: []BoardSize{
			{Name: "small", Sprints: 6, IssuesPerSprint: 20},
			{Name: "medium", Sprints: 24, IssuesPerSprint: 60},
			{Name: "large", Sprints: 80, IssuesPerSprint: 150},
		},
	}

	// Keep the pipeline quiet; only the summary matters here.
	contract.SetLogger(contract.NewLogger(slog.LevelError, os.Stderr, schema.JSONLogFormat))

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// syntheticTracker serves generated sprints with a fixed latency per request.
type syntheticTracker struct {
	sprints []schema.Sprint
	issues  map[int64][]schema.Issue
	latency time.Duration
}

func (s *syntheticTracker) ListSprints(ctx context.Context, _ int64) ([]schema.Sprint, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.sprints, nil
}

func (s *syntheticTracker) SprintIssues(ctx context.Context, sprintID int64) ([]schema.Issue, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.issues[sprintID], nil
}

func (s *syntheticTracker) ServerID() string {
	return "https://benchmark.invalid"
}

func (s *syntheticTracker) wait(ctx context.Context) error {
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// newSyntheticTracker builds back-to-back two-week sprints ending with an active one.
// Every issue moves to In Progress early in the sprint and most reach Done.
func newSyntheticTracker(size BoardSize, latency time.Duration, today time.Time) *syntheticTracker {
	tracker := &syntheticTracker{issues: make(map[int64][]schema.Issue), latency: latency}
	users := []string{"Ana Lima", "Bo Chen", "Cy Okafor", "Dee Park", ""}

	start := today.AddDate(0, 0, -14*size.Sprints+7)
	for i := 0; i < size.Sprints; i++ {
		id := int64(i + 1)
		sprintStart := start.AddDate(0, 0, 14*i)
		state := schema.ClosedState
		if i == size.Sprints-1 {
			state = schema.ActiveState
		}
		tracker.sprints = append(tracker.sprints, schema.Sprint{
			ID:    id,
			Name:  fmt.Sprintf("Sprint %d", i+1),
			State: state,
			Start: sprintStart,
			End:   sprintStart.AddDate(0, 0, 13),
		})

		issues := make([]schema.Issue, size.IssuesPerSprint)
		for j := range issues {
			began := sprintStart.Add(time.Duration(j%5)*24*time.Hour + 10*time.Hour)
			issue := schema.Issue{
				Key:         fmt.Sprintf("DASH-%d", i*size.IssuesPerSprint+j),
				StoryPoints: float64(j%8 + 1),
				Status:      "In Progress",
				Assignee:    users[j%len(users)],
				Created:     sprintStart.AddDate(0, 0, -3),
				StatusChanges: []schema.StatusChange{
					{At: began, From: schema.ToDoStatus, To: "In Progress"},
				},
				PointChanges: []schema.PointChange{
					{At: began.Add(-2 * time.Hour), From: float64(j%8) + 0.5, To: float64(j%8 + 1)},
				},
			}
			if j%4 != 0 {
				issue.Status = schema.DoneStatus
				issue.StatusChanges = append(issue.StatusChanges, schema.StatusChange{
					At: began.AddDate(0, 0, j%6+1), From: "In Progress", To: schema.DoneStatus,
				})
			}
			for k := 0; k < j%4+1; k++ {
				issue.Worklogs = append(issue.Worklogs, schema.Worklog{
					Author:       users[(j+k)%len(users)],
					Started:      began.AddDate(0, 0, k),
					SecondsSpent: int64(1800 * (k + 1)),
				})
			}
			issues[j] = issue
		}
		tracker.issues[id] = issues
	}
	return tracker
}

// benchManager hands the pipeline a single issue store and no run history.
type benchManager struct {
	store contract.CacheStore
}

func (m *benchManager) GetIssueStore() contract.CacheStore { return m.store }
func (m *benchManager) GetRunStore() contract.RunStore     { return nil }

// runBenchmarks executes the benchmark suite across configured boards
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d boards, %v latency, no-cache: %d runs, cache: %d runs\n",
		len(config.Boards), config.Latency, config.NoCacheRuns, config.CacheRuns)

	today := schema.DayOf(time.Now())
	for _, board := range config.Boards {
		fmt.Printf("Benchmarking %s board (%d sprints x %d issues)\n", board.Name, board.Sprints, board.IssuesPerSprint)
		tracker := newSyntheticTracker(board, config.Latency, today)
		cfg := &contract.Config{
			BoardID:          1,
			StoryPointsField: contract.DefaultStoryPointsField,
			StoryPointsLabel: contract.DefaultStoryPointsLabel,
			Today:            today,
			ExcludePattern:   contract.DefaultExcludePattern,
			AllTimePrefix:    contract.DefaultAllTimePrefix,
		}

		result, err := runBenchmarkSuite(config, board, tracker, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a board
func runBenchmarkSuite(config BenchmarkConfig, board BoardSize, tracker *syntheticTracker, cfg *contract.Config) (BenchmarkResult, error) {
	// Phase 1: No-cache runs
	fmt.Printf("  No-cache phase (%d runs)\n", config.NoCacheRuns)
	noCacheTimes, err := runBenchmark(tracker, cfg, nil, config.NoCacheRuns)
	if err != nil {
		return BenchmarkResult{}, err
	}

	// Phase 2: Cache runs against a fresh SQLite file
	dbPath := filepath.Join(config.WorkDir, fmt.Sprintf("sprintdash_benchmark_%s.db", board.Name))
	_ = os.Remove(dbPath)
	defer func() { _ = os.Remove(dbPath) }()

	store, err := iocache.NewCacheStore("sprintdash_issue_cache", schema.SQLiteBackend, dbPath)
	if err != nil {
		return BenchmarkResult{}, fmt.Errorf("failed to open benchmark cache: %w", err)
	}
	defer func() { _ = store.Close() }()

	fmt.Printf("  Cache phase (%d runs)\n", config.CacheRuns)
	cacheTimes, err := runBenchmark(tracker, cfg, &benchManager{store: store}, config.CacheRuns)
	if err != nil {
		return BenchmarkResult{}, err
	}

	result := BenchmarkResult{
		Board:       board.Name,
		Sprints:     board.Sprints,
		Issues:      board.Sprints * board.IssuesPerSprint,
		NoCacheTime: formatAverage(noCacheTimes),
		ColdTime:    formatAverage(cacheTimes[:1]),
		WarmTime:    formatAverage(cacheTimes[1:]),
	}
	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", result.NoCacheTime, result.ColdTime, result.WarmTime)
	return result, nil
}

// runBenchmark builds the report numRuns times and returns each duration in seconds
func runBenchmark(tracker *syntheticTracker, cfg *contract.Config, mgr contract.CacheManager, numRuns int) ([]float64, error) {
	times := make([]float64, 0, numRuns)
	for run := 1; run <= numRuns; run++ {
		start := time.Now()
		report, err := core.BuildReport(context.Background(), cfg, tracker, mgr)
		if err != nil {
			return nil, fmt.Errorf("run %d failed: %w", run, err)
		}
		if len(report.Sprints) != len(tracker.sprints) {
			return nil, fmt.Errorf("run %d emitted %d of %d sprints", run, len(report.Sprints), len(tracker.sprints))
		}
		times = append(times, time.Since(start).Seconds())
	}
	return times, nil
}

func formatAverage(times []float64) string {
	if len(times) == 0 {
		return "n/a"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("sprintdash_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"board", "sprints", "issues", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, r := range results {
		record := []string{r.Board, fmt.Sprint(r.Sprints), fmt.Sprint(r.Issues), r.NoCacheTime, r.ColdTime, r.WarmTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	fmt.Printf("Report pipeline:\n")
	for _, r := range results {
		fmt.Printf("  %-8s: No-cache: %s, Cold: %s, Warm: %s\n", r.Board, r.NoCacheTime, r.ColdTime, r.WarmTime)
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
