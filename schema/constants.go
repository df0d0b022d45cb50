package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the report output.
	OutputMode string

	// SprintState represents the lifecycle state of a sprint.
	SprintState string

	// DatabaseBackend represents the database backend for caching and run history.
	DatabaseBackend string

	// LogFormat represents the log output format.
	LogFormat string

	// SprintVerdict represents whether a sprint takes part in a report.
	SprintVerdict string
)

// All output modes supported.
const (
	JSONOut    OutputMode = "json" // default
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text"
	ParquetOut OutputMode = "parquet"
)

// All sprint states reported by the tracker.
const (
	FutureState SprintState = "future"
	ActiveState SprintState = "active"
	ClosedState SprintState = "closed"
)

// All selection verdicts for a sprint.
const (
	IncludedVerdict SprintVerdict = "included"
	FutureVerdict   SprintVerdict = "skipped (future)"
	ExcludedVerdict SprintVerdict = "skipped (excluded)"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All log formats supported.
const (
	AutoLogFormat    LogFormat = "auto" // default
	ConsoleLogFormat LogFormat = "console"
	JSONLogFormat    LogFormat = "json"
)

// Workflow status names that drive credit allocation.
const (
	ToDoStatus = "To Do"
	DoneStatus = "Done"
)

// Report entity and view keys.
const (
	OverallEntity  = "overall"
	UnassignedUser = "Unassigned"
	AllTimeKey     = "All Time"
	EVPVKey        = "EV/PV"
)

// DateLayout is the calendar date representation used in every report.
const DateLayout = "2006-01-02"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	JSONOut:    {},
	CSVOut:     {},
	TextOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidLogFormats lists all valid log formats.
var ValidLogFormats = map[LogFormat]struct{}{
	AutoLogFormat:    {},
	ConsoleLogFormat: {},
	JSONLogFormat:    {},
}
