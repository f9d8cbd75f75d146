package runlog

import "time"

// RunStatus represents the lifecycle of a pipeline run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one pipeline invocation across all configured categories.
type Run struct {
	ID               string
	StartedAt        time.Time
	FinishedAt       *time.Time
	Status           RunStatus
	ErrorMessage     string
	CategoriesTotal  int
	CategoriesFailed int
	ItemsFetched     int
	SpellsFetched    int
}

// CategoryOutcome records how a single category ended within a run.
type CategoryOutcome string

const (
	CategoryResolved CategoryOutcome = "resolved"
	CategoryFailed   CategoryOutcome = "failed"
)

// CategoryRecord is the per-category row written as each category
// finishes. Counter fields stay zero when the category failed before
// resolution produced them.
type CategoryRecord struct {
	RunID         string
	Category      string
	Outcome       CategoryOutcome
	Listed        int
	Items         int
	Spells        int
	ItemsFetched  int
	ItemFailures  int
	SpellsFetched int
	SpellFailures int
	WithAuras     int
	WithoutAuras  int
	AuraTotal     int
	ErrorMessage  string
	FinishedAt    time.Time
}

// RunTotals aggregates category counters for FinishRun.
type RunTotals struct {
	Categories    int
	Failed        int
	ItemsFetched  int
	SpellsFetched int
}
