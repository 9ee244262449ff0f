package domain

import "time"

// Article is a feed entry on its way through the pipeline. Summary is empty
// when no usable text could be scraped.
type Article struct {
	Title   string
	Link    string
	Summary string
}

// TimestampLayout formats SeenRecord timestamps in the seen log and on the
// dashboard.
const TimestampLayout = "2006-01-02 15:04:05"

// SeenRecord is one row of the processed-articles log.
type SeenRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
}

// BrandVoice holds the formatting and tone guidelines injected into drafts.
type BrandVoice string

// Draft is a generated post ready for delivery.
type Draft struct {
	Title string
	Link  string
	Body  string
}

// Outcome enumerates the terminal states of a single article.
type Outcome string

const (
	OutcomeSeen        Outcome = "seen"
	OutcomeIrrelevant  Outcome = "irrelevant"
	OutcomeDraftFailed Outcome = "draft_failed"
	OutcomePublished   Outcome = "published"
)

// RunReport summarises one orchestrator pass.
type RunReport struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Feeds      int
	Outcomes   map[Outcome]int
}

// NewRunReport returns a report with an initialised outcome map.
func NewRunReport(runID string, startedAt time.Time) RunReport {
	return RunReport{
		RunID:     runID,
		StartedAt: startedAt,
		Outcomes:  make(map[Outcome]int),
	}
}

// Processed counts articles that ended in a logged terminal state.
func (r RunReport) Processed() int {
	return r.Outcomes[OutcomeIrrelevant] + r.Outcomes[OutcomeDraftFailed] + r.Outcomes[OutcomePublished]
}

// DispatchReport lists destinations by delivery result.
type DispatchReport struct {
	Delivered []string
	Failed    []string
}
