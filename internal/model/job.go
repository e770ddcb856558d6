package model

import (
	"context"
	"time"
)

// RawJob is the provider-agnostic representation of a posting, as produced by a Source.
// Missing fields stay at their zero value; extractors supply display fallbacks.
type RawJob struct {
	Title          string
	Company        string
	Description    string // raw, may contain HTML
	URL            string
	Location       string
	Salary         string // free-text salary, empty if the provider has none
	MinSalary      int64  // 0 = absent
	MaxSalary      int64  // 0 = absent
	Currency       string
	PublishedAt    string // free-text timestamp, format varies by source
	EmploymentType string
	Source         string // adapter name
	Tags           []string
}

// Level is the seniority bucket assigned by the classifier.
type Level int

const (
	LevelExcluded Level = iota // dropped from the pipeline, never stored
	LevelJunior
	LevelMiddle
)

func (l Level) String() string {
	switch l {
	case LevelJunior:
		return "Junior"
	case LevelMiddle:
		return "Middle"
	default:
		return "Excluded"
	}
}

// ParseLevel is the inverse of Level.String. Unknown values map to LevelExcluded.
func ParseLevel(s string) Level {
	switch s {
	case "Junior":
		return LevelJunior
	case "Middle":
		return LevelMiddle
	default:
		return LevelExcluded
	}
}

// ClassifiedJob is a RawJob that passed suitability and received a Junior or Middle level.
type ClassifiedJob struct {
	RawJob
	Level Level
}

// PostedRecord is one announced job kept for deduplication.
type PostedRecord struct {
	Fingerprint string
	Title       string
	Company     string
	Level       Level
	URL         string
	Source      string
	PostedAt    time.Time // when we announced it, not when the provider published it
}

// CycleStats summarizes one collection cycle.
type CycleStats struct {
	StartedAt  time.Time
	Duration   time.Duration
	Fetched    int
	Suitable   int
	Classified int
	Candidates int // classified jobs considered for publishing after the per-cycle cap
	Duplicates int
	Published  int
	Failed     int
	Err        string // non-empty when the publishing phase was aborted
}

// Source fetches job listings from one job board.
type Source interface {
	Name() string
	FetchJobs(ctx context.Context) ([]RawJob, error)
}

// JobClassifier decides suitability and seniority level for a job.
type JobClassifier interface {
	Match(job RawJob) bool
	Classify(job RawJob) Level
}

// DedupStore registers announced jobs and reports repeats.
type DedupStore interface {
	// IsDuplicate reports whether job was already announced inside the retention
	// window. When it was not, the job is registered before returning false.
	IsDuplicate(ctx context.Context, job ClassifiedJob) (bool, error)
}

// RecordReader is the read side of the store used for administrative reporting.
type RecordReader interface {
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, n int) ([]PostedRecord, error)
}

// Publisher delivers a formatted message to a channel.
type Publisher interface {
	Publish(ctx context.Context, text, channelID string) error
}
