package model

import "time"

// AttemptOutcome is the result class of a single remote fetch attempt.
type AttemptOutcome string

const (
	OutcomeSuccess AttemptOutcome = "success"
	OutcomeEmpty   AttemptOutcome = "empty"
	OutcomeError   AttemptOutcome = "error"
)

// FetchAttempt records one acquisition attempt inside a retry loop.
type FetchAttempt struct {
	Index   int // zero-based
	Outcome AttemptOutcome
	Err     error
	Delay   time.Duration // wait scheduled after this attempt, zero if none
}

// DateRange is the half-open interval [Start, End).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}
