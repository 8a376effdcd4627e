package domain

import (
	"fmt"
	"time"
)

type Granularity string

const (
	GranularityDaily   Granularity = "DAILY"
	GranularityWeekly  Granularity = "WEEKLY"
	GranularityMonthly Granularity = "MONTHLY"
)

const dateLayout = "2006-01-02"

// TimePeriod is a [Start, End) date range in YYYY-MM-DD form, matching the
// Cost Explorer DateInterval contract.
type TimePeriod struct {
	Start string
	End   string
}

// NewTimePeriod validates both bounds as calendar dates and Start <= End.
func NewTimePeriod(start, end string) (TimePeriod, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return TimePeriod{}, &ValidationError{Message: fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", start)}
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return TimePeriod{}, &ValidationError{Message: fmt.Sprintf("invalid end date %q, expected YYYY-MM-DD", end)}
	}
	if startDate.After(endDate) {
		return TimePeriod{}, &ValidationError{Message: fmt.Sprintf("start date %s is after end date %s", start, end)}
	}
	return TimePeriod{Start: start, End: end}, nil
}

// LastDays returns the trailing window of the given length ending today.
func LastDays(days int) TimePeriod {
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return TimePeriod{
		Start: start.Format(dateLayout),
		End:   end.Format(dateLayout),
	}
}

type GroupBy struct {
	Type string // DIMENSION, TAG or COST_CATEGORY
	Key  string
}

// CostQuery describes a single cost-and-usage lookup. GroupBy order matters:
// result group keys are positionally aligned with it.
type CostQuery struct {
	Period      TimePeriod
	Granularity Granularity
	GroupBy     []GroupBy
	Metrics     []string
	Filter      *FilterExpression
}

// Metric keeps the amount as the vendor-supplied decimal string. Parsing to
// float is reserved for display-level summation in diagnostics.
type Metric struct {
	Amount string
	Unit   string
}

// GroupMetrics holds only the metrics the vendor actually returned. A nil
// entry means the metric was absent, never a zero amount.
type GroupMetrics struct {
	BlendedCost   *Metric
	UnblendedCost *Metric
	UsageQuantity *Metric
}

type Group struct {
	Keys    []string
	Metrics GroupMetrics
}

// ResultByTime is one time bucket of a cost report. Total is present only
// when no grouping was requested. Estimated marks buckets the vendor has not
// finalized yet, typically the in-progress month.
type ResultByTime struct {
	Period    TimePeriod
	Total     *GroupMetrics
	Groups    []Group
	Estimated bool
}

// CostReport echoes the query axes alongside the vendor-ordered results.
// NextPageToken is an opaque pass-through for a follow-up call; empty means
// no further pages.
type CostReport struct {
	Period        TimePeriod
	Granularity   Granularity
	GroupBy       []GroupBy
	Results       []ResultByTime
	NextPageToken string
}

type AccountInfo struct {
	AccountID string
	UserID    string
	ARN       string
}

// CredentialValidation is the outcome of probing credentials against the
// vendor identity endpoint. It is a result, not an error: validation never
// fails with an exception.
type CredentialValidation struct {
	Valid     bool
	Error     string
	AccountID string
}
