package models

import (
	"context"
)

// IntervalType classifies a schedule interval for CronJob eligibility
type IntervalType string

const (
	// IntervalTypeStandard marks an interval carrying a cron expression
	IntervalTypeStandard IntervalType = "standard"
	// IntervalTypeSentinel marks a reserved non-cron keyword, these schedules
	// are not time triggered and have no CronJob equivalent
	IntervalTypeSentinel IntervalType = "sentinel"
)

// DefaultSentinelIntervals are the reserved interval keywords used by meltano
// for schedules that are not time triggered. The set is configurable through
// render.sentinels, this is only the fallback.
var DefaultSentinelIntervals = []string{"@once", "@manual", "manual", "none"}

type ScheduleType string

const (
	ScheduleTypeELT ScheduleType = "elt"
	ScheduleTypeJob ScheduleType = "job"
)

// ScheduleEntry is a single recurring pipeline job as reported by the host
// scheduling tool. Entries are read once per invocation and never persisted.
type ScheduleEntry struct {
	Name string

	// Interval is the raw interval as configured in the project, it may be a
	// preset like @daily or a sentinel keyword
	Interval string

	// CronInterval is the resolved 5 field cron expression, empty when the
	// schedule is not time triggered
	CronInterval string

	Extractor string
	Loader    string

	// Job holds the named job for job type schedules, empty for elt schedules
	Job string

	// ELTArgs are the recorded arguments of an elt invocation
	ELTArgs []string

	Environment string
}

func (s ScheduleEntry) Type() ScheduleType {
	if s.Job != "" {
		return ScheduleTypeJob
	}
	return ScheduleTypeELT
}

// Classify reports whether the entry interval is a usable cron expression or
// a reserved sentinel. Sentinels are matched by exact string comparison, no
// semantic validation of cron fields happens here.
func (s ScheduleEntry) Classify(sentinels []string) IntervalType {
	if len(sentinels) == 0 {
		sentinels = DefaultSentinelIntervals
	}
	if s.CronInterval == "" {
		return IntervalTypeSentinel
	}
	for _, reserved := range sentinels {
		if s.CronInterval == reserved || s.Interval == reserved {
			return IntervalTypeSentinel
		}
	}
	return IntervalTypeStandard
}

// ScheduleSource provides schedule entries from the host scheduling tool
type ScheduleSource interface {
	ListSchedules(ctx context.Context) ([]ScheduleEntry, error)
}
