// Package retention implements the month-based backup retention policy.
//
// The selector is a pure function: given a set of backup names and an
// explicit reference date it partitions the set into keep and delete. It
// never touches storage and never reads the clock.
package retention

import (
	"fmt"
	"sort"
	"time"

	"github.com/zettelkit/zettelkit/internal/backup"
)

// keepEvery is the sampling step applied to the previous month's bucket.
const keepEvery = 7

// Class is the recency class of a month bucket relative to the reference date.
type Class string

// Recency classes, each mapping to a retention rule.
const (
	// ClassCurrent keeps everything.
	ClassCurrent Class = "current"
	// ClassPrevious keeps every 7th entry once the bucket has at least 7.
	ClassPrevious Class = "previous"
	// ClassOlder keeps only the earliest entry.
	ClassOlder Class = "older"
	// ClassFuture keeps everything; a future-dated backup is clock skew,
	// not a reason to delete.
	ClassFuture Class = "future"
)

// MonthPlan is the decision for a single YYYY-MM bucket, both slices sorted
// ascending.
type MonthPlan struct {
	Month  string
	Class  Class
	Keep   []string
	Delete []string
}

// Decision is the total partition of the input set. Every input name appears
// in exactly one of Keep and Delete.
type Decision struct {
	Months []MonthPlan
	Keep   []string
	Delete []string
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// previousMonth computes the calendar month before the reference date's
// month. Anchoring to the first of the month avoids AddDate normalization
// (March 31 minus one month must be February, not March 3).
func previousMonth(ref time.Time) string {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	return monthKey(first.AddDate(0, -1, 0))
}

func classify(month, current, previous string) Class {
	switch {
	case month == current:
		return ClassCurrent
	case month == previous:
		return ClassPrevious
	case month > current:
		return ClassFuture
	default:
		return ClassOlder
	}
}

// apply partitions one sorted bucket according to its class.
func apply(class Class, names []string) (keep, del []string) {
	switch class {
	case ClassCurrent, ClassFuture:
		return names, nil
	case ClassPrevious:
		if len(names) < keepEvery {
			return names, nil
		}
		for i, name := range names {
			if i%keepEvery == 0 {
				keep = append(keep, name)
			} else {
				del = append(del, name)
			}
		}
		return keep, del
	default:
		return names[:1], names[1:]
	}
}

// Select computes the retention decision for the given backup names against
// the reference date. Duplicate names collapse to a single entry before
// bucketing. Any name that is not a valid backup artifact fails the whole
// selection.
func Select(backups []string, ref time.Time) (Decision, error) {
	seen := make(map[string]struct{}, len(backups))
	buckets := make(map[string][]string)

	for _, raw := range backups {
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}

		name, err := backup.ParseName(raw)
		if err != nil {
			return Decision{}, fmt.Errorf("selecting retention: %w", err)
		}
		month := name.YearMonth()
		buckets[month] = append(buckets[month], raw)
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	current := monthKey(ref)
	previous := previousMonth(ref)

	var decision Decision
	for _, month := range months {
		names := buckets[month]
		sort.Strings(names)

		class := classify(month, current, previous)
		keep, del := apply(class, names)

		decision.Months = append(decision.Months, MonthPlan{
			Month:  month,
			Class:  class,
			Keep:   keep,
			Delete: del,
		})
		decision.Keep = append(decision.Keep, keep...)
		decision.Delete = append(decision.Delete, del...)
	}

	return decision, nil
}
