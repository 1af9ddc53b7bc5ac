/*
report.go - Read-only reporting views

PURPOSE:
  Pure aggregation over a Timetable+Registry snapshot: per-provider
  schedules, an attendance ranking, global status counts, and a revenue
  rollup over attended treatments. No function here mutates state; the
  views are computed on demand after any sequence of engine operations.

CONSISTENCY:
  The status summary asserts that the four per-status counts add up to the
  total. A mismatch would mean a ledger invariant was violated somewhere;
  it is surfaced as a warning flag on the summary, never thrown, so the
  report always renders.

SEE ALSO:
  - engine.go: the operations whose effects these views summarize
*/
package clinic

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ProviderSchedule is one provider's slice of the timetable.
type ProviderSchedule struct {
	Provider *Provider
	Slots    []*Slot
}

// StatusSummary holds global per-status counts.
type StatusSummary struct {
	Total     int
	Available int
	Booked    int
	Attended  int
	Cancelled int

	// Consistent is false when the per-status counts do not add up to
	// Total, which indicates a ledger invariant violation upstream.
	Consistent bool
}

// AttendanceCount ranks one provider by attended visits.
type AttendanceCount struct {
	Provider *Provider
	Attended int
	Revenue  decimal.Decimal
}

// Report is the full derived view a harness renders.
type Report struct {
	Schedules []ProviderSchedule
	Ranking   []AttendanceCount
	Summary   StatusSummary
}

// BuildReport computes the complete reporting view from a snapshot of the
// registry and timetable.
func BuildReport(registry *Registry, timetable *Timetable) *Report {
	slots := timetable.All()
	providers := registry.Providers()

	return &Report{
		Schedules: groupByProvider(providers, slots),
		Ranking:   rankByAttended(providers, slots),
		Summary:   summarize(slots),
	}
}

// groupByProvider groups all slots under their provider, ordered by
// provider display name (case-sensitive lexical order). Providers without
// slots are omitted.
func groupByProvider(providers []*Provider, slots []*Slot) []ProviderSchedule {
	var schedules []ProviderSchedule
	for _, p := range providers {
		var owned []*Slot
		for _, s := range slots {
			if s.Provider == p.ID {
				owned = append(owned, s)
			}
		}
		if len(owned) > 0 {
			schedules = append(schedules, ProviderSchedule{Provider: p, Slots: owned})
		}
	}
	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].Provider.Name < schedules[j].Provider.Name
	})
	return schedules
}

// rankByAttended lists providers descending by attended count, with ties
// kept in roster registration order (stable sort). The revenue column sums
// the treatment prices of attended slots.
func rankByAttended(providers []*Provider, slots []*Slot) []AttendanceCount {
	counts := make([]AttendanceCount, 0, len(providers))
	for _, p := range providers {
		attended := 0
		revenue := decimal.Zero
		for _, s := range slots {
			if s.Provider == p.ID && s.Status() == StatusAttended {
				attended++
				revenue = revenue.Add(s.Treatment.Price)
			}
		}
		counts = append(counts, AttendanceCount{Provider: p, Attended: attended, Revenue: revenue})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Attended > counts[j].Attended
	})
	return counts
}

// summarize computes global status counts and checks they reconcile.
func summarize(slots []*Slot) StatusSummary {
	sum := StatusSummary{Total: len(slots)}
	for _, s := range slots {
		switch s.Status() {
		case StatusAvailable:
			sum.Available++
		case StatusBooked:
			sum.Booked++
		case StatusAttended:
			sum.Attended++
		case StatusCancelled:
			sum.Cancelled++
		}
	}
	sum.Consistent = sum.Available+sum.Booked+sum.Attended+sum.Cancelled == sum.Total
	return sum
}
