package analytics

import (
	"slices"
	"sort"
	"time"
)

// Filter narrows records by start date and station attributes. Zero dates
// and empty slices select everything.
type Filter struct {
	From         time.Time
	To           time.Time
	ChargerTypes []string
	Regions      []string
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Match reports whether r passes the filter. Both date bounds are
// inclusive and compared by calendar day.
func (f Filter) Match(r Record) bool {
	day := Day(r.StartTime)
	if !f.From.IsZero() && day.Before(Day(f.From)) {
		return false
	}
	if !f.To.IsZero() && day.After(Day(f.To)) {
		return false
	}
	if len(f.ChargerTypes) > 0 && !slices.Contains(f.ChargerTypes, r.ChargerType) {
		return false
	}
	if len(f.Regions) > 0 && !slices.Contains(f.Regions, r.Region) {
		return false
	}
	return true
}

// Apply returns the records matching f, preserving order.
func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Options describes the values available to filters.
type Options struct {
	ChargerTypes []string  `json:"charger_types"`
	Regions      []string  `json:"regions"`
	MinDate      time.Time `json:"min_date"`
	MaxDate      time.Time `json:"max_date"`
}

// AvailableOptions returns the sorted distinct charger types and regions
// and the first and last start day found in records.
func AvailableOptions(records []Record) Options {
	chargers := map[string]struct{}{}
	regions := map[string]struct{}{}
	var opts Options
	for i, r := range records {
		chargers[r.ChargerType] = struct{}{}
		regions[r.Region] = struct{}{}
		day := Day(r.StartTime)
		if i == 0 || day.Before(opts.MinDate) {
			opts.MinDate = day
		}
		if i == 0 || day.After(opts.MaxDate) {
			opts.MaxDate = day
		}
	}
	opts.ChargerTypes = sortedKeys(chargers)
	opts.Regions = sortedKeys(regions)
	return opts
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
