package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/evdash/core/analytics"
)

// ParseFilter reads from, to, charger_type and region query parameters.
// Dates use YYYY-MM-DD; list parameters may repeat or be comma separated.
func ParseFilter(q url.Values) (analytics.Filter, error) {
	var f analytics.Filter
	var err error
	if f.From, err = parseDate(q.Get("from")); err != nil {
		return f, fmt.Errorf("from: %w", err)
	}
	if f.To, err = parseDate(q.Get("to")); err != nil {
		return f, fmt.Errorf("to: %w", err)
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, fmt.Errorf("to before from")
	}
	f.ChargerTypes = list(q["charger_type"])
	f.Regions = list(q["region"])
	return f, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}

func list(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// positiveInt reads a strictly positive integer parameter or returns def.
func positiveInt(q url.Values, key string, def int) (int, error) {
	s := q.Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}
