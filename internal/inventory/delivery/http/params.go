package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const dateOnlyLength = len("2006-01-02")

// parseDate accepts RFC 3339 timestamps or plain dates. A plain end date
// covers the whole day.
func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := cast.ToTimeE(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", raw)
	}
	if endOfDay && len(raw) == dateOnlyLength {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// dateWindow reads the start and end query parameters.
func dateWindow(r *http.Request) (*time.Time, *time.Time, []string) {
	var rules []string
	q := r.URL.Query()

	start, err := parseDate(firstOf(q.Get("start"), q.Get("startDate")), false)
	if err != nil {
		rules = append(rules, err.Error())
	}
	end, err := parseDate(firstOf(q.Get("end"), q.Get("endDate")), true)
	if err != nil {
		rules = append(rules, err.Error())
	}
	return start, end, rules
}

// intParam parses an optional integer query parameter.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

// boolParam parses an optional boolean query parameter.
func boolParam(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := cast.ToBoolE(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", name)
	}
	return v, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var errThresholdRange = fmt.Errorf("threshold must be between %d and %d", minLowStockThreshold, maxLowStockThreshold)
