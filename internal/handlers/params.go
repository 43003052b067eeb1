package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"isafari/internal/planner"
)

var errBadID = errors.New("invalid id")

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}
	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}
	if val := r.URL.Query().Get(name); val != "" {
		return val
	}
	return r.PathValue(name)
}

// idParam reads a positive integer path parameter.
func idParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(getParam(r, name))
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil {
		return def
	}
	return v
}

func queryFloat(r *http.Request, name string) *float64 {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

func splitCSV(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// plannerCriteria reads region, district, ward and the categories list,
// which may be comma separated, repeated, or both.
func plannerCriteria(r *http.Request) planner.Criteria {
	q := r.URL.Query()
	var categories []string
	for _, raw := range q["categories"] {
		categories = append(categories, splitCSV(raw)...)
	}
	return planner.Criteria{
		Location: planner.LocationFilter{
			Region:   strings.TrimSpace(q.Get("region")),
			District: strings.TrimSpace(q.Get("district")),
			Ward:     strings.TrimSpace(q.Get("ward")),
		},
		Categories: categories,
	}
}
