// Package analytics aggregates the complaint set for the admin dashboard:
// filtering, per-type and per-area distributions, and headline counters.
// The aggregations run in memory over the fetched complaint list, which for
// a city portal is small enough that the database never needs to group.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"nagarrakshak/backend/internal/config"
	"nagarrakshak/backend/internal/models"
	"nagarrakshak/backend/internal/routing"
)

// UnknownArea labels complaints that carry neither a city nor a state.
const UnknownArea = "Unknown"

// Filter narrows the admin complaint listing. Zero values mean "no
// constraint" for each field independently.
type Filter struct {
	// Search matches case-insensitively against the tracking code, the
	// description and the reporter's name.
	Search    string
	IssueType string
	Area      string
	Status    models.ComplaintStatus
	DateFrom  *time.Time
	DateTo    *time.Time
}

// AreaOf returns the area bucket a complaint aggregates under: the city,
// falling back to the state, falling back to UnknownArea.
func AreaOf(c *models.Complaint) string {
	if c.City != "" {
		return c.City
	}
	if c.State != "" {
		return c.State
	}
	return UnknownArea
}

// Apply returns the complaints matching every set field of the filter,
// preserving input order.
func Apply(list []models.Complaint, f Filter) []models.Complaint {
	out := make([]models.Complaint, 0, len(list))
	for _, c := range list {
		if !matches(&c, f) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matches(c *models.Complaint, f Filter) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.ComplaintCode), term) &&
			!strings.Contains(strings.ToLower(c.Description), term) &&
			!strings.Contains(strings.ToLower(c.ReporterName), term) {
			return false
		}
	}
	if f.IssueType != "" && !strings.EqualFold(c.IssueType, f.IssueType) {
		return false
	}
	if f.Area != "" && !strings.Contains(strings.ToLower(AreaOf(c)), strings.ToLower(f.Area)) {
		return false
	}
	if f.Status != "" && normalizeStatus(c.Status) != normalizeStatus(f.Status) {
		return false
	}
	if f.DateFrom != nil && c.CreatedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && c.CreatedAt.After(*f.DateTo) {
		return false
	}
	return true
}

func normalizeStatus(s models.ComplaintStatus) models.ComplaintStatus {
	if s == models.StatusPending {
		return models.StatusRegistered
	}
	return s
}

// TypeCount is one slice of the per-issue-type distribution.
type TypeCount struct {
	Type       string `json:"type"`
	Label      string `json:"label"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

// CountByType computes the issue-type distribution with one-decimal
// percentages, largest first. Ties keep first-encounter order.
func CountByType(list []models.Complaint) []TypeCount {
	order, counts := countBy(list, func(c *models.Complaint) string { return c.IssueType })

	out := make([]TypeCount, 0, len(order))
	for _, key := range order {
		label := key
		if it, ok := routing.Lookup(key); ok {
			label = it.Label
		}
		tc := TypeCount{Type: key, Label: label, Count: counts[key]}
		if len(list) > 0 {
			tc.Percentage = fmt.Sprintf("%.1f", float64(counts[key])*100/float64(len(list)))
		} else {
			tc.Percentage = "0.0"
		}
		out = append(out, tc)
	}
	sortCounted(out, func(tc TypeCount) int { return tc.Count })
	return out
}

// AreaCount is one bar of the per-area distribution.
type AreaCount struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

// CountByArea computes the per-area distribution, largest first, capped at
// limit entries (no cap when limit <= 0). Ties keep first-encounter order.
func CountByArea(list []models.Complaint, limit int) []AreaCount {
	order, counts := countBy(list, func(c *models.Complaint) string { return AreaOf(c) })

	out := make([]AreaCount, 0, len(order))
	for _, key := range order {
		out = append(out, AreaCount{Area: key, Count: counts[key]})
	}
	sortCounted(out, func(ac AreaCount) int { return ac.Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopAreas returns the dashboard's "most affected areas" list.
func TopAreas(list []models.Complaint) []AreaCount {
	return CountByArea(list, config.TopAreasLimit)
}

// AreaBreakdown is one row of the area-by-issue-type cross table.
type AreaBreakdown struct {
	Area   string         `json:"area"`
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
}

// CrossTab computes, for the busiest areas, how their complaints split
// across issue types.
func CrossTab(list []models.Complaint) []AreaBreakdown {
	top := CountByArea(list, config.CrossTabAreaLimit)

	out := make([]AreaBreakdown, 0, len(top))
	for _, ac := range top {
		row := AreaBreakdown{Area: ac.Area, Total: ac.Count, ByType: make(map[string]int)}
		for i := range list {
			if AreaOf(&list[i]) == ac.Area {
				row.ByType[list[i].IssueType]++
			}
		}
		out = append(out, row)
	}
	return out
}

// Stats are the headline counters at the top of the admin dashboard.
// Pending counts complaints still at the Registered stage.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Assigned   int `json:"assigned"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
}

// ComputeStats tallies the headline counters.
func ComputeStats(list []models.Complaint) Stats {
	st := Stats{Total: len(list)}
	for i := range list {
		switch normalizeStatus(list[i].Status) {
		case models.StatusRegistered:
			st.Pending++
		case models.StatusAssigned:
			st.Assigned++
		case models.StatusInProgress:
			st.InProgress++
		case models.StatusResolved:
			st.Resolved++
		}
	}
	return st
}

// countBy tallies complaints per key, remembering first-encounter order so
// ties sort deterministically.
func countBy(list []models.Complaint, keyOf func(*models.Complaint) string) ([]string, map[string]int) {
	counts := make(map[string]int)
	order := make([]string, 0)
	for i := range list {
		key := keyOf(&list[i])
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	return order, counts
}

func sortCounted[T any](items []T, countOf func(T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return countOf(items[i]) > countOf(items[j])
	})
}
