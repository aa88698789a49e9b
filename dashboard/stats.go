package dashboard

import (
	"strings"
	"time"

	"rentflow/application"
)

// Stats summarizes the application collection for the dashboard header cards.
// AvgRentByCity is derived from the property catalog, not from applications.
type Stats struct {
	TotalApplications int            `json:"total_applications"`
	TodayApplications int            `json:"today_applications"`
	WeekApplications  int            `json:"week_applications"`
	MonthApplications int            `json:"month_applications"`
	AvgRentByCity     map[string]int `json:"avg_rent_by_city"`
}

// SeriesPoint is one daily bucket of the submissions chart.
type SeriesPoint struct {
	Label        string `json:"label"`
	Applications int    `json:"applications"`
}

// seriesDays is the width of the dashboard trend chart.
const seriesDays = 14

// Summarize computes the header stats as a pure function of the application
// list, the catalog averages, and "now".
func Summarize(apps []application.Application, avgRentByCity map[string]int, now time.Time) Stats {
	today := startOfDay(now)
	weekAgo := now.Add(-7 * 24 * time.Hour)
	monthAgo := now.Add(-30 * 24 * time.Hour)

	stats := Stats{
		TotalApplications: len(apps),
		AvgRentByCity:     avgRentByCity,
	}
	for _, app := range apps {
		if !app.CreatedAt.Before(today) {
			stats.TodayApplications++
		}
		if !app.CreatedAt.Before(weekAgo) {
			stats.WeekApplications++
		}
		if !app.CreatedAt.Before(monthAgo) {
			stats.MonthApplications++
		}
	}
	return stats
}

// TimeSeries buckets applications per calendar day over the 14 days ending
// today, oldest first. Bucket edges are local midnights.
func TimeSeries(apps []application.Application, now time.Time) []SeriesPoint {
	points := make([]SeriesPoint, 0, seriesDays)
	today := startOfDay(now)

	for i := seriesDays - 1; i >= 0; i-- {
		dayStart := today.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		count := 0
		for _, app := range apps {
			if !app.CreatedAt.Before(dayStart) && app.CreatedAt.Before(dayEnd) {
				count++
			}
		}

		points = append(points, SeriesPoint{
			Label:        dayStart.Format("Jan 2"),
			Applications: count,
		})
	}
	return points
}

// FilterBySearch keeps applications whose full name, email, or denormalized
// property title contains the query, case-insensitively. An empty query keeps
// everything; order is preserved.
func FilterBySearch(apps []application.Application, query string) []application.Application {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return apps
	}

	out := []application.Application{}
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.FullName), q) ||
			strings.Contains(strings.ToLower(app.Email), q) ||
			strings.Contains(strings.ToLower(app.PropertyTitle), q) {
			out = append(out, app)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
