package job

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stats aggregates job counts and revenue
type Stats struct {
	Total                 int
	Pending               int
	InProgress            int
	Completed             int
	Overdue               int
	ByStatus              map[Status]int
	ByPriority            map[Priority]int
	ByBrand               map[Brand]int
	AverageCompletionDays float64
	TotalRevenue          decimal.Decimal
}

// ComputeStats folds a full job set into Stats. Average completion is the
// mean of per-job ceil-days over finished jobs with a delivery date.
func ComputeStats(jobs []Job, now time.Time) Stats {
	s := Stats{
		ByStatus:     make(map[Status]int),
		ByPriority:   make(map[Priority]int),
		ByBrand:      make(map[Brand]int),
		TotalRevenue: decimal.Zero,
	}
	var completionDays, finished int
	for i := range jobs {
		j := &jobs[i]
		s.Total++
		s.ByStatus[j.Status]++
		s.ByPriority[j.Priority]++
		s.ByBrand[j.Brand]++
		if j.IsOverdue(now) {
			s.Overdue++
		}
		if j.Status.IsFinished() {
			if days, ok := j.CompletionDays(); ok {
				completionDays += days
				finished++
			}
		}
		if j.ActualCost != nil {
			s.TotalRevenue = s.TotalRevenue.Add(*j.ActualCost)
		}
	}
	s.Pending = s.ByStatus[StatusPending]
	s.InProgress = s.ByStatus[StatusInProgress]
	s.Completed = s.ByStatus[StatusCompleted]
	if finished > 0 {
		s.AverageCompletionDays = float64(completionDays) / float64(finished)
	}
	return s
}

// DailyCount is the number of jobs created on one calendar day
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// History summarizes job intake over recent periods
type History struct {
	Today     int
	ThisWeek  int
	ThisMonth int
	Daily     []DailyCount // last 7 days, oldest first
}

// ComputeHistory counts jobs created today, in the trailing 7 days and in
// the trailing 30 days, plus per-day counts for the last 7 days
func ComputeHistory(jobs []Job, now time.Time) History {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := startOfToday.AddDate(0, 0, -6)
	monthStart := startOfToday.AddDate(0, 0, -29)

	h := History{Daily: make([]DailyCount, 7)}
	for i := range h.Daily {
		h.Daily[i].Date = weekStart.AddDate(0, 0, i).Format("2006-01-02")
	}
	for i := range jobs {
		created := jobs[i].CreatedAt.In(now.Location())
		if created.Before(monthStart) || created.After(now) {
			continue
		}
		h.ThisMonth++
		if created.Before(weekStart) {
			continue
		}
		h.ThisWeek++
		idx := calendarDaysBetween(weekStart, created)
		if idx >= 0 && idx < len(h.Daily) {
			h.Daily[idx].Count++
		}
		if !created.Before(startOfToday) {
			h.Today++
		}
	}
	return h
}

// calendarDaysBetween counts calendar dates from a to b in a's location,
// so a 23 or 25 hour day across a DST change still counts as one
func calendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / day)
}
