// Package report derives daily summary statistics from session and
// maintenance history. Building a report is a pure fold over the snapshot;
// persistence of the result is the store's concern.
package report

import (
	"sort"
	"strings"
	"time"

	"console-rental-backend/internal/model"
)

// TopN is how many entries the device and game rankings keep.
const TopN = 5

// matchesDay reports whether a timestamp belongs to the given calendar-day
// key. Matching is by string prefix against the RFC3339 rendering, the same
// rule the desk has always used: "2024-01-15T23:59:00Z" belongs to
// "2024-01-15" no matter what timezone the clock ran in.
func matchesDay(t time.Time, date string) bool {
	return strings.HasPrefix(t.UTC().Format(time.RFC3339), date)
}

// Build aggregates the sessions and maintenance records of one calendar day
// into a DailyReport. Sessions still running contribute zero cost and
// duration. Rankings are sorted descending by their metric; ties keep
// first-encountered order.
func Build(date string, sessions []model.Session, maintenance []model.MaintenanceRecord) *model.DailyReport {
	var matched []model.Session
	for _, s := range sessions {
		if matchesDay(s.StartTime, date) {
			matched = append(matched, s)
		}
	}

	var totalRevenue, totalDuration float64
	for _, s := range matched {
		if s.Cost != nil {
			totalRevenue += *s.Cost
		}
		if s.Duration != nil {
			totalDuration += *s.Duration
		}
	}

	var average float64
	if len(matched) > 0 {
		average = totalDuration / float64(len(matched))
	}

	return &model.DailyReport{
		Date:                   date,
		TotalRevenue:           totalRevenue,
		TotalSessions:          len(matched),
		AverageSessionDuration: average,
		TopDevices:             topDevices(matched),
		TopGames:               topGames(matched),
		Expenses: model.ExpenseBreakdown{
			Maintenance: maintenanceExpenses(date, maintenance),
			Services:    serviceExpenses(matched),
			Other:       0,
		},
	}
}

func topDevices(sessions []model.Session) []model.DeviceRanking {
	stats := make(map[int64]*model.DeviceRanking)
	ranking := make([]model.DeviceRanking, 0)
	order := make([]int64, 0)

	for _, s := range sessions {
		entry, ok := stats[s.DeviceID]
		if !ok {
			entry = &model.DeviceRanking{DeviceID: s.DeviceID}
			stats[s.DeviceID] = entry
			order = append(order, s.DeviceID)
		}
		if s.Cost != nil {
			entry.Revenue += *s.Cost
		}
		if s.Duration != nil {
			entry.Hours += *s.Duration
		}
	}

	for _, id := range order {
		ranking = append(ranking, *stats[id])
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Revenue > ranking[j].Revenue
	})
	if len(ranking) > TopN {
		ranking = ranking[:TopN]
	}
	return ranking
}

func topGames(sessions []model.Session) []model.GameRanking {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, s := range sessions {
		for _, game := range s.Games {
			if _, ok := counts[game]; !ok {
				order = append(order, game)
			}
			counts[game]++
		}
	}

	ranking := make([]model.GameRanking, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, model.GameRanking{Name: name, PlayCount: counts[name]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].PlayCount > ranking[j].PlayCount
	})
	if len(ranking) > TopN {
		ranking = ranking[:TopN]
	}
	return ranking
}

func maintenanceExpenses(date string, records []model.MaintenanceRecord) float64 {
	var total float64
	for _, m := range records {
		if strings.HasPrefix(m.Date, date) {
			total += m.Cost
		}
	}
	return total
}

func serviceExpenses(sessions []model.Session) float64 {
	var total float64
	for _, s := range sessions {
		for _, svc := range s.AdditionalServices {
			total += svc.Cost * float64(svc.Quantity)
		}
	}
	return total
}
