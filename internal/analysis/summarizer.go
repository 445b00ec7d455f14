package analysis

import (
	"math"
	"sort"

	"github.com/lunara-health/cyclesense/internal/model"
)

// topSymptomLimit caps the ranked symptom list shown to users.
const topSymptomLimit = 5

// Summarize computes the descriptive statistics for a window: per-category
// aggregates, the top individual symptoms, the overall symptom rate, and the
// count of symptom-free days. Deterministic given the same window ordering.
func Summarize(window model.AnalysisWindow) model.SummaryStats {
	n := window.Len()
	stats := model.SummaryStats{
		CategoryStats: make([]model.CategoryStat, 0, len(model.Categories())),
		TopSymptoms:   []model.TopSymptom{},
		DaysLogged:    n,
	}
	if n == 0 {
		return stats
	}

	for _, category := range model.Categories() {
		stats.CategoryStats = append(stats.CategoryStats, summarizeCategory(window, category))
	}

	stats.TopSymptoms = rankTopSymptoms(window)

	daysWithAny := 0
	for i := range window.Records {
		if window.Records[i].HasAnySymptom() {
			daysWithAny++
		}
	}
	stats.SymptomFreeDays = n - daysWithAny
	stats.OverallSymptomRate = roundPercent(daysWithAny, n)

	return stats
}

// summarizeCategory computes one category's day-level OR count and total
// occurrence count. A day counts toward DaysWithSymptom once, regardless of
// how many of the category's symptoms were true on it.
func summarizeCategory(window model.AnalysisWindow, category model.Category) model.CategoryStat {
	symptoms := model.CatalogByCategory(category)

	daysWith := 0
	totalOccurrences := 0
	for i := range window.Records {
		dayHasCategory := false
		for _, symptom := range symptoms {
			if window.Records[i].Symptoms[symptom.Key] {
				dayHasCategory = true
				totalOccurrences++
			}
		}
		if dayHasCategory {
			daysWith++
		}
	}

	return model.CategoryStat{
		Category:         category,
		DaysWithSymptom:  daysWith,
		Percentage:       int(roundPercent(daysWith, window.Len())),
		TotalOccurrences: totalOccurrences,
	}
}

// rankTopSymptoms counts each catalog symptom's true days, drops zeros, and
// returns the top entries sorted by count descending. Ties keep catalog
// order, so the sort must be stable.
func rankTopSymptoms(window model.AnalysisWindow) []model.TopSymptom {
	ranked := make([]model.TopSymptom, 0, len(model.Catalog()))
	for _, symptom := range model.Catalog() {
		count := 0
		for i := range window.Records {
			if window.Records[i].Symptoms[symptom.Key] {
				count++
			}
		}
		if count == 0 {
			continue
		}
		ranked = append(ranked, model.TopSymptom{
			Key:        symptom.Key,
			Label:      symptom.Label,
			Count:      count,
			Percentage: int(roundPercent(count, window.Len())),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > topSymptomLimit {
		ranked = ranked[:topSymptomLimit]
	}
	return ranked
}

func roundPercent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part) / float64(whole) * 100)
}
