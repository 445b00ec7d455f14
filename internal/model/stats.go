package model

// CategoryStat aggregates one symptom category over an analysis window.
// DaysWithSymptom is a day-level OR (a day counts once no matter how many of
// the category's symptoms were true); TotalOccurrences counts every
// individual true flag. Both are exposed: the UI treats them as
// informationally distinct.
type CategoryStat struct {
	Category         Category `json:"category"`
	DaysWithSymptom  int      `json:"days_with_symptom"`
	Percentage       int      `json:"percentage"`
	TotalOccurrences int      `json:"total_occurrences"`
}

// TopSymptom is one individual symptom's frequency over the window.
type TopSymptom struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// SummaryStats holds the descriptive statistics computed alongside a
// classification, used for user-facing visualization.
type SummaryStats struct {
	CategoryStats      []CategoryStat `json:"category_stats"`
	TopSymptoms        []TopSymptom   `json:"top_symptoms"`
	OverallSymptomRate float64        `json:"overall_symptom_rate"`
	SymptomFreeDays    int            `json:"symptom_free_days"`
	DaysLogged         int            `json:"days_logged"`
}

// Explanation is the output of the external explanation service, treated as
// a black-box text generator over a classification result.
type Explanation struct {
	Explanation     string    `json:"explanation"`
	Recommendations []string  `json:"recommendations"`
	RiskLevel       RiskLevel `json:"risk_level"`
}
