// Package analysis implements the symptom-aggregation pipeline: feature
// extraction for the classifier, descriptive statistics for display, the
// fallback risk heuristic, and final report assembly. Everything here is a
// pure function of the analysis window.
package analysis

import "github.com/lunara-health/cyclesense/internal/model"

// Aggregate converts a window of daily logs into the classifier's feature
// vector: for each canonical feature, the fraction of window days on which
// the mapped symptom was logged. Every canonical feature is present in the
// result; symptoms absent from every record aggregate to zero. Ratios divide
// by the window's actual length, never its capacity.
//
// Callers are responsible for enforcing the minimum-days precondition before
// classifying; Aggregate itself accepts any window so it stays reusable for
// previews.
func Aggregate(window model.AnalysisWindow) model.FeatureVector {
	catalog := model.Catalog()
	vector := make(model.FeatureVector, len(catalog))

	n := window.Len()
	for _, symptom := range catalog {
		if n == 0 {
			vector[symptom.Feature] = 0
			continue
		}
		days := 0
		for i := range window.Records {
			if window.Records[i].Symptoms[symptom.Key] {
				days++
			}
		}
		vector[symptom.Feature] = float64(days) / float64(n)
	}
	return vector
}
