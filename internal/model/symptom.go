// Package model defines the core domain models used throughout the application.
package model

// Category groups related symptoms for display statistics.
type Category string

// Symptom categories.
const (
	CategoryPain         Category = "Pain"
	CategoryMenstrual    Category = "Menstrual"
	CategoryDigestive    Category = "Digestive"
	CategoryGeneral      Category = "General Health"
	CategoryReproductive Category = "Reproductive Health"
)

// Categories returns the fixed display ordering of symptom categories.
func Categories() []Category {
	return []Category{
		CategoryPain,
		CategoryMenstrual,
		CategoryDigestive,
		CategoryGeneral,
		CategoryReproductive,
	}
}

// Symptom describes one tracked boolean symptom: the key used in daily log
// symptom maps, a human-readable label, the canonical feature name expected
// by the classifier, and the category it belongs to.
type Symptom struct {
	Key      string
	Label    string
	Feature  string
	Category Category
}

// symptomCatalog is the fixed set of tracked symptoms, in the classifier's
// feature column order. This ordering is load-bearing: top-symptom ranking
// breaks ties by catalog position.
var symptomCatalog = []Symptom{
	{Key: "irregularPeriods", Label: "Irregular / Missed periods", Feature: "Irregular_Missed_periods", Category: CategoryMenstrual},
	{Key: "cramping", Label: "Cramping", Feature: "Cramping", Category: CategoryPain},
	{Key: "menstrualClots", Label: "Menstrual clots", Feature: "Menstrual_clots", Category: CategoryMenstrual},
	{Key: "infertility", Label: "Infertility", Feature: "Infertility", Category: CategoryReproductive},
	{Key: "chronicPain", Label: "Pain / Chronic pain", Feature: "Pain_Chronic_pain", Category: CategoryPain},
	{Key: "diarrhea", Label: "Diarrhea", Feature: "Diarrhea", Category: CategoryDigestive},
	{Key: "longMenstruation", Label: "Long menstruation", Feature: "Long_menstruation", Category: CategoryMenstrual},
	{Key: "vomiting", Label: "Vomiting / constant vomiting", Feature: "Vomiting_constant_vomiting", Category: CategoryDigestive},
	{Key: "migraines", Label: "Migraines", Feature: "Migraines", Category: CategoryPain},
	{Key: "extremeBloating", Label: "Extreme Bloating", Feature: "Extreme_Bloating", Category: CategoryDigestive},
	{Key: "legPain", Label: "Leg pain", Feature: "Leg_pain", Category: CategoryPain},
	{Key: "depression", Label: "Depression", Feature: "Depression", Category: CategoryGeneral},
	{Key: "fertilityIssues", Label: "Fertility Issues", Feature: "Fertility_Issues", Category: CategoryReproductive},
	{Key: "ovarianCysts", Label: "Ovarian cysts", Feature: "Ovarian_cysts", Category: CategoryReproductive},
	{Key: "painfulUrination", Label: "Painful urination", Feature: "Painful_urination", Category: CategoryPain},
	{Key: "painAfterIntercourse", Label: "Pain after Intercourse", Feature: "Pain_after_Intercourse", Category: CategoryPain},
	{Key: "digestiveProblems", Label: "Digestive / GI problems", Feature: "Digestive_GI_problems", Category: CategoryDigestive},
	{Key: "anaemia", Label: "Anaemia / Iron deficiency", Feature: "Anaemia_Iron_deficiency", Category: CategoryGeneral},
	{Key: "hipPain", Label: "Hip pain", Feature: "Hip_pain", Category: CategoryPain},
	{Key: "vaginalPainPressure", Label: "Vaginal Pain / Pressure", Feature: "Vaginal_Pain_Pressure", Category: CategoryPain},
	{Key: "abnormalBleeding", Label: "Abnormal uterine bleeding", Feature: "Abnormal_uterine_bleeding", Category: CategoryMenstrual},
	{Key: "hormonalProblems", Label: "Hormonal problems", Feature: "Hormonal_problems", Category: CategoryReproductive},
	{Key: "feelingSick", Label: "Feeling sick", Feature: "Feeling_sick", Category: CategoryGeneral},
	{Key: "crampsDuringIntercourse", Label: "Abdominal Cramps during Intercourse", Feature: "Abdominal_Cramps_during_Intercourse", Category: CategoryPain},
	{Key: "insomnia", Label: "Insomnia / Sleeplessness", Feature: "Insomnia_Sleeplessness", Category: CategoryGeneral},
	{Key: "lossOfAppetite", Label: "Loss of appetite", Feature: "Loss_of_appetite", Category: CategoryDigestive},
}

var symptomsByKey = func() map[string]Symptom {
	m := make(map[string]Symptom, len(symptomCatalog))
	for _, s := range symptomCatalog {
		m[s.Key] = s
	}
	return m
}()

// Catalog returns the fixed symptom catalog in classifier feature order.
// Callers must not mutate the returned slice.
func Catalog() []Symptom {
	return symptomCatalog
}

// SymptomByKey looks up a symptom by its log key.
func SymptomByKey(key string) (Symptom, bool) {
	s, ok := symptomsByKey[key]
	return s, ok
}

// CatalogByCategory returns the catalog symptoms belonging to the given
// category, preserving catalog order.
func CatalogByCategory(category Category) []Symptom {
	var out []Symptom
	for _, s := range symptomCatalog {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}
