// Package catalog holds the static definitions of the health metric kinds the
// service accepts. It is the single source of truth for validation, normal
// ranges, and display metadata, and is served to clients so they never need
// to keep their own copy.
package catalog

// Range is an inclusive normal range for a metric value.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MetricDefinition describes one recognized metric kind.
type MetricDefinition struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Unit        string `json:"unit"`
	NormalRange Range  `json:"normalRange"`
}

// Contains reports whether v falls inside the inclusive range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// definitions is ordered; the catalog endpoint and the summary endpoint
// preserve this order.
var definitions = []MetricDefinition{
	{ID: "blood-pressure", DisplayName: "Blood Pressure", Unit: "mmHg", NormalRange: Range{Min: 90, Max: 120}},
	{ID: "heart-rate", DisplayName: "Heart Rate", Unit: "BPM", NormalRange: Range{Min: 60, Max: 100}},
	{ID: "blood-glucose", DisplayName: "Blood Glucose", Unit: "mg/dL", NormalRange: Range{Min: 70, Max: 140}},
	{ID: "oxygen-saturation", DisplayName: "Oxygen Saturation", Unit: "%", NormalRange: Range{Min: 95, Max: 100}},
	{ID: "body-temperature", DisplayName: "Body Temperature", Unit: "°F", NormalRange: Range{Min: 97, Max: 99}},
	{ID: "bmi", DisplayName: "BMI", Unit: "kg/m²", NormalRange: Range{Min: 18.5, Max: 24.9}},
	{ID: "hemoglobin", DisplayName: "Hemoglobin", Unit: "g/dL", NormalRange: Range{Min: 12, Max: 16}},
	{ID: "cholesterol", DisplayName: "Total Cholesterol", Unit: "mg/dL", NormalRange: Range{Min: 125, Max: 200}},
	{ID: "creatinine", DisplayName: "Creatinine", Unit: "mg/dL", NormalRange: Range{Min: 0.7, Max: 1.3}},
	{ID: "urea", DisplayName: "Urea", Unit: "mg/dL", NormalRange: Range{Min: 7, Max: 20}},
	{ID: "liver-enzymes", DisplayName: "Liver Enzymes (SGPT)", Unit: "U/L", NormalRange: Range{Min: 7, Max: 56}},
	{ID: "thyroid", DisplayName: "TSH", Unit: "mIU/L", NormalRange: Range{Min: 0.4, Max: 4.0}},
}

var byID = func() map[string]MetricDefinition {
	m := make(map[string]MetricDefinition, len(definitions))
	for _, d := range definitions {
		m[d.ID] = d
	}
	return m
}()

// Definitions returns all metric definitions in catalog order. The returned
// slice is a copy; callers may modify it.
func Definitions() []MetricDefinition {
	out := make([]MetricDefinition, len(definitions))
	copy(out, definitions)
	return out
}

// ByID looks up a metric definition by its identifier.
func ByID(id string) (MetricDefinition, bool) {
	d, ok := byID[id]
	return d, ok
}

// ValidTypes returns the recognized metric identifiers in catalog order.
func ValidTypes() []string {
	ids := make([]string, len(definitions))
	for i, d := range definitions {
		ids[i] = d.ID
	}
	return ids
}
