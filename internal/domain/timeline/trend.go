package timeline

import "github.com/supriyapandey93/Arogya-Vritti-TeleHealth/internal/domain/catalog"

// Trend labels.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendNone       = "no trend"
	TrendNoData     = "no data"
)

// Insights summarizes the current state of one metric's series.
type Insights struct {
	Latest   *float64 `json:"latest"`
	IsNormal bool     `json:"isNormal"`
	Trend    string   `json:"trend"`
}

// Evaluate computes insights for an ascending series against the metric's
// inclusive normal range. An empty series is vacuously normal and has no
// trend direction. The trend compares only the last two points.
func Evaluate(series []Point, normal catalog.Range) Insights {
	if len(series) == 0 {
		return Insights{IsNormal: true, Trend: TrendNoData}
	}

	latest := series[len(series)-1].Value
	out := Insights{
		Latest:   &latest,
		IsNormal: normal.Contains(latest),
		Trend:    TrendNone,
	}

	if len(series) >= 2 {
		prev := series[len(series)-2].Value
		switch {
		case latest > prev:
			out.Trend = TrendIncreasing
		case latest < prev:
			out.Trend = TrendDecreasing
		}
	}

	return out
}
