// Package timeline derives per-metric historical series and trend insights
// from a patient's raw readings. Everything here is pure computation; nothing
// is persisted.
package timeline

import (
	"sort"
	"time"
)

// Reading is one raw metric observation, as stored on the medical record.
type Reading struct {
	Type  string
	Value float64
	Date  time.Time
}

// Point is one entry of a metric's historical series.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// BuildSeries groups readings by metric id and returns, for each id in ids,
// the chronologically ascending series of points. Readings whose type is not
// listed in ids are ignored. Every id gets an entry, possibly empty. Readings
// sharing a timestamp keep their insertion order, so the result is
// deterministic for a given input.
func BuildSeries(ids []string, readings []Reading) map[string][]Point {
	series := make(map[string][]Point, len(ids))
	for _, id := range ids {
		series[id] = []Point{}
	}

	for _, r := range readings {
		pts, ok := series[r.Type]
		if !ok {
			continue
		}
		series[r.Type] = append(pts, Point{Date: r.Date, Value: r.Value})
	}

	for id, pts := range series {
		sort.SliceStable(pts, func(i, j int) bool {
			return pts[i].Date.Before(pts[j].Date)
		})
		series[id] = pts
	}

	return series
}
