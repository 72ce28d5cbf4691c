package timeline

import (
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2024, time.March, n, 0, 0, 0, 0, time.UTC)
}

func TestBuildSeries_GroupsAndSortsAscending(t *testing.T) {
	ids := []string{"heart-rate", "blood-glucose"}
	readings := []Reading{
		{Type: "heart-rate", Value: 80, Date: day(3)},
		{Type: "blood-glucose", Value: 110, Date: day(1)},
		{Type: "heart-rate", Value: 72, Date: day(1)},
		{Type: "heart-rate", Value: 76, Date: day(2)},
	}

	series := BuildSeries(ids, readings)

	hr := series["heart-rate"]
	if len(hr) != 3 {
		t.Fatalf("expected 3 heart-rate points, got %d", len(hr))
	}
	if hr[0].Value != 72 || hr[1].Value != 76 || hr[2].Value != 80 {
		t.Errorf("heart-rate series not ascending by date: %+v", hr)
	}

	if len(series["blood-glucose"]) != 1 {
		t.Errorf("expected 1 blood-glucose point, got %d", len(series["blood-glucose"]))
	}
}

func TestBuildSeries_EveryIDGetsEntry(t *testing.T) {
	series := BuildSeries([]string{"bmi", "thyroid"}, nil)
	if len(series) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(series))
	}
	for id, pts := range series {
		if pts == nil {
			t.Errorf("%s: expected empty slice, got nil", id)
		}
		if len(pts) != 0 {
			t.Errorf("%s: expected empty series, got %d points", id, len(pts))
		}
	}
}

func TestBuildSeries_IgnoresUnlistedTypes(t *testing.T) {
	readings := []Reading{
		{Type: "heart-rate", Value: 70, Date: day(1)},
		{Type: "pulse", Value: 70, Date: day(1)},
	}
	series := BuildSeries([]string{"heart-rate"}, readings)
	if len(series) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(series))
	}
	if len(series["heart-rate"]) != 1 {
		t.Errorf("expected 1 heart-rate point, got %d", len(series["heart-rate"]))
	}
}

func TestBuildSeries_StableForEqualDates(t *testing.T) {
	readings := []Reading{
		{Type: "heart-rate", Value: 71, Date: day(1)},
		{Type: "heart-rate", Value: 72, Date: day(1)},
		{Type: "heart-rate", Value: 73, Date: day(1)},
	}
	series := BuildSeries([]string{"heart-rate"}, readings)
	hr := series["heart-rate"]
	if hr[0].Value != 71 || hr[1].Value != 72 || hr[2].Value != 73 {
		t.Errorf("insertion order not preserved for equal dates: %+v", hr)
	}
}

func TestBuildSeries_Deterministic(t *testing.T) {
	readings := []Reading{
		{Type: "heart-rate", Value: 80, Date: day(2)},
		{Type: "heart-rate", Value: 72, Date: day(1)},
	}
	first := BuildSeries([]string{"heart-rate"}, readings)
	for i := 0; i < 10; i++ {
		again := BuildSeries([]string{"heart-rate"}, readings)
		for j := range first["heart-rate"] {
			if first["heart-rate"][j] != again["heart-rate"][j] {
				t.Fatal("BuildSeries is not deterministic")
			}
		}
	}
}
